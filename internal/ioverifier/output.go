package ioverifier

// input is the body of a verification request.
type input struct {
	NameStrings    []string `json:"nameStrings"`
	WithAllMatches bool     `json:"withAllMatches"`
}

// output is the part of a verification response the adapter uses.
type output struct {
	Names []verifiedName `json:"names"`
}

type verifiedName struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	MatchType  string      `json:"matchType"`
	BestResult *bestResult `json:"bestResult,omitempty"`
}

type bestResult struct {
	DataSourceID        int    `json:"dataSourceId"`
	DataSourceTitle     string `json:"dataSourceTitleShort"`
	RecordID            string `json:"recordId"`
	MatchedName         string `json:"matchedName"`
	MatchedCanonical    string `json:"matchedCanonicalSimple"`
	CurrentRecordID     string `json:"currentRecordId"`
	CurrentName         string `json:"currentName"`
	CurrentCanonical    string `json:"currentCanonicalSimple"`
	IsSynonym           bool   `json:"isSynonym"`
	TaxonomicStatus     string `json:"taxonomicStatus"`
	ClassificationPath  string `json:"classificationPath"`
	ClassificationRanks string `json:"classificationRanks"`
	EditDistance        int    `json:"editDistance"`
}
