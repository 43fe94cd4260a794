// Package ioverifier asks the GNverifier web service about names that
// the local taxonomy could not match.
package ioverifier

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gntnrs/pkg/config"
	"github.com/gnames/gntnrs/pkg/tnrs"
	"github.com/patrickmn/go-cache"
)

const (
	// SourceName is the source of matches found by GNverifier.
	SourceName = "gnverifier"

	maxAttempts = 3

	// maxBatch is the largest number of names GNverifier accepts in one
	// request.
	maxBatch = 5_000
)

type verifier struct {
	cfg    config.VerifierConfig
	client *http.Client
	cache  *cache.Cache
}

// Option configures the verifier adapter.
type Option func(*verifier)

// OptHTTPClient replaces the default HTTP client.
func OptHTTPClient(c *http.Client) Option {
	return func(v *verifier) {
		v.client = c
	}
}

// OptCacheTTL sets how long verification results are kept.
func OptCacheTTL(d time.Duration) Option {
	return func(v *verifier) {
		if d > 0 {
			v.cache = cache.New(d, d*2)
		}
	}
}

// New creates an adapter that queries GNverifier.
func New(cfg config.VerifierConfig, opts ...Option) tnrs.Adapter {
	res := &verifier{
		cfg:    cfg,
		client: &http.Client{},
	}
	for _, opt := range opts {
		opt(res)
	}
	if res.cfg.Timeout <= 0 {
		res.cfg.Timeout = config.New().Verifier.Timeout
	}
	if res.cache == nil {
		res.cache = cache.New(time.Hour, 2*time.Hour)
	}
	return res
}

func (v *verifier) Name() string {
	return SourceName
}

// Match sends names without cached answers to GNverifier. The whole call
// is bounded by the configured timeout.
func (v *verifier) Match(
	ctx context.Context,
	names []tnrs.QueryName,
) (map[string][]tnrs.Hit, error) {
	res := make(map[string][]tnrs.Hit)

	var missing []string
	seen := make(map[string]struct{})
	for _, qn := range names {
		if qn.Name == "" {
			continue
		}
		if _, ok := v.cache.Get(qn.Name); ok {
			continue
		}
		if _, ok := seen[qn.Name]; ok {
			continue
		}
		seen[qn.Name] = struct{}{}
		missing = append(missing, qn.Name)
	}

	if len(missing) > 0 {
		ctx, cancel := context.WithTimeout(ctx, v.cfg.Timeout)
		defer cancel()

		for start := 0; start < len(missing); start += maxBatch {
			end := min(start+maxBatch, len(missing))
			out, err := v.verify(ctx, missing[start:end])
			if err != nil {
				return nil, err
			}
			for _, item := range out.Names {
				v.cache.Set(item.Name, item.hits(), cache.DefaultExpiration)
			}
		}
	}

	for _, qn := range names {
		cached, ok := v.cache.Get(qn.Name)
		if !ok {
			continue
		}
		hits := cached.([]tnrs.Hit)
		if len(hits) == 0 {
			continue
		}
		res[qn.ID] = cloneHits(hits, qn.Name)
	}
	slog.Debug("Verification done",
		"source", SourceName, "names", len(names), "matched", len(res),
	)
	return res, nil
}

// verify posts names and retries failed attempts until the context
// expires.
func (v *verifier) verify(ctx context.Context, names []string) (output, error) {
	var out output
	body, err := gnfmt.GNjson{}.Encode(input{NameStrings: names})
	if err != nil {
		return out, RequestError(v.cfg.URL, err)
	}

	var retry bool
	for attempt := 1; ; attempt++ {
		out, retry, err = v.post(ctx, body)
		if err == nil || !retry || attempt == maxAttempts {
			break
		}
		slog.Debug("Verification attempt failed",
			"attempt", attempt, "error", err,
		)
		select {
		case <-ctx.Done():
			return out, RequestError(v.cfg.URL, ctx.Err())
		case <-time.After(v.cfg.RetryInterval):
		}
	}
	return out, err
}

// post sends one request. The boolean tells if a failed request is worth
// repeating.
func (v *verifier) post(ctx context.Context, body []byte) (output, bool, error) {
	var out output
	url := strings.TrimRight(v.cfg.URL, "/") + "/verifications"
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, url, bytes.NewReader(body),
	)
	if err != nil {
		return out, false, RequestError(url, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return out, ctx.Err() == nil, RequestError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		retry := resp.StatusCode >= 500 ||
			resp.StatusCode == http.StatusTooManyRequests
		return out, retry, StatusError(url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, true, RequestError(url, err)
	}
	if err = (gnfmt.GNjson{}).Decode(data, &out); err != nil {
		return out, false, ResponseError(url, err)
	}
	return out, false, nil
}

// hits converts the best result of a verified name. Names matched only
// by their genus or without any match give no hits.
func (n verifiedName) hits() []tnrs.Hit {
	br := n.BestResult
	if br == nil {
		return []tnrs.Hit{}
	}
	switch n.MatchType {
	case "Exact", "Fuzzy", "PartialExact", "PartialFuzzy", "Virus", "FacetedSearch":
	default:
		return []tnrs.Hit{}
	}
	if strings.HasPrefix(n.MatchType, "Partial") && !strings.Contains(br.MatchedCanonical, " ") {
		return []tnrs.Hit{}
	}

	h := tnrs.NewHit()
	h.SourceName = SourceName
	h.MatchedName = br.MatchedCanonical
	if h.MatchedName == "" {
		h.MatchedName = br.MatchedName
	}
	h.Taxon.Name = br.CurrentCanonical
	if h.Taxon.Name == "" {
		h.Taxon.Name = br.CurrentName
	}
	if id, err := strconv.ParseInt(br.CurrentRecordID, 10, 64); err == nil {
		h.Taxon.ID = id
	}
	h.Rank = lastRank(br.ClassificationRanks)
	h.Taxon.Rank = h.Rank
	h.IsSynonym = br.IsSynonym
	h.EditDistance = br.EditDistance
	h.IsApprox = br.EditDistance > 0
	h.NameStatusIsKnown = !h.IsApprox
	h.Score = score(n.Name, h.MatchedName, br.EditDistance)
	h.OtherData = map[string]string{
		"dataSourceId":       strconv.Itoa(br.DataSourceID),
		"dataSource":         br.DataSourceTitle,
		"recordId":           br.RecordID,
		"matchType":          n.MatchType,
		"taxonomicStatus":    br.TaxonomicStatus,
		"classificationPath": br.ClassificationPath,
	}
	return []tnrs.Hit{h}
}

// score uses the same formula as local fuzzy matches.
func score(query, matched string, dist int) float64 {
	shorter := min(utf8.RuneCountInString(query), utf8.RuneCountInString(matched))
	if shorter == 0 || dist >= shorter {
		return 0
	}
	return float64(shorter-dist) / float64(shorter)
}

func lastRank(ranks string) string {
	if ranks == "" {
		return ""
	}
	parts := strings.Split(ranks, "|")
	return parts[len(parts)-1]
}

func cloneHits(hits []tnrs.Hit, search string) []tnrs.Hit {
	res := make([]tnrs.Hit, len(hits))
	for i, h := range hits {
		h.SearchString = search
		res[i] = h
	}
	return res
}
