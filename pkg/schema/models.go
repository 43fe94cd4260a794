// Package schema provides database schema models for GNtnrs. PostgreSQL
// tables are created from gorm tags, SQLite tables from ddl tags.
package schema

// DDLGenerator defines how Go models generate SQLite DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns empty slice if no indexes needed.
	IndexDDL() []string

	// TableName returns the table name for this model.
	TableName() string
}

// Taxon is a node of the taxonomy, live or deprecated.
type Taxon struct {
	// ID is the OTT id of the taxon.
	ID int64 `gorm:"primaryKey;autoIncrement:false" db:"id" ddl:"INTEGER PRIMARY KEY"`

	// ParentID is the id of the preferred parent, 0 for the root and
	// for deprecated taxa.
	ParentID int64 `gorm:"not null;default:0" db:"parent_id" ddl:"INTEGER NOT NULL DEFAULT 0"`

	// Ord keeps the parent-first order of taxa. Children are returned
	// in this order.
	Ord int64 `gorm:"not null" db:"ord" ddl:"INTEGER NOT NULL"`

	Name       string `gorm:"type:varchar(500);not null" db:"name" ddl:"TEXT NOT NULL"`
	UniqueName string `gorm:"type:varchar(500)" db:"unique_name" ddl:"TEXT"`
	Rank       string `gorm:"type:varchar(50)" db:"rank" ddl:"TEXT"`

	// Code is taxonomy.Nomenclature.
	Code int16 `gorm:"not null;default:0" db:"code" ddl:"INTEGER NOT NULL DEFAULT 0"`

	// Flags is a bit set of taxonomy.Flags.
	Flags int64 `gorm:"not null;default:0" db:"flags" ddl:"INTEGER NOT NULL DEFAULT 0"`

	// Contexts is a bit mask of taxonomic contexts that contain the
	// taxon.
	Contexts int64 `gorm:"not null;default:0" db:"contexts" ddl:"INTEGER NOT NULL DEFAULT 0"`

	IsDeprecated bool `gorm:"not null;default:false" db:"is_deprecated" ddl:"BOOLEAN NOT NULL DEFAULT FALSE"`
}

// NameEntry is an indexed name string: a name of a taxon, its synonym or
// a name of a deprecated taxon.
type NameEntry struct {
	// ID is UUID v5 generated from the taxon id, the name and its kind.
	ID string `gorm:"type:uuid;primaryKey" db:"id" ddl:"TEXT PRIMARY KEY"`

	// Ord keeps the index order of entries.
	Ord int64 `gorm:"not null" db:"ord" ddl:"INTEGER NOT NULL"`

	TaxonID int64 `gorm:"not null" db:"taxon_id" ddl:"INTEGER NOT NULL"`

	Name string `gorm:"type:varchar(500);not null" db:"name" ddl:"TEXT NOT NULL"`

	// NameLower is used for case-insensitive exact and prefix queries.
	NameLower string `gorm:"type:varchar(500);not null" db:"name_lower" ddl:"TEXT NOT NULL"`

	// NameLength is the number of runes in the name, it narrows fuzzy
	// candidates.
	NameLength int `gorm:"not null" db:"name_length" ddl:"INTEGER NOT NULL"`

	IsSynonym  bool `gorm:"not null;default:false" db:"is_synonym" ddl:"BOOLEAN NOT NULL DEFAULT FALSE"`
	Deprecated bool `gorm:"not null;default:false" db:"deprecated" ddl:"BOOLEAN NOT NULL DEFAULT FALSE"`

	// Kinds is a bit mask of index kinds.
	Kinds int32 `gorm:"not null" db:"kinds" ddl:"INTEGER NOT NULL"`

	// Contexts is a bit mask of contexts.
	Contexts int64 `gorm:"not null" db:"contexts" ddl:"INTEGER NOT NULL"`
}

// Metadata keeps JSON encoded values that describe the loaded taxonomy.
type Metadata struct {
	Key   string `gorm:"type:varchar(100);primaryKey" db:"key" ddl:"TEXT PRIMARY KEY"`
	Value string `gorm:"type:text" db:"value" ddl:"TEXT"`
}
