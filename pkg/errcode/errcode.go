package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Taxonomy errors
	EmptyInputError
	HierarchyIntegrityError
	ContextNotFoundError
	TaxonNotFoundError
	IndexQueryError
	IndexBuildError
	TaxonomyReadError
	TaxonomyParseError

	// Matching errors
	MultipleMatchError
	NoMatchError
	InvalidRequestError
	AdapterError

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBEmptyDatabaseError
	DBNotConnectedError
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError
	DBUnknownBackendError
	DBSQLiteOpenError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError
	SchemaCollationError

	// Populate errors
	PopulateClearError
	PopulateTaxaError
	PopulateEntriesError
	PopulateMetadataError

	// Optimize errors
	OptimizeOrphansError
	OptimizeVacuumError

	// Store errors
	StoreQueryError

	// Verifier errors
	VerifierRequestError
	VerifierResponseError
)
