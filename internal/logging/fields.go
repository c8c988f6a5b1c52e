package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldRunID  = "run_id"
	FieldEngine = "engine"

	// Matching fields.
	FieldPattern = "pattern"
	FieldOptions = "options"
	FieldStart   = "start"
	FieldEnd     = "end"
	FieldText    = "text"
	FieldMatches = "matches"

	// Transport fields.
	FieldAddr   = "addr"
	FieldFrom   = "from"
	FieldBytes  = "bytes"
	FieldFailed = "failed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
