package logging

// Standardized field names for structured logging.
const (
	FieldFile       = "file_path"
	FieldComponent  = "component"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldCount      = "count"
	FieldDelimiter  = "delimiter"
	FieldRow        = "row"
	FieldColumn     = "column"
	FieldValue      = "value"
	FieldMonth      = "month"
	FieldRatio      = "invalid_ratio"
	FieldDirectory  = "directory"
	FieldCacheKey   = "cache_key"
	FieldDuration   = "duration_ms"
	FieldOutputFile = "output_file"
)
