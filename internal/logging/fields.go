package logging

// Common field names for structured logging.
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldRecordID  = "record_id"
	FieldPeriod    = "period"
	FieldCount     = "count"
	FieldPath      = "path"
	FieldBackend   = "backend"
	FieldError     = "error"
)

// Component names.
const (
	ComponentApp      = "app"
	ComponentStorage  = "storage"
	ComponentImporter = "importer"
	ComponentCommands = "commands"
)

// Operation names.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
	OpLoad   = "load"
	OpSave   = "save"
	OpImport = "import"
)
