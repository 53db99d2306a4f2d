package log

// Common field names for structured logging.
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldSpreadsheet = "sheet"
	FieldWorksheet   = "worksheet"
	FieldWindow      = "window"
	FieldCacheHit    = "cache_hit"
	FieldRowCount    = "rows"
)

// Components defines standard component names.
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentSheets    = "sheets"
	ComponentCache     = "cache"
	ComponentAnalytics = "analytics"
	ComponentExport    = "export"
	ComponentConfig    = "config"
)

// Operations defines standard operation names.
const (
	OpFetch    = "fetch"
	OpRefresh  = "refresh"
	OpParse    = "parse"
	OpExport   = "export"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
