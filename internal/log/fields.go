package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldItemID       = "item_id"
	FieldCaseID       = "case_id"
	FieldCategoryID   = "category_id"
	FieldCategoryName = "category_name"
	FieldWindowStart  = "window_start"
	FieldWindowEnd    = "window_end"
	FieldWeekOffset   = "week_offset"
	FieldBackend      = "backend"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentWorkLog  = "worklog"
	ComponentStorage  = "storage"
	ComponentSummary  = "summary"
	ComponentBackend  = "backend"
	ComponentTemplate = "template"
	ComponentCache    = "cache"
)

// Operations defines standard operation names
const (
	OpCreate    = "create"
	OpDelete    = "delete"
	OpList      = "list"
	OpLoad      = "load"
	OpSave      = "save"
	OpSummarize = "summarize"
	OpRender    = "render"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
