package log

// Common field names for structured logging.
const (
	FieldComponent   = "component"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldOwner       = "owner"
	FieldRecordID    = "record_id"
	FieldVerb        = "verb"
	FieldAmountCents = "amount_cents"
	FieldCategory    = "category"
	FieldAccount     = "account"
	FieldYear        = "year"
	FieldMonth       = "month"
	FieldBackend     = "backend"
)

// Standard component names.
const (
	ComponentApp    = "app"
	ComponentHTTP   = "http"
	ComponentEditor = "editor"
	ComponentStore  = "store"
	ComponentLists  = "lists"
	ComponentEvents = "events"
	ComponentWorker = "worker"
	ComponentSheets = "sheets"
)
