package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldSuccess     = "success"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldIntent      = "intent"
	FieldRequestKind = "request_kind"
	FieldPerson      = "person"
	FieldDelta       = "delta"
	FieldPeriod      = "period"
	FieldTab         = "tab"
	FieldKidsCount   = "kids_count"
	FieldSecretID    = "secret_id"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentAlexa   = "alexa"
	ComponentService = "service"
	ComponentSheets  = "sheets"
	ComponentSecrets = "secrets"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentBackend = "backend"
)

// Operations defines standard operation names
const (
	OpAppend    = "append"
	OpList      = "list"
	OpSave      = "save"
	OpSync      = "sync"
	OpDispatch  = "dispatch"
	OpNormalize = "normalize"
	OpAggregate = "aggregate"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
