package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldRequestID     = "request_id"
	FieldClientIP      = "client_ip"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldStatusCode    = "status_code"
	FieldDuration      = "duration_ms"
	FieldError         = "error"
	FieldTransactionID = "transaction_id"
	FieldTitle         = "title"
	FieldAmountCents   = "amount_cents"
	FieldType          = "type"
	FieldCategory      = "category"
	FieldCount         = "count"
)

// Components defines standard component names
const (
	ComponentApp    = "app"
	ComponentWorker = "worker"
)
