package models

// Format is the coarse document type used for routing.
type Format string

const (
	FormatPDF   Format = "PDF"
	FormatJSON  Format = "JSON"
	FormatEmail Format = "Email"
	FormatText  Format = "Text"
)

// Intent is the semantic category of a document's purpose.
type Intent string

const (
	IntentInvoice       Intent = "Invoice"
	IntentRFQ           Intent = "RFQ"
	IntentComplaint     Intent = "Complaint"
	IntentPurchaseOrder Intent = "Purchase Order"
	IntentSupportTicket Intent = "Support Ticket"
	IntentRegulation    Intent = "Regulation"
	IntentUnknown       Intent = "Unknown"
)

// Document is the per-request input to the dispatcher. It is constructed
// by the CLI/HTTP adapter and never persisted as-is.
type Document struct {
	Filename string
	Data     []byte
}

// Result is the normalized output shape handed to callers and to the
// memory store. It always carries either extracted fields or an "error"
// key, and may carry "validation_errors" (a single comma-joined string).
type Result map[string]any

// EmailRecord holds fields extracted by the email agent. Sender is nil
// when no "from:" line was found.
type EmailRecord struct {
	Sender     *string `json:"sender"`
	Urgency    string  `json:"urgency"`
	RawContent string  `json:"raw_content"`
}

// InvoiceRecord holds the invoice agent's output. Data is nil when schema
// validation failed, in which case Errors lists the field errors.
type InvoiceRecord struct {
	Data   map[string]any `json:"data"`
	Errors []string       `json:"errors"`
}

// ComplaintRecord holds fields extracted by the complaint agent. A nil
// field means no matching line was found.
type ComplaintRecord struct {
	Complainant *string `json:"complainant"`
	Subject     *string `json:"subject"`
	Body        *string `json:"body"`
	RawContent  string  `json:"raw_content"`
}

// LogEntry is one append-only record written by the memory store.
// ThreadID groups related entries across invocations.
type LogEntry struct {
	ID        string `json:"id" db:"id"`
	ThreadID  string `json:"thread_id" db:"thread_id"`
	Timestamp string `json:"timestamp" db:"timestamp"`
	Source    string `json:"source" db:"source"`
	Format    Format `json:"format" db:"format"`
	Intent    Intent `json:"intent" db:"intent"`
	Extracted Result `json:"extracted"`
}

type ClassifyResponse struct {
	ID            string `json:"id"`
	Filename      string `json:"filename"`
	Format        Format `json:"format"`
	Intent        Intent `json:"intent"`
	Result        Result `json:"result"`
	ThreadID      string `json:"thread_id"`
	ContentSample string `json:"content_sample"`
}
