package agents

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/intakehq/document-router-api/internal/models"
)

// ParseError reports content that could not be parsed as JSON at all.
// The dispatcher treats it as the agent's terminal error output rather
// than an agent crash.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

const invoiceSchemaJSON = `{
	"type": "object",
	"required": ["invoice_id", "date", "total_amount", "vendor", "items"],
	"properties": {
		"invoice_id":   {"type": "string"},
		"date":         {"type": "string"},
		"total_amount": {"type": "number"},
		"vendor":       {"type": "string"},
		"items":        {"type": "array"}
	}
}`

var invoiceSchema = jsonschema.MustCompileString("invoice.json", invoiceSchemaJSON)

// ProcessInvoice parses content as JSON and validates it against the
// invoice schema. Unparseable content yields a ParseError; a parseable
// document that fails the schema yields a record with nil Data and the
// field errors listed.
func ProcessInvoice(content string) (*models.InvoiceRecord, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return nil, &ParseError{Err: err}
	}

	if err := invoiceSchema.Validate(data); err != nil {
		return &models.InvoiceRecord{
			Data:   nil,
			Errors: schemaErrors(err),
		}, nil
	}

	fields := map[string]any{
		"invoice_id":   data["invoice_id"],
		"date":         data["date"],
		"total_amount": data["total_amount"],
		"vendor":       data["vendor"],
		"items":        data["items"],
	}

	return &models.InvoiceRecord{Data: fields}, nil
}

// schemaErrors flattens a jsonschema validation error into one
// human-readable string per failing leaf.
func schemaErrors(err error) []string {
	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{err.Error()}
	}

	var errs []string
	for _, leaf := range leafErrors(validationErr) {
		location := strings.TrimPrefix(leaf.InstanceLocation, "/")
		if location == "" {
			errs = append(errs, leaf.Message)
			continue
		}
		errs = append(errs, fmt.Sprintf("%s: %s", location, leaf.Message))
	}
	return errs
}

func leafErrors(err *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(err.Causes) == 0 {
		return []*jsonschema.ValidationError{err}
	}
	var leaves []*jsonschema.ValidationError
	for _, cause := range err.Causes {
		leaves = append(leaves, leafErrors(cause)...)
	}
	return leaves
}
