// Package dispatcher is the routing core: it derives text from the raw
// document, detects format, classifies intent, hands the text to the
// matching extraction agent and aggregates validation errors into one
// normalized result. Nothing raises past ClassifyAndRoute; every failure
// degrades to a structured field in the result.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/intakehq/document-router-api/internal/agents"
	"github.com/intakehq/document-router-api/internal/classifier"
	"github.com/intakehq/document-router-api/internal/detector"
	"github.com/intakehq/document-router-api/internal/extractor"
	"github.com/intakehq/document-router-api/internal/models"
	"github.com/intakehq/document-router-api/internal/utils"
)

type Dispatcher struct {
	classifier *classifier.Classifier
	logger     *utils.Logger
}

func New(cls *classifier.Classifier, logger *utils.Logger) *Dispatcher {
	return &Dispatcher{classifier: cls, logger: logger}
}

// ClassifyAndRoute runs one document through detection, classification,
// agent routing and validation. The returned result always carries either
// extracted fields or an "error" key; when any validation errors
// accumulated they are joined by ", " under "validation_errors".
func (d *Dispatcher) ClassifyAndRoute(ctx context.Context, doc models.Document) (models.Format, models.Intent, models.Result) {
	text := d.documentText(doc)

	format := detector.Detect(doc.Filename, text)
	intent := d.classifier.Classify(ctx, text)

	d.logger.Info("Document classified", "filename", doc.Filename, "format", format, "intent", intent)

	var result models.Result
	var validationErrors []string

	// Format routing wins except for the complaint carve-out: PDF format
	// OR Complaint intent both go to the complaint agent, so a Text
	// document with Complaint intent is still routable.
	switch {
	case format == models.FormatEmail:
		result, validationErrors = d.routeEmail(text)
	case format == models.FormatJSON:
		result, validationErrors = d.routeInvoice(text)
	case format == models.FormatPDF || intent == models.IntentComplaint:
		result, validationErrors = d.routeComplaint(text)
	default:
		d.logger.Warn("Unknown or unsupported format, cannot route", "filename", doc.Filename, "format", format)
		result = models.Result{"error": "Unknown or unsupported format"}
		validationErrors = []string{"Unsupported or unknown file format."}
	}

	if len(validationErrors) > 0 {
		if result == nil {
			result = models.Result{}
		}
		// A single joined string, not a list, for downstream compatibility.
		result["validation_errors"] = strings.Join(validationErrors, ", ")
	}

	return format, intent, result
}

// documentText obtains classification text for the document. PDF content
// goes through the extraction collaborator; a failure there degrades to
// an explanatory placeholder so the pipeline keeps going.
func (d *Dispatcher) documentText(doc models.Document) string {
	if strings.HasSuffix(strings.ToLower(doc.Filename), ".pdf") {
		text, err := extractor.ExtractPDF(doc.Data)
		if err != nil {
			d.logger.Warn("PDF text extraction failed", "filename", doc.Filename, "error", err)
			return fmt.Sprintf("[PDF content extraction failed: %v]", err)
		}
		return text
	}

	return extractor.DecodeText(doc.Data)
}

func (d *Dispatcher) routeEmail(text string) (models.Result, []string) {
	d.logger.Info("Routing to email agent")

	record, err := agents.ProcessEmail(text)
	if err != nil {
		return models.Result{"error": fmt.Sprintf("Email agent failed: %v", err)}, nil
	}

	result := models.Result{
		"sender":      nil,
		"urgency":     record.Urgency,
		"raw_content": record.RawContent,
	}
	if record.Sender != nil {
		result["sender"] = *record.Sender
	}

	var validationErrors []string
	if record.Sender == nil || *record.Sender == "" {
		validationErrors = append(validationErrors, "Missing sender in email.")
	}

	return result, validationErrors
}

func (d *Dispatcher) routeInvoice(text string) (models.Result, []string) {
	d.logger.Info("Routing to JSON agent")

	record, err := agents.ProcessInvoice(text)

	var parseErr *agents.ParseError
	if errors.As(err, &parseErr) {
		// Unparseable JSON is the agent's terminal output, but the
		// missing data key still counts as a validation failure.
		return models.Result{"error": parseErr.Error()}, []string{"Invalid or missing invoice data."}
	}
	if err != nil {
		return models.Result{"error": fmt.Sprintf("JSON agent failed: %v", err)}, nil
	}

	result := models.Result{
		"data":   nil,
		"errors": nil,
	}
	if record.Data != nil {
		result["data"] = record.Data
	}
	if len(record.Errors) > 0 {
		result["errors"] = record.Errors
	}

	var validationErrors []string
	if record.Data == nil {
		validationErrors = append(validationErrors, "Invalid or missing invoice data.")
	}
	validationErrors = append(validationErrors, record.Errors...)

	return result, validationErrors
}

func (d *Dispatcher) routeComplaint(text string) (models.Result, []string) {
	d.logger.Info("Routing to complaint agent")

	record, err := agents.ProcessComplaint(text)
	if err != nil {
		return models.Result{"error": fmt.Sprintf("Complaint agent failed: %v", err)}, nil
	}

	result := models.Result{
		"complainant": nil,
		"subject":     nil,
		"body":        nil,
		"raw_content": record.RawContent,
	}
	if record.Complainant != nil {
		result["complainant"] = *record.Complainant
	}
	if record.Subject != nil {
		result["subject"] = *record.Subject
	}
	if record.Body != nil {
		result["body"] = *record.Body
	}

	var validationErrors []string
	if record.Complainant == nil || *record.Complainant == "" || record.Body == nil || *record.Body == "" {
		validationErrors = append(validationErrors, "Missing complainant or body in complaint.")
	}

	return result, validationErrors
}
