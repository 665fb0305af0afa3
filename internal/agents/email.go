// Package agents holds the format/intent-specific extraction agents the
// dispatcher routes documents to. Agents extract fields only; required
// field validation is the dispatcher's job.
package agents

import (
	"strings"

	"github.com/intakehq/document-router-api/internal/models"
)

// rawSampleLen bounds the raw_content excerpt carried in every record.
const rawSampleLen = 100

// ProcessEmail extracts the sender and an urgency flag from raw email
// text. Sender comes from the first "from:"-prefixed line; urgency is
// High iff the text mentions "urgent".
func ProcessEmail(content string) (*models.EmailRecord, error) {
	var sender *string
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.ToLower(line), "from:") {
			value := strings.TrimSpace(line[strings.Index(line, ":")+1:])
			sender = &value
			break
		}
	}

	urgency := "Normal"
	if strings.Contains(strings.ToLower(content), "urgent") {
		urgency = "High"
	}

	return &models.EmailRecord{
		Sender:     sender,
		Urgency:    urgency,
		RawContent: rawSample(content),
	}, nil
}

// rawSample returns the first rawSampleLen characters of content.
func rawSample(content string) string {
	runes := []rune(content)
	if len(runes) > rawSampleLen {
		return string(runes[:rawSampleLen])
	}
	return content
}
