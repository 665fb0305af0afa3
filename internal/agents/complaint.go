package agents

import (
	"strings"

	"github.com/intakehq/document-router-api/internal/models"
)

// ProcessComplaint extracts complainant, subject and body from plain
// text by scanning for "from:"/"subject:"/"body:" prefixed lines. Fields
// with no matching line stay nil.
func ProcessComplaint(content string) (*models.ComplaintRecord, error) {
	record := &models.ComplaintRecord{
		RawContent: rawSample(content),
	}

	for _, line := range strings.Split(content, "\n") {
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "from:"):
			record.Complainant = afterColon(line)
		case strings.HasPrefix(lower, "subject:"):
			record.Subject = afterColon(line)
		case strings.HasPrefix(lower, "body:"):
			record.Body = afterColon(line)
		}
	}

	return record, nil
}

func afterColon(line string) *string {
	value := strings.TrimSpace(line[strings.Index(line, ":")+1:])
	return &value
}
