package detector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/intakehq/document-router-api/internal/detector"
	"github.com/intakehq/document-router-api/internal/models"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
		want     models.Format
	}{
		{
			name:     "pdf suffix",
			filename: "report.pdf",
			content:  "anything",
			want:     models.FormatPDF,
		},
		{
			name:     "pdf suffix is case-insensitive",
			filename: "REPORT.PDF",
			content:  "anything",
			want:     models.FormatPDF,
		},
		{
			name:     "json suffix",
			filename: "invoice.json",
			content:  "{}",
			want:     models.FormatJSON,
		},
		{
			name:     "eml suffix",
			filename: "message.eml",
			content:  "no headers at all",
			want:     models.FormatEmail,
		},
		{
			name:     "from marker in content",
			filename: "message.txt",
			content:  "From: someone@example.com\nHello",
			want:     models.FormatEmail,
		},
		{
			name:     "from marker is case-insensitive",
			filename: "message.txt",
			content:  "FROM: someone@example.com",
			want:     models.FormatEmail,
		},
		{
			name:     "json suffix wins over from marker",
			filename: "payload.json",
			content:  "from: someone@example.com",
			want:     models.FormatJSON,
		},
		{
			name:     "pdf suffix wins over from marker",
			filename: "scan.pdf",
			content:  "from: someone@example.com",
			want:     models.FormatPDF,
		},
		{
			name:     "plain text default",
			filename: "notes.txt",
			content:  "Quarterly Report Q2 2025",
			want:     models.FormatText,
		},
		{
			name:     "no extension defaults to text",
			filename: "README",
			content:  "hello",
			want:     models.FormatText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detector.Detect(tt.filename, tt.content))
		})
	}
}
