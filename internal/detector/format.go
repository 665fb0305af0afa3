// Package detector assigns a routing format to every document. Detection
// is total: every (filename, content) pair maps to exactly one format.
package detector

import (
	"strings"

	"github.com/intakehq/document-router-api/internal/models"
)

// Detect returns the document's format. Filename suffix checks run first
// (case-insensitive) and take priority over the content heuristic; a
// document with no recognized suffix whose content contains "from:"
// resolves to Email, and everything else falls back to Text.
func Detect(filename, content string) models.Format {
	name := strings.ToLower(filename)

	switch {
	case strings.HasSuffix(name, ".pdf"):
		return models.FormatPDF
	case strings.HasSuffix(name, ".json"):
		return models.FormatJSON
	case strings.HasSuffix(name, ".eml"), strings.Contains(strings.ToLower(content), "from:"):
		return models.FormatEmail
	default:
		return models.FormatText
	}
}
