package agents_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intakehq/document-router-api/internal/agents"
)

// ---------------------------------------------------------------------------
// Email agent
// ---------------------------------------------------------------------------

func TestProcessEmail_Valid(t *testing.T) {
	record, err := agents.ProcessEmail("From: test@example.com\nSubject: Test\nBody: Hello!")
	require.NoError(t, err)

	require.NotNil(t, record.Sender)
	assert.Equal(t, "test@example.com", *record.Sender)
	assert.Equal(t, "Normal", record.Urgency)
	assert.NotEmpty(t, record.RawContent)
}

func TestProcessEmail_MissingSender(t *testing.T) {
	record, err := agents.ProcessEmail("Subject: Test\nBody: Hello!")
	require.NoError(t, err)

	assert.Nil(t, record.Sender)
}

func TestProcessEmail_Urgency(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "urgent lowercase", content: "From: a@b.c\nThis is urgent, please respond", want: "High"},
		{name: "urgent mixed case", content: "From: a@b.c\nURGENT: server down", want: "High"},
		{name: "no urgency marker", content: "From: a@b.c\nJust checking in", want: "Normal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := agents.ProcessEmail(tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.want, record.Urgency)
		})
	}
}

func TestProcessEmail_CaseInsensitiveFromLine(t *testing.T) {
	record, err := agents.ProcessEmail("FROM:  ops@example.com  \nBody: hi")
	require.NoError(t, err)

	require.NotNil(t, record.Sender)
	assert.Equal(t, "ops@example.com", *record.Sender)
}

func TestProcessEmail_RawContentTruncated(t *testing.T) {
	content := "From: a@b.c\n" + strings.Repeat("x", 500)
	record, err := agents.ProcessEmail(content)
	require.NoError(t, err)

	assert.Len(t, record.RawContent, 100)
}

// ---------------------------------------------------------------------------
// Invoice agent
// ---------------------------------------------------------------------------

func TestProcessInvoice_Valid(t *testing.T) {
	content := `{"invoice_id": "INV-1", "date": "2025-01-01", "total_amount": 100.0, "vendor": "Test", "items": ["a"]}`

	record, err := agents.ProcessInvoice(content)
	require.NoError(t, err)

	require.NotNil(t, record.Data)
	assert.Equal(t, "INV-1", record.Data["invoice_id"])
	assert.Equal(t, "Test", record.Data["vendor"])
	assert.Empty(t, record.Errors)
}

func TestProcessInvoice_InvalidJSON(t *testing.T) {
	_, err := agents.ProcessInvoice("{invalid json}")

	var parseErr *agents.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestProcessInvoice_MissingField(t *testing.T) {
	content := `{"date": "2025-01-01", "total_amount": 100.0, "vendor": "Test", "items": ["a"]}`

	record, err := agents.ProcessInvoice(content)
	require.NoError(t, err)

	assert.Nil(t, record.Data)
	require.NotEmpty(t, record.Errors)
	assert.Contains(t, strings.Join(record.Errors, ", "), "invoice_id")
}

func TestProcessInvoice_WrongFieldType(t *testing.T) {
	content := `{"invoice_id": "INV-1", "date": "2025-01-01", "total_amount": "a lot", "vendor": "Test", "items": ["a"]}`

	record, err := agents.ProcessInvoice(content)
	require.NoError(t, err)

	assert.Nil(t, record.Data)
	require.NotEmpty(t, record.Errors)
	assert.Contains(t, strings.Join(record.Errors, ", "), "total_amount")
}

// ---------------------------------------------------------------------------
// Complaint agent
// ---------------------------------------------------------------------------

func TestProcessComplaint_Valid(t *testing.T) {
	record, err := agents.ProcessComplaint("From: user@x.com\nSubject: Issue\nBody: Something broke.")
	require.NoError(t, err)

	require.NotNil(t, record.Complainant)
	require.NotNil(t, record.Subject)
	require.NotNil(t, record.Body)
	assert.Equal(t, "user@x.com", *record.Complainant)
	assert.Equal(t, "Issue", *record.Subject)
	assert.Equal(t, "Something broke.", *record.Body)
}

func TestProcessComplaint_MissingFields(t *testing.T) {
	record, err := agents.ProcessComplaint("Subject: Issue\nBody: Something broke.")
	require.NoError(t, err)

	assert.Nil(t, record.Complainant)
	require.NotNil(t, record.Subject)
	assert.Equal(t, "Issue", *record.Subject)
	require.NotNil(t, record.Body)
	assert.Equal(t, "Something broke.", *record.Body)
}

func TestProcessComplaint_NoMatchingLines(t *testing.T) {
	record, err := agents.ProcessComplaint("Just some free-form text with no structure")
	require.NoError(t, err)

	assert.Nil(t, record.Complainant)
	assert.Nil(t, record.Subject)
	assert.Nil(t, record.Body)
	assert.Equal(t, "Just some free-form text with no structure", record.RawContent)
}
