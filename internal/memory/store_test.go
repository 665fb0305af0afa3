package memory_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intakehq/document-router-api/internal/memory"
	"github.com/intakehq/document-router-api/internal/models"
	"github.com/intakehq/document-router-api/internal/utils"
)

type fakeMirror struct {
	insertErr error
	inserted  []models.LogEntry
	values    map[string]any
}

func newFakeMirror() *fakeMirror {
	return &fakeMirror{values: map[string]any{}}
}

func (f *fakeMirror) InsertEntry(_ context.Context, entry models.LogEntry) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, entry)
	return nil
}

func (f *fakeMirror) ThreadHistory(_ context.Context, threadID string) ([]models.LogEntry, error) {
	var entries []models.LogEntry
	for _, entry := range f.inserted {
		if entry.ThreadID == threadID {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (f *fakeMirror) SetValue(_ context.Context, key string, value any) error {
	f.values[key] = value
	return nil
}

func (f *fakeMirror) GetValue(_ context.Context, key string) (models.Result, error) {
	if value, ok := f.values[key]; ok {
		return models.Result{"value": value}, nil
	}
	return nil, nil
}

func testLogger() *utils.Logger {
	return utils.NewLogger("error")
}

func readLogFile(t *testing.T, path string) []models.LogEntry {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var logs []models.LogEntry
	require.NoError(t, json.Unmarshal(data, &logs))
	return logs
}

func TestLog_FillsIdentifiers(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs.json")
	store := memory.NewStore(logFile, nil, testLogger())

	entry, err := store.Log(context.Background(), models.LogEntry{
		Source:    "sample.eml",
		Format:    models.FormatEmail,
		Intent:    models.IntentUnknown,
		Extracted: models.Result{"sender": "a@b.c"},
	}, "")
	require.NoError(t, err)

	assert.NotEmpty(t, entry.ID)
	assert.NotEmpty(t, entry.ThreadID)
	assert.NotEmpty(t, entry.Timestamp)
}

func TestLog_PreservesCallerThreadID(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs.json")
	store := memory.NewStore(logFile, nil, testLogger())

	entry, err := store.Log(context.Background(), models.LogEntry{
		ThreadID: "thread-42",
		Source:   "a.txt",
	}, "")
	require.NoError(t, err)

	assert.Equal(t, "thread-42", entry.ThreadID)
}

func TestLog_AppendsToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs.json")
	store := memory.NewStore(logFile, nil, testLogger())

	for i := 0; i < 3; i++ {
		_, err := store.Log(context.Background(), models.LogEntry{
			Source: fmt.Sprintf("doc-%d.txt", i),
		}, "")
		require.NoError(t, err)
	}

	logs := readLogFile(t, logFile)
	require.Len(t, logs, 3)
	assert.Equal(t, "doc-0.txt", logs[0].Source)
	assert.Equal(t, "doc-2.txt", logs[2].Source)
}

func TestLog_CorruptFileTreatedAsEmpty(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs.json")
	require.NoError(t, os.WriteFile(logFile, []byte("not json at all"), 0644))

	store := memory.NewStore(logFile, nil, testLogger())
	_, err := store.Log(context.Background(), models.LogEntry{Source: "a.txt"}, "")
	require.NoError(t, err)

	logs := readLogFile(t, logFile)
	assert.Len(t, logs, 1)
}

func TestLog_CreatesParentDirectory(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "outputs", "nested", "logs.json")
	store := memory.NewStore(logFile, nil, testLogger())

	_, err := store.Log(context.Background(), models.LogEntry{Source: "a.txt"}, "")
	require.NoError(t, err)

	assert.FileExists(t, logFile)
}

func TestLog_MirrorsEntries(t *testing.T) {
	mirror := newFakeMirror()
	logFile := filepath.Join(t.TempDir(), "logs.json")
	store := memory.NewStore(logFile, mirror, testLogger())

	entry, err := store.Log(context.Background(), models.LogEntry{Source: "a.txt"}, "latest")
	require.NoError(t, err)

	require.Len(t, mirror.inserted, 1)
	assert.Equal(t, entry.ID, mirror.inserted[0].ID)
	assert.Contains(t, mirror.values, "latest")
}

func TestLog_MirrorFailureIsSwallowed(t *testing.T) {
	mirror := newFakeMirror()
	mirror.insertErr = fmt.Errorf("mirror down")
	logFile := filepath.Join(t.TempDir(), "logs.json")
	store := memory.NewStore(logFile, mirror, testLogger())

	_, err := store.Log(context.Background(), models.LogEntry{Source: "a.txt"}, "")

	// The primary file append must survive a mirror failure.
	require.NoError(t, err)
	assert.Len(t, readLogFile(t, logFile), 1)
}

func TestThreadHistory(t *testing.T) {
	mirror := newFakeMirror()
	logFile := filepath.Join(t.TempDir(), "logs.json")
	store := memory.NewStore(logFile, mirror, testLogger())

	_, err := store.Log(context.Background(), models.LogEntry{ThreadID: "t1", Source: "a.txt"}, "")
	require.NoError(t, err)
	_, err = store.Log(context.Background(), models.LogEntry{ThreadID: "t2", Source: "b.txt"}, "")
	require.NoError(t, err)
	_, err = store.Log(context.Background(), models.LogEntry{ThreadID: "t1", Source: "c.txt"}, "")
	require.NoError(t, err)

	entries, err := store.ThreadHistory(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a.txt", entries[0].Source)
	assert.Equal(t, "c.txt", entries[1].Source)
}

func TestThreadHistory_NoMirror(t *testing.T) {
	store := memory.NewStore(filepath.Join(t.TempDir(), "logs.json"), nil, testLogger())

	entries, err := store.ThreadHistory(context.Background(), "t1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
