package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/intakehq/document-router-api/internal/models"
)

// Repository is the secondary keyed mirror behind the memory store: log
// entries grouped by thread, plus a direct key-value surface.
type Repository interface {
	InsertEntry(ctx context.Context, entry models.LogEntry) error
	ThreadHistory(ctx context.Context, threadID string) ([]models.LogEntry, error)
	SetValue(ctx context.Context, key string, value any) error
	GetValue(ctx context.Context, key string) (models.Result, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) InsertEntry(ctx context.Context, entry models.LogEntry) error {
	extractedJSON, err := json.Marshal(entry.Extracted)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO log_entries (id, thread_id, timestamp, source, format, intent, extracted)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.db.ExecContext(ctx, query,
		entry.ID,
		entry.ThreadID,
		entry.Timestamp,
		entry.Source,
		entry.Format,
		entry.Intent,
		string(extractedJSON),
	)

	return err
}

func (r *repository) ThreadHistory(ctx context.Context, threadID string) ([]models.LogEntry, error) {
	query := `
		SELECT id, thread_id, timestamp, source, format, intent, extracted
		FROM log_entries
		WHERE thread_id = $1
		ORDER BY timestamp
	`

	rows, err := r.db.QueryContext(ctx, query, threadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.LogEntry{}
	for rows.Next() {
		var entry models.LogEntry
		var extractedJSON sql.NullString

		if err := rows.Scan(
			&entry.ID,
			&entry.ThreadID,
			&entry.Timestamp,
			&entry.Source,
			&entry.Format,
			&entry.Intent,
			&extractedJSON,
		); err != nil {
			return nil, err
		}

		if extractedJSON.Valid && extractedJSON.String != "" {
			if err := json.Unmarshal([]byte(extractedJSON.String), &entry.Extracted); err != nil {
				return nil, err
			}
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (r *repository) SetValue(ctx context.Context, key string, value any) error {
	valueJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	_, err = r.db.ExecContext(ctx, query, key, string(valueJSON), time.Now().Format(time.RFC3339))

	return err
}

func (r *repository) GetValue(ctx context.Context, key string) (models.Result, error) {
	var valueJSON string

	query := `SELECT value FROM kv_store WHERE key = $1`

	err := r.db.QueryRowContext(ctx, query, key).Scan(&valueJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var value models.Result
	if err := json.Unmarshal([]byte(valueJSON), &value); err != nil {
		return nil, err
	}

	return value, nil
}
