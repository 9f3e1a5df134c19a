// Package journal records every relayed home event in the SQLite
// event_journal table.
//
// The journal is an audit trail for operators. It is never replayed into
// the home store and never used to bring new clients up to date.
package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sources recorded with each entry.
const (
	SourceWebSocket = "websocket"
	SourceHTTP      = "http"
	SourceMQTT      = "mqtt"
)

const (
	defaultLimit = 50
	maxLimit     = 200

	// timeLayout has fixed-width fractions so created_at sorts as text.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Entry is one journalled event.
type Entry struct {
	ID        string          `json:"id"`
	EventType string          `json:"eventType"`
	Source    string          `json:"source"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Filter selects journal entries.
type Filter struct {
	EventType string // optional
	Limit     int    // default 50, max 200
}

// Repository defines the journal operations.
type Repository interface {
	Append(ctx context.Context, entry *Entry) error
	Recent(ctx context.Context, filter Filter) ([]Entry, error)
}

// SQLiteRepository stores the journal in SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a journal over db. The event_journal
// migration must already be applied.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Append inserts entry. ID and CreatedAt are generated when empty.
func (r *SQLiteRepository) Append(ctx context.Context, entry *Entry) error {
	if entry.EventType == "" {
		return fmt.Errorf("appending journal entry: event type is required")
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	data := entry.Data
	if len(data) == 0 {
		data = json.RawMessage("null")
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_journal (id, event_type, source, data, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.EventType, entry.Source, string(data),
		entry.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting journal entry: %w", err)
	}
	return nil
}

// Recent returns entries matching filter, newest first.
func (r *SQLiteRepository) Recent(ctx context.Context, filter Filter) ([]Entry, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultLimit
	}
	if filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}

	var conditions []string
	var args []any
	if filter.EventType != "" {
		conditions = append(conditions, "event_type = ?")
		args = append(args, filter.EventType)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf( //nolint:gosec // WHERE built from parameterised conditions, not user input
		"SELECT id, event_type, source, data, created_at FROM event_journal %s ORDER BY created_at DESC, rowid DESC LIMIT ?",
		where,
	)
	args = append(args, filter.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var data, createdAt string
		if err := rows.Scan(&e.ID, &e.EventType, &e.Source, &data, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning journal entry: %w", err)
		}
		e.Data = json.RawMessage(data)

		t, err := time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing journal timestamp %q: %w", createdAt, err)
		}
		e.CreatedAt = t

		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating journal: %w", err)
	}
	return entries, nil
}
