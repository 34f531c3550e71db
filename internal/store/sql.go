package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/themobileprof/careportal-assistant/internal/memory"
)

// sqlStore holds the queries shared by the Postgres and SQLite backends.
// Placeholders are written as $n and rewritten for drivers that use ?.
type sqlStore struct {
	db           *sql.DB
	questionMark bool
}

func (s *sqlStore) query(q string) string {
	if !s.questionMark {
		return q
	}
	for i := 9; i >= 1; i-- {
		q = strings.ReplaceAll(q, fmt.Sprintf("$%d", i), "?")
	}
	return q
}

func (s *sqlStore) Append(ctx context.Context, sessionID string, msg memory.Message) error {
	payload, err := encodePayload(msg.Payload)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO chat_messages (id, session_id, sender, text, widget, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.db.ExecContext(ctx, s.query(query),
		msg.ID, sessionID, string(msg.Sender), msg.Text, msg.Widget, payload, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

func (s *sqlStore) List(ctx context.Context, sessionID string, limit int) ([]memory.Message, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		query := `
			SELECT id, sender, text, widget, payload, created_at FROM (
				SELECT seq, id, sender, text, widget, payload, created_at
				FROM chat_messages
				WHERE session_id = $1
				ORDER BY seq DESC
				LIMIT $2
			) AS recent
			ORDER BY seq ASC
		`
		rows, err = s.db.QueryContext(ctx, s.query(query), sessionID, limit)
	} else {
		query := `
			SELECT id, sender, text, widget, payload, created_at
			FROM chat_messages
			WHERE session_id = $1
			ORDER BY seq ASC
		`
		rows, err = s.db.QueryContext(ctx, s.query(query), sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	messages := []memory.Message{}
	for rows.Next() {
		var (
			m       memory.Message
			sender  string
			payload string
		)
		if err := rows.Scan(&m.ID, &sender, &m.Text, &m.Widget, &payload, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		m.Sender = memory.Sender(sender)
		if m.Payload, err = decodePayload(payload); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	return messages, nil
}

func (s *sqlStore) Delete(ctx context.Context, sessionID string) error {
	if _, err := s.db.ExecContext(ctx, s.query(`DELETE FROM chat_messages WHERE session_id = $1`), sessionID); err != nil {
		return fmt.Errorf("failed to delete messages: %w", err)
	}
	return nil
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}
