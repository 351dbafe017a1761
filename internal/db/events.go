package db

import (
	"database/sql"
	"fmt"
	"time"
)

// RecordEvent logs one mutation sent to the audio server
func (d *DB) RecordEvent(action, target, command string, exitCode int, output string) error {
	_, err := d.conn.Exec(`
		INSERT INTO mutation_events (action, target, command, exit_code, output, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`, action, nullString(target), command, exitCode, nullString(output), time.Now().UTC())

	if err != nil {
		return fmt.Errorf("failed to record event: %w", err)
	}

	return nil
}

// GetRecentEvents returns the most recent events, newest first
func (d *DB) GetRecentEvents(limit int) ([]*MutationEvent, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := d.conn.Query(`
		SELECT id, action, target, command, exit_code, output, timestamp
		FROM mutation_events
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// GetEventsByAction returns events of one action, newest first
func (d *DB) GetEventsByAction(action string, limit int) ([]*MutationEvent, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := d.conn.Query(`
		SELECT id, action, target, command, exit_code, output, timestamp
		FROM mutation_events
		WHERE action = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, action, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query events by action: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]*MutationEvent, error) {
	var events []*MutationEvent
	for rows.Next() {
		var event MutationEvent
		var target, output sql.NullString

		err := rows.Scan(
			&event.ID, &event.Action, &target, &event.Command,
			&event.ExitCode, &output, &event.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		event.Target = target.String
		event.Output = output.String

		events = append(events, &event)
	}

	return events, rows.Err()
}
