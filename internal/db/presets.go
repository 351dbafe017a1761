package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const presetColumns = `id, name, channels, channel_map, description, rate, format, properties, created, updated`

// UpsertPreset inserts a preset or replaces the one with the same name.
// The created time of an existing row is kept.
func (d *DB) UpsertPreset(p *PresetRecord) error {
	now := time.Now().UTC()
	_, err := d.conn.Exec(`
		INSERT INTO presets (name, channels, channel_map, description, rate, format, properties, created, updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			channels = excluded.channels,
			channel_map = excluded.channel_map,
			description = excluded.description,
			rate = excluded.rate,
			format = excluded.format,
			properties = excluded.properties,
			updated = excluded.updated
	`, p.Name, p.Channels, p.ChannelMap, nullString(p.Description),
		nullIntPtr(p.Rate), nullStringPtr(p.Format), nullStringPtr(p.Properties), now, now)
	if err != nil {
		return fmt.Errorf("failed to save preset %s: %w", p.Name, err)
	}
	return nil
}

// GetPreset returns the named preset, or nil if none exists
func (d *DB) GetPreset(name string) (*PresetRecord, error) {
	row := d.conn.QueryRow(`SELECT `+presetColumns+` FROM presets WHERE name = ?`, name)
	p, err := scanPreset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preset %s: %w", name, err)
	}
	return p, nil
}

// ListPresets returns every user preset sorted by name
func (d *DB) ListPresets() ([]*PresetRecord, error) {
	rows, err := d.conn.Query(`SELECT ` + presetColumns + ` FROM presets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query presets: %w", err)
	}
	defer rows.Close()

	var presets []*PresetRecord
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan preset: %w", err)
		}
		presets = append(presets, p)
	}
	return presets, rows.Err()
}

// DeletePreset removes the named preset and reports whether it existed
func (d *DB) DeletePreset(name string) (bool, error) {
	res, err := d.conn.Exec(`DELETE FROM presets WHERE name = ?`, name)
	if err != nil {
		return false, fmt.Errorf("failed to delete preset %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPreset(row rowScanner) (*PresetRecord, error) {
	var p PresetRecord
	var description, format, properties sql.NullString
	var rate sql.NullInt64

	err := row.Scan(
		&p.ID, &p.Name, &p.Channels, &p.ChannelMap,
		&description, &rate, &format, &properties,
		&p.Created, &p.Updated,
	)
	if err != nil {
		return nil, err
	}

	p.Description = description.String
	if rate.Valid {
		r := int(rate.Int64)
		p.Rate = &r
	}
	if format.Valid {
		p.Format = &format.String
	}
	if properties.Valid {
		p.Properties = &properties.String
	}
	return &p, nil
}
