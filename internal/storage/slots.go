package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Veraticus/smart-finance/internal/session"
)

var _ session.Store = (*Slot)(nil)

// Slot is a single named value in the session_slots table.
type Slot struct {
	storage *SQLiteStorage
	name    string
}

// Slot returns the slot with the given name. Slots need no creation.
func (s *SQLiteStorage) Slot(name string) *Slot {
	return &Slot{storage: s, name: name}
}

// Name returns the slot name.
func (sl *Slot) Name() string {
	return sl.name
}

// Read returns the stored value; ok is false if the slot is empty.
func (sl *Slot) Read(ctx context.Context) ([]byte, bool, error) {
	if err := validateContext(ctx); err != nil {
		return nil, false, err
	}

	var value []byte
	err := sl.storage.db.QueryRowContext(ctx,
		`SELECT value FROM session_slots WHERE name = ?`, sl.name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read slot %q: %w", sl.name, err)
	}
	return value, true, nil
}

// Write replaces the slot value.
func (sl *Slot) Write(ctx context.Context, data []byte) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	_, err := sl.storage.db.ExecContext(ctx, `
		INSERT INTO session_slots (name, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, sl.name, data)
	if err != nil {
		return fmt.Errorf("failed to write slot %q: %w", sl.name, err)
	}
	return nil
}

// Delete empties the slot. Deleting an empty slot is not an error.
func (sl *Slot) Delete(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := sl.storage.db.ExecContext(ctx,
		`DELETE FROM session_slots WHERE name = ?`, sl.name); err != nil {
		return fmt.Errorf("failed to delete slot %q: %w", sl.name, err)
	}
	return nil
}
