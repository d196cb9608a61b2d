package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLite stores cached scans in the first_guess_* tables.
type SQLite struct{ db *sql.DB }

// NewSQLite wraps a migrated database.
func NewSQLite(db *sql.DB) *SQLite { return &SQLite{db: db} }

func (s *SQLite) Load(ctx context.Context, key Key) ([]Entry, bool, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM first_guess_scans
		 WHERE version=? AND secret_count=? AND allowed_count=? AND fingerprint=?`,
		key.Version, key.SecretCount, key.AllowedCount, key.Fingerprint,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("find scan: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT guess, entropy_bits FROM first_guess_entries WHERE scan_id=? ORDER BY rank`, id)
	if err != nil {
		return nil, false, fmt.Errorf("load entries: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Guess, &e.EntropyBits); err != nil {
			return nil, false, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return out, len(out) > 0, nil
}

func (s *SQLite) Save(ctx context.Context, key Key, entries []Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM first_guess_entries WHERE scan_id IN (
		     SELECT id FROM first_guess_scans
		     WHERE version=? AND secret_count=? AND allowed_count=? AND fingerprint=?)`,
		key.Version, key.SecretCount, key.AllowedCount, key.Fingerprint,
	); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM first_guess_scans
		 WHERE version=? AND secret_count=? AND allowed_count=? AND fingerprint=?`,
		key.Version, key.SecretCount, key.AllowedCount, key.Fingerprint,
	); err != nil {
		return fmt.Errorf("clear scan: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO first_guess_scans (version, secret_count, allowed_count, fingerprint)
		 VALUES (?, ?, ?, ?)`,
		key.Version, key.SecretCount, key.AllowedCount, key.Fingerprint,
	)
	if err != nil {
		return fmt.Errorf("insert scan: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO first_guess_entries (scan_id, rank, guess, entropy_bits) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for rank, e := range entries {
		if _, err := stmt.ExecContext(ctx, id, rank, e.Guess, e.EntropyBits); err != nil {
			return fmt.Errorf("insert entry %d: %w", rank, err)
		}
	}
	return tx.Commit()
}
