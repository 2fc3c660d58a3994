package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-jumper/internal/games/jumper"
)

var (
	_ jumper.Prefs = (*Store)(nil)
	_ jumper.Prefs = PlayerPrefs{}
)

// PlayerPrefs namespaces preference keys per player, so several SSH users
// can share one database without sharing a wallet.
type PlayerPrefs struct {
	store  *Store
	prefix string
}

// ForPlayer returns the preferences of the named player. An empty name
// returns the unprefixed local preferences.
func (s *Store) ForPlayer(name string) PlayerPrefs {
	prefix := ""
	if name != "" {
		prefix = "player/" + name + "/"
	}
	return PlayerPrefs{store: s, prefix: prefix}
}

func (p PlayerPrefs) GetInt(ctx context.Context, key string) (int, error) {
	return p.store.GetInt(ctx, p.prefix+key)
}

func (p PlayerPrefs) GetFloat(ctx context.Context, key string) (float64, error) {
	return p.store.GetFloat(ctx, p.prefix+key)
}

func (p PlayerPrefs) SetInt(ctx context.Context, key string, v int) error {
	return p.store.SetInt(ctx, p.prefix+key, v)
}

func (p PlayerPrefs) SetFloat(ctx context.Context, key string, v float64) error {
	return p.store.SetFloat(ctx, p.prefix+key, v)
}

// GetInt returns the integer preference for key, or 0 if it was never set.
func (s *Store) GetInt(ctx context.Context, key string) (int, error) {
	var v sql.NullInt64
	err := s.db.QueryRowContext(ctx, "SELECT int_value FROM prefs WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read pref %q: %w", key, err)
	}
	if !v.Valid {
		return 0, nil
	}
	return int(v.Int64), nil
}

// GetFloat returns the real-valued preference for key, or 0 if it was never set.
func (s *Store) GetFloat(ctx context.Context, key string) (float64, error) {
	var v sql.NullFloat64
	err := s.db.QueryRowContext(ctx, "SELECT real_value FROM prefs WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read pref %q: %w", key, err)
	}
	if !v.Valid {
		return 0, nil
	}
	return v.Float64, nil
}

// SetInt stores an integer preference.
func (s *Store) SetInt(ctx context.Context, key string, v int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO prefs (key, int_value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET int_value = excluded.int_value, updated_at = CURRENT_TIMESTAMP`,
		key, v,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write pref %q: %w", key, err)
	}
	return nil
}

// SetFloat stores a real-valued preference.
func (s *Store) SetFloat(ctx context.Context, key string, v float64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO prefs (key, real_value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET real_value = excluded.real_value, updated_at = CURRENT_TIMESTAMP`,
		key, v,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write pref %q: %w", key, err)
	}
	return nil
}
