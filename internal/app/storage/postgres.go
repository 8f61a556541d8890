package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"ghprofile/internal/app/profile"
	"ghprofile/internal/pkg/logx"
)

const (
	selectSlotSQL = `SELECT data FROM profile_slots WHERE slot_key = $1`

	upsertSlotSQL = `INSERT INTO profile_slots (slot_key, data, updated_at)
VALUES ($1, $2::jsonb, now())
ON CONFLICT (slot_key) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`
)

// querier is the subset of *pgxpool.Pool used by PostgresStore.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore keeps the profile record as one row of the profile_slots table.
type PostgresStore struct {
	db      querier
	slot    string
	release func()
	logger  zerolog.Logger
}

// NewPostgresStore creates a store for slot on db. release, if non-nil, is called by Close.
func NewPostgresStore(db querier, slot string, release func()) *PostgresStore {
	return &PostgresStore{
		db:      db,
		slot:    slot,
		release: release,
		logger:  logx.Component("PostgresStore").With().Str("slot", slot).Logger(),
	}
}

// Load reads the slot row. A missing row, a query error, or malformed JSON yields the empty record.
func (s *PostgresStore) Load(ctx context.Context) profile.UserProfile {
	var data []byte
	err := s.db.QueryRow(ctx, selectSlotSQL, s.slot).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		s.logger.Debug().Msg("No stored profile found.")
		return profile.UserProfile{}
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to query stored profile. Falling back to empty profile.")
		return profile.UserProfile{}
	}

	return decodeProfile(data, s.logger)
}

// Save upserts the slot row with p.
func (s *PostgresStore) Save(ctx context.Context, p profile.UserProfile) error {
	data, err := encodeProfile(p)
	if err != nil {
		return err
	}

	if _, err := s.db.Exec(ctx, upsertSlotSQL, s.slot, string(data)); err != nil {
		return fmt.Errorf("failed to upsert profile slot %q: %w", s.slot, err)
	}

	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	if s.release != nil {
		s.release()
	}
	return nil
}
