package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghprofile/internal/app/profile"
)

type fakeRow struct {
	data []byte
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*[]byte) = r.data
	return nil
}

// fakeSlots emulates the profile_slots table.
type fakeSlots struct {
	rows     map[string][]byte
	queryErr error
	execErr  error
	execSQL  []string
}

func (f *fakeSlots) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if f.queryErr != nil {
		return fakeRow{err: f.queryErr}
	}
	data, ok := f.rows[args[0].(string)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{data: data}
}

func (f *fakeSlots) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execSQL = append(f.execSQL, sql)
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	f.rows[args[0].(string)] = []byte(args[1].(string))
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func TestPostgresStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db := &fakeSlots{rows: map[string][]byte{}}
	store := NewPostgresStore(db, "user", nil)

	assert.Equal(t, profile.UserProfile{}, store.Load(ctx))

	require.NoError(t, store.Save(ctx, octocat))
	assert.Equal(t, octocat, store.Load(ctx))
	assert.Equal(t, []string{upsertSlotSQL}, db.execSQL)

	other := NewPostgresStore(db, "other", nil)
	assert.Equal(t, profile.UserProfile{}, other.Load(ctx))
}

func TestPostgresStore_LoadAbsorbsErrors(t *testing.T) {
	ctx := context.Background()

	broken := NewPostgresStore(&fakeSlots{queryErr: errors.New("connection refused")}, "user", nil)
	assert.Equal(t, profile.UserProfile{}, broken.Load(ctx))

	malformed := NewPostgresStore(&fakeSlots{rows: map[string][]byte{"user": []byte(`"just a string"`)}}, "user", nil)
	assert.Equal(t, profile.UserProfile{}, malformed.Load(ctx))
}

func TestPostgresStore_SaveError(t *testing.T) {
	store := NewPostgresStore(&fakeSlots{rows: map[string][]byte{}, execErr: errors.New("read-only transaction")}, "user", nil)

	err := store.Save(context.Background(), octocat)

	assert.ErrorContains(t, err, "read-only transaction")
}

func TestPostgresStore_CloseReleases(t *testing.T) {
	released := false
	store := NewPostgresStore(&fakeSlots{}, "user", func() { released = true })

	require.NoError(t, store.Close())

	assert.True(t, released)
}
