package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghprofile/internal/app/profile"
)

var octocat = profile.UserProfile{
	Name:       "The Octocat",
	AvatarURL:  "https://avatars.githubusercontent.com/u/583231?v=4",
	ProfileURL: "https://github.com/octocat",
	Username:   "octocat",
}

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "nested", "profile.json"))

	require.NoError(t, store.Save(ctx, octocat))

	assert.Equal(t, octocat, store.Load(ctx))
}

func TestFileStore_MissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))

	assert.Equal(t, profile.UserProfile{}, store.Load(context.Background()))
}

func TestFileStore_MalformedFile(t *testing.T) {
	for name, content := range map[string]string{
		"garbage":     "{not json",
		"array":       "[]",
		"empty file":  "",
		"wrong types": `{"name": 42}`,
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "profile.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			assert.Equal(t, profile.UserProfile{}, NewFileStore(path).Load(context.Background()))
		})
	}
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "profile.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(ctx, profile.UserProfile{Username: "torvalds", Name: "Linus Torvalds"}))
	require.NoError(t, store.Save(ctx, octocat))

	assert.Equal(t, octocat, store.Load(ctx))
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file should not remain")
}

func TestFileStore_SlotFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, NewFileStore(path).Save(context.Background(), octocat))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]string
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, map[string]string{
		"name":       octocat.Name,
		"avatar_url": octocat.AvatarURL,
		"html_url":   octocat.ProfileURL,
		"username":   octocat.Username,
	}, raw)
}

func TestFileStore_ReadsHandWrittenSlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	stored := `{"name":"The Octocat","avatar_url":"A","html_url":"B","username":"octocat"}`
	require.NoError(t, os.WriteFile(path, []byte(stored), 0o644))

	got := NewFileStore(path).Load(context.Background())

	assert.Equal(t, profile.UserProfile{Name: "The Octocat", AvatarURL: "A", ProfileURL: "B", Username: "octocat"}, got)
}
