/*
Package storage implements the durable slot that mirrors the current profile record.

A slot holds one JSON-encoded profile.UserProfile. Backends exist for a local file, a PostgreSQL
row, an S3 object, and process memory. Every backend absorbs read and decode failures and reports
them as an empty record, so loading never fails the caller.
*/
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"ghprofile/internal/app/db"
	"ghprofile/internal/app/profile"
	"ghprofile/internal/configs"
)

// Store is a profile.Store that holds resources until closed.
type Store interface {
	profile.Store

	// Close releases the backend's resources.
	Close() error
}

// ServiceConfig selects and configures a backend.
type ServiceConfig struct {
	Driver string

	// Slot is the key of the record in keyed backends (postgres, s3).
	Slot string

	// FilePath is the location of the record for the file backend.
	FilePath string

	DatabaseDSN string

	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Prefix          string
}

// ConfigFromApp extracts the storage settings from the application configuration.
func ConfigFromApp(cfg *configs.AppConfig) ServiceConfig {
	return ServiceConfig{
		Driver:            cfg.StorageDriver,
		Slot:              cfg.ProfileSlot,
		FilePath:          cfg.ProfileFile,
		DatabaseDSN:       cfg.DatabaseDSN,
		S3BucketName:      cfg.S3BucketName,
		S3Endpoint:        cfg.S3Endpoint,
		S3AccessKeyID:     cfg.S3AccessKeyID,
		S3SecretAccessKey: cfg.S3SecretAccessKey,
		S3Prefix:          cfg.S3Prefix,
	}
}

// NewStore is the factory for Store. It connects to the configured backend.
func NewStore(ctx context.Context, cfg ServiceConfig) (Store, error) {
	switch cfg.Driver {
	case configs.StorageFile, "":
		return NewFileStore(cfg.FilePath), nil
	case configs.StorageMemory:
		return NewMemoryStore(), nil
	case configs.StoragePostgres:
		pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		return NewPostgresStore(pool, cfg.Slot, pool.Close), nil
	case configs.StorageS3:
		return NewS3Store(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

// encodeProfile serializes p into the slot format.
func encodeProfile(p profile.UserProfile) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}
	return data, nil
}

// decodeProfile parses slot contents. Empty or undecodable data yields the empty record.
func decodeProfile(data []byte, logger zerolog.Logger) profile.UserProfile {
	if len(data) == 0 {
		return profile.UserProfile{}
	}

	var p profile.UserProfile
	if err := json.Unmarshal(data, &p); err != nil {
		logger.Warn().Err(err).Int("bytes", len(data)).Msg("Stored profile is not valid JSON. Falling back to empty profile.")
		return profile.UserProfile{}
	}

	return p
}
