// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package profile persists client profiles. Two backends implement Store:
// a directory of JSON files and a SQL table accessed through bun (SQLite
// or hosted Postgres). Callers pick one with Open and never see which is
// active.
package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/content-brief/pkg/types"
)

// Sentinel errors returned by every backend.
var (
	ErrExists       = errors.New("profile already exists")
	ErrNotFound     = errors.New("profile not found")
	ErrInvalidField = errors.New("invalid profile field")
	ErrNoDSN        = errors.New("database URL not configured")
)

// normalizeName is the one form of a client name every backend stores and
// looks up.
func normalizeName(name string) string {
	return strings.TrimSpace(name)
}

// Store is the profile persistence contract.
type Store interface {
	// Create stores a new profile built from the defaults with data merged
	// over them. It returns ErrExists if the name is taken.
	Create(ctx context.Context, name string, data map[string]any) error

	// Get returns ErrNotFound if the profile is absent.
	Get(ctx context.Context, name string) (*types.ClientProfile, error)

	// Update merges partial into the stored profile. Top-level keys
	// overwrite; mapping values merge one level deep.
	Update(ctx context.Context, name string, partial map[string]any) error

	// Delete reports whether a profile was removed.
	Delete(ctx context.Context, name string) (bool, error)

	// List returns profile names in sorted order.
	List(ctx context.Context) ([]string, error)

	Exists(ctx context.Context, name string) (bool, error)
	Close() error
}

// Open returns the backend cfg selects. An empty backend means the file
// store.
func Open(ctx context.Context, cfg types.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case "", types.StoreFile:
		return NewFileStore(cfg.ClientsDir)
	case types.StoreDatabase:
		return OpenDB(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown store backend %q (want %q or %q)",
			cfg.Backend, types.StoreFile, types.StoreDatabase)
	}
}
