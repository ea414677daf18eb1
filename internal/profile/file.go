// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/content-brief/pkg/types"
)

// DefaultClientsDir is used when no directory is configured.
const DefaultClientsDir = "clients"

// FileStore keeps one JSON file per profile under a directory. The file
// name is the lower-cased client name with spaces replaced by
// underscores, so names that differ only in case or spacing share a file.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = DefaultClientsDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating clients directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the store's directory.
func (s *FileStore) Dir() string { return s.dir }

// FileKey maps a client name to its file stem.
func FileKey(name string) string {
	return strings.ToLower(strings.ReplaceAll(normalizeName(name), " ", "_"))
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, FileKey(name)+".json")
}

func (s *FileStore) Create(_ context.Context, name string, data map[string]any) error {
	p, err := Build(name, data)
	if err != nil {
		return err
	}
	path := s.path(p.ClientName)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrExists, p.ClientName)
	}
	if err := s.write(path, p); err != nil {
		return err
	}
	slog.Info("profile created", "client", p.ClientName, "path", path)
	return nil
}

func (s *FileStore) Get(_ context.Context, name string) (*types.ClientProfile, error) {
	p, err := readProfile(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *FileStore) Update(ctx context.Context, name string, partial map[string]any) error {
	current, err := s.Get(ctx, name)
	if err != nil {
		return err
	}
	updated, err := Apply(*current, partial)
	if err != nil {
		return err
	}
	if err := s.write(s.path(name), updated); err != nil {
		return err
	}
	slog.Info("profile updated", "client", name, "fields", len(partial))
	return nil
}

func (s *FileStore) Delete(_ context.Context, name string) (bool, error) {
	err := os.Remove(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("deleting profile %s: %w", name, err)
	}
	slog.Info("profile deleted", "client", name)
	return true, nil
}

// List returns the client_name stored in each file. A file that cannot be
// read is listed under its file stem.
func (s *FileStore) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading clients directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		stem := strings.TrimSuffix(e.Name(), ".json")
		p, err := readProfile(filepath.Join(s.dir, e.Name()))
		if err != nil || p.ClientName == "" {
			slog.Warn("unreadable profile file", "file", e.Name(), "error", err)
			names = append(names, stem)
			continue
		}
		names = append(names, p.ClientName)
	}
	sort.Strings(names)
	return names, nil
}

func (s *FileStore) Exists(_ context.Context, name string) (bool, error) {
	_, err := os.Stat(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Close is a no-op.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) write(path string, p types.ClientProfile) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encoding profile %s: %w", p.ClientName, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing profile %s: %w", p.ClientName, err)
	}
	return nil
}

func readProfile(path string) (*types.ClientProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p types.ClientProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return &p, nil
}
