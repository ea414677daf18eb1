// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/content-brief/internal/brief"
	"github.com/pdiddy/content-brief/internal/export"
	"github.com/pdiddy/content-brief/internal/profile"
	"github.com/pdiddy/content-brief/internal/provider"
	"github.com/pdiddy/content-brief/pkg/types"
)

// newGenerator builds a brief generator backed by the provider kind.
// Progress lines go to w.
func newGenerator(cfg types.ProviderConfig, kind provider.Kind, w io.Writer) (*brief.Generator, error) {
	p, err := provider.New(cfg, string(kind))
	if err != nil {
		return nil, err
	}
	return brief.New(p, w), nil
}

// availableProviders lists the providers with credentials, with the
// configured default moved to the front so it is the one picked when the
// user makes no choice.
func availableProviders(cfg types.ProviderConfig) []provider.Kind {
	kinds := provider.Available(cfg)
	def, err := provider.ParseKind(cfg.Default)
	if err != nil {
		return kinds
	}
	for i, k := range kinds {
		if k == def {
			out := append([]provider.Kind{def}, kinds[:i]...)
			return append(out, kinds[i+1:]...)
		}
	}
	return kinds
}

// credentialHint names every provider key variable for error messages.
func credentialHint() string {
	vars := make([]string, len(provider.Kinds))
	for i, k := range provider.Kinds {
		vars[i] = k.EnvVar()
	}
	return strings.Join(vars, ", ")
}

func openStore(ctx context.Context, cfg types.AppConfig) (profile.Store, error) {
	store, err := profile.Open(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("opening profile store: %w", err)
	}
	return store, nil
}

func newExporter(cfg types.ExportConfig) *export.Exporter {
	return export.New(export.OptionsFrom(cfg))
}

// recordSaver returns the hook that writes a YAML record next to each
// exported document, or nil when records are disabled.
func recordSaver(cfg types.ExportConfig) func(path string, rec *types.BriefRecord) error {
	if !cfg.WriteRecord {
		return nil
	}
	return func(path string, rec *types.BriefRecord) error {
		return export.WriteRecord(export.RecordPath(path), rec)
	}
}

// downloadSaver is recordSaver for documents that are served rather than
// written. The record lands in the output directory under the document's
// file name.
func downloadSaver(cfg types.ExportConfig) func(rec *types.BriefRecord) error {
	if !cfg.WriteRecord {
		return nil
	}
	dir := cfg.OutputDir
	if dir == "" {
		dir = export.DefaultOutputDir
	}
	return func(rec *types.BriefRecord) error {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		path := filepath.Join(dir, export.FileName(rec, rec.GeneratedAt))
		return export.WriteRecord(export.RecordPath(path), rec)
	}
}
