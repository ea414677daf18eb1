// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Import creates a profile from a YAML or JSON file. The file must carry
// client_name. It returns the imported name.
func Import(ctx context.Context, store Store, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	var m map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &m)
	default:
		err = json.Unmarshal(data, &m)
	}
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", path, err)
	}

	name, _ := m["client_name"].(string)
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: %s has no client_name", ErrInvalidField, path)
	}
	if err := store.Create(ctx, name, m); err != nil {
		return "", err
	}
	return name, nil
}
