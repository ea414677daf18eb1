// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads provider credentials from a directory of plain-text
// files. Each file holds one secret: the filename is the key name and the
// trimmed contents are the value.
//
// Provider keys follow the pattern <provider>-api-key, for example
// openai-api-key or claude-api-key. The database-url file is also read.
package secrets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DatabaseURLKey is the file name holding the profile database URL.
const DatabaseURLKey = "database-url"

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory yields an empty map. Unreadable files are
// logged and skipped.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			slog.Warn("could not read secret", "name", name, "error", err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// ProviderKey returns the secret file name for a provider's API key.
func ProviderKey(provider string) string {
	return strings.ToLower(provider) + "-api-key"
}

// Credentials extracts provider API keys from loaded secrets, keyed by
// provider name. Providers without a file are absent from the result.
func Credentials(secrets map[string]string, providers []string) map[string]string {
	creds := make(map[string]string, len(providers))
	for _, p := range providers {
		if v, ok := secrets[ProviderKey(p)]; ok {
			creds[p] = v
		}
	}
	return creds
}
