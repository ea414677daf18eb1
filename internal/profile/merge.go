// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package profile

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pdiddy/content-brief/pkg/types"
)

// Merge returns base with partial applied. Top-level keys in partial
// overwrite base. When both values for a key are mappings, only the
// sub-keys present in partial are overwritten. Neither input is modified.
func Merge(base, partial map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(partial))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range partial {
		incoming, ok := v.(map[string]any)
		existing, ok2 := out[k].(map[string]any)
		if !ok || !ok2 {
			out[k] = v
			continue
		}
		merged := make(map[string]any, len(existing)+len(incoming))
		for sk, sv := range existing {
			merged[sk] = sv
		}
		for sk, sv := range incoming {
			merged[sk] = sv
		}
		out[k] = merged
	}
	return out
}

// Build returns the default profile for name with data merged over it.
// The name always wins over any client_name in data.
func Build(name string, data map[string]any) (types.ClientProfile, error) {
	name = normalizeName(name)
	if name == "" {
		return types.ClientProfile{}, fmt.Errorf("%w: client_name is required", ErrInvalidField)
	}
	base, err := toMap(types.DefaultProfile(name))
	if err != nil {
		return types.ClientProfile{}, err
	}
	merged := Merge(base, data)
	merged["client_name"] = name
	return fromMap(merged)
}

// Apply merges partial into p. Renaming through client_name is rejected.
func Apply(p types.ClientProfile, partial map[string]any) (types.ClientProfile, error) {
	if v, ok := partial["client_name"]; ok {
		if s, _ := v.(string); normalizeName(s) != p.ClientName {
			return types.ClientProfile{}, fmt.Errorf("%w: client_name cannot be changed", ErrInvalidField)
		}
	}
	base, err := toMap(p)
	if err != nil {
		return types.ClientProfile{}, err
	}
	merged := Merge(base, partial)
	merged["client_name"] = p.ClientName
	return fromMap(merged)
}

func toMap(p types.ClientProfile) (map[string]any, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encoding profile: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}
	return m, nil
}

// fromMap decodes m strictly: unknown keys and mistyped values are
// ErrInvalidField.
func fromMap(m map[string]any) (types.ClientProfile, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return types.ClientProfile{}, fmt.Errorf("%w: %v", ErrInvalidField, err)
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()

	var p types.ClientProfile
	if err := dec.Decode(&p); err != nil {
		return types.ClientProfile{}, fmt.Errorf("%w: %v", ErrInvalidField, err)
	}
	return p, nil
}
