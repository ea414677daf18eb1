// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/content-brief/pkg/types"
)

// RecordPath returns the YAML sidecar path for a document path.
func RecordPath(docPath string) string {
	return strings.TrimSuffix(docPath, ".docx") + ".yaml"
}

// WriteRecord writes rec as YAML to path.
func WriteRecord(path string, rec *types.BriefRecord) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling brief record: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing brief record: %w", err)
	}
	return nil
}

// ReadRecord loads a record written by WriteRecord.
func ReadRecord(path string) (*types.BriefRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading brief record: %w", err)
	}
	var rec types.BriefRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing brief record: %w", err)
	}
	return &rec, nil
}
