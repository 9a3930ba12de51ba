package content

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/yanqian/cycle-advisor/internal/domain/cycle"
)

// Decode parses a YAML (or JSON) library document and validates it.
func Decode(raw []byte) (*cycle.Library, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("decode library: empty document")
	}
	var lib cycle.Library
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&lib); err != nil {
		return nil, fmt.Errorf("decode library: %w", err)
	}
	if err := lib.Validate(); err != nil {
		return nil, fmt.Errorf("invalid library: %w", err)
	}
	return &lib, nil
}
