package content

import (
	"context"
	"fmt"
	"os"

	"github.com/yanqian/cycle-advisor/internal/domain/cycle"
)

// File loads the library from a local YAML or JSON document.
type File struct {
	Path string
}

// Load reads and decodes the document at Path.
func (f File) Load(ctx context.Context) (*cycle.Library, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read library file: %w", err)
	}
	return Decode(data)
}

var _ cycle.ContentSource = File{}
