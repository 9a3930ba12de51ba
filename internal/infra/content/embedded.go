package content

import (
	"context"
	_ "embed"

	"github.com/yanqian/cycle-advisor/internal/domain/cycle"
)

//go:embed data/library.yaml
var embeddedLibrary []byte

// Embedded serves the library compiled into the binary.
type Embedded struct{}

// Load decodes the embedded document.
func (Embedded) Load(ctx context.Context) (*cycle.Library, error) {
	return Decode(embeddedLibrary)
}

// EmbeddedDocument returns a copy of the raw embedded document, e.g. for seeding remote stores.
func EmbeddedDocument() []byte {
	return append([]byte(nil), embeddedLibrary...)
}

var _ cycle.ContentSource = Embedded{}
