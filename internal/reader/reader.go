// Package reader converts raw file bytes into the normalized content shapes of
// the model package, one reader per content type.
package reader

import (
	"context"
	"fmt"

	"docview/internal/model"
)

// Reader parses the bytes of one content type. Implementations are stateless
// and safe for concurrent use.
type Reader interface {
	Type() model.ContentType
	Read(ctx context.Context, b []byte) (model.Content, error)
}

// Registry resolves the reader for a content type.
type Registry struct {
	readers map[model.ContentType]Reader
}

// NewRegistry registers readers by the type they report. A later reader for
// the same type replaces an earlier one.
func NewRegistry(readers ...Reader) *Registry {
	r := &Registry{readers: make(map[model.ContentType]Reader, len(readers))}
	for _, rd := range readers {
		r.Register(rd)
	}
	return r
}

// Default returns a registry holding the four built-in readers.
func Default() *Registry {
	return NewRegistry(
		NewTextReader(),
		NewDocumentReader(),
		NewPresentationReader(),
		NewSpreadsheetReader(),
	)
}

// Register adds or replaces the reader for rd.Type().
func (r *Registry) Register(rd Reader) {
	r.readers[rd.Type()] = rd
}

// Get returns the reader for t.
func (r *Registry) Get(t model.ContentType) (Reader, bool) {
	rd, ok := r.readers[t]
	return rd, ok
}

// Read dispatches to the reader registered for t.
func (r *Registry) Read(ctx context.Context, t model.ContentType, b []byte) (model.Content, error) {
	rd, ok := r.Get(t)
	if !ok {
		return nil, fmt.Errorf("no reader for %s", t)
	}
	return rd.Read(ctx, b)
}
