package reader

import (
	"context"
	"fmt"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"docview/internal/model"
)

// TextReader decodes plain text. A UTF-8 or UTF-16 byte order mark selects
// the encoding; otherwise bytes are read as UTF-8 with invalid sequences
// replaced by U+FFFD.
type TextReader struct{}

func NewTextReader() *TextReader { return &TextReader{} }

func (*TextReader) Type() model.ContentType { return model.ContentTypeText }

func (*TextReader) Read(ctx context.Context, b []byte) (model.Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, b)
	if err != nil {
		return nil, fmt.Errorf("decode text: %w", err)
	}
	return model.Text(out), nil
}
