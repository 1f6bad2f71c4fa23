package reader

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundedReader(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		limit   int64
		wantErr bool
	}{
		{name: "under limit", input: "abc", limit: 8},
		{name: "exactly at limit", input: "abcdefgh", limit: 8},
		{name: "one byte over", input: "abcdefghi", limit: 8, wantErr: true},
		{name: "far over", input: strings.Repeat(" ", 1<<16), limit: 1 << 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			br := &boundedReader{r: strings.NewReader(tt.input), left: tt.limit + 1, name: "part.xml"}
			got, err := io.ReadAll(br)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrPartTooLarge)
				assert.LessOrEqual(t, int64(len(got)), tt.limit+1)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, string(got))
		})
	}
}

func TestReadPart_DeclaredSizeOverLimit(t *testing.T) {
	pkg := buildZip(t, zipEntry{"word/document.xml", strings.Repeat(" ", 1<<16)})
	zr, err := zip.NewReader(bytes.NewReader(pkg), int64(len(pkg)))
	require.NoError(t, err)

	_, err = readPart(zr, "word/document.xml", 1<<10)
	assert.ErrorIs(t, err, ErrPartTooLarge)

	b, err := readPart(zr, "word/document.xml", 1<<16)
	require.NoError(t, err)
	assert.Len(t, b, 1<<16)

	b, err = readPart(zr, "word/missing.xml", 1<<10)
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestReaders_OversizePart(t *testing.T) {
	// Spaces deflate to almost nothing, so the container stays tiny.
	filler := strings.Repeat(" ", 256<<10)
	const limit = 16 << 10

	docx := buildZip(t, zipEntry{"word/document.xml",
		documentXML(`<w:p><w:r><w:t xml:space="preserve">` + filler + `</w:t></w:r></w:p>`)})
	require.Less(t, len(docx), limit)
	_, err := (&DocumentReader{PartLimit: limit}).Read(context.Background(), docx)
	assert.ErrorIs(t, err, ErrPartTooLarge)

	deck := buildZip(t,
		zipEntry{"ppt/slides/slide1.xml", slideXML("ok")},
		zipEntry{"ppt/slides/slide2.xml", slideXML(filler)},
	)
	_, err = (&PresentationReader{PartLimit: limit}).Read(context.Background(), deck)
	assert.ErrorIs(t, err, ErrPartTooLarge)
}
