package reader

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docview/internal/model"
)

func TestPresentationReader_NumericOrder(t *testing.T) {
	deck := buildZip(t,
		zipEntry{"[Content_Types].xml", `<Types/>`},
		zipEntry{"ppt/slides/slide2.xml", slideXML("two")},
		zipEntry{"ppt/slides/slide10.xml", slideXML("ten")},
		zipEntry{"ppt/slides/slide1.xml", slideXML("one")},
		zipEntry{"ppt/slides/_rels/slide1.xml.rels", `<Relationships/>`},
		zipEntry{"ppt/slideLayouts/slideLayout1.xml", slideXML("layout")},
	)

	got, err := NewPresentationReader().Read(context.Background(), deck)
	require.NoError(t, err)
	assert.Equal(t, model.Slides{"one", "two", "ten"}, got)
}

func TestPresentationReader_TextRunsJoined(t *testing.T) {
	deck := buildZip(t, zipEntry{"ppt/slides/slide1.xml", slideXML("Title", "  body  ", "end")})

	got, err := NewPresentationReader().Read(context.Background(), deck)
	require.NoError(t, err)
	assert.Equal(t, model.Slides{"Title   body   end"}, got)
}

func TestPresentationReader_IgnoresOtherTextElements(t *testing.T) {
	xml := `<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
		`xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">` +
		`<p:t>not a run</p:t><a:r><a:t>kept</a:t></a:r></p:sld>`
	deck := buildZip(t, zipEntry{"ppt/slides/slide1.xml", xml})

	got, err := NewPresentationReader().Read(context.Background(), deck)
	require.NoError(t, err)
	assert.Equal(t, model.Slides{"kept"}, got)
}

func TestPresentationReader_Placeholders(t *testing.T) {
	t.Run("slide without text", func(t *testing.T) {
		deck := buildZip(t,
			zipEntry{"ppt/slides/slide1.xml", slideXML()},
			zipEntry{"ppt/slides/slide2.xml", slideXML("   ")},
		)
		got, err := NewPresentationReader().Read(context.Background(), deck)
		require.NoError(t, err)
		assert.Equal(t, model.Slides{EmptySlideText, EmptySlideText}, got)
	})

	t.Run("no slides", func(t *testing.T) {
		deck := buildZip(t, zipEntry{"ppt/presentation.xml", `<p:presentation/>`})
		got, err := NewPresentationReader().Read(context.Background(), deck)
		require.NoError(t, err)
		assert.Equal(t, model.Slides{NoSlidesText}, got)
	})
}

func TestPresentationReader_TwelveSlides(t *testing.T) {
	var entries []zipEntry
	for i := 12; i >= 1; i-- {
		texts := []string{fmt.Sprintf("slide %d", i)}
		if i == 7 {
			texts = nil
		}
		entries = append(entries, zipEntry{fmt.Sprintf("ppt/slides/slide%d.xml", i), slideXML(texts...)})
	}

	got, err := NewPresentationReader().Read(context.Background(), buildZip(t, entries...))
	require.NoError(t, err)

	slides := got.(model.Slides)
	require.Len(t, slides, 12)
	for i, s := range slides {
		if i == 6 {
			assert.Equal(t, EmptySlideText, s)
			continue
		}
		assert.Equal(t, fmt.Sprintf("slide %d", i+1), s)
	}
}

func TestPresentationReader_Failures(t *testing.T) {
	t.Run("not a container", func(t *testing.T) {
		_, err := NewPresentationReader().Read(context.Background(), []byte("plain text"))
		assert.Error(t, err)
	})

	t.Run("malformed slide aborts the read", func(t *testing.T) {
		deck := buildZip(t,
			zipEntry{"ppt/slides/slide1.xml", slideXML("fine")},
			zipEntry{"ppt/slides/slide2.xml", `<p:sld><a:t>unterminated`},
		)
		got, err := NewPresentationReader().Read(context.Background(), deck)
		assert.Error(t, err)
		assert.Nil(t, got)
	})
}
