package reader

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"docview/internal/model"
)

const (
	// EmptySlideText stands in for a slide without any text run.
	EmptySlideText = "(No text content)"
	// NoSlidesText is the only entry returned for a deck without slides.
	NoSlidesText = "No slides found"

	drawingMLNamespace = "http://schemas.openxmlformats.org/drawingml/2006/main"
)

var slideEntryPattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// PresentationReader extracts the text of every slide of a presentation in
// numeric slide order.
type PresentationReader struct {
	// PartLimit caps each decompressed slide; zero means DefaultPartLimit.
	PartLimit int64
}

func NewPresentationReader() *PresentationReader { return &PresentationReader{} }

func (*PresentationReader) Type() model.ContentType { return model.ContentTypePresentation }

type slideEntry struct {
	index int
	file  *zip.File
}

func (r *PresentationReader) Read(ctx context.Context, b []byte) (model.Content, error) {
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, fmt.Errorf("open presentation container: %w", err)
	}

	entries := slideEntries(zr)
	if len(entries) == 0 {
		return model.Slides{NoSlidesText}, nil
	}

	slides := make(model.Slides, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := readSlideText(e.file, partLimitOrDefault(r.PartLimit))
		if err != nil {
			return nil, fmt.Errorf("slide %s: %w", e.file.Name, err)
		}
		if text == "" {
			text = EmptySlideText
		}
		slides = append(slides, text)
	}
	return slides, nil
}

// slideEntries returns the slide parts sorted by their numeric index. Ties
// keep container order.
func slideEntries(zr *zip.Reader) []slideEntry {
	var entries []slideEntry
	for _, f := range zr.File {
		m := slideEntryPattern.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			idx = 0
		}
		entries = append(entries, slideEntry{index: idx, file: f})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].index < entries[j].index
	})
	return entries
}

// readSlideText walks the slide markup in document order and joins the content
// of every DrawingML text run with a single space.
func readSlideText(f *zip.File, limit int64) (string, error) {
	rc, err := openPart(f, limit)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	dec := xml.NewDecoder(rc)
	var (
		runs  []string
		depth int
		cur   strings.Builder
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth > 0 {
				depth++
			} else if isTextRun(t.Name) {
				depth = 1
				cur.Reset()
			}
		case xml.EndElement:
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				runs = append(runs, cur.String())
			}
		case xml.CharData:
			if depth > 0 {
				cur.Write(t)
			}
		}
	}
	return strings.TrimSpace(strings.Join(runs, " ")), nil
}

// isTextRun matches a:t. The bare prefix is accepted for parts that omit the
// namespace declaration.
func isTextRun(n xml.Name) bool {
	return n.Local == "t" && (n.Space == drawingMLNamespace || n.Space == "a")
}
