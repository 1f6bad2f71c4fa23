package model

import (
	"encoding/json"
	"errors"
	"io"
)

// ErrNilContent is returned when a ContentModel is built without content.
var ErrNilContent = errors.New("content is nil")

// File is a document submitted for viewing. Open returns the byte source; it
// may be called more than once.
type File struct {
	Name     string
	Size     int64
	MimeType string
	Open     func() (io.ReadCloser, error)
}

// ContentModel is the normalized, type-tagged record produced for one file.
// Its type is always derived from Content, so the two can never disagree.
type ContentModel struct {
	Name         string
	MimeType     string
	EncodedBytes string
	SizeBytes    int64
	content      Content
	omitEncoded  bool
}

// NewContentModel builds a ContentModel whose Type follows the content variant.
func NewContentModel(name, mimeType, encoded string, size int64, content Content) (*ContentModel, error) {
	if content == nil {
		return nil, ErrNilContent
	}
	if size < 0 {
		size = 0
	}
	return &ContentModel{
		Name:         name,
		MimeType:     mimeType,
		EncodedBytes: encoded,
		SizeBytes:    size,
		content:      content,
	}, nil
}

// Type returns the content type tag.
func (m *ContentModel) Type() ContentType { return m.content.ContentType() }

// Content returns the raw union value.
func (m *ContentModel) Content() Content { return m.content }

// Text returns the plain text of a text document.
func (m *ContentModel) Text() (string, bool) {
	v, ok := m.content.(Text)
	return string(v), ok
}

// HTML returns the markup of a word-processor document.
func (m *ContentModel) HTML() (string, bool) {
	v, ok := m.content.(HTML)
	return string(v), ok
}

// Slides returns the per-slide texts of a presentation.
func (m *ContentModel) Slides() ([]string, bool) {
	v, ok := m.content.(Slides)
	return []string(v), ok
}

// Rows returns the cell matrix of a spreadsheet.
func (m *ContentModel) Rows() ([][]string, bool) {
	v, ok := m.content.(Sheet)
	return [][]string(v), ok
}

type contentModelJSON struct {
	Name         string          `json:"name"`
	Type         ContentType     `json:"type"`
	MimeType     string          `json:"mime_type"`
	EncodedBytes *string         `json:"encoded_bytes,omitempty"`
	SizeBytes    int64           `json:"size_bytes"`
	Content      json.RawMessage `json:"content"`
}

func (m *ContentModel) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(m.content)
	if err != nil {
		return nil, err
	}
	out := contentModelJSON{
		Name:      m.Name,
		Type:      m.Type(),
		MimeType:  m.MimeType,
		SizeBytes: m.SizeBytes,
		Content:   raw,
	}
	// An empty file still carries an (empty) encoded_bytes key.
	if !m.omitEncoded {
		out.EncodedBytes = &m.EncodedBytes
	}
	return json.Marshal(out)
}

func (m *ContentModel) UnmarshalJSON(b []byte) error {
	var aux contentModelJSON
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	content, err := decodeContent(aux.Type, aux.Content)
	if err != nil {
		return err
	}
	*m = ContentModel{
		Name:        aux.Name,
		MimeType:    aux.MimeType,
		SizeBytes:   aux.SizeBytes,
		content:     content,
		omitEncoded: aux.EncodedBytes == nil,
	}
	if aux.EncodedBytes != nil {
		m.EncodedBytes = *aux.EncodedBytes
	}
	return nil
}

// WithoutEncodedBytes returns a shallow copy with EncodedBytes cleared and
// left out of its JSON form.
func (m *ContentModel) WithoutEncodedBytes() *ContentModel {
	c := *m
	c.EncodedBytes = ""
	c.omitEncoded = true
	return &c
}
