package model

import "encoding/json"

// Content is the normalized payload of a ContentModel. It is a closed union:
// only the variants declared in this package implement it.
type Content interface {
	ContentType() ContentType
	isContent()
}

// Text is the content of a plain text file.
type Text string

// HTML is the markup fragment converted from a word-processor document.
type HTML string

// Slides holds one extracted text per slide, in slide order. A Slides value
// produced by the pipeline is never empty.
type Slides []string

// Sheet is the row-major cell matrix of the first worksheet. Rows keep their
// original length; empty cells are "".
type Sheet [][]string

func (Text) ContentType() ContentType   { return ContentTypeText }
func (HTML) ContentType() ContentType   { return ContentTypeDocument }
func (Slides) ContentType() ContentType { return ContentTypePresentation }
func (Sheet) ContentType() ContentType  { return ContentTypeSpreadsheet }

func (Text) isContent()   {}
func (HTML) isContent()   {}
func (Slides) isContent() {}
func (Sheet) isContent()  {}

// MarshalJSON encodes a nil sheet as an empty array so clients never see null rows.
func (s Sheet) MarshalJSON() ([]byte, error) {
	rows := make([][]string, len(s))
	for i, r := range s {
		if r == nil {
			r = []string{}
		}
		rows[i] = r
	}
	return json.Marshal(rows)
}

// decodeContent rebuilds the variant selected by t from its JSON form.
func decodeContent(t ContentType, raw json.RawMessage) (Content, error) {
	switch t {
	case ContentTypeText:
		var s string
		err := json.Unmarshal(raw, &s)
		return Text(s), err
	case ContentTypeDocument:
		var s string
		err := json.Unmarshal(raw, &s)
		return HTML(s), err
	case ContentTypePresentation:
		var s []string
		err := json.Unmarshal(raw, &s)
		return Slides(s), err
	case ContentTypeSpreadsheet:
		var rows [][]string
		err := json.Unmarshal(raw, &rows)
		return Sheet(rows), err
	default:
		return nil, &UnknownContentTypeError{Type: t}
	}
}

// UnknownContentTypeError reports a content type outside the closed set.
type UnknownContentTypeError struct {
	Type ContentType
}

func (e *UnknownContentTypeError) Error() string {
	return "unknown content type: " + string(e.Type)
}
