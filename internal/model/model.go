// Package model contains the content model produced by the document pipeline.
// The types here carry no parsing logic; they are shared by the pipeline, the
// viewer service and the HTTP layer.
package model

// ContentType tags which content shape a ContentModel carries.
type ContentType string

const (
	ContentTypeText         ContentType = "text"
	ContentTypeDocument     ContentType = "document"
	ContentTypePresentation ContentType = "presentation"
	ContentTypeSpreadsheet  ContentType = "spreadsheet"
)

// ContentTypes lists every legal ContentType.
var ContentTypes = []ContentType{
	ContentTypeText,
	ContentTypeDocument,
	ContentTypePresentation,
	ContentTypeSpreadsheet,
}

// Valid reports whether t is one of the known content types.
func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeText, ContentTypeDocument, ContentTypePresentation, ContentTypeSpreadsheet:
		return true
	}
	return false
}

func (t ContentType) String() string { return string(t) }
