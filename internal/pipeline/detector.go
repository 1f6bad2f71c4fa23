package pipeline

import (
	"mime"
	"path/filepath"
	"strings"

	"docview/internal/model"
)

const defaultMimeType = "application/octet-stream"

var officeMimeTypes = map[string]string{
	".txt":  "text/plain",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// DetectType maps a filename extension to a content type. Anything that is not
// a word-processor, presentation or spreadsheet extension is text; callers
// must run the Validator first.
func DetectType(name string) model.ContentType {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".docx":
		return model.ContentTypeDocument
	case ".pptx":
		return model.ContentTypePresentation
	case ".xlsx":
		return model.ContentTypeSpreadsheet
	default:
		return model.ContentTypeText
	}
}

// ResolveMimeType keeps a declared media type and otherwise infers one from
// the extension.
func ResolveMimeType(name, declared string) string {
	if declared = strings.TrimSpace(declared); declared != "" {
		return declared
	}
	return InferMimeType(name)
}

// InferMimeType guesses a media type from the extension, falling back to
// application/octet-stream.
func InferMimeType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if mt, ok := officeMimeTypes[ext]; ok {
		return mt
	}
	if mt := mime.TypeByExtension(ext); mt != "" {
		return mt
	}
	return defaultMimeType
}
