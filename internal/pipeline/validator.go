package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"
)

const defaultMaxSizeBytes int64 = 20 * 1024 * 1024

// Limits bounds the files the validator accepts.
type Limits struct {
	MaxSizeBytes      int64
	AllowedExtensions []string
}

// DefaultLimits returns the 20 MiB ceiling and the four supported extensions.
func DefaultLimits() Limits {
	return Limits{
		MaxSizeBytes:      defaultMaxSizeBytes,
		AllowedExtensions: []string{".txt", ".docx", ".pptx", ".xlsx"},
	}
}

// Validator gates files on size and extension before any parsing happens.
type Validator struct {
	limits Limits
	exts   map[string]struct{}
}

// NewValidator normalizes the configured extensions (lower case, leading dot).
// Zero values fall back to DefaultLimits.
func NewValidator(limits Limits) *Validator {
	def := DefaultLimits()
	if limits.MaxSizeBytes <= 0 {
		limits.MaxSizeBytes = def.MaxSizeBytes
	}
	if len(limits.AllowedExtensions) == 0 {
		limits.AllowedExtensions = def.AllowedExtensions
	}

	exts := make(map[string]struct{}, len(limits.AllowedExtensions))
	normalized := make([]string, 0, len(limits.AllowedExtensions))
	for _, e := range limits.AllowedExtensions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if _, dup := exts[e]; dup {
			continue
		}
		exts[e] = struct{}{}
		normalized = append(normalized, e)
	}
	limits.AllowedExtensions = normalized
	return &Validator{limits: limits, exts: exts}
}

// Limits returns the normalized limits in effect.
func (v *Validator) Limits() Limits { return v.limits }

// Validate checks size first, then extension. It returns a *ValidationError
// or nil.
func (v *Validator) Validate(name string, size int64) error {
	if size > v.limits.MaxSizeBytes {
		return v.sizeError()
	}
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := v.exts[ext]; !ok {
		return &ValidationError{
			Code:    CodeUnsupportedFileType,
			Message: "Unsupported file type. Please upload " + listExtensions(v.limits.AllowedExtensions) + ".",
			err:     ErrUnsupportedType,
		}
	}
	return nil
}

func (v *Validator) sizeError() *ValidationError {
	return &ValidationError{
		Code:    CodeFileTooLarge,
		Message: fmt.Sprintf("File size exceeds %s limit.", formatLimit(v.limits.MaxSizeBytes)),
		err:     ErrFileTooLarge,
	}
}

// formatLimit renders a byte ceiling the way users read it: "20MB", "1.5MB",
// "512KB" or "100 bytes".
func formatLimit(n int64) string {
	const kib, mib = 1024, 1024 * 1024
	switch {
	case n%mib == 0:
		return fmt.Sprintf("%dMB", n/mib)
	case n >= mib:
		return fmt.Sprintf("%.1fMB", float64(n)/mib)
	case n%kib == 0:
		return fmt.Sprintf("%dKB", n/kib)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}

// listExtensions renders ".a, .b, or .c".
func listExtensions(exts []string) string {
	switch len(exts) {
	case 0:
		return ""
	case 1:
		return exts[0]
	case 2:
		return exts[0] + " or " + exts[1]
	}
	return strings.Join(exts[:len(exts)-1], ", ") + ", or " + exts[len(exts)-1]
}
