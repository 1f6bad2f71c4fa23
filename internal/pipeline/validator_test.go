package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_Validate(t *testing.T) {
	v := NewValidator(DefaultLimits())

	tests := []struct {
		name     string
		file     string
		size     int64
		wantCode string
		wantMsg  string
		wantIs   error
	}{
		{name: "text ok", file: "notes.txt", size: 10},
		{name: "upper case ext ok", file: "Deck.PPTX", size: 10},
		{name: "exactly at limit", file: "book.xlsx", size: 20 * 1024 * 1024},
		{name: "empty file ok", file: "empty.docx", size: 0},
		{
			name:     "one byte over",
			file:     "book.xlsx",
			size:     20*1024*1024 + 1,
			wantCode: CodeFileTooLarge,
			wantMsg:  "File size exceeds 20MB limit.",
			wantIs:   ErrFileTooLarge,
		},
		{
			name:     "size checked before extension",
			file:     "image.png",
			size:     25 * 1024 * 1024,
			wantCode: CodeFileTooLarge,
			wantMsg:  "File size exceeds 20MB limit.",
			wantIs:   ErrFileTooLarge,
		},
		{
			name:     "unsupported extension",
			file:     "image.png",
			size:     100,
			wantCode: CodeUnsupportedFileType,
			wantMsg:  "Unsupported file type. Please upload .txt, .docx, .pptx, or .xlsx.",
			wantIs:   ErrUnsupportedType,
		},
		{
			name:     "legacy binary format",
			file:     "old.doc",
			size:     100,
			wantCode: CodeUnsupportedFileType,
			wantIs:   ErrUnsupportedType,
		},
		{
			name:     "no extension",
			file:     "README",
			size:     1,
			wantCode: CodeUnsupportedFileType,
			wantIs:   ErrUnsupportedType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.file, tt.size)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantCode, verr.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, verr.Message)
			}
			assert.ErrorIs(t, err, tt.wantIs)
			assert.Equal(t, verr.Message, UserMessage(err))
		})
	}
}

func TestNewValidator_NormalizesLimits(t *testing.T) {
	v := NewValidator(Limits{
		MaxSizeBytes:      1536 * 1024,
		AllowedExtensions: []string{"TXT", " .md ", ".txt", ""},
	})

	assert.Equal(t, []string{".txt", ".md"}, v.Limits().AllowedExtensions)
	assert.NoError(t, v.Validate("a.MD", 1))

	err := v.Validate("a.txt", 2*1024*1024)
	require.Error(t, err)
	assert.Equal(t, "File size exceeds 1.5MB limit.", err.Error())

	err = v.Validate("a.docx", 1)
	require.Error(t, err)
	assert.Equal(t, "Unsupported file type. Please upload .txt or .md.", err.Error())
}

func TestFormatLimit(t *testing.T) {
	assert.Equal(t, "20MB", formatLimit(20*1024*1024))
	assert.Equal(t, "1.5MB", formatLimit(1536*1024))
	assert.Equal(t, "512KB", formatLimit(512*1024))
	assert.Equal(t, "100 bytes", formatLimit(100))
}

func TestNewValidator_ZeroLimitsUseDefaults(t *testing.T) {
	v := NewValidator(Limits{})
	assert.Equal(t, DefaultLimits(), v.Limits())
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, GenericFailureMessage, UserMessage(&ParseError{Kind: "spreadsheet", Err: errors.New("zip: not a valid zip file")}))
	assert.Equal(t, GenericFailureMessage, UserMessage(&IOError{Op: "read", Err: errors.New("boom")}))
}
