package docx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
	}{
		{"letter.docx", FormatDOCX},
		{"LETTER.DOCX", FormatDOCX},
		{"macro.docm", FormatDOCX},
		{"template.dotx", FormatDOCX},
		{"old.doc", FormatDOC},
		{"old.dot", FormatDOC},
		{"notes.txt", FormatUnknown},
		{"noext", FormatUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.expected, DetectFormat(tc.path))
		})
	}
}

func TestDetectFormatFromReader(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected Format
		wantErr  bool
	}{
		{"zip", []byte("PK\x03\x04rest"), FormatDOCX, false},
		// OLE magic without a readable compound file structure
		{"broken ole", []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, FormatUnknown, false},
		{"text", []byte("hello world"), FormatUnknown, false},
		{"too small", []byte("PK"), FormatUnknown, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DetectFormatFromReader(bytes.NewReader(tc.data))
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestFormat_String(t *testing.T) {
	assert.Equal(t, "docx", FormatDOCX.String())
	assert.Equal(t, "doc", FormatDOC.String())
	assert.Equal(t, "unknown", FormatUnknown.String())
}
