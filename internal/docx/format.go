package docx

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/richardlehane/mscfb"
)

var (
	// ErrLegacyFormat is returned for Word 97-2003 binary documents.
	ErrLegacyFormat = errors.New("legacy Word 97-2003 document, save the template as .docx")
	// ErrUnknownFormat is returned when the file is neither OOXML nor a legacy Word document.
	ErrUnknownFormat = errors.New("unsupported document format")
)

// Format represents a word-processing document format.
type Format int

const (
	FormatUnknown Format = iota
	FormatDOCX
	FormatDOC // Word 97-2003 compound file
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatDOCX:
		return "docx"
	case FormatDOC:
		return "doc"
	default:
		return "unknown"
	}
}

// DetectFormat detects the document format from the file path.
func DetectFormat(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".docx", ".docm", ".dotx", ".dotm":
		return FormatDOCX
	case ".doc", ".dot":
		return FormatDOC
	default:
		return FormatUnknown
	}
}

// DetectFormatFromReader detects the format by reading magic bytes.
// Compound files are only reported as FormatDOC when they carry a WordDocument stream.
func DetectFormatFromReader(r io.ReaderAt) (Format, error) {
	buf := make([]byte, 8)
	n, err := r.ReadAt(buf, 0)
	if err != nil && err != io.EOF {
		return FormatUnknown, fmt.Errorf("failed to read magic bytes: %w", err)
	}
	if n < 4 {
		return FormatUnknown, fmt.Errorf("file too small to detect format")
	}

	// ZIP magic number (OOXML package)
	if buf[0] == 'P' && buf[1] == 'K' {
		return FormatDOCX, nil
	}

	// OLE/CFBF magic number
	if buf[0] == 0xD0 && buf[1] == 0xCF && buf[2] == 0x11 && buf[3] == 0xE0 {
		if hasWordStream(r) {
			return FormatDOC, nil
		}
	}

	return FormatUnknown, nil
}

func hasWordStream(r io.ReaderAt) bool {
	doc, err := mscfb.New(r)
	if err != nil {
		return false
	}
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		if entry.Name == "WordDocument" {
			return true
		}
	}
	return false
}
