package leave

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/roboco-io/leave2docx/internal/placeholder"
)

// MaxFilenameLength is the longest sanitised filename accepted, in characters.
const MaxFilenameLength = 255

// DocumentExtension is appended to every output filename.
const DocumentExtension = ".docx"

// Filename errors.
var (
	ErrFilenameEmpty   = errors.New("output filename is empty")
	ErrFilenameTooLong = errors.New("output filename is too long")
)

var lower = cases.Lower(language.Und)

// Sanitize lower-cases name and keeps only letters, digits, underscores,
// whitespace and hyphens.
func Sanitize(name string) string {
	name = lower.String(norm.NFC.String(name))
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsNumber(r), unicode.IsSpace(r), r == '_', r == '-':
			return r
		default:
			return -1
		}
	}, name)
}

// Filename substitutes set into pattern and sanitises the result.
func Filename(pattern string, set placeholder.Set) (string, error) {
	name := Sanitize(set.Apply(pattern))
	if name == "" {
		return "", ErrFilenameEmpty
	}
	if n := utf8.RuneCountInString(name); n > MaxFilenameLength {
		return "", fmt.Errorf("%w: %d characters (max %d): %s", ErrFilenameTooLong, n, MaxFilenameLength, name)
	}
	return name, nil
}

// OutputPath returns the path of the document to write under dir.
func OutputPath(dir, pattern string, set placeholder.Set) (string, error) {
	name, err := Filename(pattern, set)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name+DocumentExtension), nil
}
