package placeholder

import (
	"regexp"
	"unicode/utf8"

	"github.com/roboco-io/leave2docx/internal/docx"
)

// tokenPattern matches ${NAME} placeholders.
var tokenPattern = regexp.MustCompile(`\$\{[A-Za-z0-9_]+\}`)

// Finding is a placeholder found in a template.
type Finding struct {
	Scope     Scope  `json:"scope"`
	Paragraph int    `json:"paragraph"` // index within the scope's paragraphs
	Token     string `json:"token"`
	Runs      int    `json:"runs"` // number of runs the token spans
}

// Split reports whether the token is fragmented across runs.
func (f Finding) Split() bool {
	return f.Runs > 1
}

// Scan lists every ${NAME} placeholder of the document in Walk order.
func Scan(doc *docx.Document) []Finding {
	var out []Finding
	for _, scope := range Scopes {
		for i, p := range ScopeParagraphs(doc, scope) {
			for _, f := range ScanRuns(p.Runs()) {
				f.Scope = scope
				f.Paragraph = i
				out = append(out, f)
			}
		}
	}
	return out
}

// ScanRuns lists the placeholders of one paragraph with the number of runs each spans.
func ScanRuns[R TextRun](runs []R) []Finding {
	text := JoinRuns(runs)
	matches := tokenPattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	coords := IndexRuns(runs)
	var out []Finding
	for _, m := range matches {
		start := utf8.RuneCountInString(text[:m[0]])
		end := start + utf8.RuneCountInString(text[m[0]:m[1]])
		out = append(out, Finding{
			Token: text[m[0]:m[1]],
			Runs:  coords[end-1].Run - coords[start].Run + 1,
		})
	}
	return out
}
