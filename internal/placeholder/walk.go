package placeholder

import "github.com/roboco-io/leave2docx/internal/docx"

// Scope identifies one pass of Walk.
type Scope int

const (
	ScopeHeader Scope = iota
	ScopeHeaderTables
	ScopeBody
	ScopeBodyTables
	ScopeFooter
	ScopeFooterTables
)

// Scopes lists the passes in the order Walk runs them.
var Scopes = []Scope{ScopeHeader, ScopeHeaderTables, ScopeBody, ScopeBodyTables, ScopeFooter, ScopeFooterTables}

// String returns the string representation of the scope.
func (s Scope) String() string {
	switch s {
	case ScopeHeader:
		return "header"
	case ScopeHeaderTables:
		return "header tables"
	case ScopeBody:
		return "body"
	case ScopeBodyTables:
		return "body tables"
	case ScopeFooter:
		return "footer"
	case ScopeFooterTables:
		return "footer tables"
	default:
		return "unknown"
	}
}

// MarshalText renders the scope by name.
func (s Scope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Stats counts the patched occurrences per scope.
type Stats map[Scope]int

// Total returns the number of patched occurrences over all scopes.
func (s Stats) Total() int {
	n := 0
	for _, v := range s {
		n += v
	}
	return n
}

// Walk applies set to every paragraph of the document as six independent passes:
// header paragraphs, header tables, body paragraphs, body tables, footer
// paragraphs and footer tables. Each pass runs the full set, token by token.
// Header and footer parts shared between sections are visited once per pass.
func Walk(doc *docx.Document, set Set) Stats {
	stats := make(Stats)
	for _, scope := range Scopes {
		paragraphs := ScopeParagraphs(doc, scope)
		for _, r := range set {
			for _, p := range paragraphs {
				stats[scope] += ReplaceInRuns(p.Runs(), r.Token, r.Value)
			}
		}
	}
	return stats
}

// ScopeParagraphs returns the paragraphs a scope covers, in traversal order.
func ScopeParagraphs(doc *docx.Document, scope Scope) []*docx.Paragraph {
	var out []*docx.Paragraph
	switch scope {
	case ScopeHeader:
		for _, r := range headers(doc) {
			out = append(out, r.Paragraphs()...)
		}
	case ScopeHeaderTables:
		for _, r := range headers(doc) {
			out = append(out, TableParagraphs(r.Tables())...)
		}
	case ScopeBody:
		out = doc.Body().Paragraphs()
	case ScopeBodyTables:
		out = TableParagraphs(doc.Body().Tables())
	case ScopeFooter:
		for _, r := range footers(doc) {
			out = append(out, r.Paragraphs()...)
		}
	case ScopeFooterTables:
		for _, r := range footers(doc) {
			out = append(out, TableParagraphs(r.Tables())...)
		}
	}
	return out
}

// TableParagraphs flattens tables row by row, cell by cell, paragraph by paragraph,
// descending into tables nested in a cell after the cell's own paragraphs.
func TableParagraphs(tables []*docx.Table) []*docx.Paragraph {
	var out []*docx.Paragraph
	for _, t := range tables {
		for _, row := range t.Rows() {
			for _, cell := range row.Cells() {
				out = append(out, cell.Paragraphs()...)
				out = append(out, TableParagraphs(cell.Tables())...)
			}
		}
	}
	return out
}

func headers(doc *docx.Document) []*docx.Region {
	var all []*docx.Region
	for _, s := range doc.Sections() {
		all = append(all, s.Headers()...)
	}
	return uniqueParts(all)
}

func footers(doc *docx.Document) []*docx.Region {
	var all []*docx.Region
	for _, s := range doc.Sections() {
		all = append(all, s.Footers()...)
	}
	return uniqueParts(all)
}

func uniqueParts(regions []*docx.Region) []*docx.Region {
	seen := make(map[string]bool)
	var out []*docx.Region
	for _, r := range regions {
		if r == nil || seen[r.Part()] {
			continue
		}
		seen[r.Part()] = true
		out = append(out, r)
	}
	return out
}
