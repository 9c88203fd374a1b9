package docx

import (
	"strings"

	"github.com/beevik/etree"
)

// HeaderFooterType is the w:type of a header or footer reference.
type HeaderFooterType string

const (
	HeaderFooterDefault HeaderFooterType = "default"
	HeaderFooterFirst   HeaderFooterType = "first"
	HeaderFooterEven    HeaderFooterType = "even"
)

type headerFooter struct {
	kind   HeaderFooterType
	region *Region
}

// Section is a document section with its own headers and footers.
type Section struct {
	headers []headerFooter
	footers []headerFooter
}

// Header returns the default header, or nil when the section has none.
func (s *Section) Header() *Region {
	return s.find(s.headers, HeaderFooterDefault)
}

// Footer returns the default footer, or nil when the section has none.
func (s *Section) Footer() *Region {
	return s.find(s.footers, HeaderFooterDefault)
}

// Headers returns every header of the section (default, first page, even pages) in reference order.
func (s *Section) Headers() []*Region {
	return regions(s.headers)
}

// Footers returns every footer of the section in reference order.
func (s *Section) Footers() []*Region {
	return regions(s.footers)
}

func (s *Section) find(list []headerFooter, kind HeaderFooterType) *Region {
	if s == nil {
		return nil
	}
	for _, hf := range list {
		if hf.kind == kind {
			return hf.region
		}
	}
	return nil
}

func regions(list []headerFooter) []*Region {
	out := make([]*Region, 0, len(list))
	for _, hf := range list {
		out = append(out, hf.region)
	}
	return out
}

// Region is a container of block content: the body, a header, a footer or a table cell.
// A nil *Region is a valid empty region.
type Region struct {
	part *part
	el   *etree.Element
}

// Part returns the name of the package part holding the region.
func (r *Region) Part() string {
	if r == nil || r.part == nil {
		return ""
	}
	return r.part.name
}

// Paragraphs returns the block-level paragraphs of the region, including those
// wrapped in content controls.
func (r *Region) Paragraphs() []*Paragraph {
	if r == nil || r.el == nil {
		return nil
	}
	var out []*Paragraph
	for _, el := range blockChildren(r.el, "p") {
		out = append(out, &Paragraph{part: r.part, el: el})
	}
	return out
}

// Tables returns the block-level tables of the region.
func (r *Region) Tables() []*Table {
	if r == nil || r.el == nil {
		return nil
	}
	var out []*Table
	for _, el := range blockChildren(r.el, "tbl") {
		out = append(out, &Table{part: r.part, el: el})
	}
	return out
}

// Table is a w:tbl element.
type Table struct {
	part *part
	el   *etree.Element
}

// Rows returns the table rows in order.
func (t *Table) Rows() []*Row {
	var out []*Row
	for _, el := range blockChildren(t.el, "tr") {
		out = append(out, &Row{part: t.part, el: el})
	}
	return out
}

// Row is a w:tr element.
type Row struct {
	part *part
	el   *etree.Element
}

// Cells returns the row cells in order.
func (r *Row) Cells() []*Cell {
	var out []*Cell
	for _, el := range blockChildren(r.el, "tc") {
		out = append(out, &Cell{Region{part: r.part, el: el}})
	}
	return out
}

// Cell is a w:tc element; its content is a region that may nest further tables.
type Cell struct {
	Region
}

// Paragraph is a w:p element.
type Paragraph struct {
	part *part
	el   *etree.Element
}

// Runs returns the runs of the paragraph in order, including runs wrapped in
// hyperlinks, tracked insertions, smart tags and inline content controls.
func (p *Paragraph) Runs() []*Run {
	var out []*Run
	collectRuns(p.el, p.part, &out)
	return out
}

// Text returns the concatenated text of the paragraph runs.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs() {
		sb.WriteString(r.Text())
	}
	return sb.String()
}

// Style returns the paragraph style id, if any.
func (p *Paragraph) Style() string {
	if pPr := firstChild(p.el, "pPr"); pPr != nil {
		if s := firstChild(pPr, "pStyle"); s != nil {
			return attrW(s, "val")
		}
	}
	return ""
}

func collectRuns(el *etree.Element, pt *part, out *[]*Run) {
	for _, child := range el.ChildElements() {
		if child.NamespaceURI() != nsW {
			continue
		}
		switch child.Tag {
		case "r":
			*out = append(*out, &Run{part: pt, el: child})
		case "hyperlink", "ins", "smartTag", "customXml", "fldSimple", "sdt", "sdtContent", "moveTo":
			collectRuns(child, pt, out)
		}
	}
}

// blockChildren returns the direct children named tag, descending into block-level
// content controls (w:sdt/w:sdtContent) and custom XML wrappers.
func blockChildren(el *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, child := range el.ChildElements() {
		if child.NamespaceURI() != nsW {
			continue
		}
		switch child.Tag {
		case tag:
			out = append(out, child)
		case "sdt", "sdtContent", "customXml":
			out = append(out, blockChildren(child, tag)...)
		}
	}
	return out
}

func isW(el *etree.Element, tag string) bool {
	return el.Tag == tag && el.NamespaceURI() == nsW
}

func firstChild(el *etree.Element, tag string) *etree.Element {
	for _, child := range el.ChildElements() {
		if isW(child, tag) {
			return child
		}
	}
	return nil
}

func attrW(el *etree.Element, key string) string {
	return attrNS(el, nsW, key)
}

func attrR(el *etree.Element, key string) string {
	return attrNS(el, nsR, key)
}

func attrNS(el *etree.Element, ns, key string) string {
	for i := range el.Attr {
		a := &el.Attr[i]
		if a.Key == key && a.NamespaceURI() == ns {
			return a.Value
		}
	}
	return ""
}
