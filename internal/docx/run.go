package docx

import (
	"strings"

	"github.com/beevik/etree"
)

// Run is a w:r element: a span of text sharing one set of character properties.
type Run struct {
	part *part
	el   *etree.Element
}

// Text returns the run text. Tabs read as "\t", line breaks and carriage returns as "\n".
func (r *Run) Text() string {
	var sb strings.Builder
	for _, child := range r.el.ChildElements() {
		if !isTextChild(child) {
			continue
		}
		sb.WriteString(childText(child))
	}
	return sb.String()
}

// SetText replaces the text content of the run. Run properties and non-text
// children (drawings, field characters, page breaks) stay where they are.
//
// Only the text children covering the changed characters are rewritten: the
// common prefix and suffix of the old and new text keep their elements, and
// inserted text goes into the child holding the first changed character.
func (r *Run) SetText(text string) {
	var children []*etree.Element
	var spans [][]rune
	oldLen := 0
	for _, child := range r.el.ChildElements() {
		if !isTextChild(child) {
			continue
		}
		t := []rune(childText(child))
		children = append(children, child)
		spans = append(spans, t)
		oldLen += len(t)
	}

	if len(children) == 0 {
		for _, el := range textElements(text) {
			r.el.AddChild(el)
		}
		r.markDirty()
		return
	}

	old := make([]rune, 0, oldLen)
	for _, t := range spans {
		old = append(old, t...)
	}
	next := []rune(text)

	prefix := 0
	for prefix < len(old) && prefix < len(next) && old[prefix] == next[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(old)-prefix && suffix < len(next)-prefix &&
		old[len(old)-1-suffix] == next[len(next)-1-suffix] {
		suffix++
	}
	if prefix == len(old) && prefix == len(next) {
		return
	}
	cut := len(old) - suffix
	mid := string(next[prefix : len(next)-suffix])

	// The insertion child holds old[prefix]; appended text goes to the last child.
	insertAt := len(children) - 1
	for i, a := 0, 0; i < len(spans); i++ {
		if prefix < a+len(spans[i]) {
			insertAt = i
			break
		}
		a += len(spans[i])
	}

	a := 0
	for i, child := range children {
		span := spans[i]
		b := a + len(span)
		var sb strings.Builder
		for j := a; j < b && j < prefix; j++ {
			sb.WriteRune(span[j-a])
		}
		if i == insertAt {
			sb.WriteString(mid)
		}
		for j := max(a, cut); j < b; j++ {
			sb.WriteRune(span[j-a])
		}
		a = b

		content := sb.String()
		if content == string(span) && i != insertAt {
			continue
		}
		idx := child.Index()
		r.el.RemoveChild(child)
		for k, el := range textElements(content) {
			r.el.InsertChildAt(idx+k, el)
		}
	}
	r.markDirty()
}

func (r *Run) markDirty() {
	if r.part != nil {
		r.part.dirty = true
	}
}

// childText returns the text a single text child contributes.
func childText(el *etree.Element) string {
	switch el.Tag {
	case "t":
		return el.Text()
	case "tab":
		return "\t"
	default:
		return "\n"
	}
}

// Bold reports whether the run carries direct bold formatting.
func (r *Run) Bold() bool {
	rPr := firstChild(r.el, "rPr")
	if rPr == nil {
		return false
	}
	b := firstChild(rPr, "b")
	if b == nil {
		return false
	}
	v := attrW(b, "val")
	return v == "" || v == "1" || v == "true" || v == "on"
}

// isTextChild reports whether a run child contributes to the run text.
// Page and column breaks are structural and are left untouched.
func isTextChild(el *etree.Element) bool {
	if el.NamespaceURI() != nsW {
		return false
	}
	switch el.Tag {
	case "t", "tab", "cr":
		return true
	case "br":
		kind := attrW(el, "type")
		return kind == "" || kind == "textWrapping"
	}
	return false
}

// textElements converts text to w:t, w:tab and w:br elements.
func textElements(text string) []*etree.Element {
	var out []*etree.Element
	var sb strings.Builder

	flush := func() {
		if sb.Len() == 0 {
			return
		}
		t := etree.NewElement("w:t")
		t.CreateAttr("xml:space", "preserve")
		t.SetText(sb.String())
		out = append(out, t)
		sb.Reset()
	}

	for _, c := range text {
		switch c {
		case '\t':
			flush()
			out = append(out, etree.NewElement("w:tab"))
		case '\n':
			flush()
			out = append(out, etree.NewElement("w:br"))
		default:
			sb.WriteRune(c)
		}
	}
	flush()
	return out
}
