// Package docxtest builds minimal .docx packages for tests.
package docxtest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Namespace declarations shared by every generated part.
const Namespaces = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
	`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`

const contentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const packageRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// Package describes the content of a generated document.
type Package struct {
	// Body is the inner XML of w:body.
	Body string
	// Headers and Footers hold the inner XML of each header/footer part.
	// Header i (1-based) is stored as word/header{i}.xml with relationship id rIdHeader{i}.
	Headers []string
	Footers []string
	// SectPr replaces the generated final section properties when set.
	SectPr string
	// Extra adds arbitrary entries to the package.
	Extra map[string]string
}

// Para returns a paragraph XML with one run per text, each run bold when its index is odd.
func Para(texts ...string) string {
	var sb strings.Builder
	sb.WriteString("<w:p>")
	for i, t := range texts {
		sb.WriteString("<w:r>")
		if i%2 == 1 {
			sb.WriteString("<w:rPr><w:b/></w:rPr>")
		}
		fmt.Fprintf(&sb, `<w:t xml:space="preserve">%s</w:t>`, t)
		sb.WriteString("</w:r>")
	}
	sb.WriteString("</w:p>")
	return sb.String()
}

// Table returns a table XML whose cells hold the given cell contents (inner XML of w:tc).
func Table(rows ...[]string) string {
	var sb strings.Builder
	sb.WriteString("<w:tbl>")
	for _, row := range rows {
		sb.WriteString("<w:tr>")
		for _, cell := range row {
			sb.WriteString("<w:tc>")
			sb.WriteString(cell)
			sb.WriteString("</w:tc>")
		}
		sb.WriteString("</w:tr>")
	}
	sb.WriteString("</w:tbl>")
	return sb.String()
}

// Bytes renders the package as a zip archive.
func (p Package) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	add := func(name, content string) error {
		f, err := w.Create(name)
		if err != nil {
			return err
		}
		_, err = f.Write([]byte(content))
		return err
	}

	files := map[string]string{
		"[Content_Types].xml":          contentTypes,
		"_rels/.rels":                  packageRels,
		"word/document.xml":            p.document(),
		"word/_rels/document.xml.rels": p.documentRels(),
	}
	for i, h := range p.Headers {
		files[fmt.Sprintf("word/header%d.xml", i+1)] = fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+"\n"+`<w:hdr %s>%s</w:hdr>`, Namespaces, h)
	}
	for i, f := range p.Footers {
		files[fmt.Sprintf("word/footer%d.xml", i+1)] = fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+"\n"+`<w:ftr %s>%s</w:ftr>`, Namespaces, f)
	}
	for name, content := range p.Extra {
		files[name] = content
	}

	// Deterministic order keeps the fixtures stable.
	order := []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml", "word/_rels/document.xml.rels"}
	seen := map[string]bool{}
	for _, name := range order {
		seen[name] = true
	}
	for i := range p.Headers {
		order = append(order, fmt.Sprintf("word/header%d.xml", i+1))
	}
	for i := range p.Footers {
		order = append(order, fmt.Sprintf("word/footer%d.xml", i+1))
	}
	var extra []string
	for name := range p.Extra {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	order = append(order, extra...)

	written := map[string]bool{}
	for _, name := range order {
		if written[name] {
			continue
		}
		written[name] = true
		if err := add(name, files[name]); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write stores the package as dir/name and returns the path.
func Write(t testing.TB, dir, name string, p Package) string {
	t.Helper()
	data, err := p.Bytes()
	require.NoError(t, err, "failed to build docx")
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func (p Package) document() string {
	sectPr := p.SectPr
	if sectPr == "" {
		var sb strings.Builder
		sb.WriteString("<w:sectPr>")
		if len(p.Headers) > 0 {
			sb.WriteString(`<w:headerReference w:type="default" r:id="rIdHeader1"/>`)
		}
		if len(p.Footers) > 0 {
			sb.WriteString(`<w:footerReference w:type="default" r:id="rIdFooter1"/>`)
		}
		sb.WriteString(`<w:pgSz w:w="11906" w:h="16838"/></w:sectPr>`)
		sectPr = sb.String()
	}
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+"\n"+
		`<w:document %s><w:body>%s%s</w:body></w:document>`, Namespaces, p.Body, sectPr)
}

func (p Package) documentRels() string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	sb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for i := range p.Headers {
		fmt.Fprintf(&sb, `<Relationship Id="rIdHeader%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/header" Target="header%d.xml"/>`, i+1, i+1)
	}
	for i := range p.Footers {
		fmt.Fprintf(&sb, `<Relationship Id="rIdFooter%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer" Target="footer%d.xml"/>`, i+1, i+1)
	}
	sb.WriteString(`</Relationships>`)
	return sb.String()
}
