// Package docx provides an editable model of WordprocessingML (.docx) documents.
//
// Only the parts that carry visible text are parsed (main document, headers and
// footers); every other entry of the package is copied through unchanged on save.
package docx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"

	"github.com/beevik/etree"
)

// Namespace URIs of WordprocessingML.
const (
	nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

const defaultMainPart = "word/document.xml"

// entry is one file of the zip package.
type entry struct {
	header zip.FileHeader
	data   []byte
}

// part is a parsed XML part.
type part struct {
	name  string
	doc   *etree.Document
	dirty bool
}

// Document is an opened .docx package.
type Document struct {
	path     string
	entries  []*entry
	parts    map[string]*part
	main     *part
	rels     *Relationships
	body     *Region
	sections []*Section
}

// Open reads the .docx package at path.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat document: %w", err)
	}

	format, err := DetectFormatFromReader(f)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatDOCX:
	case FormatDOC:
		return nil, fmt.Errorf("%s: %w", path, ErrLegacyFormat)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}

	doc, err := Read(f, info.Size())
	if err != nil {
		return nil, err
	}
	doc.path = path
	return doc, nil
}

// Read parses a .docx package from r.
func Read(r io.ReaderAt, size int64) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open docx package: %w", err)
	}

	d := &Document{
		parts: make(map[string]*part),
	}

	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.Name, err)
		}
		d.entries = append(d.entries, &entry{header: f.FileHeader, data: data})
	}

	if err := d.load(); err != nil {
		return nil, err
	}
	return d, nil
}

// Path returns the file the document was opened from.
func (d *Document) Path() string {
	return d.path
}

// Body returns the main document body.
func (d *Document) Body() *Region {
	return d.body
}

// Sections returns the document sections in order.
func (d *Document) Sections() []*Section {
	return d.sections
}

// Save writes the document to path.
func (d *Document) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := d.SaveTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SaveTo writes the document package to w. Unchanged entries are copied as read.
func (d *Document) SaveTo(w io.Writer) error {
	zw := zip.NewWriter(w)

	for _, e := range d.entries {
		data := e.data
		if p, ok := d.parts[e.header.Name]; ok && p.dirty {
			b, err := p.doc.WriteToBytes()
			if err != nil {
				return fmt.Errorf("failed to serialize %s: %w", p.name, err)
			}
			data = b
		}

		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.header.Name,
			Method:   e.header.Method,
			Modified: e.header.Modified,
		})
		if err != nil {
			return fmt.Errorf("failed to create zip entry %s: %w", e.header.Name, err)
		}
		if _, err := fw.Write(data); err != nil {
			return fmt.Errorf("failed to write zip entry %s: %w", e.header.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish docx package: %w", err)
	}
	return nil
}

// load locates the main part, its headers and footers and builds the regions.
func (d *Document) load() error {
	mainName := defaultMainPart
	if data, ok := d.file("_rels/.rels"); ok {
		if rels, err := ParseRelationships(data); err == nil {
			if rel, ok := rels.FirstOfType(relTypeOfficeDocument); ok {
				mainName = resolveTarget("", rel.Target)
			}
		}
	}

	main, err := d.parsePart(mainName)
	if err != nil {
		return err
	}
	d.main = main

	if data, ok := d.file(relsPathFor(mainName)); ok {
		rels, err := ParseRelationships(data)
		if err != nil {
			return fmt.Errorf("failed to parse relationships of %s: %w", mainName, err)
		}
		d.rels = rels
	}

	root := main.doc.Root()
	if root == nil {
		return fmt.Errorf("%s has no root element", mainName)
	}
	body := firstChild(root, "body")
	if body == nil {
		return fmt.Errorf("%s has no body", mainName)
	}
	d.body = &Region{part: main, el: body}

	for _, sectPr := range sectionProperties(body) {
		d.sections = append(d.sections, d.buildSection(sectPr))
	}
	return nil
}

func (d *Document) buildSection(sectPr *etree.Element) *Section {
	s := &Section{}
	for _, ref := range sectPr.ChildElements() {
		if ref.NamespaceURI() != nsW {
			continue
		}
		var relType string
		switch ref.Tag {
		case "headerReference":
			relType = relTypeHeader
		case "footerReference":
			relType = relTypeFooter
		default:
			continue
		}

		region := d.referencedRegion(ref, relType)
		if region == nil {
			continue
		}
		kind := HeaderFooterType(attrW(ref, "type"))
		if kind == "" {
			kind = HeaderFooterDefault
		}
		if relType == relTypeHeader {
			s.headers = append(s.headers, headerFooter{kind: kind, region: region})
		} else {
			s.footers = append(s.footers, headerFooter{kind: kind, region: region})
		}
	}
	return s
}

// referencedRegion resolves an r:id reference to the root region of a header or footer part.
// Dangling references and unreadable parts yield nil, which callers treat as an empty region.
func (d *Document) referencedRegion(ref *etree.Element, relType string) *Region {
	id := attrR(ref, "id")
	rel, ok := d.rels.ByID(id)
	if !ok || rel.Type != relType || rel.TargetMode == "External" {
		return nil
	}
	name := resolveTarget(d.main.name, rel.Target)
	p, err := d.parsePart(name)
	if err != nil {
		return nil
	}
	root := p.doc.Root()
	if root == nil {
		return nil
	}
	return &Region{part: p, el: root}
}

func (d *Document) parsePart(name string) (*part, error) {
	if p, ok := d.parts[name]; ok {
		return p, nil
	}
	data, ok := d.file(name)
	if !ok {
		return nil, fmt.Errorf("part not found: %s", name)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	p := &part{name: name, doc: doc}
	d.parts[name] = p
	return p, nil
}

func (d *Document) file(name string) ([]byte, bool) {
	for _, e := range d.entries {
		if e.header.Name == name {
			return e.data, true
		}
	}
	return nil, false
}

// sectionProperties returns every w:sectPr of the body in document order:
// those closing a section inside paragraph properties, then the body's final one.
func sectionProperties(body *etree.Element) []*etree.Element {
	var out []*etree.Element
	for _, child := range body.ChildElements() {
		if !isW(child, "p") {
			continue
		}
		if pPr := firstChild(child, "pPr"); pPr != nil {
			if sectPr := firstChild(pPr, "sectPr"); sectPr != nil {
				out = append(out, sectPr)
			}
		}
	}
	if sectPr := firstChild(body, "sectPr"); sectPr != nil {
		out = append(out, sectPr)
	}
	return out
}
