package docx

import (
	"encoding/xml"
	"path"
	"strings"
)

// Relationship type URIs used to locate parts.
const (
	relTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeHeader         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/header"
	relTypeFooter         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer"
)

// Relationships represents an OPC relationships part (*.rels).
type Relationships struct {
	XMLName xml.Name       `xml:"Relationships"`
	Items   []Relationship `xml:"Relationship"`
}

// Relationship is a single entry of a relationships part.
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

// ParseRelationships parses relationships XML data.
func ParseRelationships(data []byte) (*Relationships, error) {
	var rels Relationships
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, err
	}
	return &rels, nil
}

// ByID returns the relationship with the given id.
func (r *Relationships) ByID(id string) (Relationship, bool) {
	if r == nil {
		return Relationship{}, false
	}
	for _, rel := range r.Items {
		if rel.ID == id {
			return rel, true
		}
	}
	return Relationship{}, false
}

// FirstOfType returns the first relationship of the given type.
func (r *Relationships) FirstOfType(relType string) (Relationship, bool) {
	if r == nil {
		return Relationship{}, false
	}
	for _, rel := range r.Items {
		if rel.Type == relType {
			return rel, true
		}
	}
	return Relationship{}, false
}

// relsPathFor returns the relationships part name of a source part,
// e.g. word/document.xml -> word/_rels/document.xml.rels.
func relsPathFor(partName string) string {
	dir, file := path.Split(partName)
	return dir + "_rels/" + file + ".rels"
}

// resolveTarget resolves a relationship target against its source part.
func resolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return strings.TrimPrefix(path.Join(path.Dir(source), target), "/")
}
