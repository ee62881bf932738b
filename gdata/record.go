package gdata

import (
	"strings"

	"github.com/beevik/etree"
)

const (
	NamespaceAtom     = "http://www.w3.org/2005/Atom"
	NamespaceGData    = "http://schemas.google.com/g/2005"
	NamespaceSheets   = "http://schemas.google.com/spreadsheets/2006"
	NamespaceExtended = "http://schemas.google.com/spreadsheets/2006/extended"

	extendedPrefix = "gsx"
)

// Record is the flattened form of a single feed or entry element.
//
// Columns holds the extended schema (gsx:) children keyed by their local name, with
// nil for empty elements. Fields holds every other child that carries text, keyed by
// its prefixed tag (e.g. "title", "gs:rowCount"). Links maps link relations to hrefs.
// Elements keeps all children in their raw form, grouped by prefixed tag.
type Record struct {
	Columns  map[string]*string
	Order    []string
	Fields   map[string]*string
	Links    map[string]string
	Elements map[string][]*etree.Element
}

// Field returns the text of a non-column child or "" if it is missing or empty.
func (r Record) Field(tag string) string {
	if v := r.Fields[tag]; v != nil {
		return *v
	}

	return ""
}

// Element returns the first raw child with the tag or nil.
func (r Record) Element(tag string) *etree.Element {
	if l := r.Elements[tag]; len(l) > 0 {
		return l[0]
	}

	return nil
}

// Normalise flattens the children of an element into a Record. Repeated children are
// collected before they are normalised so that a single element and a list of elements
// take the same path.
func Normalise(e *etree.Element) Record {
	record := Record{
		Columns:  map[string]*string{},
		Order:    []string{},
		Fields:   map[string]*string{},
		Links:    map[string]string{},
		Elements: map[string][]*etree.Element{},
	}

	if e == nil {
		return record
	}

	keys := []string{}
	for _, child := range e.ChildElements() {
		k := child.FullTag()
		if _, ok := record.Elements[k]; !ok {
			keys = append(keys, k)
		}

		record.Elements[k] = append(record.Elements[k], child)
	}

	for _, k := range keys {
		list := record.Elements[k]

		switch {
		case isExtended(list[0]):
			name := list[0].Tag
			record.Columns[name] = value(list[0])
			record.Order = append(record.Order, name)

		case k == "link":
			record.Links = links(list)

		default:
			if v := value(list[0]); v == nil || hasText(list[0]) {
				record.Fields[k] = v
			}
		}
	}

	return record
}

func isExtended(e *etree.Element) bool {
	if e.Space == "" {
		return false
	}

	if uri := e.NamespaceURI(); uri != "" {
		return uri == NamespaceExtended
	}

	return e.Space == extendedPrefix
}

func links(list []*etree.Element) map[string]string {
	m := map[string]string{}
	for _, l := range list {
		if rel := l.SelectAttrValue("rel", ""); rel != "" {
			m[rel] = l.SelectAttrValue("href", "")
		}
	}

	return m
}

// value returns nil for an empty element, the element text for a text element and
// an empty string for elements that only have structure (attributes or children).
func value(e *etree.Element) *string {
	if isEmpty(e) {
		return nil
	}

	s := ""
	if len(e.ChildElements()) == 0 {
		s = e.Text()
	}

	return &s
}

func isEmpty(e *etree.Element) bool {
	return len(e.Attr) == 0 && len(e.ChildElements()) == 0 && e.Text() == ""
}

func hasText(e *etree.Element) bool {
	return len(e.ChildElements()) == 0 && strings.TrimSpace(e.Text()) != ""
}
