package gdata

import (
	"fmt"
	"regexp"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// Document is a parsed feed response. For a <feed> response Feed is the feed level
// record (id, title, author, links) and Entries holds one record per <entry>. A bare
// <entry> response (e.g. the echo of a POST or PUT) is returned as both Feed and the
// single element of Entries.
type Document struct {
	Tag     string
	Feed    Record
	Entries []Record
}

var entryFragment = regexp.MustCompile(`<entry[^>]*>[\s\S]*?</entry>`)

// Parse reads a GData XML response body.
func Parse(body []byte) (*Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel

	if err := doc.ReadFromBytes(body); err != nil {
		return nil, fmt.Errorf("invalid feed XML (%w)", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("feed XML has no root element")
	}

	document := Document{
		Tag:     root.Tag,
		Feed:    Normalise(root),
		Entries: []Record{},
	}

	switch root.Tag {
	case "entry":
		document.Entries = append(document.Entries, document.Feed)

	default:
		for _, e := range root.SelectElements("entry") {
			document.Entries = append(document.Entries, Normalise(e))
		}
	}

	return &document, nil
}

// Entries returns the raw text of each <entry> element in a response body, in
// document order. The fragments are kept verbatim so that edits can be applied
// textually.
func Entries(body string) []string {
	return entryFragment.FindAllString(body, -1)
}
