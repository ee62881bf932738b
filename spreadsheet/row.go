package spreadsheet

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/uhppoted/gsheets-feed/gdata"
)

// Row is a list feed entry. Column values are keyed by the list feed column name and
// a column that was empty in the feed has no value until it is Set.
//
// The raw XML of the entry is kept so that Save can patch the column values in place:
// the edit endpoint is strict about the shape of the document it receives and is not
// reliably satisfied by a regenerated entry.
type Row struct {
	ID      string
	Title   string
	Content string
	Links   map[string]string

	columns []string
	values  map[string]*string
	edited  map[string]bool
	xml     string
	client  *Client
}

var startTag = regexp.MustCompile(`^<entry\b[^>]*?/?>`)

var namespaces = []struct {
	attr string
	uri  string
}{
	{"xmlns", gdata.NamespaceAtom},
	{"xmlns:gsx", gdata.NamespaceExtended},
	{"xmlns:gd", gdata.NamespaceGData},
}

func newRow(c *Client, entry gdata.Record, xml string) *Row {
	row := Row{client: c}
	row.update(entry, xml)

	return &row
}

func (r *Row) update(entry gdata.Record, xml string) {
	r.ID = entry.Field("id")
	r.Title = entry.Field("title")
	r.Content = entry.Field("content")
	r.Links = entry.Links
	r.columns = append([]string{}, entry.Order...)
	r.values = map[string]*string{}
	r.edited = map[string]bool{}
	r.xml = xml

	for k, v := range entry.Columns {
		r.values[k] = v
	}
}

// Columns returns the column names in feed order.
func (r *Row) Columns() []string {
	return append([]string{}, r.columns...)
}

// Get returns the value of a column, or "" if the column is empty or unknown.
func (r *Row) Get(column string) string {
	v, _ := r.Lookup(column)

	return v
}

// Lookup returns the value of a column and whether it has one.
func (r *Row) Lookup(column string) (string, bool) {
	if v := r.values[gdata.ColumnName(column)]; v != nil {
		return *v, true
	}

	return "", false
}

// Set updates the in-memory value of a column. The change is only sent by Save.
func (r *Row) Set(column, value string) {
	k := gdata.ColumnName(column)
	if _, ok := r.values[k]; !ok {
		r.columns = append(r.columns, k)
	}

	r.values[k] = &value
	r.edited[k] = true
}

// XML returns the entry XML the row was created from.
func (r *Row) XML() string {
	return r.xml
}

// Save writes the column values back to the worksheet.
func (r *Row) Save(ctx context.Context) error {
	edit := r.Links["edit"]
	if edit == "" || r.xml == "" {
		return fmt.Errorf("row %v (%w)", r.ID, ErrNotEditable)
	}

	for _, k := range r.columns {
		if r.edited[k] && !gdata.IsName(k) {
			return fmt.Errorf("row %v column '%v' (%w)", r.ID, k, ErrInvalidColumn)
		}
	}

	xml := r.patch()

	doc, body, err := r.client.request(ctx, absoluteURL(edit), http.MethodPut, nil, xml)
	if err != nil {
		return err
	}

	if doc != nil && len(doc.Entries) > 0 {
		fragment := xml
		if fragments := gdata.Entries(body); len(fragments) > 0 {
			fragment = fragments[0]
		}

		r.update(doc.Entries[0], fragment)
	} else {
		r.xml = xml
		r.edited = map[string]bool{}
	}

	return nil
}

// Delete removes the row from the worksheet.
func (r *Row) Delete(ctx context.Context) error {
	edit := r.Links["edit"]
	if edit == "" {
		return fmt.Errorf("row %v (%w)", r.ID, ErrNotEditable)
	}

	_, _, err := r.client.request(ctx, absoluteURL(edit), http.MethodDelete, nil, "")

	return err
}

// patch replaces the text of each edited column element in the original entry XML with
// the escaped in-memory value. All other columns keep their original text.
func (r *Row) patch() string {
	xml := declare(r.xml)

	for _, k := range r.columns {
		v := r.values[k]
		if v == nil || !r.edited[k] || strings.HasPrefix(k, "_") {
			continue
		}

		xml = replace(xml, gdata.ColumnName(k), gdata.Escape(*v))
	}

	return xml
}

// replace substitutes the content of the first <gsx:name>...</gsx:name> or <gsx:name/>
// element, whichever comes first.
func replace(xml, name, value string) string {
	tag := regexp.QuoteMeta("gsx:" + name)
	re := regexp.MustCompile(`<` + tag + `>([\s\S]*?)</` + tag + `>|<` + tag + `\s*/>`)

	ix := re.FindStringIndex(xml)
	if ix == nil {
		return xml
	}

	element := "<gsx:" + name + ">" + value + "</gsx:" + name + ">"

	return xml[:ix[0]] + element + xml[ix[1]:]
}

// declare adds the namespace declarations the entry start tag is missing. Entries cut
// from a feed rely on the declarations of the enclosing <feed> element.
func declare(xml string) string {
	ix := startTag.FindStringIndex(xml)
	if ix == nil {
		return xml
	}

	tag := xml[ix[0]:ix[1]]
	attrs := ""
	for _, ns := range namespaces {
		if !strings.Contains(tag, ns.attr+"=") {
			attrs += " " + ns.attr + "='" + ns.uri + "'"
		}
	}

	if attrs == "" {
		return xml
	}

	return xml[:len("<entry")] + attrs + xml[len("<entry"):]
}
