package spreadsheet

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/uhppoted/gsheets-feed/gdata"
)

// Worksheet is a snapshot of a worksheets feed entry.
type Worksheet struct {
	ID       string
	URL      string
	Title    string
	RowCount int
	ColCount int
	Links    map[string]string

	client *Client
}

func newWorksheet(c *Client, entry gdata.Record) *Worksheet {
	url := entry.Field("id")

	w := Worksheet{
		URL:    url,
		ID:     url[strings.LastIndex(url, "/")+1:],
		client: c,
	}

	w.update(entry)

	return &w
}

func (w *Worksheet) update(entry gdata.Record) {
	w.Title = entry.Field("title")
	w.RowCount, _ = strconv.Atoi(entry.Field("gs:rowCount"))
	w.ColCount, _ = strconv.Atoi(entry.Field("gs:colCount"))
	w.Links = entry.Links
}

func (w *Worksheet) GetRows(ctx context.Context, q *RowQuery) ([]*Row, error) {
	return w.client.GetRows(ctx, w.ID, q)
}

func (w *Worksheet) GetCells(ctx context.Context, q *CellQuery) ([]*Cell, error) {
	return w.client.GetCells(ctx, w.ID, q)
}

func (w *Worksheet) AddRow(ctx context.Context, data map[string]string) (*Row, error) {
	return w.client.AddRow(ctx, w.ID, data)
}

// SetTitle renames the worksheet.
func (w *Worksheet) SetTitle(ctx context.Context, title string) error {
	return w.save(ctx, title, w.RowCount, w.ColCount)
}

// Resize changes the number of rows and columns of the worksheet.
func (w *Worksheet) Resize(ctx context.Context, rows, cols int) error {
	return w.save(ctx, w.Title, rows, cols)
}

// Delete removes the worksheet from the spreadsheet.
func (w *Worksheet) Delete(ctx context.Context) error {
	edit := w.Links["edit"]
	if edit == "" {
		return fmt.Errorf("worksheet %v has no edit link (%w)", w.ID, ErrNotEditable)
	}

	_, _, err := w.client.request(ctx, absoluteURL(edit), http.MethodDelete, nil, "")

	return err
}

// BrowserURL returns the link that opens the worksheet in a browser, given the
// numeric sheet ID returned by Client.SheetIDs.
func (w *Worksheet) BrowserURL(sheetID int64) string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/edit#gid=%d", w.client.key, sheetID)
}

func (w *Worksheet) save(ctx context.Context, title string, rows, cols int) error {
	edit := w.Links["edit"]
	if edit == "" {
		return fmt.Errorf("worksheet %v has no edit link (%w)", w.ID, ErrNotEditable)
	}

	doc, _, err := w.client.request(ctx, absoluteURL(edit), http.MethodPut, nil, worksheetXML(title, rows, cols))
	if err != nil {
		return err
	}

	w.Title = title
	w.RowCount = rows
	w.ColCount = cols

	if doc != nil && len(doc.Entries) > 0 {
		w.update(doc.Entries[0])
	}

	return nil
}

func worksheetXML(title string, rows, cols int) string {
	return `<entry xmlns="` + gdata.NamespaceAtom + `" xmlns:gs="` + gdata.NamespaceSheets + `">` +
		`<title>` + gdata.Escape(title) + `</title>` +
		`<gs:rowCount>` + strconv.Itoa(rows) + `</gs:rowCount>` +
		`<gs:colCount>` + strconv.Itoa(cols) + `</gs:colCount>` +
		`</entry>`
}
