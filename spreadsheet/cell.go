package spreadsheet

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/uhppoted/gsheets-feed/gdata"
)

// Cell is a cells feed entry. Cells cannot be removed from a worksheet, only emptied.
type Cell struct {
	ID           string
	Row          int
	Col          int
	Value        string
	InputValue   string
	NumericValue *float64
	Links        map[string]string

	fetched   string
	worksheet string
	client    *Client
}

func newCell(c *Client, worksheet string, entry gdata.Record) *Cell {
	cell := Cell{
		worksheet: worksheet,
		client:    c,
	}

	cell.update(entry)

	return &cell
}

func (c *Cell) update(entry gdata.Record) {
	c.ID = entry.Field("id")
	c.Links = entry.Links
	c.NumericValue = nil

	if e := entry.Element("gs:cell"); e != nil {
		c.Row, _ = strconv.Atoi(e.SelectAttrValue("row", ""))
		c.Col, _ = strconv.Atoi(e.SelectAttrValue("col", ""))
		c.Value = e.Text()
		c.InputValue = e.SelectAttrValue("inputValue", c.Value)
		c.fetched = c.Value

		if v := e.SelectAttr("numericValue"); v != nil {
			if f, err := strconv.ParseFloat(v.Value, 64); err == nil {
				c.NumericValue = &f
			}
		}
	}
}

// Worksheet returns the ID of the worksheet the cell belongs to.
func (c *Cell) Worksheet() string {
	return c.worksheet
}

// SetValue updates the cell value and saves it.
func (c *Cell) SetValue(ctx context.Context, value string) error {
	c.Value = value
	c.InputValue = value

	return c.Save(ctx)
}

// Save writes the cell input value to the worksheet. If Value has been changed since the
// cell was fetched it is sent as the input value, otherwise InputValue is sent so that
// saving an unmodified formula cell keeps the formula.
func (c *Cell) Save(ctx context.Context) error {
	edit := c.Links["edit"]
	if edit == "" {
		return fmt.Errorf("cell R%vC%v (%w)", c.Row, c.Col, ErrNotEditable)
	}

	input := c.InputValue
	if c.Value != c.fetched {
		input = c.Value
	}

	xml := `<entry xmlns="` + gdata.NamespaceAtom + `" xmlns:gs="` + gdata.NamespaceSheets + `">` +
		`<id>` + gdata.Escape(c.ID) + `</id>` +
		`<link rel="edit" type="` + atomXML + `" href="` + gdata.Escape(edit) + `"/>` +
		`<gs:cell row="` + strconv.Itoa(c.Row) + `" col="` + strconv.Itoa(c.Col) + `" inputValue="` + gdata.Escape(input) + `"/>` +
		`</entry>`

	doc, _, err := c.client.request(ctx, absoluteURL(edit), http.MethodPut, nil, xml)
	if err != nil {
		return err
	}

	c.InputValue = input
	c.fetched = c.Value
	if doc != nil && len(doc.Entries) > 0 {
		c.update(doc.Entries[0])
	}

	return nil
}

// Delete empties the cell. It is the same as SetValue(ctx, "").
func (c *Cell) Delete(ctx context.Context) error {
	return c.SetValue(ctx, "")
}
