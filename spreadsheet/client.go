package spreadsheet

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/uhppoted/gsheets-feed/gdata"
)

// Client reads and updates a single spreadsheet through the worksheets, list and
// cells feeds.
type Client struct {
	key            string
	auth           *auth
	http           *http.Client
	feedURL        string
	visibility     Visibility
	projection     Projection
	driveEndpoint  string
	sheetsEndpoint string
}

type Option func(*Client)

// Info is the spreadsheet metadata returned by GetInfo.
type Info struct {
	ID         string
	Title      string
	Updated    time.Time
	Author     Author
	Worksheets []*Worksheet
}

type Author struct {
	Name  string
	Email string
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithFeedURL replaces the base feed URL (https://spreadsheets.google.com/feeds/).
func WithFeedURL(url string) Option {
	return func(c *Client) {
		c.feedURL = url
	}
}

// WithVisibility fixes the feed visibility instead of deriving it from the credential.
func WithVisibility(v Visibility) Option {
	return func(c *Client) {
		c.visibility = v
	}
}

// WithProjection fixes the feed projection instead of deriving it from the credential.
func WithProjection(p Projection) Option {
	return func(c *Client) {
		c.projection = p
	}
}

func WithDriveEndpoint(url string) Option {
	return func(c *Client) {
		c.driveEndpoint = url
	}
}

func WithSheetsEndpoint(url string) Option {
	return func(c *Client) {
		c.sheetsEndpoint = url
	}
}

// New returns an anonymous client for the spreadsheet with the key.
func New(key string, options ...Option) (*Client, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrMissingKey
	}

	c := Client{
		key:     strings.TrimSpace(key),
		auth:    &auth{},
		http:    http.DefaultClient,
		feedURL: FeedURL,
	}

	for _, option := range options {
		option(&c)
	}

	return &c, nil
}

func (c *Client) Key() string {
	return c.key
}

// GetInfo retrieves the spreadsheet metadata and worksheet list.
func (c *Client) GetInfo(ctx context.Context) (*Info, error) {
	doc, _, err := c.request(ctx, feedPath{"worksheets", c.key}, http.MethodGet, nil, "")
	if err != nil {
		return nil, err
	} else if doc == nil {
		return nil, noResponse("getInfo")
	}

	info := Info{
		ID:         doc.Feed.Field("id"),
		Title:      doc.Feed.Field("title"),
		Worksheets: []*Worksheet{},
	}

	if updated := doc.Feed.Field("updated"); updated != "" {
		if t, err := time.Parse(time.RFC3339Nano, updated); err == nil {
			info.Updated = t
		}
	}

	if author := doc.Feed.Element("author"); author != nil {
		if e := author.SelectElement("name"); e != nil {
			info.Author.Name = e.Text()
		}

		if e := author.SelectElement("email"); e != nil {
			info.Author.Email = e.Text()
		}
	}

	for _, entry := range doc.Entries {
		info.Worksheets = append(info.Worksheets, newWorksheet(c, entry))
	}

	return &info, nil
}

// Worksheet returns the worksheet with the ID (or title, case insensitive).
func (c *Client) Worksheet(ctx context.Context, id string) (*Worksheet, error) {
	info, err := c.GetInfo(ctx)
	if err != nil {
		return nil, err
	}

	for _, w := range info.Worksheets {
		if w.ID == id {
			return w, nil
		}
	}

	for _, w := range info.Worksheets {
		if strings.EqualFold(strings.TrimSpace(w.Title), strings.TrimSpace(id)) {
			return w, nil
		}
	}

	return nil, fmt.Errorf("unable to identify worksheet '%s'", id)
}

// GetRows retrieves the rows of a worksheet from the list feed.
func (c *Client) GetRows(ctx context.Context, worksheet string, q *RowQuery) ([]*Row, error) {
	query, err := encode(q)
	if err != nil {
		return nil, err
	}

	doc, xml, err := c.request(ctx, feedPath{"list", c.key, worksheet}, http.MethodGet, query, "")
	if err != nil {
		return nil, err
	} else if doc == nil {
		return nil, noResponse("getRows")
	}

	fragments := gdata.Entries(xml)
	rows := []*Row{}

	for i, entry := range doc.Entries {
		fragment := ""
		if len(fragments) == len(doc.Entries) {
			fragment = fragments[i]
		}

		rows = append(rows, newRow(c, entry, fragment))
	}

	return rows, nil
}

// AddRow appends a row to a worksheet. The keys of data are column headers and are
// converted to list feed column names. The created row is returned if the feed
// echoes it.
func (c *Client) AddRow(ctx context.Context, worksheet string, data map[string]string) (*Row, error) {
	var b strings.Builder

	b.WriteString(`<entry xmlns="` + gdata.NamespaceAtom + `" xmlns:gsx="` + gdata.NamespaceExtended + `">` + "\n")
	for _, k := range slices.Sorted(maps.Keys(data)) {
		if reserved(k) {
			continue
		}

		name := gdata.ColumnName(k)
		if name == "" {
			continue
		} else if !gdata.IsName(name) {
			return nil, fmt.Errorf("column '%v' (%w)", k, ErrInvalidColumn)
		}

		fmt.Fprintf(&b, "<gsx:%[1]s>%[2]s</gsx:%[1]s>\n", name, gdata.Escape(data[k]))
	}
	b.WriteString(`</entry>`)

	doc, xml, err := c.request(ctx, feedPath{"list", c.key, worksheet}, http.MethodPost, nil, b.String())
	if err != nil {
		return nil, err
	} else if doc == nil || len(doc.Entries) == 0 {
		return nil, nil
	}

	fragment := ""
	if fragments := gdata.Entries(xml); len(fragments) > 0 {
		fragment = fragments[0]
	}

	return newRow(c, doc.Entries[0], fragment), nil
}

// GetCells retrieves the cells of a worksheet from the cells feed.
func (c *Client) GetCells(ctx context.Context, worksheet string, q *CellQuery) ([]*Cell, error) {
	query, err := encode(q)
	if err != nil {
		return nil, err
	}

	doc, _, err := c.request(ctx, feedPath{"cells", c.key, worksheet}, http.MethodGet, query, "")
	if err != nil {
		return nil, err
	} else if doc == nil {
		return nil, noResponse("getCells")
	}

	cells := []*Cell{}
	for _, entry := range doc.Entries {
		cells = append(cells, newCell(c, worksheet, entry))
	}

	return cells, nil
}

// AddWorksheet creates a new worksheet with the title and size.
func (c *Client) AddWorksheet(ctx context.Context, title string, rows, cols int) (*Worksheet, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("worksheet title is required")
	}

	doc, _, err := c.request(ctx, feedPath{"worksheets", c.key}, http.MethodPost, nil, worksheetXML(title, rows, cols))
	if err != nil {
		return nil, err
	} else if doc == nil || len(doc.Entries) == 0 {
		return nil, noResponse("addWorksheet")
	}

	return newWorksheet(c, doc.Entries[0]), nil
}

func reserved(key string) bool {
	switch key {
	case "id", "title", "content", "_links":
		return true
	}

	return false
}
