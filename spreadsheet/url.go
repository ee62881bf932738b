package spreadsheet

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-querystring/query"
)

const FeedURL = "https://spreadsheets.google.com/feeds/"

type Visibility string
type Projection string

const (
	Public  Visibility = "public"
	Private Visibility = "private"

	Values Projection = "values"
	Full   Projection = "full"
)

// RowQuery holds the list feed query parameters for GetRows.
type RowQuery struct {
	Start   int    `url:"start-index,omitempty"`
	Num     int    `url:"max-results,omitempty"`
	OrderBy string `url:"orderby,omitempty"`
	Reverse bool   `url:"reverse,omitempty"`
	Query   string `url:"sq,omitempty"`
}

// CellQuery holds the cells feed query parameters for GetCells. Row and column
// bounds are 1-based and inclusive.
type CellQuery struct {
	MinRow      int  `url:"min-row,omitempty"`
	MaxRow      int  `url:"max-row,omitempty"`
	MinCol      int  `url:"min-col,omitempty"`
	MaxCol      int  `url:"max-col,omitempty"`
	ReturnEmpty bool `url:"return-empty,omitempty"`
}

// target is the destination of a feed request.
type target interface {
	url(base string, visibility Visibility, projection Projection) (string, error)
}

// feedPath is a list of resource segments e.g. {"list", key, "od6"}. Visibility and
// projection are appended when the URL is resolved.
type feedPath []string

// absoluteURL is a link captured from a previous response.
type absoluteURL string

func (p feedPath) url(base string, visibility Visibility, projection Projection) (string, error) {
	segments := []string{}
	for _, s := range p {
		if strings.TrimSpace(s) == "" {
			return "", fmt.Errorf("invalid feed path %v", []string(p))
		}

		segments = append(segments, url.PathEscape(s))
	}

	segments = append(segments, string(visibility), string(projection))

	return strings.TrimSuffix(base, "/") + "/" + strings.Join(segments, "/"), nil
}

func (u absoluteURL) url(string, Visibility, Projection) (string, error) {
	if _, err := url.ParseRequestURI(string(u)); err != nil {
		return "", fmt.Errorf("invalid link '%s' (%w)", u, err)
	}

	return string(u), nil
}

func encode(options any) (url.Values, error) {
	switch v := options.(type) {
	case nil:
		return url.Values{}, nil
	case *RowQuery:
		if v == nil {
			return url.Values{}, nil
		}
	case *CellQuery:
		if v == nil {
			return url.Values{}, nil
		}
	}

	return query.Values(options)
}
