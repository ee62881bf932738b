package spreadsheet

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/uhppoted/gsheets-feed/gdata"
)

const atomXML = "application/atom+xml"

// request is the single path through which every feed call goes. It resolves the
// target, applies the credential, sends the request, classifies the response and
// parses a non-empty body. The raw body is returned alongside the parsed document
// for the row edit logic, which works on the original text.
func (c *Client) request(ctx context.Context, t target, method string, query url.Values, body string) (*gdata.Document, string, error) {
	token, err := c.auth.current()
	if err != nil {
		return nil, "", err
	}

	visibility, projection := c.access(token != nil)

	uri, err := t.url(c.feedURL, visibility, projection)
	if err != nil {
		return nil, "", err
	}

	if method == http.MethodGet && len(query) > 0 {
		if strings.Contains(uri, "?") {
			uri += "&" + query.Encode()
		} else {
			uri += "?" + query.Encode()
		}
	}

	var payload io.Reader
	if method == http.MethodPost || method == http.MethodPut {
		payload = strings.NewReader(body)
	}

	rq, err := http.NewRequestWithContext(ctx, method, uri, payload)
	if err != nil {
		return nil, "", err
	}

	if token != nil {
		rq.Header.Set("Authorization", token.header())
	}

	if method == http.MethodPost || method == http.MethodPut {
		rq.Header.Set("Content-Type", atomXML)
	}

	response, err := c.http.Do(rq)
	if err != nil {
		return nil, "", err
	}

	defer response.Body.Close()

	b, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, "", fmt.Errorf("error reading %v response (%w)", method, err)
	}

	if err := classify(response, b); err != nil {
		return nil, "", err
	}

	if len(b) == 0 {
		return nil, "", nil
	}

	doc, err := gdata.Parse(b)
	if err != nil {
		return nil, "", err
	}

	return doc, string(b), nil
}

// classify maps a feed response to an error. A private sheet requested without
// sufficient credentials comes back as a 200 HTML login page, so that case is
// detected by content type.
func classify(response *http.Response, body []byte) error {
	switch {
	case response.StatusCode == http.StatusUnauthorized:
		return &ResponseError{
			StatusCode: response.StatusCode,
			Body:       string(body),
			Err:        ErrUnauthorized,
		}

	case response.StatusCode >= 400:
		return &ResponseError{
			StatusCode: response.StatusCode,
			Body:       string(body),
			Err:        ErrRequestFailed,
		}

	case response.StatusCode == http.StatusOK && strings.Contains(response.Header.Get("Content-Type"), "text/html"):
		return &ResponseError{
			StatusCode: response.StatusCode,
			Err:        ErrPrivateResource,
		}
	}

	return nil
}

func (c *Client) access(authenticated bool) (Visibility, Projection) {
	visibility, projection := c.visibility, c.projection

	if visibility == "" {
		visibility = Public
		if authenticated {
			visibility = Private
		}
	}

	if projection == "" {
		projection = Values
		if authenticated {
			projection = Full
		}
	}

	return visibility, projection
}
