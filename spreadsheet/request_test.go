package spreadsheet

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestUnauthorized(t *testing.T) {
	f := newFeed(t)
	f.reply("/worksheets/KEY/public/values", http.StatusUnauthorized, "text/plain", "Token invalid - AuthSub token has wrong scope")

	c := newTestClient(t, f)

	_, err := c.GetInfo(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)

	var rerr *ResponseError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, http.StatusUnauthorized, rerr.StatusCode)
	assert.Equal(t, "Token invalid - AuthSub token has wrong scope", rerr.Body)
	assert.Contains(t, err.Error(), "Token invalid - AuthSub token has wrong scope")
}

func TestRequestFailed(t *testing.T) {
	f := newFeed(t)
	f.reply("/list/KEY/od6/public/values", http.StatusBadRequest, "text/plain", "Invalid query parameter value for max-results.")

	c := newTestClient(t, f)

	_, err := c.GetRows(context.Background(), "od6", nil)

	var rerr *ResponseError

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, http.StatusBadRequest, rerr.StatusCode)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "Invalid query parameter value for max-results.")
}

func TestRequestPrivateResource(t *testing.T) {
	f := newFeed(t)
	f.reply("/list/KEY/od6/public/values", http.StatusOK, "text/html; charset=UTF-8", "<html><body>Sign in</body></html>")

	c := newTestClient(t, f)

	rows, err := c.GetRows(context.Background(), "od6", nil)

	assert.Nil(t, rows)
	assert.ErrorIs(t, err, ErrPrivateResource)
}

func TestRequestEmptyResponse(t *testing.T) {
	f := newFeed(t)
	c := newTestClient(t, f)

	doc, xml, err := c.request(context.Background(), feedPath{"list", "KEY", "od6"}, http.MethodGet, nil, "")

	assert.NoError(t, err)
	assert.Nil(t, doc)
	assert.Empty(t, xml)

	_, err = c.GetInfo(context.Background())
	assert.ErrorIs(t, err, ErrEmptyResponse)
	assert.Contains(t, err.Error(), "no response to getInfo call")

	_, err = c.GetRows(context.Background(), "od6", nil)
	assert.ErrorIs(t, err, ErrEmptyResponse)
	assert.Contains(t, err.Error(), "no response to getRows call")

	_, err = c.GetCells(context.Background(), "od6", nil)
	assert.ErrorIs(t, err, ErrEmptyResponse)
	assert.Contains(t, err.Error(), "no response to getCells call")
}

func TestRequestInvalidXML(t *testing.T) {
	f := newFeed(t)
	f.reply("/worksheets/KEY/public/values", http.StatusOK, "application/atom+xml", "<feed><entry></feed>")

	c := newTestClient(t, f)

	_, err := c.GetInfo(context.Background())

	assert.Error(t, err)
}

func TestRequestReturnsRawXML(t *testing.T) {
	f := newFeed(t)
	f.reply("/list/KEY/od6/public/values", http.StatusOK, "application/atom+xml", listFeed)

	c := newTestClient(t, f)

	doc, xml, err := c.request(context.Background(), feedPath{"list", "KEY", "od6"}, http.MethodGet, nil, "")

	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Len(t, doc.Entries, 2)
	assert.Contains(t, xml, "<gsx:dungeon/>")
}

func TestRequestQueryString(t *testing.T) {
	f := newFeed(t)
	c := newTestClient(t, f)

	query := url.Values{"max-results": []string{"10"}, "sq": []string{"gate = Y"}}

	_, _, err := c.request(context.Background(), feedPath{"list", "KEY", "od6"}, http.MethodGet, query, "")
	require.NoError(t, err)

	rq := f.last(t)
	assert.Equal(t, "max-results=10&sq=gate+%3D+Y", rq.Query)
	assert.Empty(t, rq.ContentType)
}

func TestRequestContentType(t *testing.T) {
	f := newFeed(t)
	c := newTestClient(t, f)

	for _, method := range []string{http.MethodPost, http.MethodPut} {
		_, _, err := c.request(context.Background(), feedPath{"list", "KEY", "od6"}, method, url.Values{"ignored": []string{"x"}}, "<entry/>")
		require.NoError(t, err)

		rq := f.last(t)
		assert.Equal(t, method, rq.Method)
		assert.Equal(t, "application/atom+xml", rq.ContentType)
		assert.Equal(t, "<entry/>", rq.Body)
		assert.Empty(t, rq.Query)
	}

	_, _, err := c.request(context.Background(), absoluteURL(f.URL()+"/list/KEY/od6/private/full/cokwr/1"), http.MethodDelete, nil, "")
	require.NoError(t, err)

	rq := f.last(t)
	assert.Equal(t, http.MethodDelete, rq.Method)
	assert.Equal(t, "/list/KEY/od6/private/full/cokwr/1", rq.Path)
	assert.Empty(t, rq.ContentType)
}

func TestRequestVisibilityAndProjection(t *testing.T) {
	tests := []struct {
		name     string
		options  []Option
		token    *Token
		expected string
	}{
		{"anonymous", nil, nil, "/cells/KEY/od6/public/values"},
		{"authenticated", nil, &Token{Type: "Bearer", Value: "abc"}, "/cells/KEY/od6/private/full"},
		{"override", []Option{WithVisibility(Public), WithProjection(Full)}, &Token{Type: "Bearer", Value: "abc"}, "/cells/KEY/od6/public/full"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := newFeed(t)
			c := newTestClient(t, f, test.options...)

			if test.token != nil {
				require.NoError(t, c.SetAuthToken(*test.token))
			}

			_, _, err := c.request(context.Background(), feedPath{"cells", "KEY", "od6"}, http.MethodGet, nil, "")
			require.NoError(t, err)

			assert.Equal(t, test.expected, f.last(t).Path)
		})
	}
}

func TestRequestCancelled(t *testing.T) {
	f := newFeed(t)
	c := newTestClient(t, f)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetInfo(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, f.count())
}
