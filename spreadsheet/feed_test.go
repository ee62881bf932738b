package spreadsheet

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const worksheetsFeed = `<?xml version='1.0' encoding='UTF-8'?>
<feed xmlns='http://www.w3.org/2005/Atom' xmlns:openSearch='http://a9.com/-/spec/opensearchrss/1.0/' xmlns:gs='http://schemas.google.com/spreadsheets/2006'>
  <id>https://spreadsheets.google.com/feeds/worksheets/KEY/private/full</id>
  <updated>2020-05-12T10:15:31.123Z</updated>
  <title type='text'>ACL</title>
  <link rel='alternate' type='application/atom+xml' href='https://docs.google.com/spreadsheets/d/KEY/edit'/>
  <author>
    <name>uhppoted</name>
    <email>uhppoted@example.com</email>
  </author>
  <entry>
    <id>https://spreadsheets.google.com/feeds/worksheets/KEY/private/full/od6</id>
    <updated>2020-05-12T10:15:31.123Z</updated>
    <title type='text'>ACL</title>
    <link rel='http://schemas.google.com/spreadsheets/2006#listfeed' type='application/atom+xml' href='https://spreadsheets.google.com/feeds/list/KEY/od6/private/full'/>
    <link rel='edit' type='application/atom+xml' href='{{URL}}/worksheets/KEY/private/full/od6/1'/>
    <gs:rowCount>100</gs:rowCount>
    <gs:colCount>7</gs:colCount>
  </entry>
  <entry>
    <id>https://spreadsheets.google.com/feeds/worksheets/KEY/private/full/oy7z2ps</id>
    <updated>2020-05-12T10:15:31.123Z</updated>
    <title type='text'>Log</title>
    <gs:rowCount>1000</gs:rowCount>
    <gs:colCount>8</gs:colCount>
  </entry>
</feed>`

const listFeed = `<?xml version='1.0' encoding='UTF-8'?>
<feed xmlns='http://www.w3.org/2005/Atom' xmlns:openSearch='http://a9.com/-/spec/opensearchrss/1.0/' xmlns:gsx='http://schemas.google.com/spreadsheets/2006/extended'>
  <id>https://spreadsheets.google.com/feeds/list/KEY/od6/private/full</id>
  <title type='text'>ACL</title>
  <entry>
    <id>https://spreadsheets.google.com/feeds/list/KEY/od6/private/full/cokwr</id>
    <title type='text'>6001001</title>
    <content type='text'>from: 2020-01-01, to: 2020-12-31, gate: Y</content>
    <link rel='self' type='application/atom+xml' href='{{URL}}/list/KEY/od6/private/full/cokwr'/>
    <link rel='edit' type='application/atom+xml' href='{{URL}}/list/KEY/od6/private/full/cokwr/1'/>
    <gsx:cardnumber>6001001</gsx:cardnumber>
    <gsx:from>2020-01-01</gsx:from>
    <gsx:to>2020-12-31</gsx:to>
    <gsx:gate>Y</gsx:gate>
    <gsx:dungeon/>
  </entry>
  <entry>
    <id>https://spreadsheets.google.com/feeds/list/KEY/od6/private/full/cpzh4</id>
    <title type='text'>6001002</title>
    <link rel='edit' type='application/atom+xml' href='{{URL}}/list/KEY/od6/private/full/cpzh4/1'/>
    <gsx:cardnumber>6001002</gsx:cardnumber>
    <gsx:from>2020-02-03</gsx:from>
    <gsx:to>2020-11-30</gsx:to>
    <gsx:gate>Y</gsx:gate>
    <gsx:dungeon>N</gsx:dungeon>
  </entry>
</feed>`

const cellsFeed = `<?xml version='1.0' encoding='UTF-8'?>
<feed xmlns='http://www.w3.org/2005/Atom' xmlns:gs='http://schemas.google.com/spreadsheets/2006'>
  <id>https://spreadsheets.google.com/feeds/cells/KEY/od6/private/full</id>
  <entry>
    <id>https://spreadsheets.google.com/feeds/cells/KEY/od6/private/full/R1C1</id>
    <title type='text'>A1</title>
    <link rel='edit' type='application/atom+xml' href='{{URL}}/cells/KEY/od6/private/full/R1C1/1'/>
    <gs:cell row='1' col='1' inputValue='Card Number'>Card Number</gs:cell>
  </entry>
  <entry>
    <id>https://spreadsheets.google.com/feeds/cells/KEY/od6/private/full/R2C1</id>
    <title type='text'>A2</title>
    <link rel='edit' type='application/atom+xml' href='{{URL}}/cells/KEY/od6/private/full/R2C1/1'/>
    <gs:cell row='2' col='1' inputValue='6001001' numericValue='6001001.0'>6001001</gs:cell>
  </entry>
  <entry>
    <id>https://spreadsheets.google.com/feeds/cells/KEY/od6/private/full/R2C5</id>
    <title type='text'>E2</title>
    <link rel='edit' type='application/atom+xml' href='{{URL}}/cells/KEY/od6/private/full/R2C5/1'/>
    <gs:cell row='2' col='5' inputValue='=SUM(A2:D2)' numericValue='12.5'>12.5</gs:cell>
  </entry>
</feed>`

type request struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	ContentType   string
	Body          string
}

type response struct {
	status      int
	contentType string
	body        string
}

// feed is a fake feeds server that records every request and replies with the
// response registered for the request path (or the default response).
type feed struct {
	sync.Mutex
	server    *httptest.Server
	requests  []request
	responses map[string]response
	fallback  response
}

func newFeed(t *testing.T) *feed {
	f := feed{
		responses: map[string]response{},
		fallback:  response{status: http.StatusOK, contentType: "application/atom+xml"},
	}

	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)

	return &f
}

func (f *feed) URL() string {
	return f.server.URL
}

func (f *feed) reply(path string, status int, contentType, body string) {
	f.Lock()
	defer f.Unlock()

	f.responses[path] = response{
		status:      status,
		contentType: contentType,
		body:        strings.ReplaceAll(body, "{{URL}}", f.server.URL),
	}
}

func (f *feed) serve(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)

	f.Lock()
	f.requests = append(f.requests, request{
		Method:        r.Method,
		Path:          r.URL.Path,
		Query:         r.URL.RawQuery,
		Authorization: r.Header.Get("Authorization"),
		ContentType:   r.Header.Get("Content-Type"),
		Body:          string(b),
	})

	rsp, ok := f.responses[r.URL.Path]
	if !ok {
		rsp = f.fallback
	}
	f.Unlock()

	if rsp.contentType != "" {
		w.Header().Set("Content-Type", rsp.contentType)
	}

	w.WriteHeader(rsp.status)
	w.Write([]byte(rsp.body))
}

func (f *feed) last(t *testing.T) request {
	f.Lock()
	defer f.Unlock()

	require.NotEmpty(t, f.requests, "no requests")

	return f.requests[len(f.requests)-1]
}

func (f *feed) count() int {
	f.Lock()
	defer f.Unlock()

	return len(f.requests)
}

func newTestClient(t *testing.T, f *feed, options ...Option) *Client {
	c, err := New("KEY", append([]Option{WithFeedURL(f.URL() + "/")}, options...)...)
	require.NoError(t, err)

	return c
}
