package spreadsheet

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Revision identifies the latest revision of the spreadsheet file.
type Revision struct {
	ID       string
	Modified time.Time
}

// Revision returns the most recent Drive revision of the spreadsheet, which can be
// used to detect changes without re-reading the feeds.
func (c *Client) Revision(ctx context.Context) (*Revision, error) {
	options, err := c.apiOptions(ctx, c.driveEndpoint)
	if err != nil {
		return nil, err
	}

	gdrive, err := drive.NewService(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Drive client (%w)", err)
	}

	page := ""
	latest := Revision{}

	for {
		call := gdrive.Revisions.List(c.key).Context(ctx)
		if page != "" {
			call.PageToken(page)
		}

		revisions, err := call.Do()
		if err != nil {
			return nil, err
		}

		for _, revision := range revisions.Revisions {
			datetime, err := time.Parse(time.RFC3339Nano, revision.ModifiedTime)
			if err != nil {
				return nil, err
			}

			if latest.Modified.Before(datetime) {
				latest.ID = revision.Id
				latest.Modified = datetime
			}
		}

		if page = revisions.NextPageToken; page == "" {
			break
		}
	}

	if latest.Modified.IsZero() {
		return nil, fmt.Errorf("unable to identify latest revision for spreadsheet %s", c.key)
	}

	return &latest, nil
}

// SheetIDs returns the numeric sheet IDs of the worksheets keyed by title. The
// worksheets feed only has the feed IDs (e.g. od6) which are not usable in browser
// links.
func (c *Client) SheetIDs(ctx context.Context) (map[string]int64, error) {
	options, err := c.apiOptions(ctx, c.sheetsEndpoint)
	if err != nil {
		return nil, err
	}

	google, err := sheets.NewService(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets client (%v)", err)
	}

	spreadsheet, err := google.Spreadsheets.Get(c.key).Fields("sheets.properties(sheetId,title)").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spreadsheet (%w)", err)
	}

	ids := map[string]int64{}
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil {
			ids[sheet.Properties.Title] = sheet.Properties.SheetId
		}
	}

	return ids, nil
}

func (c *Client) apiOptions(ctx context.Context, endpoint string) ([]option.ClientOption, error) {
	if c.auth.Mode() == Anonymous {
		return nil, ErrAnonymous
	}

	client := oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, c.http), c.TokenSource())
	options := []option.ClientOption{
		option.WithHTTPClient(client),
	}

	if endpoint != "" {
		options = append(options, option.WithEndpoint(endpoint))
	}

	return options, nil
}
