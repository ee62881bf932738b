package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/uhppoted/gsheets-feed/spreadsheet"
)

var DeleteRowCmd = cli.Command{
	Name:        "delete-row",
	Usage:       "Deletes rows from a worksheet",
	Description: "Deletes the rows matching a structured query, or the row at an index",
	ArgsUsage:   " ",
	Flags: flags(
		&cli.StringFlag{Name: "worksheet", Usage: "Worksheet ID or title"},
		&cli.StringFlag{Name: "query", Usage: "Structured query e.g. 'cardnumber = 6001001'"},
		&cli.IntFlag{Name: "index", Usage: "1-based index of the row to delete"},
	),
	Action: deleteRow,
}

func deleteRow(c *cli.Context) error {
	cmd, err := load(c)
	if err != nil {
		return err
	}

	sheet, err := cmd.sheet()
	if err != nil {
		return err
	}

	query, err := selectRows(c.String("query"), c.Int("index"))
	if err != nil {
		return err
	}

	client, err := cmd.connect(c.Context)
	if err != nil {
		return err
	}

	worksheet, err := client.Worksheet(c.Context, sheet)
	if err != nil {
		return err
	}

	rows, err := worksheet.GetRows(c.Context, query)
	if err != nil {
		return fmt.Errorf("unable to retrieve rows (%v)", err)
	}

	// ... delete from the end so that indices stay valid
	for i := len(rows) - 1; i >= 0; i-- {
		if err := rows[i].Delete(c.Context); err != nil {
			return fmt.Errorf("error deleting row %v (%v)", rows[i].ID, err)
		}

		if cmd.debug {
			debugf("deleted row %v", rows[i].ID)
		}
	}

	infof("deleted %v rows from worksheet '%v'", len(rows), worksheet.Title)

	return nil
}

// selectRows builds the list feed query for either a structured query or a row index.
func selectRows(query string, index int) (*spreadsheet.RowQuery, error) {
	switch {
	case query != "" && index != 0:
		return nil, fmt.Errorf("--query and --index are mutually exclusive")

	case query != "":
		return &spreadsheet.RowQuery{Query: query}, nil

	case index > 0:
		return &spreadsheet.RowQuery{Start: index, Num: 1}, nil

	case index < 0:
		return nil, fmt.Errorf("invalid row index %v", index)

	default:
		return nil, fmt.Errorf("--query or --index is a required option")
	}
}
