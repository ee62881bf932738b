package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/uhppoted/gsheets-feed/tsv"
)

var AddRowCmd = cli.Command{
	Name:        "add-row",
	Usage:       "Appends rows to a worksheet",
	Description: "Appends a row built from --set column=value options, or one row for each record of a TSV file",
	ArgsUsage:   " ",
	Flags: flags(
		&cli.StringFlag{Name: "worksheet", Usage: "Worksheet ID or title"},
		&cli.StringSliceFlag{Name: "set", Usage: "Column value e.g. --set 'Card Number=6001001'"},
		&cli.StringFlag{Name: "file", Usage: "TSV file with a header row"},
	),
	Action: addRow,
}

func addRow(c *cli.Context) error {
	cmd, err := load(c)
	if err != nil {
		return err
	}

	sheet, err := cmd.sheet()
	if err != nil {
		return err
	}

	records := []map[string]string{}

	switch {
	case c.String("file") != "" && len(c.StringSlice("set")) > 0:
		return fmt.Errorf("--set and --file are mutually exclusive")

	case c.String("file") != "":
		f, err := os.Open(c.String("file"))
		if err != nil {
			return err
		}

		defer f.Close()

		if _, records, err = tsv.ParseTSV(f); err != nil {
			return fmt.Errorf("invalid TSV file (%v)", err)
		}

	default:
		record, err := parseSet(c.StringSlice("set"))
		if err != nil {
			return err
		}

		records = append(records, record)
	}

	client, err := cmd.connect(c.Context)
	if err != nil {
		return err
	}

	worksheet, err := client.Worksheet(c.Context, sheet)
	if err != nil {
		return err
	}

	for i, record := range records {
		row, err := worksheet.AddRow(c.Context, record)
		if err != nil {
			return fmt.Errorf("error adding row %v (%v)", i+1, err)
		}

		if cmd.debug && row != nil {
			debugf("added row %v", row.ID)
		}
	}

	infof("added %v rows to worksheet '%v'", len(records), worksheet.Title)

	return nil
}

// parseSet converts a list of column=value options to a row. The value may be empty
// but the column may not.
func parseSet(list []string) (map[string]string, error) {
	if len(list) == 0 {
		return nil, fmt.Errorf("--set or --file is a required option")
	}

	record := map[string]string{}
	for _, s := range list {
		column, value, ok := strings.Cut(s, "=")
		if !ok || strings.TrimSpace(column) == "" {
			return nil, fmt.Errorf("invalid --set '%v' - expected something like 'Card Number=6001001'", s)
		}

		record[strings.TrimSpace(column)] = value
	}

	return record, nil
}
