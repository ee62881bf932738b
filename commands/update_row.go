package commands

import (
	"fmt"
	"maps"
	"slices"

	"github.com/urfave/cli/v2"

	"github.com/uhppoted/gsheets-feed/gdata"
)

var UpdateRowCmd = cli.Command{
	Name:        "update-row",
	Usage:       "Updates rows in a worksheet",
	Description: "Sets column values in the rows matching a structured query, or in the row at an index",
	ArgsUsage:   " ",
	Flags: flags(
		&cli.StringFlag{Name: "worksheet", Usage: "Worksheet ID or title"},
		&cli.StringFlag{Name: "query", Usage: "Structured query e.g. 'cardnumber = 6001001'"},
		&cli.IntFlag{Name: "index", Usage: "1-based index of the row to update"},
		&cli.StringSliceFlag{Name: "set", Usage: "Column value e.g. --set 'To=2025-12-31'"},
	),
	Action: updateRow,
}

func updateRow(c *cli.Context) error {
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

	values, err := parseSet(c.StringSlice("set"))
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

	for _, row := range rows {
		for _, k := range unknown(row.Columns(), values) {
			warnf("row %v has no column '%v' - value not updated", row.ID, k)
		}

		for k, v := range values {
			row.Set(k, v)
		}

		if err := row.Save(c.Context); err != nil {
			return fmt.Errorf("error updating row %v (%v)", row.ID, err)
		}
	}

	infof("updated %v rows in worksheet '%v'", len(rows), worksheet.Title)

	return nil
}

// unknown returns the --set columns that are not in a row. The list feed only updates
// columns that already exist in the row entry.
func unknown(columns []string, values map[string]string) []string {
	list := []string{}
	for _, k := range slices.Sorted(maps.Keys(values)) {
		if !slices.Contains(columns, gdata.ColumnName(k)) {
			list = append(list, k)
		}
	}

	return list
}
