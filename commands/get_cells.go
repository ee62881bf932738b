package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/uhppoted/gsheets-feed/spreadsheet"
)

var GetCellsCmd = cli.Command{
	Name:        "get-cells",
	Usage:       "Retrieves the cells of a worksheet",
	Description: "Retrieves a range of cells from the cells feed for a worksheet",
	ArgsUsage:   " ",
	Flags: flags(
		&cli.StringFlag{Name: "worksheet", Usage: "Worksheet ID or title"},
		&cli.IntFlag{Name: "min-row", Usage: "First row (1-based)"},
		&cli.IntFlag{Name: "max-row", Usage: "Last row (1-based)"},
		&cli.IntFlag{Name: "min-col", Usage: "First column (1-based)"},
		&cli.IntFlag{Name: "max-col", Usage: "Last column (1-based)"},
		&cli.BoolFlag{Name: "empty", Usage: "Includes empty cells"},
	),
	Action: getCells,
}

func getCells(c *cli.Context) error {
	cmd, err := load(c)
	if err != nil {
		return err
	}

	sheet, err := cmd.sheet()
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

	query := spreadsheet.CellQuery{
		MinRow:      c.Int("min-row"),
		MaxRow:      c.Int("max-row"),
		MinCol:      c.Int("min-col"),
		MaxCol:      c.Int("max-col"),
		ReturnEmpty: c.Bool("empty"),
	}

	cells, err := worksheet.GetCells(c.Context, &query)
	if err != nil {
		return fmt.Errorf("unable to retrieve cells (%v)", err)
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 8, 2, ' ', 0)

	fmt.Fprintln(w, "  Cell\tValue\tInput")
	for _, cell := range cells {
		fmt.Fprintf(w, "  R%vC%v\t%v\t%v\n", cell.Row, cell.Col, cell.Value, cell.InputValue)
	}

	return w.Flush()
}
