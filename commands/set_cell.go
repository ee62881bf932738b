package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/uhppoted/gsheets-feed/spreadsheet"
)

var SetCellCmd = cli.Command{
	Name:        "set-cell",
	Usage:       "Updates a single cell",
	Description: "Sets the input value of a worksheet cell. An empty --value clears the cell",
	ArgsUsage:   " ",
	Flags: flags(
		&cli.StringFlag{Name: "worksheet", Usage: "Worksheet ID or title"},
		&cli.IntFlag{Name: "row", Usage: "Cell row (1-based)", Required: true},
		&cli.IntFlag{Name: "col", Usage: "Cell column (1-based)", Required: true},
		&cli.StringFlag{Name: "value", Usage: "Cell value or formula e.g. '=A2*2'"},
	),
	Action: setCell,
}

func setCell(c *cli.Context) error {
	cmd, err := load(c)
	if err != nil {
		return err
	}

	sheet, err := cmd.sheet()
	if err != nil {
		return err
	}

	row := c.Int("row")
	col := c.Int("col")
	if row < 1 || col < 1 {
		return fmt.Errorf("invalid cell R%vC%v", row, col)
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
		MinRow:      row,
		MaxRow:      row,
		MinCol:      col,
		MaxCol:      col,
		ReturnEmpty: true,
	}

	cells, err := worksheet.GetCells(c.Context, &query)
	if err != nil {
		return fmt.Errorf("unable to retrieve cell R%vC%v (%v)", row, col, err)
	} else if len(cells) == 0 {
		return fmt.Errorf("cell R%vC%v not found in worksheet '%v'", row, col, worksheet.Title)
	}

	cell := cells[0]
	if err := cell.SetValue(c.Context, c.String("value")); err != nil {
		return err
	}

	infof("R%vC%v: %v", cell.Row, cell.Col, cell.Value)

	return nil
}
