package commands

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

var AddWorksheetCmd = cli.Command{
	Name:      "add-worksheet",
	Usage:     "Adds a worksheet to the spreadsheet",
	ArgsUsage: " ",
	Flags: flags(
		&cli.StringFlag{Name: "title", Usage: "Worksheet title", Required: true},
		&cli.IntFlag{Name: "rows", Usage: "Number of rows", Value: 100},
		&cli.IntFlag{Name: "cols", Usage: "Number of columns", Value: 20},
	),
	Action: addWorksheet,
}

func addWorksheet(c *cli.Context) error {
	cmd, err := load(c)
	if err != nil {
		return err
	}

	title := strings.TrimSpace(c.String("title"))
	rows := c.Int("rows")
	cols := c.Int("cols")

	if title == "" {
		return fmt.Errorf("invalid worksheet title")
	} else if rows < 1 || cols < 1 {
		return fmt.Errorf("invalid worksheet size %vx%v", rows, cols)
	}

	client, err := cmd.connect(c.Context)
	if err != nil {
		return err
	}

	worksheet, err := client.AddWorksheet(c.Context, title, rows, cols)
	if err != nil {
		return err
	}

	infof("added worksheet '%v' (%v)", worksheet.Title, worksheet.ID)

	return nil
}
