package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/uhppoted/gsheets-feed/spreadsheet"
)

var GetRowsCmd = cli.Command{
	Name:        "get-rows",
	Usage:       "Retrieves the rows of a worksheet",
	Description: "Retrieves the rows of a worksheet from the list feed and displays them or stores them to a TSV file",
	ArgsUsage:   " ",
	Flags: flags(
		&cli.StringFlag{Name: "worksheet", Usage: "Worksheet ID or title"},
		&cli.StringFlag{Name: "columns", Usage: "Comma separated list of columns to display first"},
		&cli.BoolFlag{Name: "only", Usage: "Restricts the output to the --columns list"},
		&cli.StringFlag{Name: "query", Usage: "Structured query e.g. 'age > 25'"},
		&cli.StringFlag{Name: "orderby", Usage: "Sort column e.g. 'column:name'"},
		&cli.BoolFlag{Name: "reverse", Usage: "Reverses the sort order"},
		&cli.IntFlag{Name: "start", Usage: "1-based index of the first row to retrieve"},
		&cli.IntFlag{Name: "max", Usage: "Maximum number of rows to retrieve"},
		&cli.StringFlag{Name: "file", Usage: "TSV file for the retrieved rows"},
	),
	Action: getRows,
}

func getRows(c *cli.Context) error {
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

	query := spreadsheet.RowQuery{
		Start:   c.Int("start"),
		Num:     c.Int("max"),
		OrderBy: c.String("orderby"),
		Reverse: c.Bool("reverse"),
		Query:   c.String("query"),
	}

	if cmd.debug {
		debugf("worksheet - ID:%v  title:%v  query:%+v", worksheet.ID, worksheet.Title, query)
	}

	rows, err := worksheet.GetRows(c.Context, &query)
	if err != nil {
		return fmt.Errorf("unable to retrieve rows (%v)", err)
	}

	columns := []string{}
	if s := strings.TrimSpace(c.String("columns")); s != "" {
		columns = strings.Split(s, ",")
	}

	if len(rows) == 0 && len(columns) == 0 {
		infof("no rows in worksheet '%v'", worksheet.Title)
		return nil
	}

	table, err := makeTable(rows, columns, c.Bool("only"))
	if err != nil {
		return err
	}

	file := c.String("file")
	if file == "" {
		return table.print(c.App.Writer)
	}

	tmp, err := os.CreateTemp(os.TempDir(), "gsheets-feed")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := table.toTSV(tmp); err != nil {
		return fmt.Errorf("error creating TSV file (%v)", err)
	}

	tmp.Close()

	if err := os.MkdirAll(filepath.Dir(file), 0770); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), file); err != nil {
		return err
	}

	infof("retrieved %v rows to file %s", len(rows), file)

	return nil
}
