package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
)

var GetInfoCmd = cli.Command{
	Name:        "get-info",
	Usage:       "Displays the spreadsheet title, author and worksheets",
	Description: "Retrieves the worksheets feed for a spreadsheet and lists the worksheets",
	ArgsUsage:   " ",
	Flags: flags(
		&cli.BoolFlag{Name: "links", Usage: "Includes the browser link for each worksheet (requires credentials)"},
	),
	Action:      getInfo,
}

func getInfo(c *cli.Context) error {
	cmd, err := load(c)
	if err != nil {
		return err
	}

	client, err := cmd.connect(c.Context)
	if err != nil {
		return err
	}

	info, err := client.GetInfo(c.Context)
	if err != nil {
		return fmt.Errorf("unable to retrieve spreadsheet information (%v)", err)
	}

	w := c.App.Writer

	fmt.Fprintf(w, "  title:   %v\n", info.Title)
	fmt.Fprintf(w, "  updated: %v\n", info.Updated.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "  author:  %v <%v>\n", info.Author.Name, info.Author.Email)
	fmt.Fprintln(w)

	ids := map[string]int64{}
	if c.Bool("links") {
		if ids, err = client.SheetIDs(c.Context); err != nil {
			return fmt.Errorf("unable to retrieve worksheet links (%v)", err)
		}
	}

	table := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	fmt.Fprintln(table, "  ID\tTitle\tRows\tColumns\t")
	for _, ws := range info.Worksheets {
		link := ""
		if id, ok := ids[ws.Title]; ok {
			link = ws.BrowserURL(id)
		}

		fmt.Fprintf(table, "  %v\t%v\t%v\t%v\t%v\n", ws.ID, ws.Title, ws.RowCount, ws.ColCount, link)
	}

	return table.Flush()
}
