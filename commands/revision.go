package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var RevisionCmd = cli.Command{
	Name:        "revision",
	Usage:       "Displays the latest revision of the spreadsheet",
	Description: "Retrieves the most recently modified revision of the spreadsheet from Google Drive. Requires credentials",
	ArgsUsage:   " ",
	Flags:       flags(),
	Action:      revision,
}

func revision(c *cli.Context) error {
	cmd, err := load(c)
	if err != nil {
		return err
	}

	client, err := cmd.connect(c.Context)
	if err != nil {
		return err
	}

	revision, err := client.Revision(c.Context)
	if err != nil {
		return fmt.Errorf("unable to retrieve spreadsheet revision (%v)", err)
	}

	fmt.Fprintf(c.App.Writer, "%v  %v\n", revision.ID, revision.Modified.Format("2006-01-02 15:04:05"))

	return nil
}
