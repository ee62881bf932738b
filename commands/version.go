package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// VERSION is set at build time with -ldflags "-X github.com/uhppoted/gsheets-feed/commands.VERSION=..."
var VERSION = "v0.1.x"

var VersionCmd = cli.Command{
	Name:  "version",
	Usage: "Displays the current version",
	Action: func(c *cli.Context) error {
		fmt.Fprintf(c.App.Writer, "%v\n", VERSION)

		return nil
	},
}
