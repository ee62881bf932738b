package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/uhppoted/gsheets-feed/commands"
)

func main() {
	app := cli.App{
		Name:    commands.APP,
		Usage:   "Reads and updates Google Sheets spreadsheets through the worksheets, list and cells feeds",
		Version: commands.VERSION,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", Usage: "Enables debugging information"},
			&cli.StringFlag{Name: "config", Value: commands.DEFAULT_CONFIG, Usage: "Configuration file"},
		},
		Commands:                  commands.Commands,
		DisableSliceFlagSeparator: true,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("%-5s %v", "ERROR", err)
	}
}
