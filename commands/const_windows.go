package commands

import (
	"os"
	"path/filepath"
)

var (
	_etc = filepath.Join(os.Getenv("PROGRAMDATA"), "gsheets-feed")
	_var = filepath.Join(os.Getenv("PROGRAMDATA"), "gsheets-feed", "var")

	DEFAULT_WORKDIR     = _var
	DEFAULT_CONFIG      = filepath.Join(_etc, "gsheets-feed.conf")
	DEFAULT_CREDENTIALS = filepath.Join(_etc, ".google", "credentials.json")
)
