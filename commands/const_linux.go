package commands

const (
	_etc = "/usr/local/etc/gsheets-feed"
	_var = "/usr/local/var/gsheets-feed"

	DEFAULT_WORKDIR     = _var
	DEFAULT_CONFIG      = _etc + "/gsheets-feed.conf"
	DEFAULT_CREDENTIALS = _etc + "/.google/credentials.json"
)
