package commands

const (
	_etc = "/usr/local/etc/com.github.uhppoted/gsheets-feed"
	_var = "/usr/local/var/com.github.uhppoted/gsheets-feed"

	DEFAULT_WORKDIR     = _var
	DEFAULT_CONFIG      = _etc + "/gsheets-feed.conf"
	DEFAULT_CREDENTIALS = _etc + "/.google/credentials.json"
)
