package gdata

import (
	"regexp"
	"strings"
)

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

var columnFiller = regexp.MustCompile(`[\s_]+`)
var xmlName = regexp.MustCompile(`^[\p{L}_][\p{L}\p{N}\p{M}._-]*$`)

// Escape makes a value safe for use as element content or as a double quoted
// attribute value. Only &, <, > and " are replaced.
func Escape(v string) string {
	return escaper.Replace(v)
}

// ColumnName converts a column header to the key the list feed uses for it,
// i.e. lowercase with whitespace and underscores removed.
func ColumnName(v string) string {
	return strings.ToLower(columnFiller.ReplaceAllString(v, ""))
}

// IsName returns true if a column name can be used as the local part of a gsx element
// name. Headers like 'Cost ($)' sanitise to names that can't.
func IsName(v string) bool {
	return xmlName.MatchString(v)
}
