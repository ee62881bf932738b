package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/uhppoted/gsheets-feed/gdata"
	"github.com/uhppoted/gsheets-feed/tsv"
)

type record interface {
	Columns() []string
	Get(column string) string
}

type table struct {
	header  []string
	records [][]string
}

// makeTable flattens a list of rows into a table. The requested columns come first, in
// the requested order, followed by any other columns in feed order. If only is set the
// table is restricted to the requested columns.
func makeTable[R record](rows []R, columns []string, only bool) (*table, error) {
	header := []string{}
	index := map[string]bool{}

	for _, c := range columns {
		k := gdata.ColumnName(c)
		if k == "" {
			continue
		} else if index[k] {
			return nil, fmt.Errorf("duplicate column name '%s'", c)
		}

		index[k] = true
		header = append(header, k)
	}

	if !only {
		for _, row := range rows {
			for _, k := range row.Columns() {
				if !index[k] {
					index[k] = true
					header = append(header, k)
				}
			}
		}
	}

	if len(header) == 0 {
		return nil, fmt.Errorf("no columns")
	}

	records := [][]string{}
	for _, row := range rows {
		record := []string{}
		for _, k := range header {
			record = append(record, clean(row.Get(k)))
		}

		records = append(records, record)
	}

	return &table{
		header:  header,
		records: records,
	}, nil
}

func (t *table) print(w io.Writer) error {
	f := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	fmt.Fprintf(f, "  %v\n", strings.Join(t.header, "\t"))
	for _, r := range t.records {
		fmt.Fprintf(f, "  %v\n", strings.Join(r, "\t"))
	}

	return f.Flush()
}

func (t *table) toTSV(w io.Writer) error {
	return tsv.MakeTSV(w, t.header, t.records)
}

func clean(v string) string {
	return strings.TrimSpace(v)
}
