package tsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/uhppoted/gsheets-feed/gdata"
)

// MakeTSV writes a header and records as tab separated values. Records shorter than
// the header are padded with empty fields.
func MakeTSV(f io.Writer, header []string, records [][]string) error {
	if len(header) == 0 {
		return fmt.Errorf("Missing/invalid header row")
	}

	// ... header
	index := map[string]bool{}
	h := make([]string, len(header))
	for i, v := range header {
		k := gdata.ColumnName(v)
		if k == "" {
			return fmt.Errorf("Missing column name in column %v", i+1)
		} else if index[k] {
			return fmt.Errorf("Duplicate column name '%s'", v)
		}

		index[k] = true
		h[i] = clean(v)
	}

	// ... records
	rows := [][]string{}
	for _, record := range records {
		row := make([]string, len(h))
		for i, v := range record {
			if i < len(row) {
				row[i] = clean(v)
			}
		}

		rows = append(rows, row)
	}

	// ... write to file
	w := csv.NewWriter(f)
	w.Comma = '\t'

	w.Write(h)
	for _, row := range rows {
		w.Write(row)
	}

	w.Flush()

	return w.Error()
}

// ParseTSV reads tab separated values with a header row and returns the header and
// a column -> value map for each record. Blank records are skipped.
func ParseTSV(f io.Reader) ([]string, []map[string]string, error) {
	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) == 0 {
		return nil, nil, fmt.Errorf("TSV file is empty")
	}

	// header
	index := map[string]bool{}
	header := []string{}
	for i, v := range records[0] {
		k := gdata.ColumnName(v)
		if k == "" {
			return nil, nil, fmt.Errorf("Missing column name in column %v", i+1)
		} else if index[k] {
			return nil, nil, fmt.Errorf("Duplicate column name '%s'", v)
		}

		index[k] = true
		header = append(header, clean(v))
	}

	if len(header) == 0 {
		return nil, nil, fmt.Errorf("TSV file missing header")
	}

	// data
	rows := []map[string]string{}
	for _, record := range records[1:] {
		row := map[string]string{}
		blank := true

		for i, v := range record {
			if i < len(header) {
				row[header[i]] = clean(v)
				blank = blank && clean(v) == ""
			}
		}

		if !blank {
			rows = append(rows, row)
		}
	}

	return header, rows, nil
}

func clean(v string) string {
	return strings.TrimSpace(v)
}
