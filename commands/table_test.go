package commands

import (
	"reflect"
	"strings"
	"testing"
)

type testRow struct {
	columns []string
	values  map[string]string
}

func (r testRow) Columns() []string {
	return r.columns
}

func (r testRow) Get(column string) string {
	return r.values[column]
}

var testRows = []testRow{
	{
		columns: []string{"cardnumber", "from", "to", "gate"},
		values:  map[string]string{"cardnumber": "6001001", "from": "2020-01-01", "to": "2020-12-31", "gate": "Y"},
	},
	{
		columns: []string{"cardnumber", "from", "to", "gate", "tower"},
		values:  map[string]string{"cardnumber": "6001002", "from": "2020-02-03", "to": " 2020-11-30 ", "tower": "N"},
	},
}

func TestMakeTable(t *testing.T) {
	expected := table{
		header: []string{"cardnumber", "from", "to", "gate", "tower"},
		records: [][]string{
			{"6001001", "2020-01-01", "2020-12-31", "Y", ""},
			{"6001002", "2020-02-03", "2020-11-30", "", "N"},
		},
	}

	table, err := makeTable(testRows, nil, false)
	if err != nil {
		t.Fatalf("Unexpected error returned from makeTable (%v)", err)
	}

	if !reflect.DeepEqual(*table, expected) {
		t.Errorf("Incorrect table\n   expected: %v\n   got:      %v\n", expected, *table)
	}
}

func TestMakeTableWithOutOfOrderColumns(t *testing.T) {
	expected := table{
		header: []string{"gate", "cardnumber", "from", "to", "tower"},
		records: [][]string{
			{"Y", "6001001", "2020-01-01", "2020-12-31", ""},
			{"", "6001002", "2020-02-03", "2020-11-30", "N"},
		},
	}

	table, err := makeTable(testRows, []string{"Gate", "Card Number"}, false)
	if err != nil {
		t.Fatalf("Unexpected error returned from makeTable (%v)", err)
	}

	if !reflect.DeepEqual(*table, expected) {
		t.Errorf("Incorrect table\n   expected: %v\n   got:      %v\n", expected, *table)
	}
}

func TestMakeTableWithSelectedColumns(t *testing.T) {
	expected := table{
		header: []string{"cardnumber", "tower"},
		records: [][]string{
			{"6001001", ""},
			{"6001002", "N"},
		},
	}

	table, err := makeTable(testRows, []string{"Card Number", "Tower", " "}, true)
	if err != nil {
		t.Fatalf("Unexpected error returned from makeTable (%v)", err)
	}

	if !reflect.DeepEqual(*table, expected) {
		t.Errorf("Incorrect table\n   expected: %v\n   got:      %v\n", expected, *table)
	}
}

func TestMakeTableWithDuplicateColumn(t *testing.T) {
	if _, err := makeTable(testRows, []string{"Card Number", "card_number"}, false); err == nil {
		t.Errorf("Expected error for duplicate column, got %v", err)
	}
}

func TestMakeTableWithoutColumns(t *testing.T) {
	if _, err := makeTable([]testRow{}, nil, false); err == nil {
		t.Errorf("Expected error for empty table, got %v", err)
	}
}

func TestTableToTSV(t *testing.T) {
	expected := "cardnumber\tfrom\tto\tgate\ttower\n" +
		"6001001\t2020-01-01\t2020-12-31\tY\t\n" +
		"6001002\t2020-02-03\t2020-11-30\t\tN\n"

	table, err := makeTable(testRows, nil, false)
	if err != nil {
		t.Fatalf("Unexpected error returned from makeTable (%v)", err)
	}

	var b strings.Builder
	if err := table.toTSV(&b); err != nil {
		t.Fatalf("Unexpected error returned from toTSV (%v)", err)
	}

	if b.String() != expected {
		t.Errorf("Incorrect TSV\n   expected: %q\n   got:      %q\n", expected, b.String())
	}
}
