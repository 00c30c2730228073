package core

import (
	"errors"
	"testing"
)

func TestNewDataset_Ragged(t *testing.T) {
	_, err := NewDataset([]Column{col("a", "1", "2"), col("b", "1")})
	if !errors.Is(err, ErrRaggedDataset) {
		t.Fatalf("NewDataset() error = %v, want ErrRaggedDataset", err)
	}
}

func TestNewDataset_Shape(t *testing.T) {
	ds, err := NewDataset([]Column{col("a", "1", "2"), col("b", "", "x")})
	if err != nil {
		t.Fatalf("NewDataset() error = %v", err)
	}
	if ds.NumColumns() != 2 || ds.NumRows() != 2 {
		t.Errorf("shape = %dx%d, want 2x2", ds.NumRows(), ds.NumColumns())
	}
	if got := ds.Columns(); got[0] != "a" || got[1] != "b" {
		t.Errorf("Columns() = %v", got)
	}
	if ds.Column(1).NonMissing() != 1 {
		t.Errorf("NonMissing() = %d, want 1", ds.Column(1).NonMissing())
	}
}

func TestParseCell(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{"", false},
		{"NA", false},
		{"N/A", false},
		{"NULL", false},
		{"nan", false},
		{"None", false},
		{"#N/A", false},
		{"0", true},
		{" ", true},
		{"none", true},
		{"value", true},
	}
	for _, tt := range tests {
		if got := ParseCell(tt.in); got.Valid != tt.valid {
			t.Errorf("ParseCell(%q).Valid = %v, want %v", tt.in, got.Valid, tt.valid)
		}
	}
}

func TestColumn_Distinct(t *testing.T) {
	c := col("x", "a", "b", "a", "", "NULL", "c")
	if got := c.Distinct(); got != 3 {
		t.Errorf("Distinct() = %d, want 3", got)
	}
	if got := c.NonMissing(); got != 4 {
		t.Errorf("NonMissing() = %d, want 4", got)
	}
}

func TestFromRecords(t *testing.T) {
	header := []string{"name", "", "name", " email ", "name"}
	rows := [][]string{
		{"Alice", "1", "A", "a@x.gr"},
		{"Bob", "2", "B", "b@x.gr", "extra", "dropped"},
	}

	ds := FromRecords(header, rows)

	wantNames := []string{"name", "Unnamed: 1", "name.1", " email ", "name.2"}
	got := ds.Columns()
	if len(got) != len(wantNames) {
		t.Fatalf("Columns() = %v, want %v", got, wantNames)
	}
	for i := range wantNames {
		if got[i] != wantNames[i] {
			t.Errorf("Columns()[%d] = %q, want %q", i, got[i], wantNames[i])
		}
	}

	if ds.NumRows() != 2 {
		t.Errorf("NumRows() = %d, want 2", ds.NumRows())
	}
	last := ds.Column(4)
	if last.Cells[0].Valid {
		t.Error("short row should pad with missing")
	}
	if !last.Cells[1].Valid || last.Cells[1].Value != "extra" {
		t.Errorf("Cells[1] = %+v, want extra", last.Cells[1])
	}
}
