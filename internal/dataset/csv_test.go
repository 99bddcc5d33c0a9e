package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCSVRoundTrip(t *testing.T) {
	table := NewTable()
	_ = table.AddColumn("STREET", []string{"Hauptstrasse 1", "Schloßstraße 5"})
	_ = table.AddColumn("CITY", []string{"Berlin", "Hamburg; Altona"})

	path := filepath.Join(t.TempDir(), "nested", "out.csv")
	if err := WriteCSV(table, path); err != nil {
		t.Fatal(err)
	}

	loaded, err := ReadCSV(path)
	if err != nil {
		t.Fatal(err)
	}

	if got := loaded.Columns(); len(got) != 2 || got[0] != "STREET" || got[1] != "CITY" {
		t.Fatalf("Columns() = %v, want [STREET CITY]", got)
	}
	if loaded.Rows() != table.Rows() {
		t.Fatalf("Rows() = %d, want %d", loaded.Rows(), table.Rows())
	}
	for row := 0; row < table.Rows(); row++ {
		for _, name := range table.Columns() {
			if got, want := loaded.Cell(row, name), table.Cell(row, name); got != want {
				t.Errorf("Cell(%d, %s) = %q, want %q", row, name, got, want)
			}
		}
	}
}

func TestReadCSVSkipsNamedIndexColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.csv")
	content := "INDEX;STREET\n0;Hauptstrasse 1\n1;Gartenweg 7\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := ReadCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if table.HasColumn("INDEX") {
		t.Error("index column survived loading")
	}
	if got := table.Cell(1, "STREET"); got != "Gartenweg 7" {
		t.Errorf("Cell(1, STREET) = %q, want Gartenweg 7", got)
	}
}

func TestReadCSVRaggedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.csv")
	content := ";A;B\n0;a1;b1\n1;a2\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := ReadCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := table.Cell(1, "B"); got != "" {
		t.Errorf("short row Cell(1, B) = %q, want empty", got)
	}
}

func TestReadCSVMissingFile(t *testing.T) {
	if _, err := ReadCSV(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Error("reading a missing file did not return an error")
	}
}

func TestReadCSVEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := ReadCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if table.Rows() != 0 || len(table.Columns()) != 0 {
		t.Errorf("empty file yielded %d rows, %d columns", table.Rows(), len(table.Columns()))
	}
}
