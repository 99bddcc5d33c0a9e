package dataset

// Built-in sample data for smoke runs without a database or input files.

// SampleReference returns a small reference corpus of street names.
func SampleReference() *Table {
	t := NewTable()
	_ = t.AddColumn("STREET", []string{
		"Schloßstraße",
		"Stockflethweg",
		"Über den Bergen",
		"Überlinger Str.",
		"Goethestraße",
		"Bahnhofstrasse",
		"Musterstraße",
	})
	return t
}

// SampleQueries returns a query set with typos, abbreviations and spelling
// variants of the sample reference streets.
func SampleQueries() *Table {
	t := NewTable()
	_ = t.AddColumn("STREET", []string{
		"Schlossstr.",
		"Stockflethweg 12",
		"Ueber den Bergen",
		"Überlinger Strasse",
		"Göthestraße",
		"Bahnhofstr.",
		"",
	})
	return t
}
