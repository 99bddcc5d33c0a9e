package dataset

// Convenience columns the matching units expect. Each is derived only when
// every source column is present; a column that cannot be derived is left
// absent, never fabricated.

type derivation struct {
	name      string
	sources   []string
	separator string
}

var derivations = []derivation{
	{name: "STREET", sources: []string{"STREET_NAME", "STREET_NO"}, separator: " "},
	{name: "FULLNAME", sources: []string{"FIRSTNAME", "LASTNAME"}, separator: " "},
}

// DeriveConvenienceColumns adds STREET and FULLNAME to the table when their
// source columns exist. Existing columns are never overwritten.
func DeriveConvenienceColumns(t *Table) {
	for _, d := range derivations {
		if t.HasColumn(d.name) {
			continue
		}
		sources := make([][]string, 0, len(d.sources))
		available := true
		for _, src := range d.sources {
			values, ok := t.Column(src)
			if !ok {
				available = false
				break
			}
			sources = append(sources, values)
		}
		if !available {
			continue
		}

		derived := make([]string, t.Rows())
		for row := range derived {
			value := ""
			for i, column := range sources {
				if i > 0 {
					value += d.separator
				}
				value += column[row]
			}
			derived[row] = value
		}
		// AddColumn cannot fail here: the name is new and length matches.
		_ = t.AddColumn(d.name, derived)
	}
}

// ColumnAlias maps a query-side column to the reference-side column it is
// matched against. CONTACT entries are compared against FULLNAME.
func ColumnAlias(column string) string {
	if column == "CONTACT" {
		return "FULLNAME"
	}
	return column
}
