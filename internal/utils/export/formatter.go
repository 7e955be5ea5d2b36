package export

import "strings"

// Column maps a dotted field path in a source row (e.g. "student.firstName") to
// the label used as the spreadsheet column header. Column order is preserved in
// the output.
type Column struct {
	Path  string
	Label string
}

// Flatten resolves each column's dotted path against every row and produces flat
// records keyed by label. A missing field or missing intermediate object never
// fails; the label is still present with an empty value, so the exported sheet
// gets a blank cell rather than a shifted row.
func Flatten(rows []map[string]any, columns []Column) []map[string]any {
	flat := make([]map[string]any, len(rows))
	for i, row := range rows {
		record := make(map[string]any, len(columns))
		for _, col := range columns {
			value := resolvePath(row, col.Path)
			if value == nil {
				value = ""
			}
			record[col.Label] = value
		}
		flat[i] = record
	}
	return flat
}

// resolvePath walks a dotted path by sequential key traversal. Any non-map
// intermediate or absent key resolves to nil.
func resolvePath(row map[string]any, path string) any {
	var current any = row
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = m[part]
		if !ok {
			return nil
		}
	}
	return current
}
