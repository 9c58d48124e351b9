package catalog

// Row is one (category, severity, count) entry of the tabular view used by
// grouped and hierarchical charts.
type Row struct {
	Category string
	Severity Severity
	Count    int
}

// BuildRows flattens the error and warning catalogs into table rows: error
// categories first, then warning categories, each in catalog order. Counts
// equal the length of the category's message list.
func BuildRows(errors, warnings Catalog) []Row {
	rows := make([]Row, 0, len(errors.Categories)+len(warnings.Categories))
	for _, cat := range errors.Categories {
		rows = append(rows, Row{Category: cat.Name, Severity: SeverityError, Count: len(cat.Messages)})
	}
	for _, cat := range warnings.Categories {
		rows = append(rows, Row{Category: cat.Name, Severity: SeverityWarning, Count: len(cat.Messages)})
	}
	return rows
}
