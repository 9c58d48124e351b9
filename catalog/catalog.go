// Package catalog models ordered catalogs of categorized log message
// templates.
//
// A catalog maps category names to lists of message templates, preserving
// the document order of the patterns file it was decoded from. Chart output
// must be identical across runs, so category order cannot be left to Go map
// iteration; catalogs are slices, not maps.
package catalog

import "strings"

// Severity is the message class of a catalog: ERROR or WARNING.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
)

// String returns the string representation of the Severity.
func (s Severity) String() string {
	return string(s)
}

// Category is a named, ordered list of message templates.
type Category struct {
	Name     string
	Messages []string
}

// Catalog is an ordered sequence of categories. The zero value is an empty
// catalog. Catalogs are immutable after load; derived catalogs are fresh
// copies.
type Catalog struct {
	Categories []Category
}

// Total returns the number of messages across all categories.
func (c Catalog) Total() int {
	n := 0
	for _, cat := range c.Categories {
		n += len(cat.Messages)
	}
	return n
}

// Flatten returns all messages in catalog order.
func (c Catalog) Flatten() []string {
	out := make([]string, 0, c.Total())
	for _, cat := range c.Categories {
		out = append(out, cat.Messages...)
	}
	return out
}

// Preprocess returns a copy of the catalog with every message reduced to
// the substring before its first placeholder marker, whitespace-trimmed.
// Messages without a marker pass through trimmed.
func (c Catalog) Preprocess() Catalog {
	out := Catalog{Categories: make([]Category, len(c.Categories))}
	for i, cat := range c.Categories {
		msgs := make([]string, len(cat.Messages))
		for j, m := range cat.Messages {
			msgs[j] = trimTemplate(m)
		}
		out.Categories[i] = Category{Name: cat.Name, Messages: msgs}
	}
	return out
}

// trimTemplate cuts a message template at its first '{' and trims whitespace.
func trimTemplate(msg string) string {
	head, _, _ := strings.Cut(msg, "{")
	return strings.TrimSpace(head)
}

// CategoryCount pairs a category name with its message count.
type CategoryCount struct {
	Name  string
	Count int
}

// Counts returns per-category message counts in catalog order.
func (c Catalog) Counts() []CategoryCount {
	out := make([]CategoryCount, len(c.Categories))
	for i, cat := range c.Categories {
		out[i] = CategoryCount{Name: cat.Name, Count: len(cat.Messages)}
	}
	return out
}

// Patterns holds the two catalogs of a log-patterns file.
type Patterns struct {
	Errors   Catalog
	Warnings Catalog
}
