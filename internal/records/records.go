// Package records holds the column-keyed row shape produced by the parsers.
package records

// Record is a single input row keyed by header name.
type Record map[string]string

// Table is a fully loaded input: the header in file order plus every data
// row in file order.
type Table struct {
	Header []string
	Rows   []Record
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }
