// Package preview renders the head of the output table for operators.
package preview

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Render writes the header and the first n rows of rows to w as a bordered
// table, followed by a shape line. n <= 0 writes nothing.
func Render(w io.Writer, header []string, rows [][]string, n int) error {
	if n <= 0 {
		return nil
	}
	head := rows
	if len(head) > n {
		head = head[:n]
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(header...).
		Rows(head...)

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "[%d rows x %d columns]\n", len(rows), len(header))
	return err
}
