package utils

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// PrintTable prints a column-aligned plain-text table in Docker/kubectl style.
// Uses Go's text/tabwriter with parameters matching modern CLI tools:
// minwidth=0, tabwidth=8, padding=2, padchar=' ', flags=0
func PrintTable(w io.Writer, headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
