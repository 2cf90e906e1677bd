// Package report formats digitized bar values for the console.
package report

import (
	"fmt"
	"io"
	"strings"
)

// DefaultGroupSize is the number of values per copy-block row.
const DefaultGroupSize = 3

const ruleWidth = 70

// Bar is one measured bar in entry order.
type Bar struct {
	Index int
	Value float64
}

// Banner writes a title between two horizontal rules.
func Banner(w io.Writer, title string) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintf(w, "\n%s\n%s\n%s\n", rule, title, rule)
}

// Rule writes a single horizontal rule.
func Rule(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("=", ruleWidth))
}

// Group splits values into consecutive rows of size; the last row may be
// shorter. A non-positive size falls back to DefaultGroupSize.
func Group(values []float64, size int) [][]float64 {
	if size <= 0 {
		size = DefaultGroupSize
	}
	rows := make([][]float64, 0, (len(values)+size-1)/size)
	for i := 0; i < len(values); i += size {
		end := i + size
		if end > len(values) {
			end = len(values)
		}
		rows = append(rows, values[i:end])
	}
	return rows
}

// WriteResults writes each bar value with three decimals.
func WriteResults(w io.Writer, bars []Bar) {
	Banner(w, "RESULTS")
	for _, b := range bars {
		fmt.Fprintf(w, "Bar %d: %.3f\n", b.Index, b.Value)
	}
}

// WriteCopyBlock writes values as tab-separated rows with two decimals,
// ready to paste into a spreadsheet. Nothing is written for no values.
func WriteCopyBlock(w io.Writer, values []float64, size int) {
	if len(values) == 0 {
		return
	}
	Banner(w, "Copy these values:")
	for _, row := range Group(values, size) {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprintf("%.2f", v)
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
}
