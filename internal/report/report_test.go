package report

import (
	"bytes"
	"strings"
	"testing"
)

func TestGroup(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		size     int
		expected []int
	}{
		{"seven into triplets", 7, 3, []int{3, 3, 1}},
		{"exact multiple", 6, 3, []int{3, 3}},
		{"fewer than one row", 2, 3, []int{2}},
		{"empty", 0, 3, []int{}},
		{"non-positive size uses default", 4, 0, []int{3, 1}},
		{"rows of two", 5, 2, []int{2, 2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := make([]float64, tt.count)
			for i := range values {
				values[i] = float64(i)
			}

			rows := Group(values, tt.size)
			if len(rows) != len(tt.expected) {
				t.Fatalf("Expected %d rows, got %d", len(tt.expected), len(rows))
			}
			next := 0.0
			for i, row := range rows {
				if len(row) != tt.expected[i] {
					t.Errorf("Row %d: expected %d values, got %d", i, tt.expected[i], len(row))
				}
				for _, v := range row {
					if v != next {
						t.Errorf("Values out of order: expected %v, got %v", next, v)
					}
					next++
				}
			}
		})
	}
}

func TestWriteResults(t *testing.T) {
	var buf bytes.Buffer
	WriteResults(&buf, []Bar{{Index: 1, Value: 0.7}, {Index: 2, Value: 1.23456}})

	out := buf.String()
	if !strings.Contains(out, "RESULTS") {
		t.Error("Expected RESULTS banner")
	}
	if !strings.Contains(out, "Bar 1: 0.700\n") {
		t.Errorf("Expected three-decimal bar 1 line, got:\n%s", out)
	}
	if !strings.Contains(out, "Bar 2: 1.235\n") {
		t.Errorf("Expected rounded bar 2 line, got:\n%s", out)
	}
}

func TestWriteCopyBlock(t *testing.T) {
	var buf bytes.Buffer
	WriteCopyBlock(&buf, []float64{0.1, 0.25, 1.004, 2, 3.333, 4, 5.5}, 3)

	out := buf.String()
	if !strings.Contains(out, "Copy these values:") {
		t.Fatal("Expected copy banner")
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	rows := lines[len(lines)-3:]
	expected := []string{
		"0.10\t0.25\t1.00",
		"2.00\t3.33\t4.00",
		"5.50",
	}
	for i, want := range expected {
		if rows[i] != want {
			t.Errorf("Row %d: expected %q, got %q", i, want, rows[i])
		}
	}
}

func TestWriteCopyBlock_Empty(t *testing.T) {
	var buf bytes.Buffer
	WriteCopyBlock(&buf, nil, 3)
	if buf.Len() != 0 {
		t.Errorf("Expected no output for no values, got %q", buf.String())
	}
}
