package cli

import (
	"strings"
	"testing"
)

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"CLASS", "SAMPLES"})
	table.AddRow([]string{"123", "4500"})
	table.AddRow([]string{"f84", "12"})

	got := table.Render()
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("Render() produced %d lines, want 4 (header, separator, 2 rows)", len(lines))
	}
	if !strings.HasPrefix(lines[0], "CLASS") {
		t.Errorf("header line = %q, want CLASS first", lines[0])
	}
	if !strings.HasPrefix(lines[1], "-----") {
		t.Errorf("separator line = %q, want dashes", lines[1])
	}

	// All lines aligned to the same width.
	for i := 1; i < len(lines); i++ {
		if len(lines[i]) > len(lines[1]) {
			t.Errorf("line %d wider than separator: %q", i, lines[i])
		}
	}
}

func TestTableShortRowPadded(t *testing.T) {
	table := NewTable([]string{"A", "B", "C"})
	table.AddRow([]string{"only"})

	got := table.Render()
	if !strings.Contains(got, "only") {
		t.Errorf("Render() = %q, want row content present", got)
	}
}

func TestTableEmptyHeaders(t *testing.T) {
	table := NewTable(nil)
	if got := table.Render(); got != "" {
		t.Errorf("Render() = %q, want empty string", got)
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		name  string
		s     string
		width int
		want  string
	}{
		{name: "pads short", s: "ab", width: 4, want: "ab  "},
		{name: "exact width", s: "abcd", width: 4, want: "abcd"},
		{name: "longer unchanged", s: "abcdef", width: 4, want: "abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := padRight(tt.s, tt.width); got != tt.want {
				t.Errorf("padRight(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
			}
		})
	}
}
