package export

import (
	"strings"
	"testing"
)

func TestRenderCSV(t *testing.T) {
	data := Dataset{
		Headers: []string{"Date", "Name", "Total Hours"},
		Rows: [][]string{
			{"2025-03-03", "Asha", "8.00"},
			{"2025-03-04", "Ravi, Jr.", "7.50"},
		},
	}

	out, err := RenderCSV(data)
	if err != nil {
		t.Fatalf("RenderCSV() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[0] != "Date,Name,Total Hours" {
		t.Errorf("header line = %q", lines[0])
	}
	if !strings.Contains(lines[2], `"Ravi, Jr."`) {
		t.Errorf("comma in field not quoted: %q", lines[2])
	}
}

func TestRenderCSVRequiresHeaders(t *testing.T) {
	if _, err := RenderCSV(Dataset{}); err == nil {
		t.Error("RenderCSV() with no headers should fail")
	}
}

func TestRenderCSVRejectsRaggedRows(t *testing.T) {
	data := Dataset{
		Headers: []string{"a", "b"},
		Rows:    [][]string{{"only one"}},
	}
	if _, err := RenderCSV(data); err == nil {
		t.Error("RenderCSV() with ragged row should fail")
	}
}
