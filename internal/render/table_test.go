package render

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Type", "Count"}
	rows := [][]string{
		{"Journal", "50"},
		{"Conference", "30"},
	}
	rightAlign := map[int]bool{1: true}

	lines := FormatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Type        Count" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Journal        50" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Conference     30" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWithoutHeaders(t *testing.T) {
	lines := FormatTable(nil, [][]string{{"USA", "8730", "51.4%"}}, map[int]bool{1: true, 2: true})
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0] != "USA  8730  51.4%" {
		t.Fatalf("unexpected row line: %q", lines[0])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := FormatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected nil for empty input, got %q", lines)
	}
}
