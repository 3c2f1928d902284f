package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Type", "Count", "Share"}
	rows := [][]string{
		{"Movie", "6131", "69.6%"},
		{"TV Show", "2676", "30.4%"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Type    Count Share" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Movie    6131 69.6%" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "TV Show  2676 30.4%" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWithoutHeaders(t *testing.T) {
	lines := formatTable(nil, [][]string{{"Movie", "3"}, {"TV Show", "1"}}, map[int]bool{1: true})
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "Movie   3" {
		t.Fatalf("unexpected row line: %q", lines[0])
	}
}
