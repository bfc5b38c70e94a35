package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Player", "Score", "Mode"}
	rows := [][]string{
		{"Ann", "120", "pos"},
		{"Bartholomew", "8", "objects"},
	}
	rightAlign := map[int]bool{1: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Player       Score  Mode" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Ann            120  pos" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Bartholomew      8  objects" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"Name", "N"}, [][]string{{"日本", "1"}, {"ab", "2"}}, nil)
	if lines[1] != "日本  1" {
		t.Fatalf("unexpected wide row: %q", lines[1])
	}
	if lines[2] != "ab    2" {
		t.Fatalf("unexpected narrow row: %q", lines[2])
	}
}
