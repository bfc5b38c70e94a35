package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/funtext/internal/content"
	"github.com/verte-zerg/funtext/internal/model"
)

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Fatalf("expected empty sparkline, got %q", got)
	}
	if got := Sparkline([]float64{3, 3, 3}); got != "+++" {
		t.Fatalf("expected flat sparkline, got %q", got)
	}
	if got := Sparkline([]float64{0, 10}); got != " @" {
		t.Fatalf("expected min and max glyphs, got %q", got)
	}
}

func TestPlayerBest(t *testing.T) {
	entries := []model.HistoryEntry{{Score: 12}, {Score: 40}, {Score: 7}}
	if got := PlayerBest(entries); got != 40 {
		t.Fatalf("expected 40, got %d", got)
	}
	if got := PlayerBest(nil); got != 0 {
		t.Fatalf("expected 0 for empty history, got %d", got)
	}
}

func TestRenderHistory(t *testing.T) {
	date := time.Date(2024, 5, 1, 10, 30, 0, 0, time.Local)
	entries := []model.HistoryEntry{
		{Player: "Ann", Score: 30, Difficulty: "Hard", Date: date},
		{Player: "Ann", Score: 10, Difficulty: "Easy", Date: date.Add(-time.Hour)},
	}
	var buf bytes.Buffer
	if err := RenderHistory(&buf, "Ann", entries); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"History: Ann", "2024-05-01 10:30", "Hard", "Best: 30", "Trend: [ @]"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no escape codes for a buffer")
	}
}

func TestRenderHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHistory(&buf, "Bob", nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No games yet.") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestRenderLeaderboard(t *testing.T) {
	entries := []model.LeaderboardEntry{
		{Player: "Ann", Score: 80},
		{Player: "Bob", Score: 5},
	}
	var buf bytes.Buffer
	if err := RenderLeaderboard(&buf, model.ModePos, entries); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected title, header and two rows, got %q", lines)
	}
	if lines[0] != "Leaderboard: Parts of speech" {
		t.Fatalf("unexpected title %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "1  Ann") || !strings.Contains(lines[2], "80") {
		t.Fatalf("unexpected first row %q", lines[2])
	}
}

func TestRenderLeaderboardFitsPlayerNames(t *testing.T) {
	entries := []model.LeaderboardEntry{{Player: "Alexandra-Konstantinopolska", Score: 80}}
	cases := []struct {
		width int
		want  string
	}{
		{40, "Alexand..."},
		{20, "Alexa..."},
		{120, "Alexandra-Konstantinopolska"},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		if err := renderLeaderboard(&buf, model.ModeObjects, entries, tc.width); err != nil {
			t.Fatalf("render: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if !strings.HasPrefix(lines[2], "1  "+tc.want+"  ") {
			t.Fatalf("width %d: unexpected row %q", tc.width, lines[2])
		}
	}
}

func TestTerminalWidthFallback(t *testing.T) {
	if got := TerminalWidth(); got <= 0 {
		t.Fatalf("expected a positive width, got %d", got)
	}
}

func TestFormatBest(t *testing.T) {
	if got := FormatBest(nil); got != "—" {
		t.Fatalf("expected placeholder, got %q", got)
	}
	best := &model.BestRecord{Player: "Ann", Score: 42, Date: time.Date(2024, 1, 2, 3, 4, 0, 0, time.Local)}
	if got := FormatBest(best); got != "Ann 42 (2024-01-02 03:04)" {
		t.Fatalf("unexpected record %q", got)
	}
}

func TestRenderLevels(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderLevels(&buf, content.DefaultTables()); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Sentence assembly", "7-12", "x1.5", "Parts of speech", "Object selection"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
