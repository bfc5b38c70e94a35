package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/funtext/internal/model"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	clock := &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	st, err := Open(filepath.Join(t.TempDir(), "funtext.db"), WithClock(clock.now))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestPlayerNameRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	name, err := st.LoadPlayerName(ctx)
	if err != nil {
		t.Fatalf("load empty name: %v", err)
	}
	if name != "" {
		t.Fatalf("expected empty name, got %q", name)
	}
	if err := st.SavePlayerName(ctx, "  Ann "); err != nil {
		t.Fatalf("save name: %v", err)
	}
	if err := st.SavePlayerName(ctx, "Bob"); err != nil {
		t.Fatalf("overwrite name: %v", err)
	}
	name, err = st.LoadPlayerName(ctx)
	if err != nil {
		t.Fatalf("load name: %v", err)
	}
	if name != "Bob" {
		t.Fatalf("expected Bob, got %q", name)
	}
}

func TestHistoryKeepsFiveNewestFirst(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for i := 1; i <= 6; i++ {
		if err := st.SaveHistory(ctx, model.HistoryEntry{Player: "Ann", Score: i * 10, Difficulty: "Easy"}); err != nil {
			t.Fatalf("save history %d: %v", i, err)
		}
	}
	entries, err := st.LoadHistory(ctx, "Ann")
	if err != nil {
		t.Fatalf("load history: %v", err)
	}
	if len(entries) != HistoryLimit {
		t.Fatalf("expected %d entries, got %d", HistoryLimit, len(entries))
	}
	for i, entry := range entries {
		want := (6 - i) * 10
		if entry.Score != want {
			t.Fatalf("entry %d: expected score %d, got %d", i, want, entry.Score)
		}
	}
	if !entries[0].Date.After(entries[1].Date) {
		t.Fatalf("expected newest entry first: %v vs %v", entries[0].Date, entries[1].Date)
	}
}

func TestHistoryIsPerPlayer(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.SaveHistory(ctx, model.HistoryEntry{Player: "Ann Lee", Score: 5, Difficulty: "Easy"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := st.SaveHistory(ctx, model.HistoryEntry{Player: "Bob", Score: 7, Difficulty: "Hard"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	entries, err := st.LoadHistory(ctx, " Ann   Lee ")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 1 || entries[0].Score != 5 {
		t.Fatalf("unexpected history: %+v", entries)
	}
	empty, err := st.LoadHistory(ctx, "Nobody")
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no entries, got %+v", empty)
	}

	players, err := st.ListPlayers(ctx)
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(players) != 2 || players[0] != "Bob" || players[1] != "Ann Lee" {
		t.Fatalf("unexpected players: %v", players)
	}
}

func TestBestGlobalOnlyImproves(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	best, err := st.LoadBestGlobal(ctx)
	if err != nil {
		t.Fatalf("load empty best: %v", err)
	}
	if best != nil {
		t.Fatalf("expected no best, got %+v", best)
	}

	steps := []struct {
		player   string
		score    int
		replaced bool
	}{
		{"Ann", 40, true},
		{"Bob", 40, false},
		{"Bob", 30, false},
		{"Cid", 41, true},
	}
	for _, step := range steps {
		replaced, err := st.SaveBestGlobal(ctx, step.player, step.score)
		if err != nil {
			t.Fatalf("save best %+v: %v", step, err)
		}
		if replaced != step.replaced {
			t.Fatalf("step %+v: expected replaced=%v", step, step.replaced)
		}
	}
	best, err = st.LoadBestGlobal(ctx)
	if err != nil {
		t.Fatalf("load best: %v", err)
	}
	if best == nil || best.Player != "Cid" || best.Score != 41 {
		t.Fatalf("unexpected best: %+v", best)
	}
}

func TestLeaderboardUpsertKeepsMax(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.SaveLeaderboard(ctx, model.ModeObjects, "Ann", 50); err != nil {
		t.Fatalf("save: %v", err)
	}
	first, err := st.LoadLeaderboard(ctx, model.ModeObjects)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := st.SaveLeaderboard(ctx, model.ModeObjects, "Ann", 30); err != nil {
		t.Fatalf("save: %v", err)
	}
	entries, err := st.LoadLeaderboard(ctx, model.ModeObjects)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 1 || entries[0].Score != 50 {
		t.Fatalf("expected Ann at 50, got %+v", entries)
	}
	if !entries[0].Date.Equal(first[0].Date) {
		t.Fatalf("date must not change without improvement")
	}

	if err := st.SaveLeaderboard(ctx, model.ModeObjects, "Ann", 80); err != nil {
		t.Fatalf("save: %v", err)
	}
	entries, err = st.LoadLeaderboard(ctx, model.ModeObjects)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 1 || entries[0].Score != 80 {
		t.Fatalf("expected Ann at 80, got %+v", entries)
	}
	if !entries[0].Date.After(first[0].Date) {
		t.Fatalf("expected date to move on improvement")
	}
}

func TestLeaderboardTopFivePerMode(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	scores := map[string]int{"A": 10, "B": 60, "C": 30, "D": 50, "E": 20, "F": 40}
	for _, name := range []string{"A", "B", "C", "D", "E", "F"} {
		if err := st.SaveLeaderboard(ctx, model.ModePos, name, scores[name]); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
	}
	if err := st.SaveLeaderboard(ctx, model.ModeObjects, "Z", 5); err != nil {
		t.Fatalf("save other mode: %v", err)
	}

	entries, err := st.LoadLeaderboard(ctx, model.ModePos)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"B", "D", "F", "C", "E"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %+v", len(want), entries)
	}
	for i, name := range want {
		if entries[i].Player != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, entries[i].Player)
		}
	}

	other, err := st.LoadLeaderboard(ctx, model.ModeObjects)
	if err != nil {
		t.Fatalf("load other: %v", err)
	}
	if len(other) != 1 || other[0].Player != "Z" {
		t.Fatalf("modes must not share rows: %+v", other)
	}

	empty, err := st.LoadLeaderboard(ctx, model.ModeAssembly)
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty leaderboard, got %+v", empty)
	}
}

func TestNegativeScoresClamped(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.SaveLeaderboard(ctx, model.ModePos, "Ann", -4); err != nil {
		t.Fatalf("save: %v", err)
	}
	entries, err := st.LoadLeaderboard(ctx, model.ModePos)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if entries[0].Score != 0 {
		t.Fatalf("expected clamped score, got %d", entries[0].Score)
	}
}

func TestPlayerKey(t *testing.T) {
	tests := map[string]string{
		"Ann":          "Ann",
		"  Ann  Lee ":  "Ann_Lee",
		"":             "Player",
		"   ":          "Player",
		"a\tb\nc":      "a_b_c",
	}
	for in, want := range tests {
		if got := PlayerKey(in); got != want {
			t.Fatalf("PlayerKey(%q) = %q, want %q", in, got, want)
		}
	}
}
