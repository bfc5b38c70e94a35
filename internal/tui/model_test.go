package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/funtext/internal/content"
	"github.com/verte-zerg/funtext/internal/game"
	"github.com/verte-zerg/funtext/internal/generator"
	"github.com/verte-zerg/funtext/internal/model"
)

type memStore struct {
	name        string
	history     []model.HistoryEntry
	best        *model.BestRecord
	leaderboard map[model.Mode][]model.LeaderboardEntry
}

func newMemStore() *memStore {
	return &memStore{leaderboard: map[model.Mode][]model.LeaderboardEntry{}}
}

func (s *memStore) SavePlayerName(_ context.Context, name string) error {
	s.name = name
	return nil
}

func (s *memStore) LoadPlayerName(_ context.Context) (string, error) {
	return s.name, nil
}

func (s *memStore) SaveHistory(_ context.Context, entry model.HistoryEntry) error {
	s.history = append([]model.HistoryEntry{entry}, s.history...)
	return nil
}

func (s *memStore) LoadHistory(_ context.Context, _ string) ([]model.HistoryEntry, error) {
	return s.history, nil
}

func (s *memStore) SaveBestGlobal(_ context.Context, player string, score int) (bool, error) {
	if s.best != nil && score <= s.best.Score {
		return false, nil
	}
	s.best = &model.BestRecord{Player: player, Score: score}
	return true, nil
}

func (s *memStore) LoadBestGlobal(_ context.Context) (*model.BestRecord, error) {
	return s.best, nil
}

func (s *memStore) SaveLeaderboard(_ context.Context, mode model.Mode, player string, score int) error {
	s.leaderboard[mode] = append(s.leaderboard[mode], model.LeaderboardEntry{Player: player, Score: score})
	return nil
}

func (s *memStore) LoadLeaderboard(_ context.Context, mode model.Mode) ([]model.LeaderboardEntry, error) {
	return s.leaderboard[mode], nil
}

func testDeps(corpus content.Corpus) game.Deps {
	gen := generator.NewWithSeed(7)
	return game.Deps{
		Tables: content.DefaultTables(),
		Corpus: corpus,
		Random: gen,
		IDs:    gen,
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLoginRejectsEmptyName(t *testing.T) {
	st := newMemStore()
	m := NewModel(st, testDeps(content.DefaultCorpus()), Options{})
	m.Init()
	if m.screen != screenLogin {
		t.Fatalf("expected login screen, got %d", m.screen)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenLogin || m.loginErr == "" {
		t.Fatalf("expected empty name to be rejected")
	}
	m.Update(key("Ann"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenMenu || m.player != "Ann" || st.name != "Ann" {
		t.Fatalf("expected menu for Ann, got screen %d player %q saved %q", m.screen, m.player, st.name)
	}
}

func TestLoginPrefilledFromStore(t *testing.T) {
	st := newMemStore()
	st.name = "Bob"
	m := NewModel(st, testDeps(content.DefaultCorpus()), Options{})
	if m.nameInput.Value() != "Bob" {
		t.Fatalf("expected saved name in input, got %q", m.nameInput.Value())
	}
}

func TestTickChainFollowsActiveSession(t *testing.T) {
	st := newMemStore()
	m := NewModel(st, testDeps(content.DefaultCorpus()), Options{Player: "Ann"})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || m.screen != screenAssembly {
		t.Fatalf("expected assembly to start with a tick command")
	}
	first := m.assembly
	limit := first.TimeLeft()
	_, cmd = m.Update(tickMsg{session: first})
	if first.TimeLeft() != limit-1 || cmd == nil {
		t.Fatalf("expected tick to count down and reschedule")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu || first.State() != game.StateStopped {
		t.Fatalf("expected stopped session and menu")
	}
	if len(st.history) != 0 {
		t.Fatalf("leaving assembly must not record")
	}
	_, cmd = m.Update(tickMsg{session: first})
	if cmd != nil || first.TimeLeft() != limit-1 {
		t.Fatalf("stale tick must be dropped")
	}
}

func TestAssemblyKeysPlaceWords(t *testing.T) {
	st := newMemStore()
	corpus := content.Corpus{Phrases: []string{"the cat sat on mats"}}
	m := NewModel(st, testDeps(corpus), Options{Player: "Ann", Mode: model.ModeAssembly})
	m.Init()
	s := m.assembly
	if !strings.Contains(m.View(), "Last sentence") {
		t.Fatalf("expected last sentence hint:\n%s", m.View())
	}
	var cmd tea.Cmd
	for s.State() == game.StateRoundActive {
		snap := s.Snapshot()
		idx := -1
		for i, w := range snap.Tray {
			if w.Order == snap.NextIndex {
				idx = i
			}
		}
		if idx < 0 {
			t.Fatalf("next word missing from tray: %+v", snap)
		}
		_, cmd = m.Update(key(string(rune('1' + idx))))
	}
	if s.State() != game.StateRoundResolving || cmd == nil {
		t.Fatalf("expected resolving state with pacing command, got %v", s.State())
	}
	if !strings.Contains(m.View(), "Sentence complete") {
		t.Fatalf("expected feedback in view:\n%s", m.View())
	}
	m.Update(advanceMsg{session: s})
	if s.State() != game.StateSessionComplete {
		t.Fatalf("expected session complete, got %v", s.State())
	}
	if len(st.history) != 1 || st.history[0].Score != s.Score() {
		t.Fatalf("expected history entry, got %+v", st.history)
	}
	view := m.View()
	if !strings.Contains(view, "Game over") || !strings.Contains(view, "New record!") {
		t.Fatalf("unexpected end view:\n%s", view)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.assembly == s || m.assembly.State() != game.StateRoundActive {
		t.Fatalf("expected enter to start a fresh session")
	}
}

func TestEscFromPosRecordsScore(t *testing.T) {
	st := newMemStore()
	m := NewModel(st, testDeps(content.DefaultCorpus()), Options{Player: "Ann", Mode: model.ModePos})
	if cmd := m.Init(); cmd == nil {
		t.Fatalf("expected tick command")
	}
	if m.screen != screenPos {
		t.Fatalf("expected pos screen, got %d", m.screen)
	}
	item := m.pos.Remaining()[0]
	var k string
	for letter, group := range posKeys {
		if group == item.PartOfSpeech {
			k = letter
		}
	}
	m.Update(key(k))
	if m.pos.Score() != 2 {
		t.Fatalf("expected score 2, got %d", m.pos.Score())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	got := st.leaderboard[model.ModePos]
	if len(got) != 1 || got[0].Score != 2 || got[0].Player != "Ann" {
		t.Fatalf("expected pos score recorded, got %+v", got)
	}
}

func TestObjectsToggleAndValidate(t *testing.T) {
	st := newMemStore()
	m := NewModel(st, testDeps(content.DefaultCorpus()), Options{Player: "Ann", Mode: model.ModeObjects})
	m.Init()
	snap := m.objects.Snapshot()
	for _, i := range game.MatchingIndexes(snap.Objects, snap.Question.Tag) {
		m.Update(key(objectKeyLabel(i)))
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || m.objects.State() != game.StateRoundResolving {
		t.Fatalf("expected won round, got %v", m.objects.State())
	}
	if !strings.Contains(m.View(), "Correct +") {
		t.Fatalf("expected feedback in view:\n%s", m.View())
	}
	m.Update(advanceMsg{session: m.objects})
	if got := m.objects.Snapshot().Round; got != 2 {
		t.Fatalf("expected round 2, got %d", got)
	}
}

func TestObjectKeyIndex(t *testing.T) {
	cases := map[string]int{"1": 0, "9": 8, "q": 9, "r": 12}
	for k, want := range cases {
		got, ok := objectKeyIndex(key(k))
		if !ok || got != want {
			t.Fatalf("key %q: expected %d, got %d %v", k, want, got, ok)
		}
	}
	if _, ok := objectKeyIndex(key("z")); ok {
		t.Fatalf("expected z to be unmapped")
	}
	if len(objectKeys) != content.MaxObjectsCount {
		t.Fatalf("expected a key for each of %d objects, have %q", content.MaxObjectsCount, objectKeys)
	}
}

func TestCtrlCStopsSession(t *testing.T) {
	st := newMemStore()
	m := NewModel(st, testDeps(content.DefaultCorpus()), Options{Player: "Ann", Mode: model.ModeObjects})
	m.Init()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if m.objects.State() != game.StateStopped || len(st.leaderboard[model.ModeObjects]) != 0 {
		t.Fatalf("expected silent stop, got %v", m.objects.State())
	}
}

func TestMenuShowsRecordsAndDifficulty(t *testing.T) {
	st := newMemStore()
	st.best = &model.BestRecord{Player: "Bob", Score: 77}
	m := NewModel(st, testDeps(content.DefaultCorpus()), Options{Player: "Ann"})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	view := m.View()
	for _, want := range []string{"Player: Ann", "Record: Bob 77", "[Medium]", "Parts of speech"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in menu:\n%s", want, view)
		}
	}
	m.Update(key("r"))
	if m.screen != screenRecords || m.records == nil {
		t.Fatalf("expected records screen")
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m.Update(cmd())
	if m.screen != screenMenu {
		t.Fatalf("expected menu after closing records, got %d", m.screen)
	}
}
