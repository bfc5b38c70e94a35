package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/funtext/internal/game"
	"github.com/verte-zerg/funtext/internal/model"
)

var posKeys = map[string]model.PartOfSpeech{
	"n": model.Noun,
	"v": model.Verb,
	"a": model.Adjective,
}

func (m *Model) updatePos(msg tea.KeyMsg) tea.Cmd {
	s := m.pos
	remaining := s.Remaining()
	if len(remaining) == 0 {
		return nil
	}
	key := msg.String()
	switch key {
	case "tab", "right", "down", "l", "j":
		m.posCursor = (m.posCursor + 1) % len(remaining)
		return nil
	case "shift+tab", "left", "up", "h", "k":
		m.posCursor = (m.posCursor + len(remaining) - 1) % len(remaining)
		return nil
	}
	group, ok := posKeys[key]
	if !ok {
		return nil
	}
	if m.posCursor >= len(remaining) {
		m.posCursor = 0
	}
	item := remaining[m.posCursor]
	switch s.ClassifyWord(item.UID, group) {
	case game.OutcomeCorrect:
		m.feedback = correctStyle.Render(fmt.Sprintf("%s → %s +2", item.Text, game.GroupLabel(group)))
	case game.OutcomeWrong:
		m.feedback = incorrectStyle.Render(fmt.Sprintf("%s is not in %s -1", item.Text, game.GroupLabel(group)))
	case game.OutcomeRoundWon:
		m.feedback = currentWordStyle.Render("Round complete")
		m.posCursor = 0
	}
	if n := len(s.Remaining()); n > 0 && m.posCursor >= n {
		m.posCursor = n - 1
	}
	return nil
}

func (m *Model) viewPos() string {
	snap := m.pos.Snapshot()
	if !snap.State.Running() {
		return m.viewEnd(snap.EndReason, snap.Score)
	}
	status := fmt.Sprintf("%s · %s · Round %d/%d · %ds · Score %d",
		model.ModePos.Title(), snap.Difficulty, snap.Round, snap.Rounds, snap.TimeLeft, snap.Score)

	words := make([]chip, 0, len(snap.Remaining))
	for i, item := range snap.Remaining {
		style := correctStyle
		if i == m.posCursor {
			style = cursorStyle
		}
		words = append(words, newChip(item.Text, style.Render))
	}

	boxes := make([]string, 0, len(game.PosGroups))
	for _, group := range game.PosGroups {
		lines := []string{titleStyle.Render(game.GroupLabel(group))}
		for _, item := range snap.Sorted[group] {
			lines = append(lines, correctStyle.Render(item.Text))
		}
		boxes = append(boxes, groupStyle.Render(strings.Join(lines, "\n")))
	}

	lines := []string{
		titleStyle.Render(status),
		"",
		wrapChips(words, m.contentWidth()),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, boxes...),
		m.feedback,
	}
	return strings.Join(lines, "\n")
}
