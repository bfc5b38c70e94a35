package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/funtext/internal/game"
	"github.com/verte-zerg/funtext/internal/model"
)

// objectKeys label the objects in display order.
const objectKeys = "123456789qwer"

func objectKeyIndex(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	i := strings.IndexRune(objectKeys, msg.Runes[0])
	return i, i >= 0
}

func objectKeyLabel(i int) string {
	if i < 0 || i >= len(objectKeys) {
		return " "
	}
	return string(objectKeys[i])
}

func (m *Model) updateObjects(msg tea.KeyMsg) tea.Cmd {
	s := m.objects
	if msg.Type == tea.KeyEnter {
		switch s.ValidateSelection() {
		case game.OutcomeWrong:
			m.feedback = incorrectStyle.Render("Not quite -3")
		case game.OutcomeRoundWon:
			m.feedback = currentWordStyle.Render(fmt.Sprintf("Correct +%d", s.Snapshot().LastDelta))
			return pacingCmd(s)
		}
		return nil
	}
	if i, ok := objectKeyIndex(msg); ok {
		s.ToggleSelect(i)
		m.feedback = ""
	}
	return nil
}

func (m *Model) viewObjects() string {
	snap := m.objects.Snapshot()
	if !snap.State.Running() {
		return m.viewEnd(snap.EndReason, snap.Score)
	}
	status := fmt.Sprintf("%s · %s · Round %d/%d · %ds · Score %d",
		model.ModeObjects.Title(), snap.Difficulty, snap.Round, snap.RoundsTotal, snap.TimeLeft, snap.Score)

	selected := make(map[int]bool, len(snap.Selected))
	for _, i := range snap.Selected {
		selected[i] = true
	}
	items := make([]chip, 0, len(snap.Objects))
	for i, o := range snap.Objects {
		mark := "[ ]"
		style := correctStyle
		if selected[i] {
			mark = "[x]"
			style = currentWordStyle
		}
		items = append(items, newChip(fmt.Sprintf("%s %s %s", objectKeyLabel(i), mark, o.Name), style.Render))
	}

	lines := []string{
		titleStyle.Render(status),
		"",
		snap.Question.Text,
		"",
		wrapChips(items, m.contentWidth()),
		"",
		m.feedback,
	}
	return strings.Join(lines, "\n")
}
