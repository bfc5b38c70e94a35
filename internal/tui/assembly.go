package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/funtext/internal/game"
	"github.com/verte-zerg/funtext/internal/model"
)

func (m *Model) updateAssembly(msg tea.KeyMsg) tea.Cmd {
	idx, ok := digitIndex(msg)
	if !ok {
		return nil
	}
	s := m.assembly
	switch s.SubmitTrayIndex(idx) {
	case game.OutcomeCorrect:
		m.feedback = correctStyle.Render("Correct +2")
	case game.OutcomeWrong:
		m.feedback = incorrectStyle.Render("Wrong word -3")
	case game.OutcomeRoundWon:
		m.feedback = currentWordStyle.Render(fmt.Sprintf("Sentence complete +%d", s.Snapshot().LastDelta))
		return pacingCmd(s)
	}
	return nil
}

func (m *Model) viewAssembly() string {
	snap := m.assembly.Snapshot()
	if !snap.State.Running() {
		var extra []string
		if snap.NewBest {
			extra = append(extra, currentWordStyle.Render("New record!"))
		}
		return m.viewEnd(snap.EndReason, snap.Score, extra...)
	}
	status := fmt.Sprintf("%s · %s x%g · Round %d · %ds · Score %d",
		model.ModeAssembly.Title(), snap.Difficulty, snap.Multiplier, snap.Round, snap.TimeLeft, snap.LiveScore)
	if !m.assembly.HasNextRound() {
		status += " · Last sentence"
	}

	slots := make([]chip, 0, len(snap.Words))
	for _, w := range snap.Words {
		if w.IsFilled {
			style := correctStyle
			if w.IsPrefilled {
				style = pendingStyle
			}
			slots = append(slots, newChip(w.Text, style.Render))
			continue
		}
		blank := strings.Repeat("_", max(3, runewidth.StringWidth(w.Text)))
		slots = append(slots, newChip(blank, pendingStyle.Render))
	}

	tray := make([]chip, 0, len(snap.Tray))
	for i, w := range snap.Tray {
		label := fmt.Sprintf("%d:%s", i+1, w.Text)
		tray = append(tray, newChip(label, currentWordStyle.Render))
	}

	lines := []string{
		titleStyle.Render(status),
		"",
		wrapChips(slots, m.contentWidth()),
		"",
		wrapChips(tray, m.contentWidth()),
		"",
		m.feedback,
	}
	return strings.Join(lines, "\n")
}

// digitIndex maps keys 1-9 to indexes 0-8.
func digitIndex(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '1' || r > '9' {
		return 0, false
	}
	return int(r - '1'), true
}
