package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/funtext/internal/model"
	"github.com/verte-zerg/funtext/internal/stats"
	"github.com/verte-zerg/funtext/internal/statsui"
)

const dateLayout = "2006-01-02 15:04"

func (m *Model) login(name string) {
	m.player = name
	if err := m.store.SavePlayerName(context.Background(), name); err != nil {
		m.errMsg = fmt.Sprintf("failed to save player name: %v", err)
	}
	m.loginErr = ""
	m.nameInput.Blur()
	m.enterMenu()
}

func (m *Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			m.loginErr = "Name must not be empty"
			return m, nil
		}
		m.login(name)
		return m, nil
	case tea.KeyEsc:
		if m.player != "" {
			m.nameInput.Blur()
			m.enterMenu()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *Model) viewLogin() string {
	lines := []string{
		titleStyle.Render("funtext"),
		"Who is playing?",
		"",
		m.nameInput.View(),
	}
	if m.loginErr != "" {
		lines = append(lines, incorrectStyle.Render(m.loginErr))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) enterMenu() {
	m.screen = screenMenu
	m.loadMenuData()
}

func (m *Model) loadMenuData() {
	ctx := context.Background()
	history, err := m.store.LoadHistory(ctx, m.player)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load history: %v", err)
	}
	m.history = history
	best, err := m.store.LoadBestGlobal(ctx)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load record: %v", err)
	}
	m.best = best
}

func (m *Model) setMenuSelection(mode model.Mode, key string) {
	if i := slices.Index(model.Modes, mode); i >= 0 {
		m.modeIndex = i
	}
	keys := m.deps.Tables.Keys(model.Modes[m.modeIndex])
	if i := slices.Index(keys, defaultDifficulty(key)); i >= 0 {
		m.diffIndex = i
	}
}

func (m *Model) currentDifficulty() string {
	keys := m.deps.Tables.Keys(model.Modes[m.modeIndex])
	if len(keys) == 0 {
		return ""
	}
	if m.diffIndex >= len(keys) {
		m.diffIndex = len(keys) - 1
	}
	return keys[m.diffIndex]
}

func (m *Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.modeIndex = (m.modeIndex + len(model.Modes) - 1) % len(model.Modes)
	case "down", "j":
		m.modeIndex = (m.modeIndex + 1) % len(model.Modes)
	case "left", "h":
		if m.diffIndex > 0 {
			m.diffIndex--
		}
	case "right", "l":
		if m.diffIndex < len(m.deps.Tables.Keys(model.Modes[m.modeIndex]))-1 {
			m.diffIndex++
		}
	case "enter":
		return m, m.startMode(model.Modes[m.modeIndex], m.currentDifficulty())
	case "r":
		m.records = statsui.NewModel(m.store, m.player)
		if m.width > 0 {
			m.records.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		}
		m.screen = screenRecords
	case "p":
		m.nameInput.SetValue(m.player)
		m.screen = screenLogin
		return m, m.nameInput.Focus()
	case "q":
		return m, tea.Quit
	}
	m.currentDifficulty()
	return m, nil
}

func (m *Model) viewMenu() string {
	lines := []string{
		titleStyle.Render("funtext") + "  " + pendingStyle.Render("Player: "+m.player),
		"",
	}
	for i, mode := range model.Modes {
		if i == m.modeIndex {
			lines = append(lines, cursorStyle.Render("› "+mode.Title()))
			continue
		}
		lines = append(lines, correctStyle.Render("  "+mode.Title()))
	}

	mode := model.Modes[m.modeIndex]
	keys := m.deps.Tables.Keys(mode)
	labels := make([]string, len(keys))
	for i, key := range keys {
		label := m.deps.Tables.Label(mode, key)
		if i == m.diffIndex {
			label = currentWordStyle.Render("[" + label + "]")
		}
		labels[i] = label
	}
	lines = append(lines, "", "Difficulty: "+strings.Join(labels, " "), "")

	lines = append(lines,
		fmt.Sprintf("Your best: %d", stats.PlayerBest(m.history)),
		"Record: "+stats.FormatBest(m.best),
	)
	if len(m.history) > 0 {
		lines = append(lines, "", "Recent games:")
		for _, e := range m.history {
			lines = append(lines, pendingStyle.Render(fmt.Sprintf("  %s  %-8s %d",
				e.Date.Local().Format(dateLayout), e.Difficulty, e.Score)))
		}
	}
	return strings.Join(lines, "\n")
}
