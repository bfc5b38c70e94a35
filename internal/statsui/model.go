// Package statsui provides the Bubble Tea records browser.
package statsui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/funtext/internal/model"
	"github.com/verte-zerg/funtext/internal/stats"
)

const (
	tabHistory = iota
	tabPos
	tabObjects
)

const dateLayout = "2006-01-02 15:04"

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// Records is the read side of the store used by the browser.
type Records interface {
	LoadHistory(ctx context.Context, player string) ([]model.HistoryEntry, error)
	LoadBestGlobal(ctx context.Context) (*model.BestRecord, error)
	LoadLeaderboard(ctx context.Context, mode model.Mode) ([]model.LeaderboardEntry, error)
}

// CloseMsg is emitted when the player leaves the browser.
type CloseMsg struct{}

// Model implements the Bubble Tea records browser.
type Model struct {
	records Records
	player  string

	history     []model.HistoryEntry
	best        *model.BestRecord
	leaderboard map[model.Mode][]model.LeaderboardEntry
	errMsg      string

	tabs      []string
	activeTab int
	table     table.Model

	width  int
	height int
}

// NewModel constructs a records browser for player.
func NewModel(records Records, player string) *Model {
	m := &Model{
		records:     records,
		player:      player,
		leaderboard: map[model.Mode][]model.LeaderboardEntry{},
		tabs:        []string{"History", model.ModePos.Title(), model.ModeObjects.Title()},
	}
	m.table = table.New(table.WithHeight(1))
	m.table.SetStyles(tableStyles())
	m.table.Focus()
	m.Refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return m, func() tea.Msg { return CloseMsg{} }
		case "left", "h", "shift+tab":
			m.moveTab(-1)
			return m, nil
		case "right", "l", "tab":
			m.moveTab(1)
			return m, nil
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	header := m.renderTabs() + "\n" + headerStyle.Render(m.renderSummary())
	footer := headerStyle.Render("←/→ switch table · ↑/↓ scroll · esc back")
	if m.errMsg != "" {
		footer = errorStyle.Render(m.errMsg) + "\n" + footer
	}
	body := m.table.View()
	if m.width == 0 || m.height == 0 {
		return strings.Join([]string{header, body, footer}, "\n")
	}
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	bodyHeight := maxInt(1, m.height-headerHeight-footerHeight)
	return strings.Join([]string{
		fitLines(header, m.width, headerHeight),
		fitLines(body, m.width, bodyHeight),
		fitLines(footer, m.width, footerHeight),
	}, "\n")
}

// ActiveTab returns the index of the visible table.
func (m *Model) ActiveTab() int {
	return m.activeTab
}

// Refresh reloads every table from the store.
func (m *Model) Refresh() {
	ctx := context.Background()
	m.errMsg = ""
	history, err := m.records.LoadHistory(ctx, m.player)
	if err != nil {
		m.errMsg = fmt.Sprintf("Failed to load history: %v", err)
	}
	m.history = history
	best, err := m.records.LoadBestGlobal(ctx)
	if err != nil {
		m.errMsg = fmt.Sprintf("Failed to load record: %v", err)
	}
	m.best = best
	for _, mode := range []model.Mode{model.ModePos, model.ModeObjects} {
		entries, err := m.records.LoadLeaderboard(ctx, mode)
		if err != nil {
			m.errMsg = fmt.Sprintf("Failed to load %s leaderboard: %v", mode, err)
		}
		m.leaderboard[mode] = entries
	}
	m.applyTable()
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	m.applyTable()
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderSummary() string {
	if m.activeTab == tabHistory {
		return fmt.Sprintf("Player: %s · Best: %d · Record: %s",
			m.player, stats.PlayerBest(m.history), stats.FormatBest(m.best))
	}
	return fmt.Sprintf("Top %d players", len(m.table.Rows()))
}

func (m *Model) applyTable() {
	cols, rows := m.tableData()
	// Rows must shrink before columns or the table indexes past the new column count.
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	m.table.GotoTop()
	m.updateLayout()
}

func (m *Model) tableData() ([]table.Column, []table.Row) {
	switch m.activeTab {
	case tabPos:
		return leaderboardData(m.leaderboard[model.ModePos])
	case tabObjects:
		return leaderboardData(m.leaderboard[model.ModeObjects])
	default:
		return historyData(m.history)
	}
}

func historyData(entries []model.HistoryEntry) ([]table.Column, []table.Row) {
	cols := []table.Column{
		{Title: "Date", Width: 16},
		{Title: "Difficulty", Width: 10},
		{Title: "Score", Width: 6},
	}
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, table.Row{
			e.Date.Local().Format(dateLayout),
			e.Difficulty,
			fmt.Sprintf("%d", e.Score),
		})
	}
	return cols, rows
}

func leaderboardData(entries []model.LeaderboardEntry) ([]table.Column, []table.Row) {
	cols := []table.Column{
		{Title: "#", Width: 2},
		{Title: "Player", Width: 20},
		{Title: "Score", Width: 6},
		{Title: "Date", Width: 16},
	}
	rows := make([]table.Row, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			truncateLine(e.Player, 20),
			fmt.Sprintf("%d", e.Score),
			e.Date.Local().Format(dateLayout),
		})
	}
	return cols, rows
}

func (m *Model) updateLayout() {
	if m.width > 0 {
		m.table.SetWidth(m.width)
	}
	height := len(m.table.Rows()) + 1
	if m.height > 0 {
		height = minInt(height, maxInt(1, m.height-6))
	}
	m.table.SetHeight(maxInt(2, height))
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
