// Package tui provides the Bubble Tea host that drives the game sessions.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/funtext/internal/content"
	"github.com/verte-zerg/funtext/internal/game"
	"github.com/verte-zerg/funtext/internal/model"
	"github.com/verte-zerg/funtext/internal/statsui"
)

type screen int

const (
	screenLogin screen = iota
	screenMenu
	screenAssembly
	screenPos
	screenObjects
	screenRecords
)

const (
	chipGap       = "  "
	nameCharLimit = 32
)

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = currentWordStyle.Underline(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	groupStyle       = lipgloss.NewStyle().
				Width(22).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
)

// Store is the persistence used by the host.
type Store interface {
	game.Recorder
	statsui.Records
	SavePlayerName(ctx context.Context, name string) error
	LoadPlayerName(ctx context.Context) (string, error)
}

// Options preselect the player and, optionally, a mode to start right away.
type Options struct {
	Player     string
	Mode       model.Mode
	Difficulty string
}

// session is the part of every game session the host drives uniformly.
type session interface {
	Tick()
	State() game.State
	ForceStop()
}

type advancer interface {
	Advance() bool
}

// tickMsg and advanceMsg carry the session they were scheduled for so that
// messages outliving their session are dropped.
type tickMsg struct {
	session session
}

type advanceMsg struct {
	session session
}

// Model implements the Bubble Tea game host.
type Model struct {
	store Store
	deps  game.Deps
	opts  Options

	screen screen
	width  int
	height int

	player    string
	nameInput textinput.Model
	loginErr  string

	modeIndex  int
	diffIndex  int
	difficulty string
	history    []model.HistoryEntry
	best       *model.BestRecord

	active    session
	assembly  *game.AssemblySession
	pos       *game.PosSession
	objects   *game.ObjectsSession
	posCursor int
	feedback  string
	errMsg    string

	records *statsui.Model
}

// NewModel constructs the game host.
func NewModel(store Store, deps game.Deps, opts Options) *Model {
	input := textinput.New()
	input.Prompt = "Name: "
	input.Placeholder = "Player"
	input.CharLimit = nameCharLimit

	m := &Model{
		store:     store,
		deps:      deps,
		opts:      opts,
		nameInput: input,
	}
	m.setMenuSelection(opts.Mode, opts.Difficulty)

	name := strings.TrimSpace(opts.Player)
	if name == "" {
		saved, err := store.LoadPlayerName(context.Background())
		if err != nil {
			logErrf("failed to load player name: %v\n", err)
		}
		m.nameInput.SetValue(saved)
		m.screen = screenLogin
		return m
	}
	m.login(name)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.screen == screenLogin {
		return m.nameInput.Focus()
	}
	if m.opts.Mode != "" {
		return m.startMode(m.opts.Mode, m.currentDifficulty())
	}
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.records != nil {
			m.records.Update(msg)
		}
		return m, nil
	case tickMsg:
		return m, m.handleTick(msg)
	case advanceMsg:
		return m, m.handleAdvance(msg)
	case statsui.CloseMsg:
		m.records = nil
		m.enterMenu()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			if m.active != nil {
				m.active.ForceStop()
			}
			return m, tea.Quit
		}
		switch m.screen {
		case screenLogin:
			return m.updateLogin(msg)
		case screenMenu:
			return m.updateMenu(msg)
		case screenRecords:
			_, cmd := m.records.Update(msg)
			return m, cmd
		default:
			return m.updateGame(msg)
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	switch m.screen {
	case screenLogin:
		body = m.viewLogin()
	case screenMenu:
		body = m.viewMenu()
	case screenAssembly:
		body = m.viewAssembly()
	case screenPos:
		body = m.viewPos()
	case screenObjects:
		body = m.viewObjects()
	case screenRecords:
		return m.records.View()
	}
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return body + "\n\n" + footer
	}
	content := lipgloss.NewStyle().Width(m.contentWidth()).Render(body)
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - lipgloss.Height(footer)
	top := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	bottom := lipgloss.Place(m.width, lipgloss.Height(footer), lipgloss.Center, lipgloss.Center, footer)
	return top + "\n" + bottom
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	w := int(float64(m.width) * 0.70)
	if w < 1 {
		w = 1
	}
	return w
}

func (m *Model) renderFooter() string {
	var help string
	switch m.screen {
	case screenLogin:
		help = "enter confirm · ctrl+c quit"
	case screenMenu:
		help = "↑/↓ mode · ←/→ difficulty · enter play · r records · p change player · q quit"
	case screenAssembly:
		help = "1-9 place word · esc menu"
	case screenPos:
		help = "tab/arrows pick word · n noun · v verb · a adjective · esc menu"
	case screenObjects:
		help = "1-9 q w e r select · enter check · esc menu"
	}
	if m.active != nil && !m.active.State().Running() {
		help = "enter play again · esc menu"
	}
	lines := []string{footerStyle.Render(help)}
	if m.errMsg != "" {
		lines = append([]string{incorrectStyle.Render(m.errMsg)}, lines...)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) reportError(err error) {
	m.errMsg = err.Error()
}

func (m *Model) sessionOptions() []game.Option {
	return []game.Option{game.WithErrorHandler(m.reportError)}
}

func tickCmd(s session) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{session: s}
	})
}

func pacingCmd(s session) tea.Cmd {
	return tea.Tick(game.PacingDelay, func(time.Time) tea.Msg {
		return advanceMsg{session: s}
	})
}

func (m *Model) handleTick(msg tickMsg) tea.Cmd {
	if m.active == nil || msg.session != m.active {
		return nil
	}
	msg.session.Tick()
	if msg.session.State().Running() {
		return tickCmd(msg.session)
	}
	m.onSessionOver()
	return nil
}

func (m *Model) handleAdvance(msg advanceMsg) tea.Cmd {
	if m.active == nil || msg.session != m.active {
		return nil
	}
	a, ok := msg.session.(advancer)
	if !ok || !a.Advance() {
		return nil
	}
	m.feedback = ""
	m.posCursor = 0
	if !msg.session.State().Running() {
		m.onSessionOver()
	}
	return nil
}

// startMode creates a fresh session and starts its tick chain.
func (m *Model) startMode(mode model.Mode, key string) tea.Cmd {
	m.feedback = ""
	m.errMsg = ""
	m.posCursor = 0
	m.difficulty = key

	var err error
	switch mode {
	case model.ModeAssembly:
		s := game.NewAssemblySession(m.deps, m.sessionOptions()...)
		err = s.Initialize(m.player, key)
		m.assembly, m.active, m.screen = s, s, screenAssembly
	case model.ModePos:
		s := game.NewPosSession(m.deps, m.sessionOptions()...)
		err = s.Initialize(m.player, key)
		m.pos, m.active, m.screen = s, s, screenPos
	case model.ModeObjects:
		s := game.NewObjectsSession(m.deps, m.sessionOptions()...)
		err = s.Initialize(m.player, key)
		m.objects, m.active, m.screen = s, s, screenObjects
	default:
		err = fmt.Errorf("unknown mode %q", mode)
	}
	if err != nil {
		m.active = nil
		m.enterMenu()
		m.errMsg = err.Error()
		return nil
	}
	if !m.active.State().Running() {
		m.onSessionOver()
		return nil
	}
	return tickCmd(m.active)
}

func (m *Model) onSessionOver() {
	m.feedback = ""
	m.loadMenuData()
}

// exitToMenu halts the running session. Assembly results are dropped; the
// other modes record the score reached so far.
func (m *Model) exitToMenu() {
	switch m.screen {
	case screenAssembly:
		m.assembly.ForceStop()
	case screenPos:
		m.pos.ForceFinishToMenu()
	case screenObjects:
		m.objects.ForceFinishToMenu()
	}
	m.active = nil
	m.enterMenu()
}

func (m *Model) updateGame(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		m.exitToMenu()
		return m, nil
	}
	if m.active == nil {
		return m, nil
	}
	if !m.active.State().Running() {
		if msg.Type == tea.KeyEnter {
			return m, m.startMode(m.currentMode(), m.difficulty)
		}
		return m, nil
	}
	switch m.screen {
	case screenAssembly:
		return m, m.updateAssembly(msg)
	case screenPos:
		return m, m.updatePos(msg)
	case screenObjects:
		return m, m.updateObjects(msg)
	}
	return m, nil
}

func (m *Model) currentMode() model.Mode {
	switch m.screen {
	case screenPos:
		return model.ModePos
	case screenObjects:
		return model.ModeObjects
	case screenAssembly:
		return model.ModeAssembly
	}
	return model.Modes[m.modeIndex]
}

func (m *Model) viewEnd(reason game.EndReason, score int, extra ...string) string {
	lines := []string{
		titleStyle.Render("Game over"),
		fmt.Sprintf("%s · Score %d", endReasonText(reason), score),
	}
	lines = append(lines, extra...)
	return strings.Join(lines, "\n")
}

func endReasonText(reason game.EndReason) string {
	switch reason {
	case game.ReasonCompleted:
		return "All rounds done"
	case game.ReasonTimeExpired:
		return "Time is up"
	case game.ReasonStopped, game.ReasonExitedToMenu:
		return "Stopped"
	}
	return string(reason)
}

func defaultDifficulty(key string) string {
	if key == "" {
		return content.Easy
	}
	return key
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
