// Package main provides the CLI entrypoint for funtext.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/funtext/internal/config"
	"github.com/verte-zerg/funtext/internal/content"
	"github.com/verte-zerg/funtext/internal/game"
	"github.com/verte-zerg/funtext/internal/generator"
	"github.com/verte-zerg/funtext/internal/model"
	"github.com/verte-zerg/funtext/internal/stats"
	"github.com/verte-zerg/funtext/internal/store"
	"github.com/verte-zerg/funtext/internal/tui"
)

const dotEnvPath = ".env"

var (
	playPlayer     string
	playMode       string
	playDifficulty string

	historyPlayer   string
	leaderboardMode string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "funtext",
		Short:         "Language mini-games in the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return config.LoadEnv(dotEnvPath)
		},
		RunE: runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playPlayer, "player", "", "player name (skips the login screen)")
	rootCmd.Flags().StringVar(&playMode, "mode", "", "start a mode directly: assembly, pos or objects")
	rootCmd.Flags().StringVar(&playDifficulty, "difficulty", content.Easy, "difficulty key")

	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newLevelsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// loadSetup reads the config file and builds the difficulty tables and corpus.
func loadSetup() (config.FileConfig, content.Tables, content.Corpus, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, content.Tables{}, content.Corpus{}, fmt.Errorf("failed to load config: %w", err)
	}
	tables, err := fileCfg.Tables(content.DefaultTables())
	if err != nil {
		return config.FileConfig{}, content.Tables{}, content.Corpus{}, err
	}
	corpus, err := fileCfg.Corpus(content.DefaultCorpus())
	if err != nil {
		return config.FileConfig{}, content.Tables{}, content.Corpus{}, err
	}
	return fileCfg, tables, corpus, nil
}

func openStore() (*store.Store, error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, tables, corpus, err := loadSetup()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "player", &playPlayer, fileCfg.Player.Name)
	if err := validatePlayFlags(tables); err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	gen := generator.New()
	deps := game.Deps{
		Tables:   tables,
		Corpus:   corpus,
		Random:   gen,
		IDs:      gen,
		Recorder: st,
	}
	host := tui.NewModel(st, deps, tui.Options{
		Player:     playPlayer,
		Mode:       model.Mode(playMode),
		Difficulty: playDifficulty,
	})
	program := tea.NewProgram(host, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func validatePlayFlags(tables content.Tables) error {
	if playMode == "" {
		return nil
	}
	mode := model.Mode(playMode)
	if !slices.Contains(model.Modes, mode) {
		return fmt.Errorf("--mode must be one of %s", joinModes(model.Modes))
	}
	if keys := tables.Keys(mode); !slices.Contains(keys, playDifficulty) {
		return fmt.Errorf("--difficulty must be one of %s for %s", strings.Join(keys, ", "), mode)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent sentence-assembly games",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyPlayer, "player", "", "player name (default: every player)")
	return cmd
}

func runHistoryCmd(_ *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	players := []string{historyPlayer}
	if strings.TrimSpace(historyPlayer) == "" {
		players, err = st.ListPlayers(ctx)
		if err != nil {
			return fmt.Errorf("failed to list players: %w", err)
		}
	}
	if len(players) == 0 {
		if _, err := fmt.Fprintln(os.Stdout, "No games yet."); err != nil {
			return err
		}
	}
	for _, player := range players {
		entries, err := st.LoadHistory(ctx, player)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		if err := stats.RenderHistory(os.Stdout, player, entries); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(os.Stdout); err != nil {
			return err
		}
	}
	best, err := st.LoadBestGlobal(ctx)
	if err != nil {
		return fmt.Errorf("failed to load record: %w", err)
	}
	return stats.RenderBest(os.Stdout, best)
}

func newLeaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the top players per mode",
		Args:  cobra.NoArgs,
		RunE:  runLeaderboardCmd,
	}
	cmd.Flags().StringVar(&leaderboardMode, "mode", "", "pos or objects (default: both)")
	return cmd
}

func runLeaderboardCmd(_ *cobra.Command, _ []string) error {
	modes := []model.Mode{model.ModePos, model.ModeObjects}
	if leaderboardMode != "" {
		mode := model.Mode(leaderboardMode)
		if !slices.Contains(modes, mode) {
			return fmt.Errorf("--mode must be one of %s", joinModes(modes))
		}
		modes = []model.Mode{mode}
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	for i, mode := range modes {
		if i > 0 {
			if _, err := fmt.Fprintln(os.Stdout); err != nil {
				return err
			}
		}
		entries, err := st.LoadLeaderboard(ctx, mode)
		if err != nil {
			return fmt.Errorf("failed to load leaderboard: %w", err)
		}
		if err := stats.RenderLeaderboard(os.Stdout, mode, entries); err != nil {
			return err
		}
	}
	return nil
}

func newLevelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List difficulty levels per mode",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, tables, _, err := loadSetup()
			if err != nil {
				return err
			}
			return stats.RenderLevels(os.Stdout, tables)
		},
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	tables := content.DefaultTables()
	easy := tables.Assembly[content.Easy]
	pos := tables.Pos[content.Easy]
	objects := tables.Objects[content.Easy]
	return fmt.Sprintf(`# funtext configuration
# Uncomment a value to enable it. CLI flags override config values.

[player]
# name = "Ann"                    # Default player, skips the login screen

[content]
# phrases = "/path/phrases.txt"   # One phrase per line
# pos-words = "/path/pos.txt"     # "word noun|verb|adj" per line

# Difficulty tables. Keys other than easy/medium/hard add a new level.
[assembly.easy]
# time-limit = %d                 # Seconds per sentence
# min-words = %d
# max-words = %d
# prefill = %.2f                  # Chance of one word placed in advance (0-1)
# multiplier = %.1f               # Round score multiplier

[pos.easy]
# time-limit = %d                 # Seconds per round
# words = %d                      # Words per round

[objects.easy]
# time-limit = %d                 # Seconds per round
# count = %d                      # Objects shown per round (1-13)
# rounds = %d
`,
		easy.TimeLimit, easy.MinWords, easy.MaxWords, easy.PrefillProbability, easy.ScoreMultiplier,
		pos.TimeLimit, pos.WordsCount,
		objects.TimeLimit, objects.Count, objects.Rounds,
	)
}

func joinModes(modes []model.Mode) string {
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
