// Package stats renders game records for the command line.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/funtext/internal/content"
	"github.com/verte-zerg/funtext/internal/model"
)

const (
	sparkChars = " .:-=+*#%@"
	dateLayout = "2006-01-02 15:04"
	noRecord   = "—"

	// Rank, score and date columns plus separators.
	leaderboardReserved = 30
	minPlayerWidth      = 8
)

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// PlayerBest returns the best score in a player's history, or 0 when it is empty.
func PlayerBest(entries []model.HistoryEntry) int {
	best := 0
	for _, e := range entries {
		if e.Score > best {
			best = e.Score
		}
	}
	return best
}

// RenderHistory prints a player's recent games, newest first, with a score trend.
func RenderHistory(w io.Writer, player string, entries []model.HistoryEntry) error {
	if err := writeTitle(w, fmt.Sprintf("History: %s", player)); err != nil {
		return err
	}
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No games yet.")
		return err
	}
	rows := make([][]string, 0, len(entries))
	scores := make([]float64, len(entries))
	for i, e := range entries {
		rows = append(rows, []string{
			formatDate(e.Date),
			e.Difficulty,
			fmt.Sprintf("%d", e.Score),
		})
		// Oldest first so the trend reads left to right.
		scores[len(entries)-1-i] = float64(e.Score)
	}
	lines := formatTable([]string{"Date", "Difficulty", "Score"}, rows, map[int]bool{2: true})
	if err := writeLines(w, lines); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Best: %d  Trend: [%s]\n", PlayerBest(entries), Sparkline(scores))
	return err
}

// RenderLeaderboard prints the ranked table of a mode, fitting player names to the terminal.
func RenderLeaderboard(w io.Writer, mode model.Mode, entries []model.LeaderboardEntry) error {
	return renderLeaderboard(w, mode, entries, TerminalWidth())
}

func renderLeaderboard(w io.Writer, mode model.Mode, entries []model.LeaderboardEntry, width int) error {
	if err := writeTitle(w, fmt.Sprintf("Leaderboard: %s", mode.Title())); err != nil {
		return err
	}
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No results yet.")
		return err
	}
	playerWidth := max(minPlayerWidth, width-leaderboardReserved)
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			truncateCell(e.Player, playerWidth),
			fmt.Sprintf("%d", e.Score),
			formatDate(e.Date),
		})
	}
	lines := formatTable([]string{"#", "Player", "Score", "Date"}, rows, map[int]bool{0: true, 2: true})
	return writeLines(w, lines)
}

// RenderBest prints the global record line.
func RenderBest(w io.Writer, best *model.BestRecord) error {
	_, err := fmt.Fprintf(w, "Record: %s\n", FormatBest(best))
	return err
}

// FormatBest formats the global record as "player score (date)".
func FormatBest(best *model.BestRecord) string {
	if best == nil {
		return noRecord
	}
	return fmt.Sprintf("%s %d (%s)", best.Player, best.Score, formatDate(best.Date))
}

// RenderLevels prints the difficulty parameters of every mode.
func RenderLevels(w io.Writer, tables content.Tables) error {
	if err := writeTitle(w, model.ModeAssembly.Title()); err != nil {
		return err
	}
	rows := [][]string{}
	for _, key := range tables.Keys(model.ModeAssembly) {
		d := tables.Assembly[key]
		rows = append(rows, []string{
			key, d.Label,
			fmt.Sprintf("%ds", d.TimeLimit),
			fmt.Sprintf("%d-%d", d.MinWords, d.MaxWords),
			fmt.Sprintf("%.2f", d.PrefillProbability),
			fmt.Sprintf("x%g", d.ScoreMultiplier),
		})
	}
	if err := writeLines(w, formatTable([]string{"Key", "Label", "Time", "Words", "Prefill", "Multiplier"}, rows, map[int]bool{2: true})); err != nil {
		return err
	}

	if err := writeTitle(w, model.ModePos.Title()); err != nil {
		return err
	}
	rows = rows[:0]
	for _, key := range tables.Keys(model.ModePos) {
		d := tables.Pos[key]
		rows = append(rows, []string{key, d.Label, fmt.Sprintf("%ds", d.TimeLimit), fmt.Sprintf("%d", d.WordsCount)})
	}
	if err := writeLines(w, formatTable([]string{"Key", "Label", "Time", "Words/round"}, rows, map[int]bool{2: true, 3: true})); err != nil {
		return err
	}

	if err := writeTitle(w, model.ModeObjects.Title()); err != nil {
		return err
	}
	rows = rows[:0]
	for _, key := range tables.Keys(model.ModeObjects) {
		d := tables.Objects[key]
		rows = append(rows, []string{key, d.Label, fmt.Sprintf("%ds", d.TimeLimit), fmt.Sprintf("%d", d.Count), fmt.Sprintf("%d", d.Rounds)})
	}
	return writeLines(w, formatTable([]string{"Key", "Label", "Time", "Objects", "Rounds"}, rows, map[int]bool{2: true, 3: true, 4: true}))
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return noRecord
	}
	return t.Local().Format(dateLayout)
}
