package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/llmholdem/internal/game"
	"github.com/lox/llmholdem/internal/statistics"
)

// narrativeRenderer colours play-by-play lines for a terminal
type narrativeRenderer struct {
	w io.Writer

	header  lipgloss.Style
	dim     lipgloss.Style
	board   lipgloss.Style
	fold    lipgloss.Style
	raise   lipgloss.Style
	winner  lipgloss.Style
	heading lipgloss.Style
}

func newNarrativeRenderer(w io.Writer, noColor bool) *narrativeRenderer {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return &narrativeRenderer{
		w: w,
		header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		dim:     r.NewStyle().Foreground(lipgloss.Color("#626262")),
		board:   r.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		fold:    r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		raise:   r.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		winner:  r.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true).Underline(true),
		heading: r.NewStyle().Bold(true),
	}
}

func (r *narrativeRenderer) style(line string) string {
	switch {
	case strings.HasPrefix(line, "A new round"):
		return "\n" + r.header.Render(line)
	case strings.Contains(line, " the pot of "):
		return r.winner.Render(line)
	case strings.HasPrefix(line, "The flop"),
		strings.HasPrefix(line, "The turn"),
		strings.HasPrefix(line, "The river"),
		strings.Contains(line, " shows "):
		return r.board.Render(line)
	case strings.HasSuffix(line, " folds."):
		return r.fold.Render(line)
	case strings.Contains(line, " raises "):
		return r.raise.Render(line)
	case strings.Contains(line, "forced to bet"),
		strings.Contains(line, "eliminated"),
		strings.HasPrefix(line, "The small blind"),
		strings.HasPrefix(line, "The big blind"),
		strings.HasSuffix(line, "at the start of the round."):
		return r.dim.Render(line)
	}
	return line
}

// Lines prints narrative lines, one per row
func (r *narrativeRenderer) Lines(lines []string) {
	for _, line := range lines {
		fmt.Fprintln(r.w, r.style(line))
	}
}

// Stacks prints the closing stacks of a match
func (r *narrativeRenderer) Stacks(snap game.Snapshot) {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, r.heading.Render(fmt.Sprintf("Match %s: %d rounds, %d eliminated",
		snap.ID, snap.Statistics.NumRounds, snap.Eliminations)))
	winner := snap.Winner()
	for _, p := range snap.Players {
		line := fmt.Sprintf("  %-16s %6d  (%+d)", p.Name, p.Money, snap.Statistics.Net(p.Seat))
		if p.Seat == winner {
			line = r.winner.Render(line)
		}
		fmt.Fprintln(r.w, line)
	}
}

// Standings prints a cross-match table
func (r *narrativeRenderer) Standings(standings []statistics.Standing) {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, r.heading.Render(fmt.Sprintf("%-16s %7s %7s %9s %9s %10s",
		"player", "matches", "rounds", "won", "net", "mean/round")))
	for _, st := range standings {
		fmt.Fprintf(r.w, "%-16s %7d %7d %9d %+9d %+10.2f\n",
			st.Name, st.Matches, st.Rounds, st.RoundsWon, st.Net, st.MeanDelta)
	}
}
