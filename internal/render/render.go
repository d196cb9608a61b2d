// Package render formats rounds, suggestions and entropy reports for the
// terminal. Colors come from lipgloss and degrade to plain text when the
// output is not a terminal.
package render

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/fibble/internal/game"
	"github.com/robalobadob/fibble/internal/solver"
)

var (
	correctColor = lipgloss.Color("#6AAA64")
	presentColor = lipgloss.Color("#C9B458")
	absentColor  = lipgloss.Color("#787C7E")
	tileText     = lipgloss.Color("#FFFFFF")
	accentColor  = lipgloss.Color("#2196F3")
	mutedColor   = lipgloss.Color("#9E9E9E")
)

// Renderer holds the styles bound to one output.
type Renderer struct {
	tiles  map[game.Mark]lipgloss.Style
	title  lipgloss.Style
	muted  lipgloss.Style
	accent lipgloss.Style
}

// New builds a Renderer for w.
func New(w io.Writer) *Renderer {
	r := lipgloss.NewRenderer(w)
	tile := r.NewStyle().Bold(true).Foreground(tileText).Padding(0, 1)
	return &Renderer{
		tiles: map[game.Mark]lipgloss.Style{
			game.MarkCorrect: tile.Background(correctColor),
			game.MarkPresent: tile.Background(presentColor),
			game.MarkAbsent:  tile.Background(absentColor),
		},
		title:  r.NewStyle().Bold(true),
		muted:  r.NewStyle().Foreground(mutedColor),
		accent: r.NewStyle().Bold(true).Foreground(accentColor),
	}
}

// Row draws one guess as five colored tiles followed by its G/Y/B string.
func (r *Renderer) Row(row game.Row) string {
	p := row.Pattern()
	cells := make([]string, 0, len(p))
	for _, t := range p {
		cells = append(cells, r.tiles[t.Mark].Render(string(t.Letter)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...) + "  " + r.muted.Render(p.String())
}

// Board draws every row of h, one per line.
func (r *Renderer) Board(h game.History) string {
	var b strings.Builder
	h.Each(func(row game.Row) bool {
		b.WriteString(r.Row(row))
		b.WriteByte('\n')
		return true
	})
	return b.String()
}

// Header announces a new round.
func (r *Renderer) Header(rules game.Ruleset, attempts int) string {
	line := fmt.Sprintf("%s: guess the 5-letter word in %d attempts.", strings.ToUpper(rules.String()), attempts)
	if rules == game.SingleLie {
		line += "\n" + r.muted.Render("Every row of feedback contains exactly one lie.")
	}
	return r.title.Render(line)
}

// Insights summarizes a suggestion set.
func (r *Renderer) Insights(in solver.Insights) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Remaining secrets: %d\n", in.Remaining)
	if in.Best == nil {
		b.WriteString(r.muted.Render("No secret fits the feedback so far."))
		b.WriteByte('\n')
		return b.String()
	}
	fmt.Fprintf(&b, "Best guess: %s %s\n",
		r.accent.Render(in.Best.Word.String()),
		r.muted.Render(fmt.Sprintf("(%.3f bits)", in.Best.EntropyBits)))
	if len(in.TopSecretGuesses) > 0 {
		parts := make([]string, len(in.TopSecretGuesses))
		for i, s := range in.TopSecretGuesses {
			parts[i] = fmt.Sprintf("%s %.3f", s.Word, s.EntropyBits)
		}
		fmt.Fprintf(&b, "Top secret guesses: %s\n", strings.Join(parts, ", "))
	}
	return b.String()
}

// Entropy reports the pattern distribution of a guess, largest buckets
// first. top limits the number of buckets listed; top <= 0 lists all of them.
func (r *Renderer) Entropy(e solver.GuessEntropy, top int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", r.title.Render("Guess "+e.Guess().String()))
	fmt.Fprintf(&b, "Secrets considered: %d\n", e.TotalSecrets())
	fmt.Fprintf(&b, "Distinct patterns:  %d\n", e.DistinctPatterns())
	fmt.Fprintf(&b, "Entropy:            %.4f bits\n", e.EntropyBits())
	if worst := e.Largest(); worst.Count > 0 {
		fmt.Fprintf(&b, "Worst case:         %d left after %s\n", worst.Count, worst.Pattern)
	}

	counts := e.PatternCounts()
	slices.SortStableFunc(counts, func(a, b solver.PatternCount) int { return b.Count - a.Count })
	if top > 0 && len(counts) > top {
		counts = counts[:top]
	}
	for _, pc := range counts {
		fmt.Fprintf(&b, "  %s %s\n", pc.Pattern, r.muted.Render(fmt.Sprintf("%d", pc.Count)))
	}
	return b.String()
}

// Progress draws a fixed-width bar such as [#####-----]  50%.
func Progress(done, total, width int) string {
	if total <= 0 {
		total, done = 1, 1
	}
	if done > total {
		done = total
	}
	filled := done * width / total
	return fmt.Sprintf("[%s%s] %3d%%", strings.Repeat("#", filled), strings.Repeat("-", width-filled), done*100/total)
}
