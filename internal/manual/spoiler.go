package manual

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const DefaultSpoilerWidth = 100

// WriteSpoiler gives every player's hooks a chance to write to out, then
// writes the spoiler log for the generated result.
func (g *Generator) WriteSpoiler(out io.Writer, width int) error {
	if g.result == nil {
		return ErrNotGenerated
	}
	for _, p := range g.players {
		g.hooks.BeforeWriteSpoiler(p, out)
	}
	return RenderSpoiler(out, g.result, width)
}

// RenderSpoiler writes a human-readable summary of r to out. Styling is
// dropped automatically when out is not a terminal.
func RenderSpoiler(out io.Writer, r *Result, width int) error {
	if width <= 0 {
		width = DefaultSpoilerWidth
	}

	re := lipgloss.NewRenderer(out)
	titleStyle := re.NewStyle().Bold(true).Foreground(lipgloss.Color("205")) // pink
	playerStyle := re.NewStyle().Bold(true).Foreground(lipgloss.Color("86")) // green
	sectionStyle := re.NewStyle().Foreground(lipgloss.Color("39"))           // teal
	caser := cases.Title(language.English)

	var b strings.Builder
	b.WriteString(titleStyle.Render(r.Game+" Spoiler Log") + "\n")
	fmt.Fprintf(&b, "Seed: %d\n", r.Seed)
	fmt.Fprintf(&b, "ID: %s\n", r.ID)

	section := func(label string, body string) {
		b.WriteString(sectionStyle.Render(caser.String(label)) + "\n")
		if body == "" {
			body = "(none)"
		}
		b.WriteString(indent.String(wordwrap.String(body, width-4), 4) + "\n")
	}

	for _, p := range r.Players {
		b.WriteString("\n" + playerStyle.Render(fmt.Sprintf("Player %d: %s", p.Player, p.Name)) + "\n")

		keys := make([]string, 0, len(p.Options))
		for k := range p.Options {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		opts := make([]string, 0, len(keys))
		for _, k := range keys {
			opts = append(opts, fmt.Sprintf("%s: %d", caser.String(strings.ReplaceAll(k, "_", " ")), p.Options[k]))
		}
		section("options", strings.Join(opts, "\n"))

		locs := p.Locations()
		names := make([]string, 0, len(locs))
		for _, loc := range locs {
			names = append(names, loc.Name)
		}
		section(fmt.Sprintf("locations (%d)", len(locs)), strings.Join(names, ", "))

		section(fmt.Sprintf("item pool (%d)", len(p.Pool)), formatCounts(CountByName(p.Pool)))
		section(fmt.Sprintf("starting inventory (%d)", len(p.Precollected)), formatCounts(CountByName(p.Precollected)))
	}

	_, err := io.WriteString(out, b.String())
	return err
}

func formatCounts(counts []ItemCount) string {
	parts := make([]string, 0, len(counts))
	for _, c := range counts {
		if c.Count == 1 {
			parts = append(parts, c.Name)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s x%d", c.Name, c.Count))
	}
	return strings.Join(parts, ", ")
}
