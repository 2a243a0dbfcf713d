package ui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/idilsaglam/toyboard/internal/board"
)

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string { return ansiRegexp.ReplaceAllString(s, "") }

func visibleWidth(s string) int { return runewidth.StringWidth(stripANSI(s)) }

// LikesBar renders likes relative to the most liked card on the board.
func LikesBar(likes, most, width int) string {
	if most <= 0 {
		most = 1
	}
	if width < 5 {
		width = 5
	}
	if likes < 0 {
		likes = 0
	}
	filled := int(float64(likes) / float64(most) * float64(width))
	if filled > width {
		filled = width
	}
	t := Current()
	return strings.Repeat(t.BarFull, filled) + strings.Repeat(t.BarEmpty, width-filled)
}

// PanelString draws a framed box using the current theme.
func PanelString(lines []string) string {
	t := Current()
	maxw := 0
	for _, ln := range lines {
		if w := visibleWidth(ln); w > maxw {
			maxw = w
		}
	}
	pad := func(s string) string {
		if vis := visibleWidth(s); vis < maxw {
			s = s + strings.Repeat(" ", maxw-vis)
		}
		return s
	}
	var sb strings.Builder
	sb.WriteString(t.CornerTL + strings.Repeat(t.H, maxw+2) + t.CornerTR + "\n")
	for _, ln := range lines {
		sb.WriteString(t.V + " " + pad(ln) + " " + t.V + "\n")
	}
	sb.WriteString(t.CornerBL + strings.Repeat(t.H, maxw+2) + t.CornerBR + "\n")
	return sb.String()
}

// Panel prints PanelString to stdout.
func Panel(lines []string) {
	fmt.Fprint(stdout, PanelString(lines))
}

// CardLines renders one card: name, image URL, likes with a bar scaled to
// the most liked card, and the id used by `like`.
func CardLines(c board.Card, most int) []string {
	t := Current()
	name := c.Name
	if runewidth.StringWidth(name) > 60 {
		name = runewidth.Truncate(name, 60, "...")
	}
	return []string{
		C(t.Title, name),
		C(t.Muted, t.Image+" "+c.Image),
		fmt.Sprintf("%s %s  %s", C(t.Likes, t.Heart), c.LikesLabel(), C(t.Muted, LikesBar(c.Likes, most, 16))),
		C(dim, "id "+c.ID.String()),
	}
}

// Cards prints every card as its own panel under a header line.
func Cards(cards []board.Card) {
	t := Current()
	most, total := 0, 0
	for _, c := range cards {
		total += c.Likes
		if c.Likes > most {
			most = c.Likes
		}
	}
	fmt.Fprintf(stdout, "%s  %s %d  %s %d\n",
		C(t.Title, "Toys"),
		C(t.Accent, "Total"), len(cards),
		C(t.Likes, t.Heart), total,
	)
	if len(cards) == 0 {
		fmt.Fprintln(stdout, C(t.Muted, "no toys yet"))
		fmt.Fprintln(stdout, C(t.Muted, "Tip: add with `toyboard add \"Bear\" https://example.com/bear.png`"))
		return
	}
	for _, c := range cards {
		Panel(CardLines(c, most))
	}
}
