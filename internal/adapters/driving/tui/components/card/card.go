// Package card draws a rendered preview tree in the terminal.
package card

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/linkcard/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/linkcard/internal/core/render"
)

// Layout units per terminal cell.
const (
	unitsPerColumn = 6.0
	unitsPerRow    = 12.0
)

// DefaultWidth is the card width used until SetWidth is called.
const DefaultWidth = 72

const ellipsis = "…"

// Card draws render.Node trees with lipgloss.
type Card struct {
	styles    *styles.Styles
	width     int
	highlight bool
}

// New creates a card component.
func New(s *styles.Styles) *Card {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Card{styles: s, width: DefaultWidth}
}

// SetWidth sets the outer width in columns.
func (c *Card) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	c.width = width
}

// Width returns the outer width in columns.
func (c *Card) Width() int {
	return c.width
}

// SetHighlight toggles the highlighted border.
func (c *Card) SetHighlight(on bool) {
	c.highlight = on
}

// Highlighted reports whether the highlighted border is on.
func (c *Card) Highlighted() bool {
	return c.highlight
}

// View draws node. The empty node draws nothing.
func (c *Card) View(node *render.Node) string {
	if node.IsEmpty() {
		return ""
	}
	return c.draw(node, c.width)
}

func (c *Card) draw(n *render.Node, width int) string {
	switch n.Kind {
	case render.KindPressable:
		return c.drawColumn(n.Children, width)
	case render.KindView:
		return c.drawView(n, width)
	case render.KindImage:
		return c.drawImage(n)
	case render.KindText:
		return c.drawText(n, width)
	default:
		return ""
	}
}

func (c *Card) drawView(n *render.Node, width int) string {
	style := lipgloss.NewStyle()
	if n.Attr(render.AttrRegion) == render.RegionCard {
		style = c.styles.Card
		if border := n.Style.Get("borderColor"); border != "" {
			style = style.BorderForeground(c.styles.Theme().Grey(border))
		}
		if c.highlight {
			style = c.styles.CardHighlight
		}
	}
	if padding := cellsX(n.Style.Get("padding")); padding > 0 {
		style = style.Padding(0, padding)
	}

	inner := width - style.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}

	var body string
	if n.Style.Get("flexDirection") == "row" {
		body = c.drawRow(n.Children, inner)
	} else {
		body = c.drawColumn(n.Children, inner)
	}
	return style.Render(body)
}

func (c *Card) drawColumn(children []*render.Node, width int) string {
	parts := make([]string, 0, len(children))
	for _, child := range children {
		if out := c.draw(child, width); out != "" {
			parts = append(parts, out)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// drawRow lays out fixed children first and splits what is left among
// children with a flex style.
func (c *Card) drawRow(children []*render.Node, width int) string {
	parts := make([]string, len(children))
	remaining := width
	flexTotal := 0.0

	for i, child := range children {
		if flex := number(child.Style.Get("flex")); flex > 0 {
			flexTotal += flex
			continue
		}
		parts[i] = c.draw(child, remaining)
		remaining -= lipgloss.Width(parts[i])
	}

	for i, child := range children {
		flex := number(child.Style.Get("flex"))
		if flex <= 0 {
			continue
		}
		share := int(math.Floor(float64(remaining) * flex / flexTotal))
		if share < 1 {
			share = 1
		}
		parts[i] = c.draw(child, share)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (c *Card) drawImage(n *render.Node) string {
	cols := int(math.Round(n.Box.Width / unitsPerColumn))
	rows := int(math.Round(n.Box.Height / unitsPerRow))
	if cols < 3 {
		cols = 3
	}
	if rows < 1 {
		rows = 1
	}

	style := c.styles.Image.Width(cols).Height(rows)
	if margin := cellsX(n.Style.Get("marginRight")); margin > 0 {
		style = style.MarginRight(margin)
	}
	return style.Render("img")
}

func (c *Card) drawText(n *render.Node, width int) string {
	style := lipgloss.NewStyle().Foreground(c.styles.Theme().Grey(n.Style.Get("color")))
	if n.Style.Get("fontWeight") == "bold" {
		style = style.Bold(true)
	}
	return style.Render(strings.Join(Clamp(n.Text, width, n.MaxLines), "\n"))
}

// Clamp wraps text to width and keeps at most maxLines lines, marking a cut
// with an ellipsis. A maxLines <= 0 keeps every line.
func Clamp(text string, width, maxLines int) []string {
	if width < 1 {
		width = 1
	}
	wrapped := lipgloss.NewStyle().Width(width).Render(text)
	lines := strings.Split(wrapped, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	if maxLines <= 0 || len(lines) <= maxLines {
		return lines
	}

	lines = lines[:maxLines]
	last := []rune(lines[maxLines-1])
	if len(last)+1 > width {
		last = last[:width-1]
	}
	lines[maxLines-1] = strings.TrimRight(string(last), " ") + ellipsis
	return lines
}

// Plain returns the text of every text node, one paragraph per node.
func Plain(node *render.Node) string {
	if node.IsEmpty() {
		return ""
	}
	var parts []string
	node.Walk(func(n *render.Node, _ int) bool {
		if n.Kind == render.KindText && n.Text != "" {
			parts = append(parts, n.Text)
		}
		return true
	})
	return strings.Join(parts, "\n")
}

// cellsX converts a horizontal length in layout units to columns.
func cellsX(v string) int {
	return int(math.Round(number(v) / unitsPerColumn))
}

func number(v string) float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}
