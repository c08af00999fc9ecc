// Package canvas implements the game's render sink as a fixed-size grid
// of styled terminal cells. The round draws in cell coordinates; the
// canvas owns glyph choice and color, and flattens to a string frame for
// the TUI.
package canvas

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/cardtable/blackjack/internal/deck"
	"github.com/cardtable/blackjack/internal/game"
)

type cell struct {
	r   rune
	ink game.Ink
}

// Canvas is a W x H cell surface implementing game.Sink. Out-of-bounds
// draws are clipped, never panic.
type Canvas struct {
	w, h     int
	cells    []cell
	cardInks map[int]cardInk
	styles   map[game.Ink]lipgloss.Style
	mono     bool
}

// New creates a canvas sized for the game screen. On terminals without
// color support the palette collapses to plain text.
func New(w, h int) *Canvas {
	c := &Canvas{
		w:     w,
		h:     h,
		cells: make([]cell, w*h),
		mono:  termenv.ColorProfile() == termenv.Ascii,
	}
	c.styles = buildPalette(c.mono)
	c.Clear()
	return c
}

func buildPalette(mono bool) map[game.Ink]lipgloss.Style {
	if mono {
		styles := make(map[game.Ink]lipgloss.Style)
		for ink := game.InkFelt; ink <= game.InkMarker; ink++ {
			styles[ink] = lipgloss.NewStyle()
		}
		styles[game.InkHighlight] = lipgloss.NewStyle().Bold(true)
		return styles
	}
	return map[game.Ink]lipgloss.Style{
		game.InkFelt:      lipgloss.NewStyle().Background(lipgloss.Color("#0B5D1E")),
		game.InkRail:      lipgloss.NewStyle().Foreground(lipgloss.Color("#8B5A2B")),
		game.InkLine:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")),
		game.InkBar:       lipgloss.NewStyle().Background(lipgloss.Color("#1A1A2E")),
		game.InkText:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")),
		game.InkHighlight: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		game.InkDim:       lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
		game.InkMarker:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
	}
}

// Card face styles live outside the ink palette: card cells are always
// white-backed with red or black pips.
var (
	cardRedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C60E0E")).Background(lipgloss.Color("#FFFFFF"))
	cardBlackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#FFFFFF"))
	cardBackStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C60E0E")).Background(lipgloss.Color("#FFFFFF"))
)

// Width returns the canvas width in cells
func (c *Canvas) Width() int { return c.w }

// Height returns the canvas height in cells
func (c *Canvas) Height() int { return c.h }

// Clear resets every cell to blank
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = cell{r: ' ', ink: game.InkText}
	}
	// Card cells carry their own style; clear those too.
	if c.cardInks != nil {
		for k := range c.cardInks {
			delete(c.cardInks, k)
		}
	}
}

// cardInks overrides the ink palette for cells painted by Card
type cardInk int

const (
	cardInkNone cardInk = iota
	cardInkRed
	cardInkBlack
	cardInkBack
)

func (c *Canvas) set(x, y int, r rune, ink game.Ink) {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return
	}
	c.cells[y*c.w+x] = cell{r: r, ink: ink}
	if c.cardInks != nil {
		delete(c.cardInks, y*c.w+x)
	}
}

// FillRect fills a rectangle with the ink's background
func (c *Canvas) FillRect(x, y, w, h int, ink game.Ink) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			c.set(xx, yy, ' ', ink)
		}
	}
}

// StrokeOval traces an ellipse outline inscribed in the given box
func (c *Canvas) StrokeOval(x, y, w, h int, ink game.Ink) {
	if w <= 0 || h <= 0 {
		return
	}
	cx := float64(x) + float64(w)/2
	cy := float64(y) + float64(h)/2
	rx := float64(w) / 2
	ry := float64(h) / 2

	steps := 4 * (w + h)
	for i := 0; i < steps; i++ {
		angle := 2 * math.Pi * float64(i) / float64(steps)
		px := int(math.Round(cx + rx*math.Cos(angle)))
		py := int(math.Round(cy + ry*math.Sin(angle)))
		if px == x+w {
			px--
		}
		if py == y+h {
			py--
		}
		c.set(px, py, '·', ink)
	}
}

// HLine draws a horizontal line
func (c *Canvas) HLine(x, y, w int, ink game.Ink) {
	for xx := x; xx < x+w; xx++ {
		c.set(xx, y, '─', ink)
	}
}

// Text writes a string starting at the given cell
func (c *Canvas) Text(x, y int, s string, ink game.Ink) {
	for i, r := range []rune(s) {
		c.set(x+i, y, r, ink)
	}
}

// Card draws a card glyph: a 5x4 white box showing rank and suit in the
// suit's color when face up, a back pattern when face down.
func (c *Canvas) Card(x, y int, card deck.Card, faceUp bool) {
	if c.cardInks == nil {
		c.cardInks = make(map[int]cardInk)
	}

	var ci cardInk
	var rows [4]string
	if faceUp {
		ci = cardInkBlack
		if card.IsRed() {
			ci = cardInkRed
		}
		rank := []rune(card.Rank.String())[0]
		suit := []rune(card.Suit.String())[0]
		rows = [4]string{
			"┌───┐",
			"│" + string(rank) + string(suit) + " │",
			"│ " + string(suit) + string(rank) + "│",
			"└───┘",
		}
	} else {
		ci = cardInkBack
		rows = [4]string{
			"┌───┐",
			"│░░░│",
			"│░░░│",
			"└───┘",
		}
	}

	for dy, row := range rows {
		for dx, r := range []rune(row) {
			xx, yy := x+dx, y+dy
			if xx < 0 || xx >= c.w || yy < 0 || yy >= c.h {
				continue
			}
			c.cells[yy*c.w+xx] = cell{r: r}
			c.cardInks[yy*c.w+xx] = ci
		}
	}
}

// String flattens the canvas to a styled frame, one line per row.
// Contiguous runs of identically-styled cells are rendered together to
// keep the escape-sequence overhead down.
func (c *Canvas) String() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		x := 0
		for x < c.w {
			run := c.styleAt(x, y)
			var text strings.Builder
			for x < c.w && c.styleAt(x, y) == run {
				text.WriteRune(c.cells[y*c.w+x].r)
				x++
			}
			b.WriteString(c.styleFor(run).Render(text.String()))
		}
		if y < c.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// styleKey identifies which style paints a cell
type styleKey struct {
	ink  game.Ink
	card cardInk
}

func (c *Canvas) styleAt(x, y int) styleKey {
	idx := y*c.w + x
	if ci, ok := c.cardInks[idx]; ok {
		return styleKey{card: ci}
	}
	return styleKey{ink: c.cells[idx].ink}
}

func (c *Canvas) styleFor(key styleKey) lipgloss.Style {
	switch key.card {
	case cardInkRed:
		return cardRedStyle
	case cardInkBlack:
		return cardBlackStyle
	case cardInkBack:
		return cardBackStyle
	}
	return c.styles[key.ink]
}

// Plain returns the frame without styling, for tests and logs
func (c *Canvas) Plain() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			b.WriteRune(c.cells[y*c.w+x].r)
		}
		if y < c.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
