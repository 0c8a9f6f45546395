package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"
)

// Canvas composes a rendered frame and the overlays drawn on top of it (help
// modal, toasts) in a cell buffer, then turns the result back into a string
// for Bubble Tea.
type Canvas struct {
	screen *cellbuf.Screen
	writer *cellbuf.ScreenWriter
	width  int
	height int
}

// NewCanvas allocates a width x height canvas. Non-positive sizes become 1.
func NewCanvas(width, height int) *Canvas {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	screen := cellbuf.NewScreen(io.Discard, width, height, &cellbuf.ScreenOptions{
		ShowCursor: false,
		AltScreen:  false,
	})
	return &Canvas{
		screen: screen,
		writer: cellbuf.NewScreenWriter(screen),
		width:  width,
		height: height,
	}
}

// DrawStringAt writes content starting at x,y. Every line starts at column x.
func (c *Canvas) DrawStringAt(x, y int, content string) {
	if c == nil || content == "" {
		return
	}
	c.drawBlockAt(x, y, splitLines(content))
}

// Center draws overlay centered between the top and bottom margins so the
// header and footer stay visible.
func (c *Canvas) Center(overlay string, topMargin, bottomMargin int) {
	lines := splitLines(overlay)
	if c == nil || len(lines) == 0 {
		return
	}
	topMargin = max(topMargin, 0)
	bottomMargin = max(bottomMargin, 0)

	h := len(lines)
	w := min(maxLineWidth(lines), c.width)

	usable := max(c.height-topMargin-bottomMargin, h)
	y := topMargin + (usable-h)/2
	y = min(y, c.height-bottomMargin-h)
	y = max(y, topMargin, 0)

	c.drawBlockAt(max((c.width-w)/2, 0), y, lines)
}

// BottomRight anchors overlay to the bottom-right corner inside padding.
func (c *Canvas) BottomRight(overlay string, padding int) {
	lines := splitLines(overlay)
	if c == nil || len(lines) == 0 {
		return
	}
	padding = max(padding, 0)
	y := max(c.height-len(lines)-padding, 0)
	x := max(c.width-maxLineWidth(lines)-padding, 0)
	c.drawBlockAt(x, y, lines)
}

func (c *Canvas) drawBlockAt(x, y int, lines []string) {
	x = max(x, 0)
	y = max(y, 0)
	for i, line := range lines {
		row := y + i
		if row >= c.height {
			break
		}
		if line == "" {
			continue
		}
		c.writer.PrintCropAt(x, row, line, "")
	}
}

// Render returns the composed frame and releases the screen.
func (c *Canvas) Render() string {
	if c == nil || c.screen == nil {
		return ""
	}
	raw := cellbuf.Render(c.screen)
	_ = c.screen.Close()
	return strings.ReplaceAll(raw, "\r\n", "\n")
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
}

func maxLineWidth(lines []string) int {
	widest := 0
	for _, line := range lines {
		widest = max(widest, lipgloss.Width(line))
	}
	return widest
}
