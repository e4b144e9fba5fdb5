package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/dicepoker/internal/dice"
	"github.com/lox/dicepoker/internal/hand"
	"github.com/lox/dicepoker/internal/round"
)

const (
	minTableWidth = 60
	maxTableWidth = 120

	dieCols  = 5
	slotCols = 7
)

type cellKind uint8

const (
	kindBlank cellKind = iota
	kindFloor
	kindSlot
	kindDie
	kindHeld
	kindRed
	kindBlack
	kindTumble
)

func (k cellKind) style() lipgloss.Style {
	switch k {
	case kindFloor:
		return FloorStyle
	case kindSlot:
		return SlotStyle
	case kindHeld:
		return HeldStyle
	case kindRed:
		return RedPipStyle
	case kindBlack:
		return BlackPipStyle
	case kindTumble:
		return TumbleStyle
	default:
		return DieStyle
	}
}

// canvas is a grid of runes, each tagged with how it is styled.
type canvas struct {
	w, h  int
	runes [][]rune
	kinds [][]cellKind
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, runes: make([][]rune, h), kinds: make([][]cellKind, h)}
	for y := range h {
		c.runes[y] = []rune(strings.Repeat(" ", w))
		c.kinds[y] = make([]cellKind, w)
	}
	return c
}

func (c *canvas) set(x, y int, r rune, k cellKind) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.runes[y][x] = r
	c.kinds[y][x] = k
}

// box draws a three-row frame of the given width centred on (cx, cy).
func (c *canvas) box(cx, cy, w int, k cellKind, rounded bool) {
	tl, tr, bl, br := '┌', '┐', '└', '┘'
	if rounded {
		tl, tr, bl, br = '╭', '╮', '╰', '╯'
	}
	x0 := cx - w/2
	x1 := x0 + w - 1
	for x := x0 + 1; x < x1; x++ {
		c.set(x, cy-1, '─', k)
		c.set(x, cy+1, '─', k)
		c.set(x, cy, ' ', k)
	}
	c.set(x0, cy-1, tl, k)
	c.set(x1, cy-1, tr, k)
	c.set(x0, cy+1, bl, k)
	c.set(x1, cy+1, br, k)
	c.set(x0, cy, '│', k)
	c.set(x1, cy, '│', k)
}

func (c *canvas) String() string {
	var b strings.Builder
	for y := range c.h {
		if y > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for x := 1; x <= c.w; x++ {
			if x < c.w && c.kinds[y][x] == c.kinds[y][start] {
				continue
			}
			run := string(c.runes[y][start:x])
			if k := c.kinds[y][start]; k == kindBlank {
				b.WriteString(run)
			} else {
				b.WriteString(k.style().Render(run))
			}
			start = x
		}
	}
	return b.String()
}

// TableView projects the physics table onto a character grid. Terminal
// cells are about twice as tall as they are wide, so rows are scaled by half.
type TableView struct {
	Table  dice.Table
	Layout round.Layout
	Red    hand.FaceSet
}

func (v TableView) scale(width int) float64 {
	return float64(width-1) / v.Table.Width
}

func (v TableView) cell(p dice.Vec2, scale float64) (int, int) {
	return int(math.Round(p.X * scale)), int(math.Round(p.Y * scale / 2))
}

// Render draws the hold slots, the floor and the dice at the given width.
func (v TableView) Render(dv [hand.Size]round.DieView, width int) string {
	width = min(max(width, minTableWidth), maxTableWidth)
	scale := v.scale(width)
	_, floor := v.cell(dice.Vec2{Y: v.Table.FloorY}, scale)
	c := newCanvas(width, floor+1)

	for i, slot := range v.Layout.Slots {
		x, y := v.cell(slot, scale)
		c.box(x, y, slotCols, kindSlot, false)
		c.set(x, y+1, rune('1'+i), kindSlot)
	}
	for x := range width {
		c.set(x, floor, '▔', kindFloor)
	}

	for _, d := range dv {
		x, y := v.cell(d.Pos, scale)
		border := kindDie
		if d.Hold {
			border = kindHeld
		}
		c.box(x, y, dieCols, border, true)

		pip := kindTumble
		if d.Revealed {
			pip = kindBlack
			if v.Red.Contains(d.Face) {
				pip = kindRed
			}
		}
		c.set(x, y, rune('0'+d.Face), pip)
	}
	return c.String()
}
