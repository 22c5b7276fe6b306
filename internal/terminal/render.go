package terminal

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/zeusync/hogar/internal/core/needs"
	"github.com/zeusync/hogar/internal/core/sim"
	"github.com/zeusync/hogar/internal/core/spatial"
)

// Canvas is the part of tcell.Screen the renderer draws on.
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

var (
	styleFloor    = tcell.StyleDefault.Foreground(tcell.NewHexColor(0x505050))
	styleWall     = tcell.StyleDefault.Background(tcell.NewHexColor(0x404040))
	stylePoint    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleNearby   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Reverse(true)
	styleAvatar   = tcell.StyleDefault.Foreground(tcell.ColorLightGreen).Bold(true)
	styleHUD      = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDepleted = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// Renderer draws a top-down view of the house centred on the layout bounds.
// World X runs along columns and world Z along rows; a column is half a row
// tall, so X is scaled twice as much.
type Renderer struct {
	layout *spatial.Layout
	points []needs.PointOfInterest
	scale  float64
}

func NewRenderer(layout *spatial.Layout, points []needs.PointOfInterest, cellsPerUnit float64) *Renderer {
	if cellsPerUnit <= 0 {
		cellsPerUnit = 1
	}
	return &Renderer{layout: layout, points: points, scale: cellsPerUnit}
}

type viewport struct {
	cx, cz float64
	ox, oy int
	scale  float64
}

func (v viewport) cell(x, z float64) (int, int) {
	return v.ox + int(math.Round((x-v.cx)*v.scale*2)), v.oy + int(math.Round((z-v.cz)*v.scale))
}

func (r *Renderer) viewport(c Canvas) viewport {
	w, h := c.Size()
	v := viewport{ox: w / 2, oy: (h - 2) / 2, scale: r.scale}
	if b, ok := r.layout.Bounds(); ok {
		v.cx = (b.XMin + b.XMax) / 2
		v.cz = (b.ZMin + b.ZMax) / 2
	}
	return v
}

func (r *Renderer) Draw(c Canvas, f sim.Frame) {
	w, h := c.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c.SetContent(x, y, ' ', nil, tcell.StyleDefault)
		}
	}
	v := r.viewport(c)

	for _, o := range r.layout.Obstacles() {
		x0, y0 := v.cell(o.XMin, o.ZMin)
		x1, y1 := v.cell(o.XMax, o.ZMax)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				put(c, x, y, ' ', styleWall)
			}
		}
	}

	nearby := make(map[string]bool, len(f.Nearby))
	for _, n := range f.Nearby {
		nearby[n] = true
	}
	for _, p := range r.points {
		x, y := v.cell(p.Position.X, p.Position.Z)
		style := stylePoint
		if nearby[p.Name] {
			style = styleNearby
		}
		label := []rune(strings.ToUpper(p.Name))
		if len(label) > 0 {
			put(c, x, y, label[0], style)
		}
	}

	if !f.Skipped {
		x, y := v.cell(f.Avatar.X, f.Avatar.Z)
		put(c, x, y, '@', styleAvatar)
		dx, dy := facingCell(f.Avatar.Facing)
		put(c, x+dx, y+dy, facingGlyph(dx, dy), styleFloor)
	}

	r.drawHUD(c, f, h-2)
}

func (r *Renderer) drawHUD(c Canvas, f sim.Frame, row int) {
	if f.Skipped {
		status := "loading"
		if f.Loading != nil {
			status = fmt.Sprintf("loading %d/%d", f.Loading.Settled, f.Loading.Total)
			if len(f.Loading.Failed) > 0 {
				status += " failed: " + strings.Join(f.Loading.Failed, ", ")
			}
		}
		text(c, 0, row, status, styleHUD)
		return
	}

	x := 0
	for _, n := range []struct {
		name  string
		value int
	}{
		{"Energy", f.Needs.Energy},
		{"Hunger", f.Needs.Hunger},
		{"Fun", f.Needs.Fun},
	} {
		style := styleHUD
		if n.value == 0 {
			style = styleDepleted
		}
		x = text(c, x, row, fmt.Sprintf("%s: %d  ", n.name, n.value), style)
	}

	mode := "follow"
	if !f.Orbit.Follow {
		mode = "free"
	}
	status := fmt.Sprintf("%s  camera: %s  tick %d", f.Locomotion, mode, f.Tick)
	if len(f.Nearby) > 0 {
		status += "  near: " + strings.Join(f.Nearby, ", ")
	}
	text(c, 0, row+1, status, styleHUD)
}

// facingCell is the neighbouring cell the avatar faces. Facing is measured
// from +Z towards +X.
func facingCell(facing float64) (int, int) {
	sin, cos := math.Sincos(facing)
	return int(math.Round(sin)), int(math.Round(cos))
}

func facingGlyph(dx, dy int) rune {
	switch {
	case dx == 0 && dy < 0:
		return '^'
	case dx == 0 && dy > 0:
		return 'v'
	case dy == 0 && dx < 0:
		return '<'
	case dy == 0 && dx > 0:
		return '>'
	case dx*dy > 0:
		return '\\'
	default:
		return '/'
	}
}

func put(c Canvas, x, y int, r rune, style tcell.Style) {
	w, h := c.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	c.SetContent(x, y, r, nil, style)
}

// text writes s from (x, y) and returns the column after it.
func text(c Canvas, x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		put(c, x, y, r, style)
		x++
	}
	return x
}
