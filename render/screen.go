// Package render draws the intersection on a tcell screen. World units are
// scaled independently on each axis to fill the terminal above the status bar.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/crossroads/constants"
	"github.com/lixenwraith/crossroads/engine"
	"github.com/lixenwraith/crossroads/road"
	"github.com/lixenwraith/crossroads/signal"
	"github.com/lixenwraith/crossroads/status"
	"github.com/lixenwraith/crossroads/vehicle"
	"github.com/lixenwraith/crossroads/vmath"
)

// Screen is the terminal render sink
type Screen struct {
	screen tcell.Screen
	geom   road.Geometry
	reg    *status.Registry

	// Layout, recomputed every frame from the terminal size
	cols, rows int
	scaleX     float64
	scaleY     float64

	bgStyle tcell.Style
}

var _ engine.Sink = (*Screen)(nil)

// New binds a sink to an initialized tcell screen
func New(screen tcell.Screen, geom road.Geometry, reg *status.Registry) *Screen {
	return &Screen{
		screen:  screen,
		geom:    geom,
		reg:     reg,
		bgStyle: tcell.StyleDefault.Background(RgbBackground),
	}
}

// Frame renders one complete frame of sim and flushes it
func (s *Screen) Frame(sim *engine.Simulation) {
	s.layout()
	s.screen.Fill(' ', s.bgStyle)
	if s.cols > 0 && s.rows > 0 {
		s.drawRoads()
		sim.Draw(s)
	}
	s.drawStatusBar()
	s.screen.Show()
}

func (s *Screen) layout() {
	w, h := s.screen.Size()
	s.cols = max(w, 0)
	s.rows = max(h-constants.StatusBarHeight, 0)
	s.scaleX = float64(s.cols) / s.geom.Width
	s.scaleY = float64(s.rows) / s.geom.Height
}

// Cell maps a world point to the terminal cell containing it
func (s *Screen) Cell(p vmath.Vec2) (x, y int) {
	return int(math.Floor(p.X * s.scaleX)), int(math.Floor(p.Y * s.scaleY))
}

// DrawLight implements engine.Sink
func (s *Screen) DrawLight(l signal.Light) {
	center := s.geom.LightPosition(l.Direction, constants.LightSize)
	style := s.bgStyle.Foreground(LightColor(l.State))
	s.fillSquare(center, constants.LightSize, constants.GlyphLight, style)
}

// DrawVehicle implements engine.Sink
func (s *Screen) DrawVehicle(v vehicle.Snapshot) {
	style := s.bgStyle.Foreground(TurnColor(v.Turn))
	s.fillSquare(v.Position, s.geom.VehicleSize, constants.GlyphVehicle, style)
}

// fillSquare paints every cell the square of side size centered at c covers,
// and at least the cell under c
func (s *Screen) fillSquare(c vmath.Vec2, size float64, glyph rune, style tcell.Style) {
	half := size / 2
	x0 := int(math.Floor((c.X - half) * s.scaleX))
	y0 := int(math.Floor((c.Y - half) * s.scaleY))
	x1 := max(int(math.Ceil((c.X+half)*s.scaleX))-1, x0)
	y1 := max(int(math.Ceil((c.Y+half)*s.scaleY))-1, y0)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			s.set(x, y, glyph, style)
		}
	}
}

func (s *Screen) set(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= s.cols || y >= s.rows {
		return
	}
	s.screen.SetContent(x, y, r, nil, style)
}

// drawRoads paints both roads, their outer edges and the dividing centerline.
// The crossing square is left open
func (s *Screen) drawRoads() {
	c, lw := s.geom.Center, s.geom.LaneWidth
	roadStyle := tcell.StyleDefault.Background(RgbRoad)
	edgeStyle := roadStyle.Foreground(RgbLaneEdge)
	centerStyle := roadStyle.Foreground(RgbLaneCenter)

	left, top := s.Cell(vmath.V2(c.X-lw, c.Y-lw))
	right, bottom := s.Cell(vmath.V2(c.X+lw, c.Y+lw))
	midX, midY := s.Cell(c)
	right = max(right, left+2)
	bottom = max(bottom, top+2)

	for y := 0; y < s.rows; y++ {
		for x := left; x <= right; x++ {
			s.set(x, y, ' ', roadStyle)
		}
	}
	for x := 0; x < s.cols; x++ {
		for y := top; y <= bottom; y++ {
			s.set(x, y, ' ', roadStyle)
		}
	}

	for y := 0; y < s.rows; y++ {
		if y >= top && y <= bottom {
			continue
		}
		s.set(left, y, constants.GlyphLaneEdge, edgeStyle)
		s.set(right, y, constants.GlyphLaneEdge, edgeStyle)
		s.set(midX, y, constants.GlyphCenter, centerStyle)
	}
	for x := 0; x < s.cols; x++ {
		if x >= left && x <= right {
			continue
		}
		s.set(x, top, constants.GlyphLaneEdgeH, edgeStyle)
		s.set(x, bottom, constants.GlyphLaneEdgeH, edgeStyle)
		s.set(x, midY, constants.GlyphCenterH, centerStyle)
	}
}

// drawStatusBar writes the metrics line on the last terminal row
func (s *Screen) drawStatusBar() {
	w, h := s.screen.Size()
	if h < 1 {
		return
	}
	y := h - 1
	barStyle := tcell.StyleDefault.Background(RgbStatusBg).Foreground(RgbStatusText)
	for x := 0; x < w; x++ {
		s.screen.SetContent(x, y, ' ', nil, barStyle)
	}

	x := 0
	if s.reg.Bools.Get("runner.paused").Load() {
		x = s.text(x, y, w, constants.PauseText, tcell.StyleDefault.Background(RgbPausedBg).Foreground(RgbStatusText))
	}
	if s.reg.Bools.Get("audio.muted").Load() {
		x = s.text(x, y, w, constants.MutedText, tcell.StyleDefault.Background(RgbMutedBg).Foreground(RgbMutedText))
	}
	x = s.text(x, y, w, StatusLine(s.reg), barStyle)

	if n := s.reg.Ints.Get("signal.overrides").Load(); n > 0 {
		s.text(x, y, w, fmt.Sprintf(" overrides %d ", n), barStyle.Foreground(RgbOverrideText))
	}
}

func (s *Screen) text(x, y, w int, str string, style tcell.Style) int {
	for _, r := range str {
		if x >= w {
			return x
		}
		s.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

// StatusLine formats the tick, green approach, census and spawn totals
func StatusLine(reg *status.Registry) string {
	var b strings.Builder
	fmt.Fprintf(&b, " tick %d | green %s |", reg.Ints.Get("sim.ticks").Load(), reg.Strings.Get("signal.green").Load())
	for _, d := range road.Directions {
		fmt.Fprintf(&b, " %c:%d", d.String()[0], reg.Ints.Get(engine.CountKey(d)).Load())
	}
	fmt.Fprintf(&b, " | active %d spawned %d rejected %d ",
		reg.Ints.Get("sim.vehicles").Load(),
		reg.Ints.Get("sim.spawned").Load(),
		reg.Ints.Get("sim.rejected").Load())
	return b.String()
}
