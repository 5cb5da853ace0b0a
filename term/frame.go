// Package term is the terminal front end: a rune-matrix view of a
// schematic plus a tcell-driven editor loop over the movement controller.
// One character cell covers one grid step, so vertical runs look squashed
// on a typical terminal but every snapped coordinate lands on a cell.
package term

import (
	"math"
	"strings"

	"breadboard/geometry"
	"breadboard/schematic"
)

// CellSize is the schematic distance covered by one character cell.
const CellSize = 10.0

const junctionDot = '●'

// Frame is one rendered view of a schematic: a rune matrix with a wire
// color name per cell.
type Frame struct {
	width  int
	height int
	chars  [][]rune
	colors [][]string
	origin geometry.Point
	merger *lineMerger
}

// Render draws the schematic into a fresh frame of the given size in
// character cells. The viewport anchors two cells left and one cell above
// the drawing's bounds.
func Render(s *schematic.Schematic, width, height int) *Frame {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	f := &Frame{
		width:  width,
		height: height,
		chars:  make([][]rune, height),
		colors: make([][]string, height),
		merger: newLineMerger(),
	}
	for y := range f.chars {
		f.chars[y] = make([]rune, width)
		f.colors[y] = make([]string, width)
		for x := range f.chars[y] {
			f.chars[y][x] = ' '
		}
	}
	if b, ok := s.Bounds(); ok {
		f.origin = geometry.Pt(b.Min.X-2*CellSize, b.Min.Y-CellSize)
	}

	for _, w := range s.AllWires() {
		f.drawWire(w)
	}
	for _, c := range s.AllComponents() {
		f.drawComponent(c)
	}
	for _, j := range s.AllJunctions() {
		if j.Suppressed {
			continue
		}
		x, y := f.CellOf(j.At)
		f.put(x, y, junctionDot, "")
	}
	for _, c := range s.AllComponents() {
		f.drawLabel(c)
	}
	return f
}

// CellOf maps a schematic point to its character cell.
func (f *Frame) CellOf(p geometry.Point) (int, int) {
	x := int(math.Round((p.X - f.origin.X) / CellSize))
	y := int(math.Round((p.Y - f.origin.Y) / CellSize))
	return x, y
}

// At returns the rune and wire color at a cell; blank outside the frame.
func (f *Frame) At(x, y int) (rune, string) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return ' ', ""
	}
	return f.chars[y][x], f.colors[y][x]
}

// String renders the frame as plain text with trailing blanks trimmed.
func (f *Frame) String() string {
	var sb strings.Builder
	for y := 0; y < f.height; y++ {
		sb.WriteString(strings.TrimRight(string(f.chars[y]), " "))
		if y < f.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// set draws through the merger; crossings resolve to intersection runes.
func (f *Frame) set(x, y int, ch rune, color string) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	f.chars[y][x] = f.merger.merge(f.chars[y][x], ch)
	if color != "" {
		f.colors[y][x] = color
	}
}

// put overwrites a cell outright. Component bodies, corners, dots and
// labels claim their cells.
func (f *Frame) put(x, y int, ch rune, color string) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	f.chars[y][x] = ch
	if color != "" {
		f.colors[y][x] = color
	}
}

func (f *Frame) drawWire(w *schematic.Wire) {
	h, v := strokeRunes(w.Stroke)
	cells := make([][2]int, len(w.Points))
	for i, p := range w.Points {
		cells[i][0], cells[i][1] = f.CellOf(p)
	}
	for i := 0; i+1 < len(cells); i++ {
		a, b := cells[i], cells[i+1]
		switch {
		case a[1] == b[1]:
			x0, x1 := a[0], b[0]
			if x0 > x1 {
				x0, x1 = x1, x0
			}
			for x := x0; x <= x1; x++ {
				f.set(x, a[1], h, w.Color)
			}
		case a[0] == b[0]:
			y0, y1 := a[1], b[1]
			if y0 > y1 {
				y0, y1 = y1, y0
			}
			for y := y0; y <= y1; y++ {
				f.set(a[0], y, v, w.Color)
			}
		}
	}
	for i := 1; i+1 < len(cells); i++ {
		f.put(cells[i][0], cells[i][1], cornerRune(cells[i-1], cells[i], cells[i+1]), w.Color)
	}
}

func strokeRunes(stroke string) (horizontal, vertical rune) {
	if stroke == "dashed" {
		return '╌', '╎'
	}
	return '─', '│'
}

// cornerRune picks the box-drawing corner for an interior polyline vertex
// from the approach and departure directions.
func cornerRune(prev, cur, next [2]int) rune {
	from := dirOf(prev, cur)
	to := dirOf(cur, next)
	switch {
	case from == 'E' && to == 'S', from == 'N' && to == 'W':
		return '╮'
	case from == 'E' && to == 'N', from == 'S' && to == 'W':
		return '╯'
	case from == 'W' && to == 'S', from == 'N' && to == 'E':
		return '╭'
	case from == 'W' && to == 'N', from == 'S' && to == 'E':
		return '╰'
	case from == 'E', from == 'W':
		return '─'
	}
	return '│'
}

func dirOf(a, b [2]int) rune {
	switch {
	case b[0] > a[0]:
		return 'E'
	case b[0] < a[0]:
		return 'W'
	case b[1] > a[1]:
		return 'S'
	}
	return 'N'
}

// drawComponent renders a part as a three-cell body along its axis with
// tee caps facing the leads, plus lead strokes out to the pins when the
// pins sit more than a cell away.
func (f *Frame) drawComponent(c *schematic.Component) {
	cx, cy := f.CellOf(c.Center())
	pins := c.PinPositions()
	g := glyphFor(c.Type)
	if c.Axis() == geometry.AxisY {
		_, p0 := f.CellOf(pins[0])
		_, p1 := f.CellOf(pins[1])
		if p0 > p1 {
			p0, p1 = p1, p0
		}
		for y := p0; y < cy-1; y++ {
			f.set(cx, y, '│', "")
		}
		for y := cy + 2; y <= p1; y++ {
			f.set(cx, y, '│', "")
		}
		f.put(cx, cy-1, '┴', "")
		f.put(cx, cy, g, "")
		f.put(cx, cy+1, '┬', "")
		return
	}
	p0, _ := f.CellOf(pins[0])
	p1, _ := f.CellOf(pins[1])
	if p0 > p1 {
		p0, p1 = p1, p0
	}
	for x := p0; x < cx-1; x++ {
		f.set(x, cy, '─', "")
	}
	for x := cx + 2; x <= p1; x++ {
		f.set(x, cy, '─', "")
	}
	f.put(cx-1, cy, '┤', "")
	f.put(cx, cy, g, "")
	f.put(cx+1, cy, '├', "")
}

func glyphFor(t schematic.ComponentType) rune {
	switch t {
	case schematic.Resistor:
		return 'R'
	case schematic.Capacitor:
		return 'C'
	case schematic.Inductor:
		return 'L'
	case schematic.Diode:
		return 'D'
	case schematic.Battery:
		return 'B'
	case schematic.ACSource:
		return '~'
	}
	return '?'
}

func (f *Frame) drawLabel(c *schematic.Component) {
	text := c.Label
	if c.Value != "" {
		if text != "" {
			text += " "
		}
		text += c.Value
	}
	if text == "" {
		return
	}
	cx, cy := f.CellOf(c.Center())
	x, y := cx-1, cy-1
	if c.Axis() == geometry.AxisY {
		x, y = cx+2, cy
	}
	for i, r := range []rune(text) {
		f.put(x+i, y, r, "")
	}
}

// Dump renders one plain-text frame, for the -dump flag and tests.
func Dump(s *schematic.Schematic, width, height int) string {
	return Render(s, width, height).String()
}
