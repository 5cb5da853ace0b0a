package term

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// styleFor maps a wire color to a display style. Named SVG colors resolve
// through the colornames table, "#rrggbb" strokes are parsed, and anything
// else (including mixed-run wires) falls back to the terminal default.
func styleFor(name string) tcell.Style {
	return tcell.StyleDefault.Foreground(colorFor(name))
}

func colorFor(name string) tcell.Color {
	if name == "" {
		return tcell.ColorDefault
	}
	if c, ok := colornames.Map[strings.ToLower(name)]; ok {
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	if c, err := colorful.Hex(name); err == nil {
		r, g, b := c.RGB255()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	return tcell.ColorDefault
}
