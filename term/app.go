package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"breadboard/geometry"
	"breadboard/movement"
	"breadboard/schematic"
)

// App is the interactive editor: a schematic view plus a movement
// controller driven by key events. Tab cycles the selection, arrows slide
// the selected part (beginning a move on the first press), Enter or Escape
// drops it, r rotates, q quits. Rejected moves show up on the status line;
// the document itself never ends up in a bad state.
type App struct {
	doc      *schematic.Schematic
	ctl      *movement.Controller
	screen   tcell.Screen
	selected int
	status   string
	quit     bool
}

// NewApp builds an editor over the document.
func NewApp(doc *schematic.Schematic) *App {
	return &App{doc: doc, ctl: movement.NewController(doc), selected: -1}
}

// Controller exposes the movement controller.
func (a *App) Controller() *movement.Controller {
	return a.ctl
}

// Run owns the terminal until the user quits.
func (a *App) Run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault)
	a.screen = screen

	for !a.quit {
		a.draw()
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			a.handleKey(ev)
		}
	}
	return nil
}

func (a *App) draw() {
	w, h := a.screen.Size()
	a.screen.Clear()
	frame := Render(a.doc, w, h-1)
	for y := 0; y < h-1; y++ {
		for x := 0; x < w; x++ {
			ch, color := frame.At(x, y)
			a.screen.SetContent(x, y, ch, nil, styleFor(color))
		}
	}
	a.highlightSelection(frame)
	a.drawStatus(w, h)
	a.screen.Show()
}

// highlightSelection repaints the selected part's body cells reversed.
func (a *App) highlightSelection(f *Frame) {
	comp := a.selectedComponent()
	if comp == nil {
		return
	}
	cx, cy := f.CellOf(comp.Center())
	for d := -1; d <= 1; d++ {
		x, y := cx+d, cy
		if comp.Axis() == geometry.AxisY {
			x, y = cx, cy+d
		}
		ch, color := f.At(x, y)
		a.screen.SetContent(x, y, ch, nil, styleFor(color).Reverse(true))
	}
}

func (a *App) drawStatus(w, h int) {
	mode := "normal"
	if a.ctl.Moving() {
		mode = "move"
	}
	sel := "none"
	if c := a.selectedComponent(); c != nil {
		sel = c.ID
	}
	msg := a.status
	if msg == "" {
		msg = "tab select  arrows move  enter drop  r rotate  q quit"
	}
	line := []rune(fmt.Sprintf(" %s | %s | %s", mode, sel, msg))
	style := tcell.StyleDefault.Reverse(true)
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(line) {
			r = line[x]
		}
		a.screen.SetContent(x, h-1, r, nil, style)
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		a.quitNow()
	case tcell.KeyEscape, tcell.KeyEnter:
		a.finishMove()
	case tcell.KeyTab:
		a.finishMove()
		a.cycleSelection()
	case tcell.KeyLeft:
		a.nudge(-a.doc.Grid, 0)
	case tcell.KeyRight:
		a.nudge(a.doc.Grid, 0)
	case tcell.KeyUp:
		a.nudge(0, -a.doc.Grid)
	case tcell.KeyDown:
		a.nudge(0, a.doc.Grid)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			a.quitNow()
		case 'r':
			a.rotateSelected()
		}
	}
}

// nudge moves the selection one step, beginning a transaction on the
// first press. A rejected step surfaces its first violation and leaves
// the document untouched.
func (a *App) nudge(dx, dy float64) {
	comp := a.selectedComponent()
	if comp == nil {
		a.status = "nothing selected"
		return
	}
	if !a.ctl.Moving() {
		if _, err := a.ctl.Begin(comp.ID); err != nil {
			a.status = err.Error()
			return
		}
	}
	res, ok := a.ctl.Update(dx, dy)
	if !ok {
		return
	}
	if !res.Allowed && len(res.Violations) > 0 {
		a.status = res.Violations[0].Reason
		return
	}
	a.status = ""
}

func (a *App) finishMove() {
	a.ctl.EnsureFinish()
	a.status = ""
}

func (a *App) cycleSelection() {
	comps := a.doc.AllComponents()
	if len(comps) == 0 {
		a.selected = -1
		return
	}
	a.selected = (a.selected + 1) % len(comps)
	a.status = ""
}

func (a *App) selectedComponent() *schematic.Component {
	comps := a.doc.AllComponents()
	if a.selected < 0 || a.selected >= len(comps) {
		return nil
	}
	return comps[a.selected]
}

func (a *App) rotateSelected() {
	comp := a.selectedComponent()
	if comp == nil {
		return
	}
	a.ctl.EnsureFinish()
	comp.Rotate()
	a.doc.Refresh()
	a.ctl.RebuildTopology()
}

func (a *App) quitNow() {
	a.ctl.EnsureFinish()
	a.quit = true
}
