package render

import (
	"fmt"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ballfall/component"
	"github.com/lixenwraith/ballfall/engine"
	"github.com/lixenwraith/ballfall/status"
)

// Minimum screen size that fits the HUD line and the box outline
const (
	minWidth  = 8
	minHeight = 4
)

var (
	hudStyle  = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	wallStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// TerminalRenderer draws every renderable entity at its local transform
// Row 0 carries the HUD built from the status registry; the remaining rows hold the box seen from the side
type TerminalRenderer struct {
	engine.SystemBase
	screen   tcell.Screen
	viewport Viewport

	statTime     *status.AtomicFloat
	statBodies   *atomic.Int64
	statContacts *atomic.Int64
	statImpacts  *atomic.Int64
	statPaused   *atomic.Bool
	statMuted    *atomic.Bool
}

// NewTerminalRenderer creates a renderer drawing into screen
func NewTerminalRenderer(world *engine.World, screen tcell.Screen, viewport Viewport) *TerminalRenderer {
	base := engine.NewSystemBase(world)
	return &TerminalRenderer{
		SystemBase:   base,
		screen:       screen,
		viewport:     viewport,
		statTime:     base.Status.Floats.Get(status.KeySimTime),
		statBodies:   base.Status.Ints.Get(status.KeyBodies),
		statContacts: base.Status.Ints.Get(status.KeyContacts),
		statImpacts:  base.Status.Ints.Get(status.KeyImpactsPlayed),
		statPaused:   base.Status.Bools.Get(status.KeyPaused),
		statMuted:    base.Status.Bools.Get(status.KeyMuted),
	}
}

func (r *TerminalRenderer) Name() string {
	return "render"
}

func (r *TerminalRenderer) Access() engine.Access {
	return engine.Access{
		Reads: []engine.Kind{
			engine.KindOf[component.LocalTransformComponent](),
			engine.KindOf[component.RenderableComponent](),
		},
	}
}

// Run redraws the full frame and shows it
func (r *TerminalRenderer) Run(ctx *engine.Context) (engine.Outcome, error) {
	r.screen.Clear()
	width, height := r.screen.Size()
	if width < minWidth || height < minHeight {
		r.drawText(0, 0, "too small", hudStyle)
		r.screen.Show()
		return engine.Continue, nil
	}

	r.drawHUD(ctx, width)
	r.drawBox(width, height)

	// Interior excludes both side walls and the floor row
	cols, rows := width-2, height-2
	for _, row := range engine.Join2(r.Component.Renderable, r.Component.LocalTransform) {
		p := row.B.Translation
		col, line, ok := r.viewport.Project(p.X, p.Z, cols, rows)
		if !ok {
			continue
		}
		style := tcell.StyleDefault.Foreground(tcell.NewHexColor(int32(row.A.Color)))
		r.screen.SetContent(col+1, line+1, row.A.Glyph, nil, style)
	}

	r.screen.Show()
	return engine.Continue, nil
}

func (r *TerminalRenderer) drawHUD(ctx *engine.Context, width int) {
	hud := fmt.Sprintf("t %.2fs  bodies %d  contacts %d  impacts %d  frame %d",
		r.statTime.Get(), r.statBodies.Load(), r.statContacts.Load(), r.statImpacts.Load(), ctx.Frame)
	if r.statPaused.Load() {
		hud += "  PAUSED"
	}
	if r.statMuted.Load() {
		hud += "  MUTED"
	}
	hud += "  [p] pause  [m] mute  [Esc] quit"
	if len(hud) > width {
		hud = hud[:width]
	}
	r.drawText(0, 0, hud, hudStyle)
}

// drawBox outlines the open box: two walls and the floor
func (r *TerminalRenderer) drawBox(width, height int) {
	floor := height - 1
	for y := 1; y < floor; y++ {
		r.screen.SetContent(0, y, tcell.RuneVLine, nil, wallStyle)
		r.screen.SetContent(width-1, y, tcell.RuneVLine, nil, wallStyle)
	}
	for x := 1; x < width-1; x++ {
		r.screen.SetContent(x, floor, tcell.RuneHLine, nil, wallStyle)
	}
	r.screen.SetContent(0, floor, tcell.RuneLLCorner, nil, wallStyle)
	r.screen.SetContent(width-1, floor, tcell.RuneLRCorner, nil, wallStyle)
}

func (r *TerminalRenderer) drawText(x, y int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}
