package main

import (
	"fmt"
	"strings"

	"gioui.org/f32"

	"github.com/dshills/framekit/internal/app"
	"github.com/dshills/framekit/internal/host"
	"github.com/dshills/framekit/internal/input"
	"github.com/dshills/framekit/internal/input/key"
	"github.com/dshills/framekit/internal/input/mouse"
	"github.com/dshills/framekit/internal/render"
)

// demo draws the live input state. Escape requests a close, which it
// accepts.
type demo struct {
	app     *app.Application
	surface host.Surface

	elapsed  float32
	lastKey  string
	lastBtn  string
	motion   [2]float32
	resizes  int
	slot     render.RenderID
	snapshot input.Snapshot
}

func newDemo(a *app.Application) *demo {
	return &demo{app: a, surface: a.Surface(), lastKey: "-", lastBtn: "-"}
}

func (d *demo) Keyboard(k key.Key, scanCode uint32, t input.Transition, repeat bool) {
	d.lastKey = fmt.Sprintf("%s scan=%d %s repeat=%v", k, scanCode, t, repeat)
	if k == key.KeyEscape && t == input.Pressed {
		d.app.Host().RequestClose()
	}
}

func (d *demo) MouseButton(b mouse.Button, t input.Transition) {
	d.lastBtn = fmt.Sprintf("%s %s", b, t)
}

func (d *demo) MouseRelative(delta f32.Point) {
	d.motion = [2]float32{delta.X, delta.Y}
}

func (d *demo) WindowResized(f32.Point) {
	d.resizes++
}

func (d *demo) Update(dt float32) {
	d.elapsed += dt
	d.slot = render.Here()
	d.snapshot = input.TakeSnapshot()
}

func (d *demo) Draw() {
	if d.surface == nil {
		return
	}
	s := d.snapshot
	m := d.app.Metrics().Snapshot()

	lines := []string{
		"framekit input viewer (Esc or Ctrl+C to quit)",
		"",
		fmt.Sprintf("window   %vx%v  resizes %d", s.WindowSize.X, s.WindowSize.Y, d.resizes),
		fmt.Sprintf("mouse    (%v, %v)  last delta (%v, %v)", s.MousePosition.X, s.MousePosition.Y, d.motion[0], d.motion[1]),
		"keys     " + downKeys(s),
		"buttons  " + downButtons(s),
		"last key " + d.lastKey,
		"last btn " + d.lastBtn,
		"",
		fmt.Sprintf("time %.1fs  frames %d  avg %.1f fps  events %d", d.elapsed, m.FrameCount, m.AvgFPS(), m.EventCount),
		fmt.Sprintf("render slot %s  pending %d", d.slot, render.Pending()),
	}
	for y, line := range lines {
		d.surface.SetText(1, y+1, line)
	}
}

func downKeys(s input.Snapshot) string {
	var names []string
	for k := key.KeyUnknown + 1; k.Valid(); k++ {
		if s.Key(k).Down {
			names = append(names, k.String())
		}
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, " ")
}

func downButtons(s input.Snapshot) string {
	var names []string
	for _, b := range []mouse.Button{mouse.ButtonLeft, mouse.ButtonRight, mouse.ButtonMiddle, mouse.ButtonBack, mouse.ButtonForward} {
		if s.MouseButton(b).Down {
			names = append(names, b.String())
		}
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, " ")
}
