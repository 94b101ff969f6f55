package host

import (
	"sync"
	"time"

	"gioui.org/f32"
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/framekit/internal/input"
	"github.com/dshills/framekit/internal/input/key"
	"github.com/dshills/framekit/internal/input/mouse"
)

// DefaultReleaseDelay is how long a key stays down after its last report
// when the terminal gives no release event.
const DefaultReleaseDelay = 150 * time.Millisecond

// heldKey tracks a key the terminal reported as pressed.
type heldKey struct {
	scanCode uint32
	lastSeen time.Time
}

// Terminal implements Source and Surface using tcell.
//
// Terminals report key presses (and auto-repeat) but no key releases, so a
// Released event is synthesized once a held key has not been reported for
// the release delay. Mouse button masks are diffed into transitions and
// pointer movement yields both a cursor event and a relative motion event.
// Cells are the unit of all positions and sizes. Ctrl+C is a close request.
type Terminal struct {
	screen       tcell.Screen
	releaseDelay time.Duration
	now          func() time.Time

	mu      sync.Mutex
	pending input.Frame
	held    map[key.Key]heldKey
	buttons tcell.ButtonMask
	lastPos f32.Point
	havePos bool

	done     chan struct{}
	started  bool
	initErr  error
	initOnce sync.Once
	finiOnce sync.Once
}

// TerminalOption configures a Terminal.
type TerminalOption func(*Terminal)

// WithReleaseDelay sets how long a key stays down after its last report.
func WithReleaseDelay(d time.Duration) TerminalOption {
	return func(t *Terminal) {
		if d > 0 {
			t.releaseDelay = d
		}
	}
}

// WithScreen uses screen instead of the real terminal.
// tcell.NewSimulationScreen is useful for tests.
func WithScreen(screen tcell.Screen) TerminalOption {
	return func(t *Terminal) {
		t.screen = screen
	}
}

// NewTerminal creates a terminal host.
func NewTerminal(opts ...TerminalOption) (*Terminal, error) {
	t := &Terminal{
		releaseDelay: DefaultReleaseDelay,
		now:          time.Now,
		held:         make(map[key.Key]heldKey),
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, err
		}
		t.screen = screen
	}
	return t, nil
}

// Init initializes the screen and starts the event pump. Later calls
// return the result of the first.
func (t *Terminal) Init() error {
	t.initOnce.Do(func() {
		if t.initErr = t.screen.Init(); t.initErr != nil {
			return
		}
		t.screen.EnableMouse(tcell.MouseMotionEvents)
		t.screen.HideCursor()
		t.started = true
		go t.pump()
	})
	return t.initErr
}

// pump moves tcell events into the pending frame until the screen is
// finalized.
func (t *Terminal) pump() {
	defer close(t.done)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		t.mu.Lock()
		t.handle(ev)
		t.mu.Unlock()
	}
}

// Shutdown finalizes the screen and waits for the event pump to exit.
func (t *Terminal) Shutdown() {
	t.finiOnce.Do(func() {
		t.screen.Fini()
		if t.started {
			<-t.done
		}
	})
}

func (t *Terminal) Size() (int, int) {
	return t.screen.Size()
}

func (t *Terminal) Poll() input.Frame {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.releaseStale()

	f := t.pending
	t.pending = input.Frame{}
	return f
}

func (t *Terminal) RequestClose() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending.CloseRequested = true
}

func (t *Terminal) Clear() {
	t.screen.Clear()
}

func (t *Terminal) SetText(x, y int, s string) {
	for _, r := range s {
		t.screen.SetContent(x, y, r, nil, tcell.StyleDefault)
		x++
	}
}

func (t *Terminal) Show() {
	t.screen.Show()
}

// handle folds one tcell event into the pending frame. Caller holds t.mu.
func (t *Terminal) handle(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		t.handleKey(e)
	case *tcell.EventMouse:
		t.handleMouse(e)
	case *tcell.EventResize:
		w, h := e.Size()
		t.pending.Resized = append(t.pending.Resized, input.ResizeEvent{
			Width:  float32(w),
			Height: float32(h),
		})
	}
}

func (t *Terminal) handleKey(e *tcell.EventKey) {
	if e.Key() == tcell.KeyCtrlC {
		t.pending.CloseRequested = true
		return
	}

	k, scanCode := convertKey(e)
	t.pending.Keyboard = append(t.pending.Keyboard, input.KeyboardEvent{
		Key:        k,
		ScanCode:   scanCode,
		Transition: input.Pressed,
	})
	t.held[k] = heldKey{scanCode: scanCode, lastSeen: t.now()}
}

// releaseStale synthesizes releases for keys not reported within the
// release delay. Caller holds t.mu.
func (t *Terminal) releaseStale() {
	now := t.now()
	for k, h := range t.held {
		if now.Sub(h.lastSeen) < t.releaseDelay {
			continue
		}
		t.pending.Keyboard = append(t.pending.Keyboard, input.KeyboardEvent{
			Key:        k,
			ScanCode:   h.scanCode,
			Transition: input.Released,
		})
		delete(t.held, k)
	}
}

// buttonMap lists the tcell buttons tracked as mouse buttons. Wheel
// directions are not buttons.
var buttonMap = []struct {
	mask   tcell.ButtonMask
	button mouse.Button
}{
	{tcell.ButtonPrimary, mouse.ButtonLeft},
	{tcell.ButtonSecondary, mouse.ButtonRight},
	{tcell.ButtonMiddle, mouse.ButtonMiddle},
	{tcell.Button4, mouse.ButtonBack},
	{tcell.Button5, mouse.ButtonForward},
	{tcell.Button6, mouse.Other(0)},
	{tcell.Button7, mouse.Other(1)},
	{tcell.Button8, mouse.Other(2)},
}

func (t *Terminal) handleMouse(e *tcell.EventMouse) {
	x, y := e.Position()
	pos := f32.Pt(float32(x), float32(y))
	if !t.havePos || pos != t.lastPos {
		if t.havePos {
			t.pending.MouseMotion = append(t.pending.MouseMotion, input.MouseMotionEvent{
				Delta: pos.Sub(t.lastPos),
			})
		}
		t.pending.CursorMoved = append(t.pending.CursorMoved, input.CursorEvent{Position: pos})
		t.lastPos = pos
		t.havePos = true
	}

	buttons := e.Buttons()
	changed := buttons ^ t.buttons
	for _, b := range buttonMap {
		if changed&b.mask == 0 {
			continue
		}
		tr := input.Released
		if buttons&b.mask != 0 {
			tr = input.Pressed
		}
		t.pending.MouseButtons = append(t.pending.MouseButtons, input.MouseButtonEvent{
			Button:     b.button,
			Transition: tr,
		})
	}
	t.buttons = buttons
}
