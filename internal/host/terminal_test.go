package host

import (
	"errors"
	"testing"
	"time"

	"gioui.org/f32"
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/framekit/internal/input"
	"github.com/dshills/framekit/internal/input/key"
	"github.com/dshills/framekit/internal/input/mouse"
)

// fakeClock is a manually advanced time source.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTerminal(t *testing.T) (*Terminal, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Unix(1000, 0)}
	term, err := NewTerminal(WithScreen(tcell.NewSimulationScreen("UTF-8")))
	if err != nil {
		t.Fatalf("NewTerminal failed: %v", err)
	}
	term.now = clock.now
	return term, clock
}

func (t *Terminal) inject(ev tcell.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handle(ev)
}

func TestTerminalKeyPressAndSyntheticRelease(t *testing.T) {
	term, clock := newTestTerminal(t)

	term.inject(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone))
	f := term.Poll()
	if len(f.Keyboard) != 1 {
		t.Fatalf("got %d keyboard events, want 1", len(f.Keyboard))
	}
	want := input.KeyboardEvent{Key: key.KeyW, ScanCode: 'w', Transition: input.Pressed}
	if f.Keyboard[0] != want {
		t.Errorf("event = %+v, want %+v", f.Keyboard[0], want)
	}

	// Still inside the release delay.
	clock.advance(DefaultReleaseDelay / 2)
	if f := term.Poll(); len(f.Keyboard) != 0 {
		t.Errorf("unexpected events before the release delay: %+v", f.Keyboard)
	}

	clock.advance(DefaultReleaseDelay)
	f = term.Poll()
	if len(f.Keyboard) != 1 || f.Keyboard[0].Transition != input.Released || f.Keyboard[0].Key != key.KeyW {
		t.Fatalf("expected a synthesized release, got %+v", f.Keyboard)
	}

	if f := term.Poll(); len(f.Keyboard) != 0 {
		t.Errorf("release should be synthesized once, got %+v", f.Keyboard)
	}
}

func TestTerminalAutoRepeatKeepsKeyHeld(t *testing.T) {
	term, clock := newTestTerminal(t)

	for i := 0; i < 5; i++ {
		term.inject(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))
		clock.advance(DefaultReleaseDelay / 3)
		f := term.Poll()
		for _, ev := range f.Keyboard {
			if ev.Transition == input.Released {
				t.Fatalf("repeat %d: key released while repeating", i)
			}
		}
	}
}

func TestTerminalConvertKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want key.Key
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModNone), key.KeyQ},
		{"digit", tcell.NewEventKey(tcell.KeyRune, '4', tcell.ModNone), key.Key4},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), key.KeyEscape},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), key.KeyEnter},
		{"f5", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), key.KeyF5},
		{"ctrl-s", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl), key.KeyS},
		{"punctuation", tcell.NewEventKey(tcell.KeyRune, '#', tcell.ModNone), key.KeyUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, _ := convertKey(tt.ev); got != tt.want {
				t.Errorf("convertKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTerminalCtrlCRequestsClose(t *testing.T) {
	term, _ := newTestTerminal(t)

	term.inject(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))
	f := term.Poll()
	if !f.CloseRequested {
		t.Error("Ctrl+C should request close")
	}
	if len(f.Keyboard) != 0 {
		t.Errorf("Ctrl+C should not be reported as a key, got %+v", f.Keyboard)
	}
}

func TestTerminalRequestClose(t *testing.T) {
	term, _ := newTestTerminal(t)
	term.RequestClose()
	if !term.Poll().CloseRequested {
		t.Error("RequestClose should surface in the next Poll")
	}
	if term.Poll().CloseRequested {
		t.Error("close request should be reported once")
	}
}

func TestTerminalMouse(t *testing.T) {
	term, _ := newTestTerminal(t)

	term.inject(tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone))
	f := term.Poll()
	if len(f.CursorMoved) != 1 || f.CursorMoved[0].Position != f32.Pt(10, 5) {
		t.Errorf("cursor events = %+v", f.CursorMoved)
	}
	if len(f.MouseMotion) != 0 {
		t.Errorf("first position should not produce motion, got %+v", f.MouseMotion)
	}

	term.inject(tcell.NewEventMouse(13, 4, tcell.ButtonPrimary, tcell.ModNone))
	f = term.Poll()
	if len(f.MouseMotion) != 1 || f.MouseMotion[0].Delta != f32.Pt(3, -1) {
		t.Errorf("motion events = %+v, want delta (3,-1)", f.MouseMotion)
	}
	if len(f.MouseButtons) != 1 || f.MouseButtons[0] != (input.MouseButtonEvent{Button: mouse.ButtonLeft, Transition: input.Pressed}) {
		t.Errorf("button events = %+v", f.MouseButtons)
	}

	// Same position, primary released and secondary pressed.
	term.inject(tcell.NewEventMouse(13, 4, tcell.ButtonSecondary, tcell.ModNone))
	f = term.Poll()
	if len(f.CursorMoved) != 0 || len(f.MouseMotion) != 0 {
		t.Errorf("unchanged position should not produce pointer events: %+v", f)
	}
	want := []input.MouseButtonEvent{
		{Button: mouse.ButtonLeft, Transition: input.Released},
		{Button: mouse.ButtonRight, Transition: input.Pressed},
	}
	if len(f.MouseButtons) != len(want) {
		t.Fatalf("button events = %+v, want %+v", f.MouseButtons, want)
	}
	for i := range want {
		if f.MouseButtons[i] != want[i] {
			t.Errorf("button event %d = %+v, want %+v", i, f.MouseButtons[i], want[i])
		}
	}
}

func TestTerminalWheelIsNotAButton(t *testing.T) {
	term, _ := newTestTerminal(t)

	term.inject(tcell.NewEventMouse(0, 0, tcell.WheelUp, tcell.ModNone))
	if f := term.Poll(); len(f.MouseButtons) != 0 {
		t.Errorf("wheel produced button events: %+v", f.MouseButtons)
	}
}

func TestTerminalResize(t *testing.T) {
	term, _ := newTestTerminal(t)

	term.inject(tcell.NewEventResize(120, 40))
	f := term.Poll()
	if len(f.Resized) != 1 || f.Resized[0] != (input.ResizeEvent{Width: 120, Height: 40}) {
		t.Errorf("resize events = %+v", f.Resized)
	}
}

func TestTerminalSimulationScreen(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	term, err := NewTerminal(WithScreen(sim), WithReleaseDelay(time.Hour))
	if err != nil {
		t.Fatalf("NewTerminal failed: %v", err)
	}
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer term.Shutdown()

	term.SetText(1, 0, "ok")
	term.Show()
	if r, _, _, _ := sim.GetContent(2, 0); r != 'k' {
		t.Errorf("cell (2,0) = %q, want 'k'", r)
	}

	sim.InjectKey(tcell.KeyRune, 'z', tcell.ModNone)

	deadline := time.Now().Add(2 * time.Second)
	var got []input.KeyboardEvent
	for time.Now().Before(deadline) {
		got = append(got, term.Poll().Keyboard...)
		if len(got) > 0 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if len(got) != 1 || got[0].Key != key.KeyZ || got[0].Transition != input.Pressed {
		t.Errorf("pumped events = %+v, want one KeyZ press", got)
	}
}

func TestTerminalShutdownStopsPump(t *testing.T) {
	term, err := NewTerminal(WithScreen(tcell.NewSimulationScreen("UTF-8")))
	if err != nil {
		t.Fatalf("NewTerminal failed: %v", err)
	}
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	term.Shutdown()

	select {
	case <-term.done:
	default:
		t.Error("event pump still running after Shutdown")
	}
	term.Shutdown()
}

// failingScreen is a screen whose Init always fails.
type failingScreen struct {
	tcell.Screen
	inits int
	finis int
}

var errNoTTY = errors.New("no tty")

func (s *failingScreen) Init() error {
	s.inits++
	return errNoTTY
}

func (s *failingScreen) Fini() {
	s.finis++
}

func TestTerminalInitErrorIsSticky(t *testing.T) {
	screen := &failingScreen{Screen: tcell.NewSimulationScreen("UTF-8")}
	term, err := NewTerminal(WithScreen(screen))
	if err != nil {
		t.Fatalf("NewTerminal failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := term.Init(); !errors.Is(err, errNoTTY) {
			t.Errorf("Init call %d = %v, want %v", i+1, err, errNoTTY)
		}
	}
	if screen.inits != 1 {
		t.Errorf("screen.Init called %d times, want 1", screen.inits)
	}

	// No pump was started, so Shutdown must not wait for one.
	term.Shutdown()
	if screen.finis != 1 {
		t.Errorf("screen.Fini called %d times, want 1", screen.finis)
	}
}
