package host

import (
	"strings"
	"sync"

	"github.com/dshills/framekit/internal/input"
)

// Null is a scripted in-memory host for tests and headless runs.
// Frames queued with Post are returned by Poll one at a time.
type Null struct {
	mu sync.Mutex

	width, height int
	frames        []input.Frame
	closeReq      bool
	initialized   bool
	shutdown      bool
	polls         int

	cells [][]rune
	shown int
}

// NewNull creates a null host of the given size.
func NewNull(width, height int) *Null {
	return &Null{width: width, height: height}
}

func (n *Null) Init() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.initialized = true
	n.cells = make([][]rune, n.height)
	for y := range n.cells {
		n.cells[y] = []rune(strings.Repeat(" ", n.width))
	}
	return nil
}

func (n *Null) Shutdown() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.shutdown = true
}

func (n *Null) Size() (int, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.width, n.height
}

// Post queues a frame to be returned by a later Poll.
func (n *Null) Post(f input.Frame) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.frames = append(n.frames, f)
}

func (n *Null) Poll() input.Frame {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.polls++

	var f input.Frame
	if len(n.frames) > 0 {
		f = n.frames[0]
		n.frames = n.frames[1:]
	}
	if n.closeReq {
		f.CloseRequested = true
		n.closeReq = false
	}
	for _, r := range f.Resized {
		n.width, n.height = int(r.Width), int(r.Height)
	}
	return f
}

func (n *Null) RequestClose() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closeReq = true
}

// Pending returns the number of queued frames not yet polled.
func (n *Null) Pending() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.frames)
}

// Polls returns how many times Poll was called.
func (n *Null) Polls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.polls
}

// Initialized reports whether Init was called.
func (n *Null) Initialized() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.initialized
}

// IsShutdown reports whether Shutdown was called.
func (n *Null) IsShutdown() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.shutdown
}

func (n *Null) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for y := range n.cells {
		for x := range n.cells[y] {
			n.cells[y][x] = ' '
		}
	}
}

func (n *Null) SetText(x, y int, s string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if y < 0 || y >= len(n.cells) {
		return
	}
	row := n.cells[y]
	for _, r := range s {
		if x >= 0 && x < len(row) {
			row[x] = r
		}
		x++
	}
}

func (n *Null) Show() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.shown++
}

// Line returns row y of the surface with trailing blanks removed.
func (n *Null) Line(y int) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if y < 0 || y >= len(n.cells) {
		return ""
	}
	return strings.TrimRight(string(n.cells[y]), " ")
}

// Shown returns how many times Show was called.
func (n *Null) Shown() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.shown
}
