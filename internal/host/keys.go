package host

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/framekit/internal/input/key"
)

var tcellKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBacktab:    key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
	tcell.KeyPause:      key.KeyPause,
	tcell.KeyPrint:      key.KeyPrintScreen,
}

// convertKey maps a tcell key event to a key and scan code. The scan code is
// the character for rune keys and the tcell key code otherwise.
func convertKey(e *tcell.EventKey) (key.Key, uint32) {
	tk := e.Key()
	if tk == tcell.KeyRune {
		r := e.Rune()
		return key.FromRune(r), uint32(r)
	}

	scanCode := uint32(tk)
	if k, ok := tcellKeys[tk]; ok {
		return k, scanCode
	}
	// Control chords arrive as dedicated codes with no rune.
	if tk >= tcell.KeyCtrlA && tk <= tcell.KeyCtrlZ {
		return key.KeyA + key.Key(tk-tcell.KeyCtrlA), scanCode
	}
	return key.KeyUnknown, scanCode
}
