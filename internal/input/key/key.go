package key

import (
	"fmt"
	"strings"
	"unicode"
)

// Key identifies a physical keyboard key independent of layout or modifiers.
type Key uint16

const (
	// KeyUnknown is reported for keys the host cannot identify.
	// The host's scan code still distinguishes them.
	KeyUnknown Key = iota

	// Letters
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	// Top row digits
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	// Special keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeySpace

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Lock and system keys
	KeyPause
	KeyPrintScreen
	KeyScrollLock
	KeyNumLock
	KeyCapsLock

	// Keypad keys
	KeyKP0
	KeyKP1
	KeyKP2
	KeyKP3
	KeyKP4
	KeyKP5
	KeyKP6
	KeyKP7
	KeyKP8
	KeyKP9
	KeyKPAdd
	KeyKPSubtract
	KeyKPMultiply
	KeyKPDivide
	KeyKPDecimal
	KeyKPEnter

	// Modifier keys
	KeyLeftShift
	KeyRightShift
	KeyLeftCtrl
	KeyRightCtrl
	KeyLeftAlt
	KeyRightAlt
	KeyLeftMeta
	KeyRightMeta

	keyCount
)

var specialNames = map[Key]string{
	KeyUnknown:     "Unknown",
	KeyEscape:      "Escape",
	KeyEnter:       "Enter",
	KeyTab:         "Tab",
	KeyBackspace:   "Backspace",
	KeyDelete:      "Delete",
	KeyInsert:      "Insert",
	KeyHome:        "Home",
	KeyEnd:         "End",
	KeyPageUp:      "PageUp",
	KeyPageDown:    "PageDown",
	KeySpace:       "Space",
	KeyUp:          "Up",
	KeyDown:        "Down",
	KeyLeft:        "Left",
	KeyRight:       "Right",
	KeyPause:       "Pause",
	KeyPrintScreen: "PrintScreen",
	KeyScrollLock:  "ScrollLock",
	KeyNumLock:     "NumLock",
	KeyCapsLock:    "CapsLock",
	KeyKPAdd:       "KP+",
	KeyKPSubtract:  "KP-",
	KeyKPMultiply:  "KP*",
	KeyKPDivide:    "KP/",
	KeyKPDecimal:   "KP.",
	KeyKPEnter:     "KPEnter",
	KeyLeftShift:   "LeftShift",
	KeyRightShift:  "RightShift",
	KeyLeftCtrl:    "LeftCtrl",
	KeyRightCtrl:   "RightCtrl",
	KeyLeftAlt:     "LeftAlt",
	KeyRightAlt:    "RightAlt",
	KeyLeftMeta:    "LeftMeta",
	KeyRightMeta:   "RightMeta",
}

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch {
	case k >= KeyA && k <= KeyZ:
		return string(rune('A' + int(k-KeyA)))
	case k >= Key0 && k <= Key9:
		return string(rune('0' + int(k-Key0)))
	case k >= KeyF1 && k <= KeyF12:
		return fmt.Sprintf("F%d", int(k-KeyF1)+1)
	case k >= KeyKP0 && k <= KeyKP9:
		return fmt.Sprintf("KP%d", int(k-KeyKP0))
	}
	if name, ok := specialNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", k)
}

// Valid reports whether k is a known key other than KeyUnknown.
func (k Key) Valid() bool {
	return k > KeyUnknown && k < keyCount
}

// IsLetter returns true for KeyA through KeyZ.
func (k Key) IsLetter() bool {
	return k >= KeyA && k <= KeyZ
}

// IsDigit returns true for the top row digit keys.
func (k Key) IsDigit() bool {
	return k >= Key0 && k <= Key9
}

// IsFunctionKey returns true if this is a function key (F1-F12).
func (k Key) IsFunctionKey() bool {
	return k >= KeyF1 && k <= KeyF12
}

// IsArrowKey returns true if this is an arrow key.
func (k Key) IsArrowKey() bool {
	return k >= KeyUp && k <= KeyRight
}

// IsKeypadKey returns true if this is a keypad key.
func (k Key) IsKeypadKey() bool {
	return k >= KeyKP0 && k <= KeyKPEnter
}

// IsModifier returns true for shift, ctrl, alt and meta keys.
func (k Key) IsModifier() bool {
	return k >= KeyLeftShift && k <= KeyRightMeta
}

// FromRune maps a printable character to the key that produces it on a
// US layout. Letters are case-insensitive. Returns KeyUnknown otherwise.
func FromRune(r rune) Key {
	r = unicode.ToUpper(r)
	switch {
	case r >= 'A' && r <= 'Z':
		return KeyA + Key(r-'A')
	case r >= '0' && r <= '9':
		return Key0 + Key(r-'0')
	case r == ' ':
		return KeySpace
	}
	return KeyUnknown
}

// aliases maps alternative lowercase names to keys.
var aliases = map[string]Key{
	"esc":      KeyEscape,
	"return":   KeyEnter,
	"cr":       KeyEnter,
	"bs":       KeyBackspace,
	"del":      KeyDelete,
	"ins":      KeyInsert,
	"pgup":     KeyPageUp,
	"pgdn":     KeyPageDown,
	"shift":    KeyLeftShift,
	"ctrl":     KeyLeftCtrl,
	"control":  KeyLeftCtrl,
	"alt":      KeyLeftAlt,
	"meta":     KeyLeftMeta,
	"super":    KeyLeftMeta,
	"kpenter":  KeyKPEnter,
	"capslock": KeyCapsLock,
}

// keyNameMap maps canonical lowercase names to Key values.
var keyNameMap = func() map[string]Key {
	m := make(map[string]Key, int(keyCount)+len(aliases))
	for k := KeyUnknown + 1; k < keyCount; k++ {
		m[strings.ToLower(k.String())] = k
	}
	for name, k := range aliases {
		m[name] = k
	}
	return m
}()

// FromName returns the Key for a given name (case-insensitive).
// Returns KeyUnknown if the name is not recognized.
func FromName(name string) Key {
	name = strings.ToLower(strings.TrimSpace(name))
	if k, ok := keyNameMap[name]; ok {
		return k
	}
	return KeyUnknown
}
