package mouse

import (
	"fmt"
	"strconv"
	"strings"
)

// Button identifies a mouse button.
type Button uint8

const (
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft Button = iota
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle
	// ButtonBack is the back navigation button (mouse button 4).
	ButtonBack
	// ButtonForward is the forward navigation button (mouse button 5).
	ButtonForward

	// buttonOtherBase is the first value used by Other.
	buttonOtherBase
)

// Other returns the identifier for an additional button beyond the five
// named ones. n counts from zero.
func Other(n uint8) Button {
	return buttonOtherBase + Button(n)
}

// IsOther reports whether b was produced by Other.
func (b Button) IsOther() bool {
	return b >= buttonOtherBase
}

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	case ButtonBack:
		return "back"
	case ButtonForward:
		return "forward"
	default:
		return fmt.Sprintf("other%d", uint8(b-buttonOtherBase))
	}
}

// FromName parses a button name as produced by String (case-insensitive).
// "primary" and "secondary" are accepted for left and right.
func FromName(name string) (Button, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "left", "primary":
		return ButtonLeft, true
	case "right", "secondary":
		return ButtonRight, true
	case "middle":
		return ButtonMiddle, true
	case "back":
		return ButtonBack, true
	case "forward":
		return ButtonForward, true
	}
	if rest, ok := strings.CutPrefix(name, "other"); ok {
		n, err := strconv.ParseUint(rest, 10, 8)
		if err == nil && n <= uint64(255-buttonOtherBase) {
			return Other(uint8(n)), true
		}
	}
	return ButtonLeft, false
}
