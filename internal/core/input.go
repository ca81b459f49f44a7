package core

import (
	"fmt"
	"strings"
)

// Button is a logical input identifier, abstracted from physical keys.
// Hosts translate their own key events into buttons; the simulation only
// reacts to the four arrows and ignores everything else.
type Button int

const (
	ButtonNone  Button = iota
	ButtonUp           // Up arrow, W, K
	ButtonDown         // Down arrow, S, J
	ButtonLeft         // Left arrow, A, H
	ButtonRight        // Right arrow, D, L
	ButtonEscape
	ButtonSpace
	ButtonEnter
)

var buttonNames = [...]string{
	ButtonNone:   "none",
	ButtonUp:     "up",
	ButtonDown:   "down",
	ButtonLeft:   "left",
	ButtonRight:  "right",
	ButtonEscape: "escape",
	ButtonSpace:  "space",
	ButtonEnter:  "enter",
}

// String returns the lower-case name of the button.
func (b Button) String() string {
	if b < 0 || int(b) >= len(buttonNames) {
		return "unknown"
	}
	return buttonNames[b]
}

// IsArrow reports whether the button is one of the four movement buttons.
func (b Button) IsArrow() bool {
	return b >= ButtonUp && b <= ButtonRight
}

// ParseButton is the inverse of Button.String. Matching ignores case.
func ParseButton(s string) (Button, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range buttonNames {
		if name == s {
			return Button(i), nil
		}
	}
	return ButtonNone, fmt.Errorf("core: unknown button %q", s)
}
