package appstate

import (
	"image"
	"unicode"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
)

// MinSpan is the smallest drag, in pixels along both axes, that counts as a
// region selection.
const MinSpan = 10

type gesture int

const (
	gestureNone gesture = iota
	gesturePick
	gestureSelect
)

// classify decides what a press at start released at end means. A right
// click always picks. A left release picks when it moved less than MinSpan
// in both directions and selects when it moved at least MinSpan in both.
// Thin drags do nothing.
func classify(b mouse.Button, start, end image.Point) gesture {
	switch b {
	case mouse.ButtonRight:
		return gesturePick
	case mouse.ButtonLeft:
		dx, dy := abs(end.X-start.X), abs(end.Y-start.Y)
		switch {
		case dx < MinSpan && dy < MinSpan:
			return gesturePick
		case dx >= MinSpan && dy >= MinSpan:
			return gestureSelect
		}
	}
	return gestureNone
}

// selectionRect returns the rubber band rectangle between two corners.
func selectionRect(a, b image.Point) image.Rectangle {
	return image.Rectangle{Min: a, Max: b}.Canon()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var codeNames = map[key.Code]string{
	key.CodeEscape:          "escape",
	key.CodeReturnEnter:     "enter",
	key.CodeTab:             "tab",
	key.CodeSpacebar:        "space",
	key.CodeDeleteBackspace: "backspace",
	key.CodeDeleteForward:   "delete",
	key.CodeLeftArrow:       "left",
	key.CodeRightArrow:      "right",
	key.CodeUpArrow:         "up",
	key.CodeDownArrow:       "down",
	key.CodeHome:            "home",
	key.CodeEnd:             "end",
	key.CodePageUp:          "pageup",
	key.CodePageDown:        "pagedown",
}

// keyName turns a key event into names like "m", "ctrl+z" or "escape".
// Modifier-only presses return "".
func keyName(e key.Event) string {
	base := ""
	switch {
	case e.Code >= key.CodeA && e.Code <= key.CodeZ:
		base = string(rune('a' + int(e.Code-key.CodeA)))
	case codeNames[e.Code] != "":
		base = codeNames[e.Code]
	case e.Rune > 0 && e.Rune < 27 && e.Modifiers&key.ModControl != 0:
		// control characters for ctrl+a .. ctrl+z
		base = string('a' + e.Rune - 1)
	case e.Rune > ' ' && unicode.IsPrint(e.Rune):
		base = string(unicode.ToLower(e.Rune))
	}
	if base == "" {
		return ""
	}
	prefix := ""
	if e.Modifiers&key.ModControl != 0 {
		prefix += "ctrl+"
	}
	if e.Modifiers&key.ModAlt != 0 {
		prefix += "alt+"
	}
	if e.Modifiers&key.ModMeta != 0 {
		prefix += "super+"
	}
	return prefix + base
}
