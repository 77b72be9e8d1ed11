package editor

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Key identifies a decoded key press. Printable input arrives as KeyRune
// and control chords as KeyCtrl; both carry the character in Event.Rune.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyCtrl
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

// Event is one key press as the editor sees it.
type Event struct {
	Key  Key
	Rune rune
	Alt  bool
}

func RuneEvent(r rune) Event { return Event{Key: KeyRune, Rune: r} }

// CtrlEvent is the chord Ctrl plus a lower-case letter.
func CtrlEvent(r rune) Event { return Event{Key: KeyCtrl, Rune: unicode.ToLower(r)} }

func KeyEvent(k Key) Event { return Event{Key: k} }

func (ev Event) isRune(r rune) bool { return ev.Key == KeyRune && ev.Rune == r }

func (ev Event) isCtrl(r rune) bool { return ev.Key == KeyCtrl && ev.Rune == r }

// EventFromTcell decodes a tcell key event. ok is false for keys the editor
// has no use for.
func EventFromTcell(ev *tcell.EventKey) (Event, bool) {
	alt := ev.Modifiers()&tcell.ModAlt != 0
	switch ev.Key() {
	case tcell.KeyRune:
		r := ev.Rune()
		if ev.Modifiers()&tcell.ModCtrl != 0 && r < unicode.MaxASCII && unicode.IsLetter(r) {
			return CtrlEvent(r), true
		}
		return Event{Key: KeyRune, Rune: r, Alt: alt}, true
	case tcell.KeyEnter:
		return Event{Key: KeyEnter, Alt: alt}, true
	case tcell.KeyEscape:
		return Event{Key: KeyEscape}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Event{Key: KeyBackspace}, true
	case tcell.KeyDelete:
		return Event{Key: KeyDelete}, true
	case tcell.KeyTab:
		return Event{Key: KeyTab}, true
	case tcell.KeyUp:
		return Event{Key: KeyUp, Alt: alt}, true
	case tcell.KeyDown:
		return Event{Key: KeyDown, Alt: alt}, true
	case tcell.KeyLeft:
		return Event{Key: KeyLeft, Alt: alt}, true
	case tcell.KeyRight:
		return Event{Key: KeyRight, Alt: alt}, true
	case tcell.KeyHome:
		return Event{Key: KeyHome}, true
	case tcell.KeyEnd:
		return Event{Key: KeyEnd}, true
	case tcell.KeyPgUp:
		return Event{Key: KeyPageUp}, true
	case tcell.KeyPgDn:
		return Event{Key: KeyPageDown}, true
	}
	if k := ev.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return CtrlEvent(rune('a' + int(k-tcell.KeyCtrlA))), true
	}
	return Event{}, false
}
