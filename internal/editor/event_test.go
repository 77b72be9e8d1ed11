package editor

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestEventFromTcell(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Event
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'a', 0), RuneEvent('a')},
		{"ctrl q", tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl), CtrlEvent('q')},
		{"ctrl rune", tcell.NewEventKey(tcell.KeyRune, 'S', tcell.ModCtrl), CtrlEvent('s')},
		{"ctrl h is backspace", tcell.NewEventKey(tcell.KeyBackspace, 0, 0), KeyEvent(KeyBackspace)},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, 0), KeyEvent(KeyBackspace)},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, 0), KeyEvent(KeyEnter)},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, 0), KeyEvent(KeyEscape)},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, 0), KeyEvent(KeyTab)},
		{"alt up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModAlt), Event{Key: KeyUp, Alt: true}},
		{"page down", tcell.NewEventKey(tcell.KeyPgDn, 0, 0), KeyEvent(KeyPageDown)},
	}
	for _, tt := range tests {
		got, ok := EventFromTcell(tt.ev)
		if !ok || got != tt.want {
			t.Fatalf("%s: EventFromTcell = %+v, %v, want %+v", tt.name, got, ok, tt.want)
		}
	}

	if _, ok := EventFromTcell(tcell.NewEventKey(tcell.KeyF5, 0, 0)); ok {
		t.Fatalf("F5 decoded, want ignored")
	}
}

func TestHandleKeyQuits(t *testing.T) {
	e := newTestEditor("abc")
	if !e.HandleKey(tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)) {
		t.Fatalf("Ctrl-Q on clean document did not quit")
	}
	if e.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'l', 0)) {
		t.Fatalf("l quit the editor")
	}
	checkPos(t, e, 0, 1)
}
