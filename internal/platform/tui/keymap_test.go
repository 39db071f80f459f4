package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-battleship/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		action   core.Action
		hardQuit bool
	}{
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"q", runeKey('q'), core.ActionQuit, false},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"vim down", runeKey('j'), core.ActionDown, false},
		{"vim left", runeKey('h'), core.ActionLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionSelect, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionSelect, false},
		{"x", runeKey('x'), core.ActionDelete, false},
		{"delete", tea.KeyMsg{Type: tea.KeyDelete}, core.ActionDelete, false},
		{"plus", runeKey('+'), core.ActionAddRow, false},
		{"equals", runeKey('='), core.ActionAddRow, false},
		{"minus", runeKey('-'), core.ActionDelRow, false},
		{"close bracket", runeKey(']'), core.ActionAddCol, false},
		{"open bracket", runeKey('['), core.ActionDelCol, false},
		{"start", runeKey('s'), core.ActionStart, false},
		{"peek", runeKey('v'), core.ActionPeek, false},
		{"dump", runeKey('p'), core.ActionDump, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"restart", runeKey('r'), core.ActionRestart, false},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, hardQuit := km.MapKey(tc.msg)
			if action != tc.action {
				t.Errorf("MapKey(%q) action = %v, expected %v", tc.msg.String(), action, tc.action)
			}
			if hardQuit != tc.hardQuit {
				t.Errorf("MapKey(%q) hardQuit = %v, expected %v", tc.msg.String(), hardQuit, tc.hardQuit)
			}
		})
	}
}

func TestMapKeyToFrameSkipsQuit(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	km.MapKeyToFrame(runeKey('q'), &frame)
	km.MapKeyToFrame(runeKey('z'), &frame)
	if !frame.Empty() {
		t.Errorf("quit and unbound keys should not reach the frame, got %v", frame.Actions)
	}

	km.MapKeyToFrame(runeKey('v'), &frame)
	if !frame.Has(core.ActionPeek) {
		t.Error("peek should be set on the frame")
	}
}

func TestMapMouseToFrame(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name string
		msg  tea.MouseMsg
		ok   bool
		kind core.PointerKind
	}{
		{
			name: "left press",
			msg:  tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
			ok:   true,
			kind: core.PointerPress,
		},
		{
			name: "right press ignored",
			msg:  tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonRight},
			ok:   false,
		},
		{
			name: "release without button",
			msg:  tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone},
			ok:   true,
			kind: core.PointerRelease,
		},
		{
			name: "drag motion",
			msg:  tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft},
			ok:   true,
			kind: core.PointerMotion,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			frame := core.NewInputFrame()
			ok := km.MapMouseToFrame(tc.msg, &frame)
			if ok != tc.ok {
				t.Fatalf("MapMouseToFrame ok = %v, expected %v", ok, tc.ok)
			}
			if !ok {
				if len(frame.Pointer) != 0 {
					t.Errorf("ignored event reached the frame: %v", frame.Pointer)
				}
				return
			}
			want := core.PointerEvent{X: 3, Y: 4, Kind: tc.kind}
			if len(frame.Pointer) != 1 || frame.Pointer[0] != want {
				t.Errorf("frame pointer = %v, expected [%v]", frame.Pointer, want)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg    tea.KeyMsg
		action MenuAction
	}{
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionHistory},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('z'), MenuActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.msg.String(), func(t *testing.T) {
			if got := km.MapKeyToMenuAction(tc.msg); got != tc.action {
				t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.msg.String(), got, tc.action)
			}
		})
	}
}
