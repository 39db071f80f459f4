package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-battleship/internal/core"
)

// KeyMapper translates Bubble Tea key and mouse messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// isQuit is set for Ctrl+C, which always ends the program; Q maps to
// ActionQuit and leaves the current screen.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c":
		return core.ActionQuit, true
	case "q":
		return core.ActionQuit, false
	}

	// Game actions
	switch key {
	case "up", "k":
		return core.ActionUp, false
	case "down", "j":
		return core.ActionDown, false
	case "left", "h":
		return core.ActionLeft, false
	case "right", "l":
		return core.ActionRight, false
	case " ", "enter":
		return core.ActionSelect, false
	case "x", "delete", "backspace":
		return core.ActionDelete, false
	case "+", "=":
		return core.ActionAddRow, false
	case "-":
		return core.ActionDelRow, false
	case "]":
		return core.ActionAddCol, false
	case "[":
		return core.ActionDelCol, false
	case "s":
		return core.ActionStart, false
	case "v":
		return core.ActionPeek, false
	case "p":
		return core.ActionDump, false
	case "esc":
		return core.ActionBack, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns the mapped action and whether it was a hard quit.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) (core.Action, bool) {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && action != core.ActionQuit {
		frame.Set(action)
	}
	return action, isQuit
}

// MapMouseToFrame appends a mouse message to the frame as a pointer event.
// Only the left button starts a drag; releases and motion are accepted from
// any button since terminals do not always report which one was released.
func (km *KeyMapper) MapMouseToFrame(msg tea.MouseMsg, frame *core.InputFrame) bool {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return false
		}
		frame.AddPointer(msg.X, msg.Y, core.PointerPress)
	case tea.MouseActionRelease:
		frame.AddPointer(msg.X, msg.Y, core.PointerRelease)
	case tea.MouseActionMotion:
		frame.AddPointer(msg.X, msg.Y, core.PointerMotion)
	default:
		return false
	}
	return true
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionHistory
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionHistory
	}

	return MenuActionNone
}
