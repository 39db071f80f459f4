package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // K, Up arrow - move the cursor up
	ActionDown           // J, Down arrow - move the cursor down
	ActionLeft           // H, Left arrow - move the cursor left
	ActionRight          // L, Right arrow - move the cursor right
	ActionSelect         // Space, Enter - anchor/place a boat, guess a tile
	ActionDelete         // X, Delete - remove the boat under the cursor
	ActionAddRow         // +, = - grow the board downwards
	ActionDelRow         // - - shrink the board from the bottom
	ActionAddCol         // ] - grow the board to the right
	ActionDelCol         // [ - shrink the board from the right
	ActionStart          // S - leave setup and start guessing
	ActionPeek           // V - toggle revealing every tile
	ActionDump           // P - write the board debug string to a file
	ActionBack           // Escape - cancel a drag, go back to menu
	ActionRestart        // R key - restart after the fleet is found
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionSelect:
		return "Select"
	case ActionDelete:
		return "Delete"
	case ActionAddRow:
		return "AddRow"
	case ActionDelRow:
		return "DelRow"
	case ActionAddCol:
		return "AddCol"
	case ActionDelCol:
		return "DelCol"
	case ActionStart:
		return "Start"
	case ActionPeek:
		return "Peek"
	case ActionDump:
		return "Dump"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// PointerKind distinguishes mouse button transitions from plain movement.
type PointerKind int

const (
	PointerPress PointerKind = iota
	PointerRelease
	PointerMotion
)

// String returns a human-readable name for the pointer kind.
func (k PointerKind) String() string {
	switch k {
	case PointerPress:
		return "Press"
	case PointerRelease:
		return "Release"
	case PointerMotion:
		return "Motion"
	default:
		return "Unknown"
	}
}

// PointerEvent is a mouse event in screen cell coordinates.
type PointerEvent struct {
	X, Y int
	Kind PointerKind
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool

	// Pointer holds mouse events in the order they arrived.
	Pointer []PointerEvent
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// AddPointer appends a mouse event to this frame.
func (f *InputFrame) AddPointer(x, y int, kind PointerKind) {
	f.Pointer = append(f.Pointer, PointerEvent{X: x, Y: y, Kind: kind})
}

// Empty returns true if the frame carries no actions and no pointer events.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && len(f.Pointer) == 0
}

// Clear resets all actions and pointer events for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointer = f.Pointer[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	if len(f.Pointer) > 0 {
		clone.Pointer = append([]PointerEvent(nil), f.Pointer...)
	}
	return clone
}
