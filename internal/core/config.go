package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and to convert durations into ticks.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Simulation ticks per second (default 30)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Moves    int  // Moves made in the current round
	GameOver bool // Whether the round has ended
	Paused   bool // Whether the game is waiting on something other than the player
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// Finished is set only on the tick the round ended.
	Finished bool

	// Dump carries the board debug string when the player asked for it.
	Dump string

	// Err is the error of a rejected move made during this tick.
	Err error
}
