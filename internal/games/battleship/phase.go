package battleship

// Phase is the stage of a round.
type Phase string

const (
	// PhaseSetup lets the player resize the sea and place boats.
	PhaseSetup Phase = "setup"
	// PhasePlaying hides the boats and accepts guesses.
	PhasePlaying Phase = "playing"
	// PhaseFinished is entered once every boat has been found.
	PhaseFinished Phase = "finished"
)

// String returns the upper-case label shown in the HUD.
func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "SETUP"
	case PhasePlaying:
		return "PLAYING"
	case PhaseFinished:
		return "FINISHED"
	default:
		return "UNKNOWN"
	}
}
