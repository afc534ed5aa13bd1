package trial

// Phase is the state of the trial machine.
type Phase int

const (
	PhaseIdle   Phase = iota // waiting for the player to start
	PhaseArmed               // random wait running, input is too soon
	PhaseCued                // cue shown, reaction being timed
	PhaseScored              // result on screen
	PhasePaused
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseArmed:
		return "armed"
	case PhaseCued:
		return "cued"
	case PhaseScored:
		return "scored"
	case PhasePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Outcome tells how a trial ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSuccess
	OutcomeTooSoon
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeTooSoon:
		return "too_soon"
	default:
		return "none"
	}
}
