package core

// Cue names a feedback event played by the audio collaborator.
type Cue string

const (
	CueStart      Cue = "start"
	CueTooSoon    Cue = "too_soon"
	CueSuccess    Cue = "success"
	CueNewRecord  Cue = "new_record"
	CueMenuSelect Cue = "menu_select"
)
