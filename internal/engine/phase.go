package engine

// Phase is the state of the current session.
type Phase int

const (
	Idle Phase = iota
	Starting
	Performing
	Success
	Fail
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "Idle"
	case Starting:
		return "Starting"
	case Performing:
		return "Performing"
	case Success:
		return "Success"
	case Fail:
		return "Fail"
	}
	return "Unknown"
}

// Terminal reports whether the phase only exits through a reset.
func (p Phase) Terminal() bool {
	return p == Success || p == Fail
}
