package pipeline

// State is the position of one attempt in the pipeline.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateDetecting
	StateReading
	StateAssembled
	StateFailed
)

var stateNames = [...]string{
	StateIdle:       "idle",
	StateValidating: "validating",
	StateDetecting:  "detecting",
	StateReading:    "reading",
	StateAssembled:  "assembled",
	StateFailed:     "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// MarshalText renders the state by name in JSON and logs.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Terminal reports whether no further transition follows s.
func (s State) Terminal() bool {
	return s == StateAssembled || s == StateFailed
}

// StateObserver receives every transition of an attempt, in order.
type StateObserver func(State)
