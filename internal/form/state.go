package form

import "fmt"

// State is the lifecycle state of a form.
type State int

const (
	Idle State = iota
	Loading
	Success
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// MarshalText renders the state by name in JSON snapshots.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name.
func (s *State) UnmarshalText(text []byte) error {
	for _, st := range []State{Idle, Loading, Success, Failed} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown form state %q", text)
}

// Event drives a state transition.
type Event int

const (
	EventSubmit Event = iota
	EventParseFailure
	EventClientSuccess
	EventClientFailure
	EventUpload
	EventUploadSuccess
	EventReset
)

func (e Event) String() string {
	switch e {
	case EventSubmit:
		return "submit"
	case EventParseFailure:
		return "parse-failure"
	case EventClientSuccess:
		return "client-success"
	case EventClientFailure:
		return "client-failure"
	case EventUpload:
		return "upload"
	case EventUploadSuccess:
		return "upload-success"
	case EventReset:
		return "reset"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

// Transition records one state change.
type Transition struct {
	From  State
	Event Event
	To    State
}

// transitions is the complete state table. Any (state, event) pair not
// listed is rejected.
var transitions = map[State]map[Event]State{
	Idle: {
		EventSubmit: Loading,
		EventUpload: Loading,
		EventReset:  Idle,
	},
	Loading: {
		EventParseFailure:  Failed,
		EventClientSuccess: Success,
		EventClientFailure: Failed,
		EventUploadSuccess: Idle,
	},
	Success: {
		EventSubmit: Loading,
		EventUpload: Loading,
		EventReset:  Idle,
	},
	Failed: {
		EventSubmit: Loading,
		EventUpload: Loading,
		EventReset:  Idle,
	},
}

// next returns the state reached from s on e.
func next(s State, e Event) (State, bool) {
	to, ok := transitions[s][e]
	return to, ok
}
