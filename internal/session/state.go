package session

import "fmt"

// State is the auth controller's lifecycle state.
type State int

const (
	// Anonymous: no account linked.
	Anonymous State = iota
	// Loading: a login is in flight.
	Loading
	// Authenticated: an account id is held and its profile was fetched.
	Authenticated
	// Errored: the last login failed; recovers to Anonymous via Reset.
	Errored
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	case Errored:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Event drives a state transition.
type Event int

const (
	EventLoginStarted Event = iota
	EventLoginSucceeded
	EventLoginFailed
	EventLogout
	EventReset
)

// transition returns the next state, or an error for an illegal move.
// Logout is legal from every state: clearing a session must never fail.
func transition(s State, e Event) (State, error) {
	switch e {
	case EventLogout:
		return Anonymous, nil
	case EventLoginStarted:
		if s == Anonymous || s == Errored {
			return Loading, nil
		}
	case EventLoginSucceeded:
		if s == Loading {
			return Authenticated, nil
		}
	case EventLoginFailed:
		if s == Loading {
			return Errored, nil
		}
	case EventReset:
		if s == Errored {
			return Anonymous, nil
		}
		return s, nil
	}
	return s, fmt.Errorf("illegal transition: %s on %s", eventName(e), s)
}

func eventName(e Event) string {
	switch e {
	case EventLoginStarted:
		return "login_started"
	case EventLoginSucceeded:
		return "login_succeeded"
	case EventLoginFailed:
		return "login_failed"
	case EventLogout:
		return "logout"
	case EventReset:
		return "reset"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}
