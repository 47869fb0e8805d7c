package fsm

import "fmt"

type State string

type Event string

const (
	StateIdle       State = "idle"
	StateConnecting State = "connecting"
	StateSending    State = "sending"
	StateReceiving  State = "receiving"
	StateParsed     State = "parsed"
	StateFailed     State = "failed"
	StateClosed     State = "closed"
)

const (
	EventDial     Event = "dial"
	EventDialed   Event = "dialed"
	EventSent     Event = "sent"
	EventReceived Event = "received"
	EventFail     Event = "fail"
	EventClose    Event = "close"
)

// Transition advances one client call through its phases. Failure is reachable
// from every non-terminal state; close is the only exit from parsed or failed.
func Transition(current State, event Event) (State, error) {
	if event == EventFail {
		if current == StateClosed {
			return current, invalidTransition(current, event)
		}
		return StateFailed, nil
	}

	switch current {
	case StateIdle:
		switch event {
		case EventDial:
			return StateConnecting, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateConnecting:
		switch event {
		case EventDialed:
			return StateSending, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateSending:
		switch event {
		case EventSent:
			return StateReceiving, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateReceiving:
		switch event {
		case EventReceived:
			return StateParsed, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateParsed, StateFailed:
		switch event {
		case EventClose:
			return StateClosed, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateClosed:
		return current, invalidTransition(current, event)
	default:
		return current, fmt.Errorf("unknown state %q", current)
	}
}

func invalidTransition(state State, event Event) error {
	return fmt.Errorf("invalid transition: %s --(%s)--> ?", state, event)
}
