package fsm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransitionHappyPath(t *testing.T) {
	s := StateIdle

	for _, step := range []struct {
		event Event
		want  State
	}{
		{EventDial, StateConnecting},
		{EventDialed, StateSending},
		{EventSent, StateReceiving},
		{EventReceived, StateParsed},
		{EventClose, StateClosed},
	} {
		next, err := Transition(s, step.event)
		require.NoError(t, err)
		require.Equal(t, step.want, next)
		s = next
	}
}

func TestTransitionFailReachableFromEveryNonTerminalState(t *testing.T) {
	states := []State{StateIdle, StateConnecting, StateSending, StateReceiving, StateParsed, StateFailed}
	for _, state := range states {
		next, err := Transition(state, EventFail)
		require.NoError(t, err)
		require.Equal(t, StateFailed, next)
	}
}

func TestTransitionFailedClosesCleanly(t *testing.T) {
	next, err := Transition(StateFailed, EventClose)
	require.NoError(t, err)
	require.Equal(t, StateClosed, next)
}

func TestTransitionInvalidEvents(t *testing.T) {
	tests := []struct {
		name  string
		state State
		event Event
	}{
		{name: "idle cannot send", state: StateIdle, event: EventSent},
		{name: "connecting cannot receive", state: StateConnecting, event: EventReceived},
		{name: "sending cannot dial", state: StateSending, event: EventDial},
		{name: "receiving cannot close", state: StateReceiving, event: EventClose},
		{name: "parsed cannot dial", state: StateParsed, event: EventDial},
		{name: "closed is terminal", state: StateClosed, event: EventDial},
		{name: "closed cannot fail", state: StateClosed, event: EventFail},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next, err := Transition(tc.state, tc.event)
			require.Error(t, err)
			require.Contains(t, err.Error(), "invalid transition")
			require.Equal(t, tc.state, next)
		})
	}
}
