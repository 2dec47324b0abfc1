package session

import "testing"

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		from  State
		event Event
		want  State
		legal bool
	}{
		{Anonymous, EventLoginStarted, Loading, true},
		{Errored, EventLoginStarted, Loading, true},
		{Loading, EventLoginSucceeded, Authenticated, true},
		{Loading, EventLoginFailed, Errored, true},
		{Errored, EventReset, Anonymous, true},
		{Anonymous, EventReset, Anonymous, true},

		// Logout is legal from everywhere.
		{Anonymous, EventLogout, Anonymous, true},
		{Loading, EventLogout, Anonymous, true},
		{Authenticated, EventLogout, Anonymous, true},
		{Errored, EventLogout, Anonymous, true},

		{Authenticated, EventLoginStarted, Authenticated, false},
		{Loading, EventLoginStarted, Loading, false},
		{Anonymous, EventLoginSucceeded, Anonymous, false},
		{Authenticated, EventLoginFailed, Authenticated, false},
	}

	for _, tc := range cases {
		got, err := transition(tc.from, tc.event)
		if tc.legal && err != nil {
			t.Fatalf("%s on %s: unexpected error %v", eventName(tc.event), tc.from, err)
		}
		if !tc.legal && err == nil {
			t.Fatalf("%s on %s: expected illegal transition", eventName(tc.event), tc.from)
		}
		if tc.legal && got != tc.want {
			t.Fatalf("%s on %s: got %s, want %s", eventName(tc.event), tc.from, got, tc.want)
		}
	}
}

func TestPollDelaySchedule(t *testing.T) {
	for attempt := 0; attempt < pollAttempts-1; attempt++ {
		if PollDelay(attempt) != pollInterval {
			t.Fatalf("attempt %d: expected %v pause", attempt, pollInterval)
		}
	}
	if PollDelay(pollAttempts-1) != 0 {
		t.Fatalf("no pause expected after the final attempt")
	}
}
