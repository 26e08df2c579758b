package driven

import "time"

// PreviewMetrics records fetch lifecycle events.
type PreviewMetrics interface {
	// SessionStarted is called when a fetch session begins.
	SessionStarted()

	// SessionAccepted is called when a session's result is written to state.
	SessionAccepted()

	// SessionDiscarded is called when a cancelled session resolves.
	SessionDiscarded()

	// PrecomputedAdopted is called when precomputed data replaces a fetch.
	PrecomputedAdopted()

	// FetchDuration records how long a fetch took, accepted or not.
	FetchDuration(d time.Duration)
}
