package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a pipeline phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a phase boundary with its elapsed time.
type PhaseEvent struct {
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
	// Detail carries phase-specific progress text, e.g. a unit name.
	Detail string
}

// PhaseObserver receives phase events emitted during generation.
type PhaseObserver func(PhaseEvent)

// beginPhase notifies the observer and returns a closure that reports the
// end of the phase.
func beginPhase(obs PhaseObserver, name string) func(detail string) {
	if obs == nil {
		return func(string) {}
	}
	start := time.Now()
	obs(PhaseEvent{Name: name, Status: PhaseStart})
	return func(detail string) {
		obs(PhaseEvent{Name: name, Status: PhaseEnd, Elapsed: time.Since(start), Detail: detail})
	}
}
