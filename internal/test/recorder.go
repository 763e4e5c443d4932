package test

import (
	"sync"

	"github.com/polkiloo/ecocoleta/internal/domain/model"
)

// TransitionObservation is one call captured by RecorderStub.
type TransitionObservation struct {
	From    model.StatusID
	To      model.StatusID
	Role    model.Role
	Outcome string
}

// RecorderStub collects transition observations.
type RecorderStub struct {
	mu           sync.Mutex
	Observations []TransitionObservation
}

// ObserveTransition stores the observation.
func (r *RecorderStub) ObserveTransition(from, to model.StatusID, role model.Role, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Observations = append(r.Observations, TransitionObservation{From: from, To: to, Role: role, Outcome: outcome})
}

// Outcomes returns the recorded outcomes in call order.
func (r *RecorderStub) Outcomes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.Observations))
	for _, o := range r.Observations {
		out = append(out, o.Outcome)
	}
	return out
}
