package pinion

import (
	"context"
	"time"
)

// StepEvent describes one loop iteration for observers.
type StepEvent struct {
	Machine  string
	State    string
	Step     int
	Duration time.Duration
	Err      error
}

// Hooks defines callbacks for machine observability. Nil callbacks are
// skipped. Hooks run synchronously inside the loop, so they should be cheap;
// anything expensive belongs in the observer, not the run.
type Hooks struct {
	OnStateEnter func(context.Context, *StepEvent)
	OnStateLeave func(context.Context, *StepEvent)
	OnFailure    func(context.Context, *StepEvent)
}

func (h Hooks) stateEnter(ctx context.Context, e *StepEvent) {
	if h.OnStateEnter != nil {
		h.OnStateEnter(ctx, e)
	}
}

func (h Hooks) stateLeave(ctx context.Context, e *StepEvent) {
	if h.OnStateLeave != nil {
		h.OnStateLeave(ctx, e)
	}
}

func (h Hooks) failure(ctx context.Context, e *StepEvent) {
	if h.OnFailure != nil {
		h.OnFailure(ctx, e)
	}
}
