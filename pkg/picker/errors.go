package picker

import (
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

var (
	// ErrNoConvergence is returned when a phase does not reach its waypoint
	// within the tick budget.
	ErrNoConvergence = errors.New("waypoint not reached within tick budget")
	// ErrAlreadyRun is returned by Run once the controller has finished.
	ErrAlreadyRun = errors.New("controller already finished")
)

// PhaseError describes the phase a run stopped in.
type PhaseError struct {
	Phase    Phase
	Item     string
	Ticks    int // ticks spent in the phase
	Target   r2.Point
	Distance float64 // effector distance to Target when the run stopped
	Err      error
}

func (e *PhaseError) Error() string {
	item := e.Item
	if item == "" {
		item = "-"
	}
	return fmt.Sprintf("phase %s (item %s, target (%.1f, %.1f), %d ticks, %.2f away): %v",
		e.Phase, item, e.Target.X, e.Target.Y, e.Ticks, e.Distance, e.Err)
}

// Unwrap returns the underlying error.
func (e *PhaseError) Unwrap() error {
	return e.Err
}
