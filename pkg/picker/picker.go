// Package picker sequences a two-link arm through picking up items one at a
// time and placing each on its destination.
package picker

import (
	"context"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/gwillem/pickplace/pkg/arm"
	"github.com/gwillem/pickplace/pkg/ik"
)

// Defaults applied by New when the config leaves a field zero.
const (
	DefaultGap              = 10.0
	DefaultMaxTicksPerPhase = 20000
)

// Config holds configuration for the controller.
type Config struct {
	Gap               float64 // arrival tolerance of the coarse positioning phases
	MaxTicksPerPhase  int     // tick budget before a phase fails with ErrNoConvergence
	RejectUnreachable bool    // fail on an out-of-reach waypoint instead of stretching toward it
	Renderer          Renderer
	Logger            *zap.SugaredLogger
}

// Controller runs the pick-and-place state machine. It is the only writer of
// item positions and drives the arm through the IK solver. A Controller is not
// safe for concurrent use.
type Controller struct {
	arm    *arm.Arm
	solver *ik.Solver
	items  []Item
	cfg    Config
	log    *zap.SugaredLogger

	safeHeight     float64
	transferHeight float64

	phase      Phase
	current    int
	target     r2.Point
	tolerance  float64
	phaseTicks int
	ticks      int
	completed  []string
}

// New creates a controller for the given arm and items. Items are copied and
// processed in order.
func New(a *arm.Arm, items []Item, cfg Config) (*Controller, error) {
	if a == nil {
		return nil, errors.New("arm is required")
	}
	if err := validateItems(items); err != nil {
		return nil, err
	}

	if cfg.Gap <= 0 {
		cfg.Gap = DefaultGap
	}
	if cfg.MaxTicksPerPhase <= 0 {
		cfg.MaxTicksPerPhase = DefaultMaxTicksPerPhase
	}
	if cfg.Renderer == nil {
		cfg.Renderer = nopRenderer{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}

	c := &Controller{
		arm:    a,
		solver: ik.New(a.Config()),
		items:  append([]Item(nil), items...),
		cfg:    cfg,
		log:    cfg.Logger,
		phase:  PhaseIdle,
	}
	c.safeHeight, c.transferHeight = travelHeights(c.items, cfg.Gap)
	return c, nil
}

// travelHeights returns the heights used for empty and loaded horizontal
// moves. Smaller y is higher up.
func travelHeights(items []Item, gap float64) (safe, transfer float64) {
	maxSize := items[0].Size
	minY := items[0].Position.Y
	for _, it := range items[1:] {
		if it.Size > maxSize {
			maxSize = it.Size
		}
		if it.Position.Y < minY {
			minY = it.Position.Y
		}
	}
	safe = minY - maxSize - gap
	transfer = safe - maxSize - gap
	return safe, transfer
}

// SafeHeight returns the height of empty horizontal moves.
func (c *Controller) SafeHeight() float64 { return c.safeHeight }

// TransferHeight returns the height of loaded horizontal moves.
func (c *Controller) TransferHeight() float64 { return c.transferHeight }

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// Ticks returns the number of ticks run so far.
func (c *Controller) Ticks() int { return c.ticks }

// Completed returns the names of placed items in completion order.
func (c *Controller) Completed() []string {
	return append([]string(nil), c.completed...)
}

// Items returns a copy of the items with their current positions.
func (c *Controller) Items() []Item {
	return append([]Item(nil), c.items...)
}

// Run steps the controller until every item is placed and the arm is back at
// the safe height. It returns the completion order, which is partial when an
// error stops the run.
func (c *Controller) Run(ctx context.Context) ([]string, error) {
	if c.phase == PhaseDone {
		return c.Completed(), ErrAlreadyRun
	}
	for {
		if err := ctx.Err(); err != nil {
			return c.Completed(), err
		}
		done, err := c.Step()
		if err != nil {
			return c.Completed(), err
		}
		if done {
			break
		}
	}
	c.log.Infow("collection complete", "order", c.completed, "ticks", c.ticks)
	return c.Completed(), nil
}

// Step advances the state machine through any phases whose exit condition
// already holds and then runs a single tick. It reports done once the final
// return phase has finished.
func (c *Controller) Step() (done bool, err error) {
	if c.phase == PhaseDone {
		return true, nil
	}
	if c.phase == PhaseIdle {
		if err := c.enter(PhaseRaise); err != nil {
			return false, err
		}
	}

	for c.arrived() {
		if err := c.advance(); err != nil {
			return false, err
		}
		if c.phase == PhaseDone {
			return true, nil
		}
	}

	if c.phaseTicks >= c.cfg.MaxTicksPerPhase {
		return false, c.phaseError(ErrNoConvergence)
	}
	c.tick()
	return false, nil
}

func (c *Controller) item() *Item {
	if c.phase == PhaseReturn || c.current >= len(c.items) {
		return nil
	}
	return &c.items[c.current]
}

// enter switches to phase p and fixes its waypoint from the current scene.
func (c *Controller) enter(p Phase) error {
	c.phase = p
	c.phaseTicks = 0
	c.tolerance = c.cfg.Gap

	it := c.item()
	eff := c.arm.Effector()
	cfg := c.arm.Config()

	switch p {
	case PhaseRaise, PhaseReturn:
		c.target = r2.Point{X: eff.X, Y: c.safeHeight}
	case PhaseOverItem:
		c.target = r2.Point{X: it.Position.X, Y: c.safeHeight}
	case PhaseGrip:
		grip := it.GripPoint()
		c.target = r2.Point{X: grip.X, Y: grip.Y - cfg.JointSize}
	case PhaseLift:
		c.target = r2.Point{X: it.Position.X, Y: c.transferHeight}
	case PhaseOverPlace:
		c.target = r2.Point{X: it.Place.X, Y: c.transferHeight}
	case PhaseRelease:
		c.target = r2.Point{X: it.Place.X, Y: it.Place.Y - it.Size - cfg.JointSize}
		c.tolerance = cfg.PickDistance
	}

	c.log.Debugw("enter phase", "phase", p, "item", c.itemName(), "target", c.target)

	if err := c.solver.CheckReach(c.target); err != nil {
		if c.cfg.RejectUnreachable {
			return c.phaseError(err)
		}
		c.log.Warnw("waypoint out of reach", "phase", p, "item", c.itemName(), "error", err)
	}
	return nil
}

// arrived evaluates the exit condition of the current phase. In the grip
// phase this is the grip attempt itself.
func (c *Controller) arrived() bool {
	if c.phase == PhaseGrip {
		it := c.item()
		if c.arm.TryGrip(it.Name, it.GripPoint()) {
			c.log.Infow("gripped", "item", it.Name, "tick", c.ticks)
			return true
		}
		return false
	}
	return c.arm.Effector().Sub(c.target).Norm() <= c.tolerance
}

// advance moves to the phase after the current one.
func (c *Controller) advance() error {
	switch c.phase {
	case PhaseRelease:
		name, _ := c.arm.Release()
		c.completed = append(c.completed, name)
		c.log.Infow("released", "item", name, "tick", c.ticks)
		c.current++
		if c.current < len(c.items) {
			return c.enter(PhaseRaise)
		}
		return c.enter(PhaseReturn)
	case PhaseReturn:
		c.phase = PhaseDone
		return nil
	default:
		return c.enter(c.phase + 1)
	}
}

// tick runs one solver call, one arm update, the carried item update and one
// draw.
func (c *Controller) tick() {
	v, _ := c.solver.Velocity(c.target, c.arm.State())
	before := c.arm.Effector()
	c.arm.ApplyVelocity(v)

	it := c.item()
	if it != nil && c.phase.Carrying() {
		it.Position = it.Position.Add(c.arm.Effector().Sub(before))
	}

	c.phaseTicks++
	c.ticks++
	c.cfg.Renderer.Draw(c.frame())
}

func (c *Controller) frame() Frame {
	return Frame{
		Tick:   c.ticks,
		Phase:  c.phase,
		Item:   c.itemName(),
		Target: c.target,
		Arm:    c.arm.State(),
		Items:  c.Items(),
	}
}

func (c *Controller) itemName() string {
	if it := c.item(); it != nil {
		return it.Name
	}
	return ""
}

func (c *Controller) phaseError(err error) error {
	return &PhaseError{
		Phase:    c.phase,
		Item:     c.itemName(),
		Ticks:    c.phaseTicks,
		Target:   c.target,
		Distance: c.arm.Effector().Sub(c.target).Norm(),
		Err:      err,
	}
}
