// Package ik solves the inverse kinematics of a two-link planar arm and turns
// the solution into a per-tick joint velocity command.
package ik

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/gwillem/pickplace/pkg/arm"
)

// ErrUnreachable is reported when a target lies outside the annulus the arm
// can reach. The solver still returns the nearest pose it can compute.
var ErrUnreachable = errors.New("target out of reach")

// Solution holds the joint angles that place the effector on a target.
type Solution struct {
	Theta1 float64
	Theta2 float64

	// Reachable is false when the target is outside the reach annulus and the
	// angles were computed from clamped cosines.
	Reachable bool
}

// Solver computes joint angles for a fixed arm geometry. It holds no state
// beyond the geometry and is safe for concurrent use.
type Solver struct {
	base   r2.Point
	l1, l2 float64
}

// New creates a solver for the geometry in cfg.
func New(cfg arm.Config) *Solver {
	return &Solver{base: cfg.Base, l1: cfg.L1, l2: cfg.L2}
}

// Solve computes the joint angles that put the effector on target.
//
// The elbow branch follows the sign of the horizontal offset from the base:
// targets to the right get a positive theta2, targets to the left a negative
// one. A target directly above or below the base (dx == 0) has sign 0, which
// collapses theta2 to 0 and theta1 to the bearing of the target; the arm is
// then fully stretched toward it whatever the distance.
func (s *Solver) Solve(target r2.Point) Solution {
	d := target.Sub(s.base)
	l := d.Norm()
	l1, l2 := s.l1, s.l2

	inner, outer := math.Abs(l1-l2), l1+l2
	reachable := l > 0 && l <= outer && l >= inner

	sign := sgn(d.X)
	cos2 := (d.X*d.X + d.Y*d.Y - l1*l1 - l2*l2) / (2 * l1 * l2)
	theta2 := sign * math.Acos(clamp(cos2))

	var theta1 float64
	if l > 0 {
		cosA := (l1*l1 + l*l - l2*l2) / (2 * l * l1)
		theta1 = math.Atan2(d.Y, d.X) - sign*math.Acos(clamp(cosA))
	}

	return Solution{Theta1: theta1, Theta2: theta2, Reachable: reachable}
}

// Velocity returns the command that moves the arm from its current state
// toward the pose reaching target along the shortest rotation of each joint.
// The command is the full angular error; the arm limits it to its maximum speed.
func (s *Solver) Velocity(target r2.Point, state arm.State) (arm.Velocity, Solution) {
	sol := s.Solve(target)
	return arm.Velocity{
		W1: arm.WrapDelta(sol.Theta1 - state.Theta1),
		W2: arm.WrapDelta(sol.Theta2 - state.Theta2),
	}, sol
}

// CheckReach returns an error wrapping ErrUnreachable if target cannot be
// reached exactly.
func (s *Solver) CheckReach(target r2.Point) error {
	if sol := s.Solve(target); !sol.Reachable {
		l := target.Sub(s.base).Norm()
		return errors.Wrapf(ErrUnreachable, "point (%.1f, %.1f) is %.1f from base, reach is [%.1f, %.1f]",
			target.X, target.Y, l, math.Abs(s.l1-s.l2), s.l1+s.l2)
	}
	return nil
}

func sgn(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func clamp(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}
