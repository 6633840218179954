package ik

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gwillem/pickplace/pkg/arm"
)

func newTestArm(t *testing.T) *arm.Arm {
	t.Helper()
	a, err := arm.New(arm.DefaultConfig())
	require.NoError(t, err)
	return a
}

func TestSolver_RoundTrip(t *testing.T) {
	a := newTestArm(t)
	s := New(a.Config())

	checked := 0
	for theta1 := 0.0; theta1 < 2*math.Pi; theta1 += 0.37 {
		for theta2 := 0.1; theta2 < 2*math.Pi-0.1; theta2 += 0.29 {
			// Stay clear of the singular straight and folded poses.
			if math.Abs(theta2-math.Pi) < 0.1 {
				continue
			}
			_, eff := a.ForwardKinematics(theta1, theta2)
			dx := eff.X - a.Config().Base.X
			if math.Abs(dx) < 1e-6 {
				continue
			}
			// The solver picks the elbow branch from the sign of dx.
			if (dx > 0) != (theta2 < math.Pi) {
				continue
			}

			sol := s.Solve(eff)
			require.True(t, sol.Reachable, "theta (%v, %v)", theta1, theta2)
			assert.InDelta(t, 0, arm.WrapDelta(sol.Theta1-theta1), 1e-6, "theta1 for (%v, %v)", theta1, theta2)
			assert.InDelta(t, 0, arm.WrapDelta(sol.Theta2-theta2), 1e-6, "theta2 for (%v, %v)", theta1, theta2)

			_, back := a.ForwardKinematics(sol.Theta1, sol.Theta2)
			assert.InDelta(t, eff.X, back.X, 1e-6)
			assert.InDelta(t, eff.Y, back.Y, 1e-6)
			checked++
		}
	}
	assert.Greater(t, checked, 50)
}

func TestSolver_LeftOfBase(t *testing.T) {
	cfg := arm.DefaultConfig()
	cfg.L1, cfg.L2 = 1, 1
	cfg.Base = r2.Point{}
	s := New(cfg)

	sol := s.Solve(r2.Point{X: -1, Y: 1})
	require.True(t, sol.Reachable)
	assert.InDelta(t, math.Pi, sol.Theta1, 1e-9)
	assert.InDelta(t, -math.Pi/2, sol.Theta2, 1e-9)
}

func TestSolver_ZeroHorizontalOffset(t *testing.T) {
	a := newTestArm(t)
	s := New(a.Config())

	// dx == 0 collapses the elbow branch to a straight arm.
	sol := s.Solve(r2.Point{X: 100, Y: 100})
	assert.True(t, sol.Reachable)
	assert.Equal(t, 0.0, sol.Theta2)
	assert.InDelta(t, -math.Pi/2, sol.Theta1, 1e-12)
}

func TestSolver_Unreachable(t *testing.T) {
	a := newTestArm(t)
	s := New(a.Config())

	tests := []struct {
		name   string
		target r2.Point
	}{
		{"beyond outer reach", r2.Point{X: 1000, Y: 400}},
		{"inside inner reach", r2.Point{X: 110, Y: 400}},
		{"on the base", r2.Point{X: 100, Y: 400}},
		{"far left", r2.Point{X: -900, Y: -300}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sol := s.Solve(tt.target)
			assert.False(t, sol.Reachable)
			assert.False(t, math.IsNaN(sol.Theta1))
			assert.False(t, math.IsNaN(sol.Theta2))
			assert.ErrorIs(t, s.CheckReach(tt.target), ErrUnreachable)

			v, _ := s.Velocity(tt.target, a.State())
			assert.False(t, math.IsNaN(v.W1))
			assert.False(t, math.IsNaN(v.W2))
		})
	}
}

func TestSolver_UnreachableStretchesTowardTarget(t *testing.T) {
	a := newTestArm(t)
	s := New(a.Config())

	sol := s.Solve(r2.Point{X: 1000, Y: 400})
	assert.InDelta(t, 0, sol.Theta1, 1e-12)
	assert.InDelta(t, 0, sol.Theta2, 1e-12)
}

func TestSolver_CheckReach(t *testing.T) {
	s := New(arm.DefaultConfig())
	assert.NoError(t, s.CheckReach(r2.Point{X: 350, Y: 390}))
}

func TestSolver_VelocityZeroAtTarget(t *testing.T) {
	a := newTestArm(t)
	s := New(a.Config())

	v, sol := s.Velocity(a.Effector(), a.State())
	assert.True(t, sol.Reachable)
	assert.InDelta(t, 0, v.W1, 1e-9)
	assert.InDelta(t, 0, v.W2, 1e-9)
}

func TestSolver_VelocityConverges(t *testing.T) {
	a := newTestArm(t)
	s := New(a.Config())
	target := r2.Point{X: 350, Y: 390}

	for i := 0; i < 1000; i++ {
		v, _ := s.Velocity(target, a.State())
		a.ApplyVelocity(v)
	}
	eff := a.Effector()
	assert.InDelta(t, target.X, eff.X, 1e-6)
	assert.InDelta(t, target.Y, eff.Y, 1e-6)
}

func TestSolver_VelocityTakesShortestPath(t *testing.T) {
	a := newTestArm(t)
	s := New(a.Config())

	v, _ := s.Velocity(r2.Point{X: 500, Y: 200}, a.State())
	assert.LessOrEqual(t, math.Abs(v.W1), math.Pi)
	assert.LessOrEqual(t, math.Abs(v.W2), math.Pi)
}
