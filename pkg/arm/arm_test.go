package arm

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func newTestArm(t *testing.T) *Arm {
	t.Helper()
	a, err := New(DefaultConfig())
	require.NoError(t, err)
	return a
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero pick distance", func(c *Config) { c.PickDistance = 0 }},
		{"negative pick distance", func(c *Config) { c.PickDistance = -1 }},
		{"zero max speed", func(c *Config) { c.MaxSpeed = 0 }},
		{"negative max speed", func(c *Config) { c.MaxSpeed = -0.1 }},
		{"zero L1", func(c *Config) { c.L1 = 0 }},
		{"negative L2", func(c *Config) { c.L2 = -5 }},
		{"negative joint size", func(c *Config) { c.JointSize = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			a, err := New(cfg)
			assert.Nil(t, a)
			assert.ErrorIs(t, err, ErrConfig)
		})
	}
}

func TestNew_NormalizesInitialAngles(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Theta1 = 1.0
	cfg.Theta2 = -1.0
	a, err := New(cfg)
	require.NoError(t, err)

	theta1, theta2 := a.Angles()
	assert.InDelta(t, 1.0+2*math.Pi, theta1, eps)
	assert.InDelta(t, 2*math.Pi-1.0, theta2, eps)
}

func TestArm_ForwardKinematics(t *testing.T) {
	a := newTestArm(t)
	joint1, joint2 := a.Joints()

	// Hand-computed from base (100,400), L1 300, L2 270, angles (4.5, 2.8).
	assert.InDelta(t, 100+300*math.Cos(4.5), joint1.X, eps)
	assert.InDelta(t, 400+300*math.Sin(4.5), joint1.Y, eps)
	assert.InDelta(t, joint1.X+270*math.Cos(7.3), joint2.X, eps)
	assert.InDelta(t, joint1.Y+270*math.Sin(7.3), joint2.Y, eps)
}

func TestArm_ForwardKinematicsIdempotent(t *testing.T) {
	a := newTestArm(t)
	a.ApplyVelocity(Velocity{W1: 0.01, W2: -0.015})

	j1a, j2a := a.Joints()
	j1b, j2b := a.Joints()
	assert.Equal(t, j1a, j1b)
	assert.Equal(t, j2a, j2b)

	theta1, theta2 := a.Angles()
	j1c, j2c := a.ForwardKinematics(theta1, theta2)
	assert.Equal(t, j1a, j1c)
	assert.Equal(t, j2a, j2c)
}

func TestArm_ApplyVelocityClamps(t *testing.T) {
	tests := []struct {
		name string
		v    Velocity
	}{
		{"first axis dominant", Velocity{W1: 0.5, W2: 0.1}},
		{"second axis dominant", Velocity{W1: -0.03, W2: 0.9}},
		{"both negative", Velocity{W1: -2, W2: -1}},
		{"equal magnitude", Velocity{W1: 1, W2: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestArm(t)
			before1, before2 := a.Angles()

			applied := a.ApplyVelocity(tt.v)
			assert.InDelta(t, 0.02, applied.Max(), eps)
			assert.InDelta(t, tt.v.W1/tt.v.W2, applied.W1/applied.W2, 1e-9)

			after1, after2 := a.Angles()
			assert.InDelta(t, applied.W1, WrapDelta(after1-before1), eps)
			assert.InDelta(t, applied.W2, WrapDelta(after2-before2), eps)
		})
	}
}

func TestArm_ApplyVelocityBelowLimit(t *testing.T) {
	a := newTestArm(t)
	v := Velocity{W1: 0.01, W2: -0.005}
	assert.Equal(t, v, a.ApplyVelocity(v))
}

func TestArm_ApplyVelocityKeepsAnglesNormalized(t *testing.T) {
	a := newTestArm(t)
	cmds := []Velocity{{1, 1}, {-1, -1}, {0.02, -0.02}, {-0.7, 0.3}}

	// Enough ticks to wrap both joints several times.
	for i := 0; i < 2000; i++ {
		a.ApplyVelocity(cmds[i%len(cmds)])
		theta1, theta2 := a.Angles()
		require.GreaterOrEqual(t, theta1, Theta1Min)
		require.Less(t, theta1, Theta1Min+2*math.Pi)
		require.GreaterOrEqual(t, theta2, Theta2Min)
		require.Less(t, theta2, Theta2Min+2*math.Pi)
	}
}

func TestArm_GripAndRelease(t *testing.T) {
	a := newTestArm(t)
	eff := a.Effector()

	// Too far away.
	far := eff.Add(r2.Point{X: 0, Y: a.GripRadius() + 0.5})
	assert.False(t, a.TryGrip("red", far))
	assert.False(t, a.Holding())

	// Just inside the grip radius.
	edge := eff.Add(r2.Point{X: a.GripRadius() - 1e-6, Y: 0})
	assert.True(t, a.TryGrip("red", edge))
	assert.True(t, a.Holding())
	assert.Equal(t, "red", a.State().Held)

	// A second grip never overrides the first.
	assert.False(t, a.TryGrip("green", eff))
	assert.Equal(t, "red", a.State().Held)

	name, ok := a.Release()
	assert.True(t, ok)
	assert.Equal(t, "red", name)
	assert.False(t, a.Holding())

	name, ok = a.Release()
	assert.False(t, ok)
	assert.Empty(t, name)
}

func TestArm_TryGripRejectsEmptyName(t *testing.T) {
	a := newTestArm(t)
	assert.False(t, a.TryGrip("", a.Effector()))
	assert.False(t, a.State().Holding())
}
