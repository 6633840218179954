// Package arm models a two-link planar manipulator: its geometry, joint angles,
// forward kinematics and the rate-limited joint update applied every tick.
package arm

import (
	"math"

	"github.com/golang/geo/r2"
)

// Velocity is an angular speed command for both joints, in radians per tick.
type Velocity struct {
	W1 float64
	W2 float64
}

// Max returns the larger absolute component.
func (v Velocity) Max() float64 {
	return math.Max(math.Abs(v.W1), math.Abs(v.W2))
}

// Limit scales both components by the same factor so that neither exceeds limit.
func (v Velocity) Limit(limit float64) Velocity {
	m := v.Max()
	if m <= limit {
		return v
	}
	div := m / limit
	return Velocity{W1: v.W1 / div, W2: v.W2 / div}
}

// State is a snapshot of the arm.
type State struct {
	Theta1   float64
	Theta2   float64
	Joint1   r2.Point
	Effector r2.Point
	Held     string // name of the held item, empty when nothing is held
}

// Holding reports whether an item is held.
func (s State) Holding() bool {
	return s.Held != ""
}

// Arm is the kinematic model of the manipulator. It is the only writer of
// its joint angles and grip state.
type Arm struct {
	cfg    Config
	theta1 float64
	theta2 float64
	joint1 r2.Point
	joint2 r2.Point
	held   string
}

// New validates cfg and creates an arm at the configured initial angles.
func New(cfg Config) (*Arm, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &Arm{
		cfg:    cfg,
		theta1: NormalizeTheta1(cfg.Theta1),
		theta2: NormalizeTheta2(cfg.Theta2),
	}
	a.computeJoints()
	return a, nil
}

// Config returns the configuration the arm was built with.
func (a *Arm) Config() Config {
	return a.cfg
}

// Angles returns the current joint angles.
func (a *Arm) Angles() (theta1, theta2 float64) {
	return a.theta1, a.theta2
}

// Joints returns the positions of the elbow and the effector.
func (a *Arm) Joints() (joint1, joint2 r2.Point) {
	return a.joint1, a.joint2
}

// Effector returns the position of the picking joint.
func (a *Arm) Effector() r2.Point {
	return a.joint2
}

// State returns a snapshot of the arm.
func (a *Arm) State() State {
	return State{
		Theta1:   a.theta1,
		Theta2:   a.theta2,
		Joint1:   a.joint1,
		Effector: a.joint2,
		Held:     a.held,
	}
}

// ForwardKinematics computes the elbow and effector positions for the given
// angles using this arm's geometry.
func (a *Arm) ForwardKinematics(theta1, theta2 float64) (joint1, joint2 r2.Point) {
	joint1 = a.cfg.Base.Add(polar(a.cfg.L1, theta1))
	joint2 = joint1.Add(polar(a.cfg.L2, theta1+theta2))
	return joint1, joint2
}

func (a *Arm) computeJoints() {
	a.joint1, a.joint2 = a.ForwardKinematics(a.theta1, a.theta2)
}

// ApplyVelocity advances the joints by one tick. The command is scaled down,
// keeping its direction, when either component exceeds the maximum speed.
// It returns the velocity actually applied.
func (a *Arm) ApplyVelocity(v Velocity) Velocity {
	v = v.Limit(a.cfg.MaxSpeed)
	a.theta1 = NormalizeTheta1(a.theta1 + v.W1)
	a.theta2 = NormalizeTheta2(a.theta2 + v.W2)
	a.computeJoints()
	return v
}

// GripRadius is the largest effector-to-grip-point distance at which a grip succeeds.
func (a *Arm) GripRadius() float64 {
	return a.cfg.JointSize + a.cfg.PickDistance
}

// TryGrip holds the named item if the effector is within GripRadius of
// gripPoint. It never replaces an item that is already held.
func (a *Arm) TryGrip(name string, gripPoint r2.Point) bool {
	if a.held != "" || name == "" {
		return false
	}
	if a.joint2.Sub(gripPoint).Norm() > a.GripRadius() {
		return false
	}
	a.held = name
	return true
}

// Holding reports whether an item is held.
func (a *Arm) Holding() bool {
	return a.held != ""
}

// Release drops the held item and returns its name. ok is false if nothing
// was held.
func (a *Arm) Release() (name string, ok bool) {
	name, a.held = a.held, ""
	return name, name != ""
}

func polar(r, angle float64) r2.Point {
	return r2.Point{X: r * math.Cos(angle), Y: r * math.Sin(angle)}
}
