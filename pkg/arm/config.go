package arm

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// ErrConfig is returned when an arm configuration is invalid.
var ErrConfig = errors.New("invalid arm configuration")

// Config holds the immutable geometry and limits of a two-link arm.
type Config struct {
	Base   r2.Point `json:"base"`
	L1     float64  `json:"l1"`
	L2     float64  `json:"l2"`
	Theta1 float64  `json:"theta1"` // initial angle of link 1, measured from the base
	Theta2 float64  `json:"theta2"` // initial angle of link 2, relative to link 1

	MaxSpeed     float64 `json:"max_speed"`     // radians per tick, shared by both joints
	PickDistance float64 `json:"pick_distance"` // extra reach allowed when gripping
	JointSize    float64 `json:"joint_size"`    // joint radius
}

// DefaultConfig returns the demo arm configuration.
func DefaultConfig() Config {
	return Config{
		Base:         r2.Point{X: 100, Y: 400},
		L1:           300,
		L2:           270,
		Theta1:       4.5,
		Theta2:       2.8,
		MaxSpeed:     0.02,
		PickDistance: 1,
		JointSize:    10,
	}
}

// Validate reports an error wrapping ErrConfig if any limit is out of range.
func (c Config) Validate() error {
	if c.PickDistance <= 0 {
		return errors.Wrapf(ErrConfig, "pick distance must be positive, got %v", c.PickDistance)
	}
	if c.MaxSpeed <= 0 {
		return errors.Wrapf(ErrConfig, "maximum speed must be positive, got %v", c.MaxSpeed)
	}
	if c.L1 <= 0 || c.L2 <= 0 {
		return errors.Wrapf(ErrConfig, "link lengths must be positive, got %v and %v", c.L1, c.L2)
	}
	if c.JointSize < 0 {
		return errors.Wrapf(ErrConfig, "joint size must not be negative, got %v", c.JointSize)
	}
	return nil
}

// Reach returns the inner and outer radius of the annulus the effector can reach.
func (c Config) Reach() (inner, outer float64) {
	inner = c.L1 - c.L2
	if inner < 0 {
		inner = -inner
	}
	return inner, c.L1 + c.L2
}
