// Package pickplace simulates a two-link planar arm that picks items up one
// at a time and places each on its destination.
//
// # Installation
//
//	go install github.com/gwillem/pickplace/cmd/pickplace@latest
//
// # Usage
//
// Optionally write a scene file with your arm geometry:
//
//	pickplace setup
//
// Then run the demo, watching it live or recording frames:
//
//	pickplace run --tui
//	pickplace run --seed 7 --frames out --every 5 --plot trace.png
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/pickplace: CLI with setup and run commands
//   - pkg/arm: Arm state, forward kinematics, and configuration
//   - pkg/ik: Closed-form inverse kinematics and velocity commands
//   - pkg/picker: Pick-and-place controller
//   - pkg/scene: Scene files and random item layout
//   - pkg/render: PNG frames, live streaming, and trajectory plots
package pickplace
