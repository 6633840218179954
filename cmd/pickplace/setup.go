package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/gwillem/pickplace/pkg/scene"
)

var subHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))

type SetupCommand struct {
	Config string `long:"config" short:"c" default:"pickplace.json" description:"Scene file to write"`
}

// floatField binds a huh input to a float value through its text form.
type floatField struct {
	title string
	text  string
	dst   *float64
	check func(float64) error
}

func newFloatField(title string, dst *float64, check func(float64) error) *floatField {
	return &floatField{title: title, text: strconv.FormatFloat(*dst, 'g', -1, 64), dst: dst, check: check}
}

func anyValue(float64) error { return nil }

func positive(v float64) error {
	if v <= 0 {
		return errors.New("must be positive")
	}
	return nil
}

func nonNegative(v float64) error {
	if v < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func (f *floatField) validate(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.New("not a number")
	}
	return f.check(v)
}

func (f *floatField) input() *huh.Input {
	return huh.NewInput().Title(f.title).Value(&f.text).Validate(f.validate)
}

func (f *floatField) apply() error {
	v, err := strconv.ParseFloat(f.text, 64)
	if err != nil {
		return errors.Wrapf(err, "%s", f.title)
	}
	*f.dst = v
	return nil
}

func (c *SetupCommand) Execute(args []string) error {
	fmt.Println(headerStyle.Render("pickplace setup"))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━━"))
	fmt.Println()

	cfg := scene.DefaultConfig()
	if scene.ConfigExists(c.Config) {
		loaded, err := scene.LoadConfigFrom(c.Config)
		if err != nil {
			return err
		}
		cfg = *loaded
		fmt.Printf("Editing %s\n\n", c.Config)
	}

	a := &cfg.Arm
	geometry := []*floatField{
		newFloatField("Base x", &a.Base.X, anyValue),
		newFloatField("Base y", &a.Base.Y, anyValue),
		newFloatField("Upper link length", &a.L1, positive),
		newFloatField("Forearm length", &a.L2, positive),
	}
	motion := []*floatField{
		newFloatField("Max speed (rad/tick)", &a.MaxSpeed, positive),
		newFloatField("Pick distance", &a.PickDistance, positive),
		newFloatField("Joint size", &a.JointSize, nonNegative),
	}

	var geometryInputs, motionInputs []huh.Field
	for _, f := range geometry {
		geometryInputs = append(geometryInputs, f.input())
	}
	for _, f := range motion {
		motionInputs = append(motionInputs, f.input())
	}

	var keepPositions bool
	form := huh.NewForm(
		huh.NewGroup(geometryInputs...).Title("Arm geometry"),
		huh.NewGroup(motionInputs...).Title("Motion"),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Keep current item positions?").
				Description("No clears them so every run draws a new random layout").
				Value(&keepPositions),
		),
	)
	if err := form.Run(); err != nil {
		fmt.Println()
		os.Exit(0)
	}

	for _, f := range append(geometry, motion...) {
		if err := f.apply(); err != nil {
			return err
		}
	}
	if !keepPositions {
		for i := range cfg.Items {
			cfg.Items[i].Position = nil
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	inner, outer := cfg.Arm.Reach()
	fmt.Println(subHeaderStyle.Render("Reach"))
	fmt.Printf("  %.1f to %.1f from (%.1f, %.1f)\n", inner, outer, cfg.Arm.Base.X, cfg.Arm.Base.Y)

	if err := cfg.SaveTo(c.Config); err != nil {
		return errors.Wrap(err, "save scene")
	}

	fmt.Println()
	fmt.Println(successStyle.Render("Setup complete!"))
	fmt.Printf("Configuration saved to %s\n", c.Config)
	fmt.Println("Start a run with: " + headerStyle.Render("pickplace run --tui"))
	return nil
}
