// Package scene loads and saves the description of a pick-and-place run: the
// arm, the items with their display colors and the frame geometry.
package scene

import (
	"encoding/json"
	"os"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/gwillem/pickplace/pkg/arm"
	"github.com/gwillem/pickplace/pkg/picker"
	"github.com/gwillem/pickplace/pkg/render"
)

const DefaultConfigFile = "pickplace.json"

// ItemConfig describes one item. A nil Position is filled in by Layout.
type ItemConfig struct {
	Name     string    `json:"name"`
	Size     float64   `json:"size"`
	Position *r2.Point `json:"position,omitempty"`
	Place    r2.Point  `json:"place"`
	Color    string    `json:"color,omitempty"`
}

// Config holds the scene configuration
type Config struct {
	Arm   arm.Config   `json:"arm"`
	Items []ItemConfig `json:"items"`

	Width      int     `json:"width"`
	Height     int     `json:"height"`
	EarthLevel float64 `json:"earth_level"`
	Gap        float64 `json:"gap"`

	// Horizontal range random layouts are drawn from.
	LayoutMin float64 `json:"layout_min"`
	LayoutMax float64 `json:"layout_max"`
}

// DefaultConfig returns the demo scene: three items waiting for a layout.
func DefaultConfig() Config {
	return Config{
		Arm: arm.DefaultConfig(),
		Items: []ItemConfig{
			{Name: "red", Size: 30, Place: r2.Point{X: 210, Y: 430}, Color: "#d72323"},
			{Name: "green", Size: 40, Place: r2.Point{X: 250, Y: 430}, Color: "#009632"},
			{Name: "yellow", Size: 50, Place: r2.Point{X: 300, Y: 430}, Color: "#e6dc19"},
		},
		Width:      640,
		Height:     480,
		EarthLevel: 430,
		Gap:        picker.DefaultGap,
		LayoutMin:  350,
		LayoutMax:  640,
	}
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Width <= 0 {
		c.Width = def.Width
	}
	if c.Height <= 0 {
		c.Height = def.Height
	}
	if c.EarthLevel == 0 {
		c.EarthLevel = def.EarthLevel
	}
	if c.Gap <= 0 {
		c.Gap = def.Gap
	}
	if c.LayoutMax <= c.LayoutMin {
		c.LayoutMin, c.LayoutMax = def.LayoutMin, def.LayoutMax
	}
}

// Validate checks the arm configuration and the items.
func (c *Config) Validate() error {
	if err := c.Arm.Validate(); err != nil {
		return err
	}
	if len(c.Items) == 0 {
		return picker.ErrNoItems
	}
	seen := make(map[string]bool, len(c.Items))
	for i, it := range c.Items {
		if it.Name == "" {
			return errors.Wrapf(picker.ErrInvalidItem, "item %d has no name", i)
		}
		if it.Size <= 0 {
			return errors.Wrapf(picker.ErrInvalidItem, "item %q has size %v", it.Name, it.Size)
		}
		if seen[it.Name] {
			return errors.Wrapf(picker.ErrDuplicateItem, "%q", it.Name)
		}
		seen[it.Name] = true
	}
	return nil
}

// NeedsLayout returns true if any item has no position yet
func (c *Config) NeedsLayout() bool {
	for _, it := range c.Items {
		if it.Position == nil {
			return true
		}
	}
	return false
}

// Items returns the physical items in processing order.
func (c *Config) Items() ([]picker.Item, error) {
	items := make([]picker.Item, 0, len(c.Items))
	for _, it := range c.Items {
		if it.Position == nil {
			return nil, errors.Wrapf(picker.ErrInvalidItem, "item %q has no position", it.Name)
		}
		items = append(items, picker.Item{
			Name:     it.Name,
			Size:     it.Size,
			Position: *it.Position,
			Place:    it.Place,
		})
	}
	return items, nil
}

// Palette returns the display colors of the items, keyed by name.
func (c *Config) Palette() render.Palette {
	p := make(render.Palette, len(c.Items))
	for _, it := range c.Items {
		p[it.Name] = it.Color
	}
	return p
}

// Scene returns the display geometry for the renderers.
func (c *Config) Scene() render.Scene {
	return render.Scene{
		Width:      c.Width,
		Height:     c.Height,
		EarthLevel: c.EarthLevel,
		Gap:        c.Gap,
		Base:       c.Arm.Base,
		Palette:    c.Palette(),
	}
}

// LoadConfig loads configuration from the default config file
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(DefaultConfigFile)
}

// LoadConfigFrom loads configuration from a specific file
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read scene config")
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Save saves configuration to the default config file
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigFile)
}

// SaveTo saves configuration to a specific file
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ConfigExists returns true if the config file exists
func ConfigExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
