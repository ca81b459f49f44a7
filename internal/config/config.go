// Package config provides YAML-based configuration of the snake simulation
// and the hosts that run it.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config contains all configuration for a snake session.
type Config struct {
	TickRate   int          `yaml:"tick_rate"` // Updates per second
	CellSize   float64      `yaml:"cell_size"` // Pixels per grid cell
	Background Color        `yaml:"background"`
	Snake      SnakeConfig  `yaml:"snake"`
	Food       FoodConfig   `yaml:"food"`
	Spawn      SpawnRange   `yaml:"spawn"`
	Window     WindowConfig `yaml:"window"`
}

// SnakeConfig defines the initial snake.
type SnakeConfig struct {
	Body      []core.Cell `yaml:"body"`      // Head first
	Direction string      `yaml:"direction"` // left, right, up or down
	Color     Color       `yaml:"color"`
}

// FoodConfig defines the initial food.
type FoodConfig struct {
	Position core.Cell `yaml:"position"`
	Color    Color     `yaml:"color"`
}

// SpawnRange is the closed-open range [Min, Max) food coordinates are
// drawn from, independently per axis.
type SpawnRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// WindowConfig defines the desktop window host.
type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	ExitOnEsc bool   `yaml:"exit_on_esc"`
}

// Color is an RGBA color written as a hex string in YAML ("#ff0000").
type Color struct {
	color.RGBA
}

// NewColor wraps an RGBA value.
func NewColor(c color.RGBA) Color {
	return Color{RGBA: c}
}

// UnmarshalYAML parses "#rgb" or "#rrggbb".
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("%w: color must be a string: %w", ErrInvalid, err)
	}
	parsed, err := colorful.Hex(s)
	if err != nil {
		return fmt.Errorf("%w: color %q: %w", ErrInvalid, s, err)
	}
	r, g, b := parsed.RGB255()
	c.RGBA = color.RGBA{R: r, G: g, B: b, A: 0xff}
	return nil
}

// MarshalYAML writes the color as "#rrggbb".
func (c Color) MarshalYAML() (any, error) {
	return core.Hex(c.RGBA), nil
}

// Validate checks the invariants the simulation relies on.
func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate must be positive, got %d", ErrInvalid, c.TickRate)
	}
	if c.CellSize <= 0 {
		return fmt.Errorf("%w: cell_size must be positive, got %g", ErrInvalid, c.CellSize)
	}
	if len(c.Snake.Body) == 0 {
		return fmt.Errorf("%w: snake.body must contain at least one cell", ErrInvalid)
	}
	if c.Spawn.Max <= c.Spawn.Min {
		return fmt.Errorf("%w: spawn range [%d, %d) is empty", ErrInvalid, c.Spawn.Min, c.Spawn.Max)
	}
	switch NormalizeDirection(c.Snake.Direction) {
	case "left", "right", "up", "down":
	default:
		return fmt.Errorf("%w: snake.direction %q", ErrInvalid, c.Snake.Direction)
	}
	return nil
}

// NormalizeDirection lower-cases and trims a direction name.
func NormalizeDirection(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
