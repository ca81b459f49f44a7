// Package snake implements the snake simulation: a body that moves one
// cell per tick, grows when its head reaches the food, and food that
// respawns at a random cell once eaten.
//
// The package has no I/O. Hosts drive it with three calls: Update once per
// fixed-rate tick, Pressed for every input event, Render for every frame.
// All three are synchronous and must be serialized by the host; input that
// arrives between two ticks is applied before the next Update.
package snake

import (
	"errors"
	"image/color"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// StepResult is returned by Update after each simulation tick.
type StepResult struct {
	Tick uint64 // Ticks completed, including this one
	Ate  bool   // Whether the snake reached the food this tick
}

// Game owns one snake, one food and the random source food respawns from.
type Game struct {
	snake      *Snake
	food       *Food
	rng        RandomSource
	spawn      config.SpawnRange
	cellSize   float64
	background color.RGBA
	tick       uint64
}

// New builds a game from a validated configuration.
func New(cfg config.Config, rng RandomSource) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, errors.New("snake: nil random source")
	}
	dir, err := ParseDirection(cfg.Snake.Direction)
	if err != nil {
		return nil, err
	}
	s, err := NewSnake(cfg.Snake.Body, dir, cfg.Snake.Color.RGBA)
	if err != nil {
		return nil, err
	}
	return &Game{
		snake:      s,
		food:       NewFood(cfg.Food.Position, cfg.Food.Color.RGBA),
		rng:        rng,
		spawn:      cfg.Spawn,
		cellSize:   cfg.CellSize,
		background: cfg.Background.RGBA,
	}, nil
}

// Update advances the simulation by one tick: move, draw a respawn cell,
// and on collision grow and relocate the food there. The draw happens on
// every tick, eaten or not, so the random stream advances at a fixed rate.
func (g *Game) Update() StepResult {
	g.tick++
	g.snake.MoveForward()

	x := g.rng.IntRange(g.spawn.Min, g.spawn.Max)
	y := g.rng.IntRange(g.spawn.Min, g.spawn.Max)

	ate := g.snake.CollidesWith(g.food)
	if ate {
		g.snake.Grow()
		g.food.Relocate(x, y)
	}
	return StepResult{Tick: g.tick, Ate: ate}
}

// Pressed handles one input event. Movement buttons change the direction
// used by the next Update unless they would reverse the snake; every other
// button is ignored.
func (g *Game) Pressed(b core.Button) {
	d, ok := DirectionFor(b)
	if !ok {
		return
	}
	if IsOpposite(d, g.snake.Direction()) {
		return
	}
	g.snake.SetDirection(d)
}

// Render clears the frame and draws the snake, then the food.
func (g *Game) Render(c core.Canvas) {
	c.Clear(g.background)
	g.snake.Render(c, g.cellSize)
	g.food.Render(c, g.cellSize)
}

// Snake returns the game's snake.
func (g *Game) Snake() *Snake {
	return g.snake
}

// Food returns the game's food.
func (g *Game) Food() *Food {
	return g.food
}

// Tick returns the number of completed updates.
func (g *Game) Tick() uint64 {
	return g.tick
}
