// Package scene builds the initial falling-balls scene: an open box of five planes,
// a static obstacle ball and a stack of dynamic balls
package scene

import (
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/lixenwraith/ballfall/component"
	"github.com/lixenwraith/ballfall/engine"
	"github.com/lixenwraith/ballfall/parameter"
	"github.com/lixenwraith/ballfall/physics"
	"github.com/lixenwraith/ballfall/vmath"
)

// Glyphs and colors of scene entities
const (
	BallGlyph     = 'o'
	ObstacleGlyph = '@'

	BallColor     uint32 = 0x4FC3F7
	ObstacleColor uint32 = 0xFFB74D
)

// Config describes the scene layout
type Config struct {
	Balls   int
	Seed    uint64
	Jitter  float64 // Lateral offset bound of each ball
	Spacing float64 // Vertical gap between stacked balls

	// HalfExtent places the four walls and the floor around the origin
	HalfExtent float64
	Gravity    vmath.Vec3F

	Restitution float64
	Friction    float64
	BallRadius  float64
	BallMass    float64

	ObstacleRadius   float64
	ObstaclePosition vmath.Vec3F
}

// DefaultConfig returns the stock scene
func DefaultConfig() Config {
	return Config{
		Balls:            parameter.BallCount,
		Seed:             parameter.SceneSeed,
		Jitter:           parameter.BallJitter,
		Spacing:          parameter.BallSpacing,
		HalfExtent:       parameter.BoxHalfExtent,
		Gravity:          vmath.Vec3F{Z: parameter.GravityZ},
		Restitution:      parameter.Restitution,
		Friction:         parameter.Friction,
		BallRadius:       parameter.BallRadius,
		BallMass:         parameter.BallMass,
		ObstacleRadius:   parameter.ObstacleRadius,
		ObstaclePosition: vmath.Vec3F{X: parameter.ObstacleX, Z: parameter.ObstacleZ},
	}
}

// Walls returns the five static planes of the open box: floor, then the four sides
// Each normal points into the box and each plane passes through its offset point
func (c Config) Walls() []physics.BodyDesc {
	h := c.HalfExtent
	planes := []struct {
		normal, point vmath.Vec3F
	}{
		{vmath.Vec3F{Z: 1}, vmath.Vec3F{Z: -h}},
		{vmath.Vec3F{X: 1}, vmath.Vec3F{X: -h}},
		{vmath.Vec3F{X: -1}, vmath.Vec3F{X: h}},
		{vmath.Vec3F{Y: 1}, vmath.Vec3F{Y: -h}},
		{vmath.Vec3F{Y: -1}, vmath.Vec3F{Y: h}},
	}

	descs := make([]physics.BodyDesc, 0, len(planes))
	for _, p := range planes {
		descs = append(descs, physics.NewStatic(physics.Plane(p.normal), c.Restitution, c.Friction).Translated(p.point))
	}
	return descs
}

// Obstacle returns the static ball the stack falls onto
func (c Config) Obstacle() physics.BodyDesc {
	return physics.NewStatic(physics.Ball(c.ObstacleRadius), c.Restitution, c.Friction).Translated(c.ObstaclePosition)
}

// BallDescs returns the dynamic balls stacked along Z with seeded lateral jitter
// Identical configs produce identical descriptors
func (c Config) BallDescs() []physics.BodyDesc {
	rng := rand.New(rand.NewPCG(c.Seed, c.Seed^0x9e3779b97f4a7c15))
	proto := physics.NewDynamic(physics.Ball(c.BallRadius), c.BallMass, c.Restitution, c.Friction)

	descs := make([]physics.BodyDesc, 0, c.Balls)
	for i := range c.Balls {
		offset := vmath.Vec3F{
			X: (rng.Float64()*2 - 1) * c.Jitter,
			Y: (rng.Float64()*2 - 1) * c.Jitter,
			Z: float64(i) * c.Spacing,
		}
		descs = append(descs, proto.Translated(offset))
	}
	return descs
}

// Build populates world with the scene and returns the physics world it registered
// Every descriptor is validated first; on failure no entity or body is created
func Build(world *engine.World, cfg Config) (*physics.World, error) {
	if n := world.Components.PhysicsWorld.Count(); n > 0 {
		return nil, fmt.Errorf("%w: scene already built", engine.ErrDuplicateResource)
	}
	if cfg.Balls < 0 {
		return nil, fmt.Errorf("%w: negative ball count %d", physics.ErrInvalidBody, cfg.Balls)
	}
	if !vmath.V3FIsFinite(cfg.Gravity) {
		return nil, fmt.Errorf("%w: non-finite gravity %+v", physics.ErrInvalidBody, cfg.Gravity)
	}

	walls := cfg.Walls()
	obstacle := cfg.Obstacle()
	balls := cfg.BallDescs()
	for i, d := range walls {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("wall %d: %w", i, err)
		}
	}
	if err := obstacle.Validate(); err != nil {
		return nil, fmt.Errorf("obstacle: %w", err)
	}
	for i, d := range balls {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("ball %d: %w", i, err)
		}
	}

	pw := physics.NewWorld(cfg.Gravity)
	for _, d := range walls {
		if _, err := pw.AddBody(d); err != nil {
			return nil, err
		}
	}

	if err := spawnBall(world, pw, obstacle, ObstacleGlyph, ObstacleColor); err != nil {
		return nil, err
	}
	for _, d := range balls {
		if err := spawnBall(world, pw, d, BallGlyph, BallColor); err != nil {
			return nil, err
		}
	}

	engine.With(world.NewEntity(), world.Components.PhysicsWorld, component.PhysicsWorldComponent{World: pw}).Build()

	log.Printf("scene: %d bodies (%d balls), seed %d", pw.BodyCount(), len(balls), cfg.Seed)
	return pw, nil
}

// spawnBall registers d and creates its entity with transform, body reference and glyph
func spawnBall(world *engine.World, pw *physics.World, d physics.BodyDesc, glyph rune, color uint32) error {
	h, err := pw.AddBody(d)
	if err != nil {
		return err
	}
	eb := world.NewEntity()
	engine.With(eb, world.Components.LocalTransform, component.NewLocalTransform(d.Translation))
	engine.With(eb, world.Components.RigidBody, component.RigidBodyComponent{Handle: h})
	engine.With(eb, world.Components.Renderable, component.RenderableComponent{Glyph: glyph, Color: color})
	eb.Build()
	return nil
}
