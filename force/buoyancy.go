package force

import (
	"github.com/akmonengine/impulse/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// ParticleBuoyancy models a liquid plane parallel to the ground at
// WaterHeight. MaxDepth is the submersion depth at which the particle
// counts as fully under; between surfaced and fully under the force
// interpolates linearly with depth.
type ParticleBuoyancy struct {
	// MaxDepth is half the height of the particle's buoyant extent.
	MaxDepth float64
	// Volume of the particle's buoyant extent.
	Volume float64
	// WaterHeight is the y coordinate of the liquid plane.
	WaterHeight float64
	// LiquidDensity, e.g. 1000 kg/m^3 for water.
	LiquidDensity float64
}

func (b *ParticleBuoyancy) UpdateForce(particle *actor.Particle, duration float64) {
	depth := particle.Position.Y()

	// Fully out of the liquid.
	if depth >= b.WaterHeight+b.MaxDepth {
		return
	}

	maxForce := b.LiquidDensity * b.Volume

	// Fully submerged.
	if depth <= b.WaterHeight-b.MaxDepth {
		particle.AddForce(mgl64.Vec3{0, maxForce, 0})
		return
	}

	// Partially submerged: fraction runs 0 at the surface line to 1 at
	// full submersion.
	fraction := (b.WaterHeight + b.MaxDepth - depth) / (2 * b.MaxDepth)
	particle.AddForce(mgl64.Vec3{0, maxForce * fraction, 0})
}
