// Package force provides the pluggable force models applied to
// particles and rigid bodies between integration steps, and the
// registries that drive them.
//
// Generators compute their contribution from the target's current
// state only and mutate nothing but the target's force accumulator.
package force

import (
	"github.com/akmonengine/impulse/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// ParticleForceGenerator adds a force to a particle for the current
// step. duration is the step length in seconds.
type ParticleForceGenerator interface {
	UpdateForce(particle *actor.Particle, duration float64)
}

// ParticleGravity applies a constant acceleration scaled by the
// particle's mass. One instance serves any number of particles.
type ParticleGravity struct {
	Gravity mgl64.Vec3
}

func (g *ParticleGravity) UpdateForce(particle *actor.Particle, duration float64) {
	if !particle.HasFiniteMass() {
		return
	}

	particle.AddForce(g.Gravity.Mul(particle.Mass()))
}

// ParticleDrag opposes the velocity direction with magnitude
// K1*|v| + K2*|v|^2.
type ParticleDrag struct {
	K1 float64
	K2 float64
}

func (d *ParticleDrag) UpdateForce(particle *actor.Particle, duration float64) {
	speed := particle.Velocity.Len()
	if speed == 0 {
		return
	}

	coefficient := d.K1*speed + d.K2*speed*speed
	particle.AddForce(particle.Velocity.Mul(-coefficient / speed))
}
