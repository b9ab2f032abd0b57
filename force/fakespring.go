package force

import (
	"math"

	"github.com/akmonengine/impulse/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// ParticleFakeSpring fakes a stiff anchored spring with damping by
// predicting where a damped harmonic oscillator would land after the
// step and applying the force that gets the particle there. Stays
// stable at spring constants an explicit integrator cannot handle.
type ParticleFakeSpring struct {
	Anchor         mgl64.Vec3
	SpringConstant float64
	// Damping of the oscillation, not the particle's own damping.
	Damping float64
}

func (s *ParticleFakeSpring) UpdateForce(particle *actor.Particle, duration float64) {
	if !particle.HasFiniteMass() {
		return
	}

	// Overdamped configurations have no oscillation to track; skip the
	// step rather than normalize garbage.
	discriminant := 4*s.SpringConstant - s.Damping*s.Damping
	if discriminant <= 0 {
		return
	}
	gamma := 0.5 * math.Sqrt(discriminant)

	relative := particle.Position.Sub(s.Anchor)
	c := relative.Mul(s.Damping / (2 * gamma)).Add(particle.Velocity.Mul(1 / gamma))

	target := relative.Mul(math.Cos(gamma * duration)).Add(c.Mul(math.Sin(gamma * duration)))
	target = target.Mul(math.Exp(-0.5 * duration * s.Damping))

	// Finite-difference acceleration between current and predicted
	// position, with the velocity share removed.
	acceleration := target.Sub(relative).Mul(1 / (duration * duration)).
		Sub(particle.Velocity.Mul(1 / duration))

	particle.AddForce(acceleration.Mul(particle.Mass()))
}
