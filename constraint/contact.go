// Package constraint holds the contact representation and the
// iterative resolver that removes interpenetration and exchanges
// impulses between colliding particles. Contact production is the job
// of external collision detectors implementing
// ParticleContactGenerator.
package constraint

import (
	"github.com/akmonengine/impulse/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// ParticleContact represents two particles in contact, or one particle
// against immovable scenery when slot 1 is nil.
//
// Contacts are produced fresh each frame into a caller-owned buffer
// and are read and written only during that frame's resolve call.
type ParticleContact struct {
	Particles [2]*actor.Particle

	// ContactNormal is the world-space unit axis of resolution,
	// pointing away from particle 1 toward particle 0.
	ContactNormal mgl64.Vec3

	// Penetration is positive when the particles overlap, zero when
	// touching. Negative separations are not subject to resolution.
	Penetration float64

	// Restitution in [0,1]: 0 fully inelastic, 1 fully elastic.
	Restitution float64

	// particleMovement records the displacement applied to each slot
	// during interpenetration resolution; the resolver rebroadcasts it
	// to contacts sharing a particle.
	particleMovement [2]mgl64.Vec3
}

// SeparatingVelocity returns the relative velocity along the contact
// normal. Negative means the particles are closing.
func (c *ParticleContact) SeparatingVelocity() float64 {
	relative := c.Particles[0].Velocity
	if c.Particles[1] != nil {
		relative = relative.Sub(c.Particles[1].Velocity)
	}

	return relative.Dot(c.ContactNormal)
}

func (c *ParticleContact) totalInverseMass() float64 {
	total := c.Particles[0].InverseMass()
	if c.Particles[1] != nil {
		total += c.Particles[1].InverseMass()
	}

	return total
}

// Resolve runs the velocity pass then the interpenetration pass. The
// two passes are independent and both mutate the particles
// synchronously.
func (c *ParticleContact) Resolve(duration float64) {
	c.resolveVelocity(duration)
	c.resolveInterpenetration(duration)
}

// resolveVelocity exchanges an impulse along the contact normal,
// distributed in proportion to inverse mass.
func (c *ParticleContact) resolveVelocity(duration float64) {
	separatingVelocity := c.SeparatingVelocity()
	if separatingVelocity > 0 {
		// Already separating or resting.
		return
	}

	newSepVelocity := -separatingVelocity * c.Restitution

	// Closing velocity built up from acceleration alone this step
	// causes resting-contact jitter; remove its restitution-scaled
	// share from the bounce target.
	accVelocity := c.Particles[0].Acceleration
	if c.Particles[1] != nil {
		accVelocity = accVelocity.Sub(c.Particles[1].Acceleration)
	}
	accSepVelocity := accVelocity.Dot(c.ContactNormal) * duration
	if accSepVelocity < 0 {
		newSepVelocity += c.Restitution * accSepVelocity
		if newSepVelocity < 0 {
			newSepVelocity = 0
		}
	}

	deltaVelocity := newSepVelocity - separatingVelocity

	totalInverseMass := c.totalInverseMass()
	if totalInverseMass <= 0 {
		// Both ends immovable.
		return
	}

	impulse := deltaVelocity / totalInverseMass
	impulsePerInverseMass := c.ContactNormal.Mul(impulse)

	c.Particles[0].Velocity = c.Particles[0].Velocity.
		Add(impulsePerInverseMass.Mul(c.Particles[0].InverseMass()))
	if c.Particles[1] != nil {
		c.Particles[1].Velocity = c.Particles[1].Velocity.
			Sub(impulsePerInverseMass.Mul(c.Particles[1].InverseMass()))
	}
}

// resolveInterpenetration moves the particles apart along the contact
// normal in proportion to inverse mass, writing positions directly
// rather than through integration. The applied movements are recorded
// for the resolver's cross-contact coupling.
func (c *ParticleContact) resolveInterpenetration(duration float64) {
	// A contact may be resolved more than once per frame; stale
	// movements must not be rebroadcast again.
	c.particleMovement[0] = mgl64.Vec3{}
	c.particleMovement[1] = mgl64.Vec3{}

	if c.Penetration <= 0 {
		return
	}

	totalInverseMass := c.totalInverseMass()
	if totalInverseMass <= 0 {
		return
	}

	movePerInverseMass := c.ContactNormal.Mul(c.Penetration / totalInverseMass)

	c.particleMovement[0] = movePerInverseMass.Mul(c.Particles[0].InverseMass())
	if c.Particles[1] != nil {
		c.particleMovement[1] = movePerInverseMass.Mul(-c.Particles[1].InverseMass())
	} else {
		c.particleMovement[1] = mgl64.Vec3{}
	}

	c.Particles[0].Position = c.Particles[0].Position.Add(c.particleMovement[0])
	if c.Particles[1] != nil {
		c.Particles[1].Position = c.Particles[1].Position.Add(c.particleMovement[1])
	}
}

// Movement returns the displacement applied to the given slot by the
// last interpenetration pass.
func (c *ParticleContact) Movement(slot int) mgl64.Vec3 {
	return c.particleMovement[slot]
}
