package constraint

import "github.com/akmonengine/impulse/actor"

// ParticleLink joins two particles and generates a contact when the
// link constraint is violated. Links are the simplest built-in contact
// generators; geometric collision detection lives outside this
// package.
type ParticleLink struct {
	Particles [2]*actor.Particle
}

func (l *ParticleLink) currentLength() float64 {
	return l.Particles[0].Position.Sub(l.Particles[1].Position).Len()
}

// ParticleCable keeps two particles within MaxLength of each other,
// generating a contact that pulls them back together when the cable
// goes taut.
type ParticleCable struct {
	ParticleLink
	MaxLength   float64
	Restitution float64
}

func (c *ParticleCable) AddContact(contacts []ParticleContact, limit int) int {
	if limit < 1 {
		return 0
	}

	length := c.currentLength()
	if length < c.MaxLength {
		return 0
	}

	direction := c.Particles[1].Position.Sub(c.Particles[0].Position)
	if direction.Len() == 0 {
		return 0
	}

	contact := &contacts[0]
	contact.Particles = c.Particles
	contact.ContactNormal = direction.Normalize()
	contact.Penetration = length - c.MaxLength
	contact.Restitution = c.Restitution

	return 1
}

// ParticleRod keeps two particles at exactly Length apart, generating
// a zero-restitution contact in whichever direction the rod is
// violated.
type ParticleRod struct {
	ParticleLink
	Length float64
}

func (r *ParticleRod) AddContact(contacts []ParticleContact, limit int) int {
	if limit < 1 {
		return 0
	}

	length := r.currentLength()
	if length == r.Length {
		return 0
	}

	direction := r.Particles[1].Position.Sub(r.Particles[0].Position)
	if direction.Len() == 0 {
		return 0
	}
	normal := direction.Normalize()

	contact := &contacts[0]
	contact.Particles = r.Particles
	if length > r.Length {
		contact.ContactNormal = normal
		contact.Penetration = length - r.Length
	} else {
		contact.ContactNormal = normal.Mul(-1)
		contact.Penetration = r.Length - length
	}

	// No bounciness: a rod holds its length rigidly.
	contact.Restitution = 0

	return 1
}
