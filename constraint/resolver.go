package constraint

import "math"

// ParticleContactGenerator is implemented by external collision
// detectors to produce contact batches.
type ParticleContactGenerator interface {
	// AddContact writes at most limit contacts starting at the front
	// of the given window and returns the number written.
	AddContact(contacts []ParticleContact, limit int) int
}

// ParticleContactResolver relaxes a batch of contacts by repeatedly
// resolving the worst violator and rebroadcasting its position change
// to contacts that share a particle. This approximates a simultaneous
// solve in O(iterations * contacts) without assembling a linear
// system; convergence is probabilistic for large contact graphs, so
// supply Iterations of at least the contact count, and more when
// contacts chain.
type ParticleContactResolver struct {
	// Iterations allowed per ResolveContacts call.
	Iterations int

	// IterationsUsed by the last ResolveContacts call.
	IterationsUsed int
}

// ResolveContacts resolves a batch of contacts for both penetration
// and velocity. It never fails: when the iteration budget runs out the
// batch is left under-resolved until the next frame.
func (r *ParticleContactResolver) ResolveContacts(contacts []ParticleContact, duration float64) {
	r.IterationsUsed = 0

	for r.IterationsUsed < r.Iterations {
		// Find the contact with the most negative separating velocity
		// among those still closing or still overlapping.
		worst := math.MaxFloat64
		worstIndex := len(contacts)
		for i := range contacts {
			sepVelocity := contacts[i].SeparatingVelocity()
			if sepVelocity < worst && (sepVelocity < 0 || contacts[i].Penetration > 0) {
				worst = sepVelocity
				worstIndex = i
			}
		}

		// Nothing left to resolve.
		if worstIndex == len(contacts) {
			break
		}

		resolved := &contacts[worstIndex]
		resolved.Resolve(duration)

		// The position correction changed the penetration of every
		// contact sharing a particle with the resolved one. Each slot
		// is adjusted at most once per resolved endpoint.
		move := resolved.particleMovement
		for i := range contacts {
			contact := &contacts[i]

			if contact.Particles[0] == resolved.Particles[0] {
				contact.Penetration -= move[0].Dot(contact.ContactNormal)
			} else if resolved.Particles[1] != nil && contact.Particles[0] == resolved.Particles[1] {
				contact.Penetration -= move[1].Dot(contact.ContactNormal)
			}

			if contact.Particles[1] != nil {
				if contact.Particles[1] == resolved.Particles[0] {
					contact.Penetration += move[0].Dot(contact.ContactNormal)
				} else if resolved.Particles[1] != nil && contact.Particles[1] == resolved.Particles[1] {
					contact.Penetration += move[1].Dot(contact.ContactNormal)
				}
			}
		}

		r.IterationsUsed++
	}
}
