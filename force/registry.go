package force

import "github.com/akmonengine/impulse/actor"

type particleRegistration struct {
	particle  *actor.Particle
	generator ParticleForceGenerator
}

// ParticleForceRegistry holds (particle, generator) associations and
// drives per-frame force accumulation. The relation is many-to-many:
// one generator may serve many particles and one particle may carry
// many generators.
type ParticleForceRegistry struct {
	registrations []particleRegistration
}

// Add registers a generator against a particle.
func (r *ParticleForceRegistry) Add(particle *actor.Particle, generator ParticleForceGenerator) {
	r.registrations = append(r.registrations, particleRegistration{
		particle:  particle,
		generator: generator,
	})
}

// Remove unregisters the given pair. Removing an absent pair is a
// no-op.
func (r *ParticleForceRegistry) Remove(particle *actor.Particle, generator ParticleForceGenerator) {
	for i, registration := range r.registrations {
		if registration.particle == particle && registration.generator == generator {
			r.registrations = append(r.registrations[:i], r.registrations[i+1:]...)
			return
		}
	}
}

// Clear drops all registrations. Particles and generators themselves
// are untouched.
func (r *ParticleForceRegistry) Clear() {
	r.registrations = r.registrations[:0]
}

// Len returns the number of registrations.
func (r *ParticleForceRegistry) Len() int {
	return len(r.registrations)
}

// UpdateForces invokes every registered generator against its
// particle, in registration order, once per step.
func (r *ParticleForceRegistry) UpdateForces(duration float64) {
	for _, registration := range r.registrations {
		registration.generator.UpdateForce(registration.particle, duration)
	}
}
