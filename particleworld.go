// Package impulse orchestrates the per-frame simulation step: force
// accumulation, integration, contact generation and contact
// resolution, in that fixed order. All state is owned by the single
// calling thread during a step.
package impulse

import (
	"github.com/akmonengine/impulse/actor"
	"github.com/akmonengine/impulse/constraint"
	"github.com/akmonengine/impulse/force"
)

// ParticleWorld keeps track of a set of particles and provides the
// per-frame step over all of them.
type ParticleWorld struct {
	Particles []*actor.Particle

	Registry force.ParticleForceRegistry
	Resolver constraint.ParticleContactResolver

	// Generators fill the contact buffer each frame. External
	// collision detection plugs in here.
	Generators []constraint.ParticleContactGenerator

	// contacts is the caller-sized buffer shared by the generators and
	// the resolver; the world never resizes it.
	contacts []constraint.ParticleContact

	// calculateIterations derives the resolver budget from the number
	// of contacts each frame (twice the count). Set when the world is
	// created with zero iterations.
	calculateIterations bool

	// Workers for the integrate phase only; 0 or 1 runs inline.
	Workers int

	Events Events
}

// NewParticleWorld creates a world able to handle up to maxContacts
// contacts per frame. With iterations 0 the resolver budget is derived
// from the contact count each frame.
func NewParticleWorld(maxContacts, iterations int) *ParticleWorld {
	w := &ParticleWorld{
		contacts: make([]constraint.ParticleContact, maxContacts),
		Events:   NewEvents(),
	}
	w.Resolver.Iterations = iterations
	w.calculateIterations = iterations == 0

	return w
}

// AddParticle adds a particle to the world.
func (w *ParticleWorld) AddParticle(particle *actor.Particle) {
	w.Particles = append(w.Particles, particle)
}

// RemoveParticle removes a particle from the world.
func (w *ParticleWorld) RemoveParticle(particle *actor.Particle) {
	for i, p := range w.Particles {
		if p == particle {
			w.Particles = append(w.Particles[:i], w.Particles[i+1:]...)
			return
		}
	}
}

// AddContactGenerator registers a contact generator, invoked every
// frame in registration order.
func (w *ParticleWorld) AddContactGenerator(generator constraint.ParticleContactGenerator) {
	w.Generators = append(w.Generators, generator)
}

// StartFrame clears every particle's force accumulator so the frame
// starts from persistent accelerations only.
func (w *ParticleWorld) StartFrame() {
	for _, particle := range w.Particles {
		particle.ClearAccumulator()
	}
}

// GenerateContacts runs the registered generators into the contact
// buffer and returns the number of contacts produced. Generators past
// a full buffer are skipped until the next frame.
func (w *ParticleWorld) GenerateContacts() int {
	limit := len(w.contacts)
	used := 0

	for _, generator := range w.Generators {
		used += generator.AddContact(w.contacts[used:], limit-used)
		if used >= limit {
			break
		}
	}

	return used
}

// Integrate advances every particle by duration seconds. Particles are
// independent here, so this is the one phase that may fan out.
func (w *ParticleWorld) Integrate(duration float64) {
	task(max(1, w.Workers), w.Particles, func(particle *actor.Particle) {
		particle.Integrate(duration)
	})
}

// RunPhysics processes all the physics for the frame: forces,
// integration, contact generation and resolution.
func (w *ParticleWorld) RunPhysics(duration float64) {
	w.Registry.UpdateForces(duration)
	w.Integrate(duration)

	used := w.GenerateContacts()
	if used > 0 {
		if w.calculateIterations {
			w.Resolver.Iterations = used * 2
		}
		w.Resolver.ResolveContacts(w.contacts[:used], duration)
		w.Events.recordContacts(w.contacts[:used])
	}
}

// Step runs one whole frame. A non-positive duration, from a paused or
// stalled clock, skips the frame entirely rather than applying a
// partial step.
func (w *ParticleWorld) Step(duration float64) {
	if duration <= 0 {
		return
	}

	w.StartFrame()
	w.RunPhysics(duration)
	w.Events.flush()
}
