package force

import (
	"github.com/akmonengine/impulse/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// ForceGenerator is the rigid-body counterpart of
// ParticleForceGenerator. Body generators may also contribute torque,
// which particles cannot carry, hence the separate family.
type ForceGenerator interface {
	UpdateForce(body *actor.RigidBody, duration float64)
}

// Gravity applies a constant acceleration at the center of mass.
type Gravity struct {
	Gravity mgl64.Vec3
}

func (g *Gravity) UpdateForce(body *actor.RigidBody, duration float64) {
	if !body.HasFiniteMass() {
		return
	}

	body.AddForce(g.Gravity.Mul(body.Mass()))
}

// Spring connects a body-local point on the target to a body-local
// point on another body. Applying the force off-center generates
// torque on the target. Extension is signed, as for ParticleSpring.
type Spring struct {
	// ConnectionPoint on the target body, in body space.
	ConnectionPoint mgl64.Vec3

	Other *actor.RigidBody
	// OtherConnectionPoint on the other body, in its body space.
	OtherConnectionPoint mgl64.Vec3

	SpringConstant float64
	RestLength     float64
}

func (s *Spring) UpdateForce(body *actor.RigidBody, duration float64) {
	end := body.PointInWorldSpace(s.ConnectionPoint)
	otherEnd := s.Other.PointInWorldSpace(s.OtherConnectionPoint)

	direction := end.Sub(otherEnd)
	length := direction.Len()
	if length == 0 {
		return
	}

	magnitude := -s.SpringConstant * (length - s.RestLength)
	body.AddForceAtPoint(direction.Mul(magnitude/length), end)
}

type bodyRegistration struct {
	body      *actor.RigidBody
	generator ForceGenerator
}

// Registry is the rigid-body force registry, mirroring
// ParticleForceRegistry.
type Registry struct {
	registrations []bodyRegistration
}

func (r *Registry) Add(body *actor.RigidBody, generator ForceGenerator) {
	r.registrations = append(r.registrations, bodyRegistration{
		body:      body,
		generator: generator,
	})
}

// Remove unregisters the given pair. Removing an absent pair is a
// no-op.
func (r *Registry) Remove(body *actor.RigidBody, generator ForceGenerator) {
	for i, registration := range r.registrations {
		if registration.body == body && registration.generator == generator {
			r.registrations = append(r.registrations[:i], r.registrations[i+1:]...)
			return
		}
	}
}

func (r *Registry) Clear() {
	r.registrations = r.registrations[:0]
}

func (r *Registry) Len() int {
	return len(r.registrations)
}

// UpdateForces invokes every registered generator against its body, in
// registration order.
func (r *Registry) UpdateForces(duration float64) {
	for _, registration := range r.registrations {
		registration.generator.UpdateForce(registration.body, duration)
	}
}
