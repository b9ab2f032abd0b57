package actor

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrZeroMass is returned when a zero mass is supplied; use
	// SetInverseMass(0) for an immovable body instead.
	ErrZeroMass = errors.New("actor: mass must be non-zero")

	// ErrNonPositiveStep is returned when an integration step is
	// requested with a non-positive duration.
	ErrNonPositiveStep = errors.New("actor: integration duration must be positive")
)

// Particle is a point mass: the simplest object the engine can simulate.
// It has no orientation and receives no torque.
type Particle struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3

	// Acceleration holds the persistent acceleration of the particle,
	// typically gravity. Transient forces go through AddForce instead.
	Acceleration mgl64.Vec3

	// Damping is the per-second multiplicative velocity decay,
	// applied as Damping^duration each integration step.
	// 1 means no decay.
	Damping float64

	inverseMass float64
	forceAccum  mgl64.Vec3
}

// NewParticle creates a particle at the given position.
// mass must be non-zero; use SetInverseMass(0) afterwards for an
// immovable particle.
func NewParticle(position mgl64.Vec3, mass float64) (*Particle, error) {
	p := &Particle{
		Position: position,
		Damping:  1.0,
	}
	if err := p.SetMass(mass); err != nil {
		return nil, err
	}

	return p, nil
}

// SetMass stores the reciprocal of the given mass.
func (p *Particle) SetMass(mass float64) error {
	if mass == 0 {
		return ErrZeroMass
	}
	p.inverseMass = 1.0 / mass

	return nil
}

// Mass returns the particle mass, +Inf for an immovable particle.
func (p *Particle) Mass() float64 {
	if p.inverseMass == 0 {
		return math.Inf(1)
	}

	return 1.0 / p.inverseMass
}

// SetInverseMass sets the reciprocal mass directly.
// 0 represents infinite mass.
func (p *Particle) SetInverseMass(inverseMass float64) {
	p.inverseMass = inverseMass
}

func (p *Particle) InverseMass() float64 {
	return p.inverseMass
}

// HasFiniteMass reports whether the particle can be moved by forces.
func (p *Particle) HasFiniteMass() bool {
	return p.inverseMass > 0
}

// AddForce accumulates a force for the next integration step only.
func (p *Particle) AddForce(force mgl64.Vec3) {
	p.forceAccum = p.forceAccum.Add(force)
}

func (p *Particle) ForceAccum() mgl64.Vec3 {
	return p.forceAccum
}

func (p *Particle) ClearAccumulator() {
	p.forceAccum = mgl64.Vec3{}
}

// Integrate advances the particle by duration seconds using
// semi-implicit Euler. The position moves on the pre-step velocity,
// then the velocity picks up the step acceleration and decays by
// Damping^duration. The force accumulator is always cleared.
func (p *Particle) Integrate(duration float64) error {
	if duration <= 0 {
		return ErrNonPositiveStep
	}
	if p.inverseMass <= 0 {
		p.ClearAccumulator()
		return nil
	}

	p.Position = p.Position.Add(p.Velocity.Mul(duration))

	acceleration := p.Acceleration.Add(p.forceAccum.Mul(p.inverseMass))
	p.Velocity = p.Velocity.Add(acceleration.Mul(duration)).Mul(math.Pow(p.Damping, duration))

	p.ClearAccumulator()

	return nil
}
