package constraint

import (
	"math"
	"testing"

	"github.com/akmonengine/impulse/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const tolerance = 1e-9

func newParticle(t *testing.T, position mgl64.Vec3, mass float64) *actor.Particle {
	t.Helper()

	p, err := actor.NewParticle(position, mass)
	if err != nil {
		t.Fatalf("NewParticle returned error: %v", err)
	}

	return p
}

func vecApproxEqual(a, b mgl64.Vec3, epsilon float64) bool {
	return math.Abs(a.X()-b.X()) <= epsilon &&
		math.Abs(a.Y()-b.Y()) <= epsilon &&
		math.Abs(a.Z()-b.Z()) <= epsilon
}

// =============================================================================
// SeparatingVelocity Tests
// =============================================================================

func TestParticleContact_SeparatingVelocity(t *testing.T) {
	p0 := newParticle(t, mgl64.Vec3{1, 0, 0}, 1.0)
	p1 := newParticle(t, mgl64.Vec3{-1, 0, 0}, 1.0)
	p0.Velocity = mgl64.Vec3{-2, 0, 0}
	p1.Velocity = mgl64.Vec3{3, 0, 0}

	contact := &ParticleContact{
		Particles:     [2]*actor.Particle{p0, p1},
		ContactNormal: mgl64.Vec3{1, 0, 0},
	}

	// (v0 - v1) . n = (-2 - 3) = -5: closing.
	if got := contact.SeparatingVelocity(); math.Abs(got-(-5)) > tolerance {
		t.Errorf("SeparatingVelocity() = %v, want -5", got)
	}
}

func TestParticleContact_SeparatingVelocity_Scenery(t *testing.T) {
	p0 := newParticle(t, mgl64.Vec3{}, 1.0)
	p0.Velocity = mgl64.Vec3{0, -4, 0}

	contact := &ParticleContact{
		Particles:     [2]*actor.Particle{p0, nil},
		ContactNormal: mgl64.Vec3{0, 1, 0},
	}

	if got := contact.SeparatingVelocity(); math.Abs(got-(-4)) > tolerance {
		t.Errorf("SeparatingVelocity() = %v, want -4", got)
	}
}

// =============================================================================
// Velocity Resolution Tests
// =============================================================================

func TestParticleContact_Resolve_ElasticExchange(t *testing.T) {
	// Two unit masses closing at speed v each, restitution 1: after one
	// resolve the velocities are exactly exchanged.
	const v = 3.0

	p0 := newParticle(t, mgl64.Vec3{1, 0, 0}, 1.0)
	p1 := newParticle(t, mgl64.Vec3{-1, 0, 0}, 1.0)
	p0.Velocity = mgl64.Vec3{-v, 0, 0}
	p1.Velocity = mgl64.Vec3{v, 0, 0}

	contact := &ParticleContact{
		Particles:     [2]*actor.Particle{p0, p1},
		ContactNormal: mgl64.Vec3{1, 0, 0},
		Restitution:   1.0,
	}

	contact.Resolve(0.016)

	if !vecApproxEqual(p0.Velocity, mgl64.Vec3{v, 0, 0}, tolerance) {
		t.Errorf("p0 Velocity = %v, want {%v 0 0}", p0.Velocity, v)
	}
	if !vecApproxEqual(p1.Velocity, mgl64.Vec3{-v, 0, 0}, tolerance) {
		t.Errorf("p1 Velocity = %v, want {%v 0 0}", p1.Velocity, -v)
	}
}

func TestParticleContact_Resolve_Inelastic(t *testing.T) {
	p0 := newParticle(t, mgl64.Vec3{}, 1.0)
	p1 := newParticle(t, mgl64.Vec3{}, 1.0)
	p0.Velocity = mgl64.Vec3{-2, 0, 0}
	p1.Velocity = mgl64.Vec3{2, 0, 0}

	contact := &ParticleContact{
		Particles:     [2]*actor.Particle{p0, p1},
		ContactNormal: mgl64.Vec3{1, 0, 0},
		Restitution:   0.0,
	}

	contact.Resolve(0.016)

	// Fully inelastic equal masses: both end at the common velocity.
	if math.Abs(p0.Velocity.X()-p1.Velocity.X()) > tolerance {
		t.Errorf("velocities %v vs %v, want equal after inelastic resolve",
			p0.Velocity.X(), p1.Velocity.X())
	}
	if got := contact.SeparatingVelocity(); math.Abs(got) > tolerance {
		t.Errorf("SeparatingVelocity() = %v after inelastic resolve, want 0", got)
	}
}

func TestParticleContact_ResolveVelocity_IdempotentWhenSeparating(t *testing.T) {
	p0 := newParticle(t, mgl64.Vec3{}, 1.0)
	p1 := newParticle(t, mgl64.Vec3{}, 1.0)
	p0.Velocity = mgl64.Vec3{5, 0, 0}
	p1.Velocity = mgl64.Vec3{-5, 0, 0}

	contact := &ParticleContact{
		Particles:     [2]*actor.Particle{p0, p1},
		ContactNormal: mgl64.Vec3{1, 0, 0},
		Restitution:   1.0,
	}

	contact.Resolve(0.016)

	if !vecApproxEqual(p0.Velocity, mgl64.Vec3{5, 0, 0}, tolerance) {
		t.Errorf("p0 Velocity = %v, want untouched while separating", p0.Velocity)
	}
	if !vecApproxEqual(p1.Velocity, mgl64.Vec3{-5, 0, 0}, tolerance) {
		t.Errorf("p1 Velocity = %v, want untouched while separating", p1.Velocity)
	}
}

func TestParticleContact_Resolve_BothImmovable(t *testing.T) {
	p0 := &actor.Particle{}
	p1 := &actor.Particle{}
	p0.SetInverseMass(0)
	p1.SetInverseMass(0)
	p0.Velocity = mgl64.Vec3{-1, 0, 0}
	p1.Velocity = mgl64.Vec3{1, 0, 0}

	contact := &ParticleContact{
		Particles:     [2]*actor.Particle{p0, p1},
		ContactNormal: mgl64.Vec3{1, 0, 0},
		Restitution:   1.0,
		Penetration:   0.5,
	}

	contact.Resolve(0.016)

	if p0.Velocity != (mgl64.Vec3{-1, 0, 0}) || p0.Position != (mgl64.Vec3{}) {
		t.Error("immovable pair must be left untouched")
	}
}

func TestParticleContact_Resolve_RestingContactJitter(t *testing.T) {
	// A particle resting on scenery under gravity closes only by the
	// acceleration built up this step; the bounce target must absorb
	// it so the particle does not vibrate.
	const dt = 0.016

	p0 := newParticle(t, mgl64.Vec3{}, 1.0)
	p0.Acceleration = mgl64.Vec3{0, -10, 0}
	p0.Velocity = mgl64.Vec3{0, -10 * dt, 0}

	contact := &ParticleContact{
		Particles:     [2]*actor.Particle{p0, nil},
		ContactNormal: mgl64.Vec3{0, 1, 0},
		Restitution:   1.0,
	}

	contact.Resolve(dt)

	// All closing velocity came from this step's acceleration: the
	// post-resolve separating velocity collapses to zero instead of a
	// full bounce.
	if got := contact.SeparatingVelocity(); math.Abs(got) > tolerance {
		t.Errorf("SeparatingVelocity() = %v after resting resolve, want 0", got)
	}
}

// =============================================================================
// Interpenetration Resolution Tests
// =============================================================================

func TestParticleContact_Interpenetration_MassWeighted(t *testing.T) {
	p0 := newParticle(t, mgl64.Vec3{0.5, 0, 0}, 1.0)
	p1 := newParticle(t, mgl64.Vec3{-0.5, 0, 0}, 3.0)

	contact := &ParticleContact{
		Particles:     [2]*actor.Particle{p0, p1},
		ContactNormal: mgl64.Vec3{1, 0, 0},
		Penetration:   0.4,
	}

	contact.Resolve(0.016)

	// Mass-weighted displacement is conserved: m0*d0 + m1*d1 = 0.
	d0 := contact.Movement(0).Mul(p0.Mass())
	d1 := contact.Movement(1).Mul(p1.Mass())
	if !vecApproxEqual(d0.Add(d1), mgl64.Vec3{}, tolerance) {
		t.Errorf("m0*d0 + m1*d1 = %v, want zero", d0.Add(d1))
	}

	// Total separation equals the penetration, split 3:1 against the
	// lighter particle.
	total := contact.Movement(0).Len() + contact.Movement(1).Len()
	if math.Abs(total-0.4) > tolerance {
		t.Errorf("total separation = %v, want 0.4", total)
	}
	if math.Abs(contact.Movement(0).X()-0.3) > tolerance {
		t.Errorf("movement0.X = %v, want 0.3", contact.Movement(0).X())
	}
	if math.Abs(contact.Movement(1).X()-(-0.1)) > tolerance {
		t.Errorf("movement1.X = %v, want -0.1", contact.Movement(1).X())
	}
}

func TestParticleContact_Interpenetration_Scenery(t *testing.T) {
	p0 := newParticle(t, mgl64.Vec3{0, -0.1, 0}, 1.0)

	contact := &ParticleContact{
		Particles:     [2]*actor.Particle{p0, nil},
		ContactNormal: mgl64.Vec3{0, 1, 0},
		Penetration:   0.1,
	}

	contact.Resolve(0.016)

	// The whole correction lands on the single movable particle.
	if !vecApproxEqual(p0.Position, mgl64.Vec3{}, tolerance) {
		t.Errorf("Position = %v, want pushed up to origin", p0.Position)
	}
	if contact.Movement(1) != (mgl64.Vec3{}) {
		t.Errorf("Movement(1) = %v for scenery, want zero", contact.Movement(1))
	}
}

func TestParticleContact_Interpenetration_NoOpWhenSeparated(t *testing.T) {
	p0 := newParticle(t, mgl64.Vec3{1, 0, 0}, 1.0)
	p1 := newParticle(t, mgl64.Vec3{-1, 0, 0}, 1.0)

	contact := &ParticleContact{
		Particles:     [2]*actor.Particle{p0, p1},
		ContactNormal: mgl64.Vec3{1, 0, 0},
		Penetration:   -0.5,
	}

	contact.Resolve(0.016)

	if p0.Position != (mgl64.Vec3{1, 0, 0}) || p1.Position != (mgl64.Vec3{-1, 0, 0}) {
		t.Error("separated contact must not move particles")
	}
}
