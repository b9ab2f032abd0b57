package force

import (
	"github.com/akmonengine/impulse/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// ParticleSpring connects the target particle to another particle with
// a Hooke spring. Extension is signed: stretching pulls the endpoints
// together, compression pushes them apart.
//
// OneSided turns the spring into a bungee, which goes slack at or
// below the rest length and never pushes.
type ParticleSpring struct {
	Other          *actor.Particle
	SpringConstant float64
	RestLength     float64
	OneSided       bool
}

func (s *ParticleSpring) UpdateForce(particle *actor.Particle, duration float64) {
	direction := particle.Position.Sub(s.Other.Position)
	length := direction.Len()
	if length == 0 {
		return
	}
	if s.OneSided && length <= s.RestLength {
		return
	}

	magnitude := -s.SpringConstant * (length - s.RestLength)
	particle.AddForce(direction.Mul(magnitude / length))
}

// ParticleAnchoredSpring is a spring whose far end is a fixed world
// point rather than another particle. Extension is signed, as for
// ParticleSpring.
//
// OneSided makes it an anchored bungee: slack strictly below the rest
// length, pulling toward the anchor beyond it.
type ParticleAnchoredSpring struct {
	Anchor         mgl64.Vec3
	SpringConstant float64
	RestLength     float64
	OneSided       bool
}

func (s *ParticleAnchoredSpring) UpdateForce(particle *actor.Particle, duration float64) {
	direction := particle.Position.Sub(s.Anchor)
	length := direction.Len()
	if length == 0 {
		return
	}
	if s.OneSided && length < s.RestLength {
		return
	}

	magnitude := -s.SpringConstant * (length - s.RestLength)
	particle.AddForce(direction.Mul(magnitude / length))
}
