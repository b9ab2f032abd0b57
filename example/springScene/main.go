package main

import (
	"fmt"

	"github.com/akmonengine/impulse"
	"github.com/akmonengine/impulse/actor"
	"github.com/akmonengine/impulse/constraint"
	"github.com/akmonengine/impulse/force"
	"github.com/go-gl/mathgl/mgl64"
)

// GroundContacts generates scenery contacts for any particle dipping
// below y=0. This is the kind of collaborator the engine expects
// external collision detection to provide.
type GroundContacts struct {
	Particles []*actor.Particle
}

func (g *GroundContacts) AddContact(contacts []constraint.ParticleContact, limit int) int {
	count := 0
	for _, particle := range g.Particles {
		if count >= limit {
			break
		}

		depth := -particle.Position.Y()
		if depth <= 0 {
			continue
		}

		contact := &contacts[count]
		contact.Particles[0] = particle
		contact.Particles[1] = nil
		contact.ContactNormal = mgl64.Vec3{0, 1, 0}
		contact.Penetration = depth
		contact.Restitution = 0.3
		count++
	}

	return count
}

// SetupScene hangs a bob on an anchored spring over the ground plane
// and drops a free ball next to it.
func SetupScene() (*impulse.ParticleWorld, *actor.Particle, *actor.Particle) {
	cfg := impulse.DefaultConfig()
	world := cfg.NewParticleWorld()

	bob, _ := actor.NewParticle(mgl64.Vec3{0, 4, 0}, 2.0)
	bob.Damping = 0.95

	ball, _ := actor.NewParticle(mgl64.Vec3{1, 6, 0}, 1.0)
	ball.Damping = 0.99

	world.AddParticle(bob)
	world.AddParticle(ball)

	gravity := &force.ParticleGravity{Gravity: cfg.GravityVec()}
	world.Registry.Add(bob, gravity)
	world.Registry.Add(ball, gravity)

	world.Registry.Add(bob, &force.ParticleAnchoredSpring{
		Anchor:         mgl64.Vec3{0, 8, 0},
		SpringConstant: 30.0,
		RestLength:     2.0,
	})

	world.Registry.Add(ball, &force.ParticleDrag{K1: 0.1, K2: 0.02})

	world.AddContactGenerator(&GroundContacts{
		Particles: []*actor.Particle{bob, ball},
	})

	return world, bob, ball
}

func main() {
	world, bob, ball := SetupScene()

	world.Events.Subscribe(impulse.CONTACT_RESOLVED, func(event impulse.Event) {
		contact := event.(impulse.ContactEvent)
		fmt.Printf("  contact resolved at y=%.3f\n", contact.Particles[0].Position.Y())
	})

	const dt = 1.0 / 60.0
	const maxSteps = 300

	for step := 0; step < maxSteps; step++ {
		world.Step(dt)

		if step%30 == 0 {
			fmt.Printf("t=%5.2fs  bob y=%6.3f vy=%6.3f | ball y=%6.3f vy=%6.3f\n",
				float64(step)*dt,
				bob.Position.Y(), bob.Velocity.Y(),
				ball.Position.Y(), ball.Velocity.Y())
		}
	}

	fmt.Println("done")
}
