package impulse

import (
	"math"
	"testing"

	"github.com/akmonengine/impulse/actor"
	"github.com/akmonengine/impulse/force"
	"github.com/go-gl/mathgl/mgl64"
)

func newBody(t *testing.T, mass float64) *actor.RigidBody {
	t.Helper()

	rb := actor.NewRigidBody()
	if err := rb.SetMass(mass); err != nil {
		t.Fatalf("SetMass returned error: %v", err)
	}
	i := 0.4 * mass
	if err := rb.SetInertiaTensor(mgl64.Diag3(mgl64.Vec3{i, i, i})); err != nil {
		t.Fatalf("SetInertiaTensor returned error: %v", err)
	}
	rb.CalculateDerivedData()
	rb.SetAwake(true)

	return rb
}

func TestWorld_Step_IntegratesBodies(t *testing.T) {
	world := NewWorld()

	body := newBody(t, 2.0)
	world.AddBody(body)
	world.Registry.Add(body, &force.Gravity{Gravity: mgl64.Vec3{0, -10, 0}})

	world.Step(0.1)

	if math.Abs(body.Velocity.Y()-(-1.0)) > tolerance {
		t.Errorf("Velocity.Y = %v after one step, want -1", body.Velocity.Y())
	}
}

func TestWorld_Step_NonPositiveDurationSkipped(t *testing.T) {
	world := NewWorld()

	body := newBody(t, 1.0)
	body.Velocity = mgl64.Vec3{1, 0, 0}
	world.AddBody(body)

	world.Step(0)

	if body.Position != (mgl64.Vec3{}) {
		t.Errorf("Position = %v after skipped step, want unchanged", body.Position)
	}
}

func TestWorld_Step_OrientationStaysUnit(t *testing.T) {
	world := NewWorld()

	body := newBody(t, 1.0)
	body.SetCanSleep(false)
	body.Rotation = mgl64.Vec3{2, 3, -1}
	world.AddBody(body)

	for i := 0; i < 300; i++ {
		world.Step(1.0 / 60.0)
	}

	if math.Abs(body.Orientation.Len()-1.0) > 1e-9 {
		t.Errorf("|Orientation| = %v after 300 steps, want 1", body.Orientation.Len())
	}
}

func TestWorld_RemoveBody(t *testing.T) {
	world := NewWorld()

	b1 := newBody(t, 1.0)
	b2 := newBody(t, 1.0)
	world.AddBody(b1)
	world.AddBody(b2)

	world.RemoveBody(b1)

	if len(world.Bodies) != 1 || world.Bodies[0] != b2 {
		t.Errorf("Bodies = %v after remove, want only b2", world.Bodies)
	}
}

// =============================================================================
// Event Tests
// =============================================================================

func TestWorld_SleepEvent(t *testing.T) {
	world := NewWorld()

	body := newBody(t, 1.0)
	body.Velocity = mgl64.Vec3{0.01, 0, 0}
	world.AddBody(body)

	var slept []*actor.RigidBody
	world.Events.Subscribe(ON_SLEEP, func(event Event) {
		slept = append(slept, event.(SleepEvent).Body)
	})

	for i := 0; i < 400 && len(slept) == 0; i++ {
		world.Step(0.016)
	}

	if len(slept) != 1 || slept[0] != body {
		t.Fatalf("sleep events = %v, want exactly one for body", slept)
	}

	// Further still frames must not re-emit.
	for i := 0; i < 10; i++ {
		world.Step(0.016)
	}
	if len(slept) != 1 {
		t.Errorf("sleep events = %d after more frames, want still 1", len(slept))
	}
}

func TestWorld_WakeEvent(t *testing.T) {
	world := NewWorld()

	body := newBody(t, 1.0)
	world.AddBody(body)

	// Track the body as asleep first.
	body.SetAwake(false)
	world.Step(0.016)

	var woke []*actor.RigidBody
	world.Events.Subscribe(ON_WAKE, func(event Event) {
		woke = append(woke, event.(WakeEvent).Body)
	})

	body.SetAwake(true)
	world.Step(0.016)

	if len(woke) != 1 || woke[0] != body {
		t.Errorf("wake events = %v, want exactly one for body", woke)
	}
}

func TestWorld_RemoveBody_ForgetsSleepState(t *testing.T) {
	world := NewWorld()

	body := newBody(t, 1.0)
	world.AddBody(body)
	world.Step(0.016)

	world.RemoveBody(body)

	if _, tracked := world.Events.sleepStates[body]; tracked {
		t.Error("removed body still tracked in sleep states")
	}
}

func TestEvents_SubscribeByType(t *testing.T) {
	events := NewEvents()

	var sleeps, wakes int
	events.Subscribe(ON_SLEEP, func(event Event) { sleeps++ })
	events.Subscribe(ON_WAKE, func(event Event) { wakes++ })

	body := actor.NewRigidBody()
	events.buffer = append(events.buffer, SleepEvent{Body: body})
	events.buffer = append(events.buffer, SleepEvent{Body: body})
	events.buffer = append(events.buffer, WakeEvent{Body: body})
	events.flush()

	if sleeps != 2 || wakes != 1 {
		t.Errorf("listener calls = %d sleeps, %d wakes, want 2 and 1", sleeps, wakes)
	}

	// The buffer is drained by flush.
	events.flush()
	if sleeps != 2 || wakes != 1 {
		t.Error("flush re-delivered drained events")
	}
}
