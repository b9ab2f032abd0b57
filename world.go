package impulse

import (
	"github.com/akmonengine/impulse/actor"
	"github.com/akmonengine/impulse/force"
)

// World keeps track of a set of rigid bodies and provides the
// per-frame step over all of them. Body contacts are produced and
// resolved by external collaborators; this world covers forces,
// integration and sleep tracking.
type World struct {
	Bodies []*actor.RigidBody

	Registry force.Registry

	// Workers for the integrate phase only; 0 or 1 runs inline.
	Workers int

	Events Events
}

func NewWorld() *World {
	return &World{
		Events: NewEvents(),
	}
}

// AddBody adds a rigid body to the world.
func (w *World) AddBody(body *actor.RigidBody) {
	w.Bodies = append(w.Bodies, body)
}

// RemoveBody removes a rigid body from the world.
func (w *World) RemoveBody(body *actor.RigidBody) {
	for i, b := range w.Bodies {
		if b == body {
			w.Bodies = append(w.Bodies[:i], w.Bodies[i+1:]...)
			break
		}
	}

	w.Events.forget(body)
}

// StartFrame clears every body's accumulators and refreshes the
// derived data so external code reads a consistent transform.
func (w *World) StartFrame() {
	for _, body := range w.Bodies {
		body.ClearAccumulators()
		body.CalculateDerivedData()
	}
}

// RunPhysics processes the frame's forces and integration.
func (w *World) RunPhysics(duration float64) {
	w.Registry.UpdateForces(duration)

	task(max(1, w.Workers), w.Bodies, func(body *actor.RigidBody) {
		body.Integrate(duration)
	})
}

// Step runs one whole frame and flushes sleep/wake events. A
// non-positive duration skips the frame entirely.
func (w *World) Step(duration float64) {
	if duration <= 0 {
		return
	}

	w.StartFrame()
	w.RunPhysics(duration)

	w.Events.processSleepEvents(w.Bodies)
	w.Events.flush()
}
