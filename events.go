package impulse

import (
	"github.com/akmonengine/impulse/actor"
	"github.com/akmonengine/impulse/constraint"
)

const (
	ON_SLEEP EventType = iota
	ON_WAKE
	CONTACT_RESOLVED
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// SleepEvent fires when a body transitions Awake -> Asleep.
type SleepEvent struct {
	Body *actor.RigidBody
}

func (e SleepEvent) Type() EventType { return ON_SLEEP }

// WakeEvent fires when a body transitions Asleep -> Awake.
type WakeEvent struct {
	Body *actor.RigidBody
}

func (e WakeEvent) Type() EventType { return ON_WAKE }

// ContactEvent fires for each contact the resolver processed this
// step. Particles[1] is nil for scenery contacts.
type ContactEvent struct {
	Particles [2]*actor.Particle
}

func (e ContactEvent) Type() EventType { return CONTACT_RESOLVED }

// EventListener - callback for events
type EventListener func(event Event)

// Events buffers simulation events during a step and delivers them to
// subscribers when the step flushes, so listeners never observe
// half-updated state.
type Events struct {
	listeners map[EventType][]EventListener

	buffer []Event

	// Last known sleep state per body, for edge detection.
	sleepStates map[*actor.RigidBody]bool
}

func NewEvents() Events {
	return Events{
		listeners:   make(map[EventType][]EventListener),
		buffer:      make([]Event, 0, 256),
		sleepStates: make(map[*actor.RigidBody]bool),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordContacts buffers a ContactEvent per resolved contact.
func (e *Events) recordContacts(contacts []constraint.ParticleContact) {
	for i := range contacts {
		e.buffer = append(e.buffer, ContactEvent{Particles: contacts[i].Particles})
	}
}

// processSleepEvents diffs each body's sleep flag against the last
// known state and buffers the transitions.
func (e *Events) processSleepEvents(bodies []*actor.RigidBody) {
	for _, body := range bodies {
		trackedAsleep, exists := e.sleepStates[body]
		if !exists {
			e.sleepStates[body] = !body.IsAwake()
			continue
		}

		if !trackedAsleep && !body.IsAwake() {
			e.buffer = append(e.buffer, SleepEvent{Body: body})
			e.sleepStates[body] = true
		} else if trackedAsleep && body.IsAwake() {
			e.buffer = append(e.buffer, WakeEvent{Body: body})
			e.sleepStates[body] = false
		}
	}
}

// forget drops the tracking state for a removed body.
func (e *Events) forget(body *actor.RigidBody) {
	delete(e.sleepStates, body)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
