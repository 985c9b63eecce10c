package tether

import "sync"

const (
	COLLISION_BEGIN EventType = iota
	COLLISION_STAY
	COLLISION_END
	POST_STEP
	BODY_CREATE
	BODY_REMOVE
	BODY_ADDED
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// BodySummary identifies one side of a collision without a registry lookup.
// For bodies already removed when the event fires, only Body is set.
type BodySummary struct {
	Body      BodyID
	Surface   string
	Mass      float64
	Kinematic bool
}

// Collision events carry the step they were observed on and the step's
// aggregated contact. An end event's contact is the empty payload (up
// normal, zero impulse, zero samples): the pair is no longer touching.

type CollisionBeginEvent struct {
	Step    uint64
	Dt      float64
	BodyA   BodySummary
	BodyB   BodySummary
	Contact Contact
}

func (e CollisionBeginEvent) Type() EventType { return COLLISION_BEGIN }

type CollisionStayEvent struct {
	Step    uint64
	Dt      float64
	BodyA   BodySummary
	BodyB   BodySummary
	Contact Contact
}

func (e CollisionStayEvent) Type() EventType { return COLLISION_STAY }

type CollisionEndEvent struct {
	Step    uint64
	Dt      float64
	BodyA   BodySummary
	BodyB   BodySummary
	Contact Contact
}

func (e CollisionEndEvent) Type() EventType { return COLLISION_END }

// PostStepEvent fires exactly once per physics step, collisions or not
type PostStepEvent struct {
	Step uint64
	Dt   float64
}

func (e PostStepEvent) Type() EventType { return POST_STEP }

// Body lifecycle events. BODY_CREATE fires when a handle is allocated,
// BODY_ADDED once the queue has committed the body to the solver world,
// BODY_REMOVE on removal. All are delivered at the next post-step flush.

type BodyCreateEvent struct {
	Body BodySummary
}

func (e BodyCreateEvent) Type() EventType { return BODY_CREATE }

type BodyRemoveEvent struct {
	Body BodySummary
}

func (e BodyRemoveEvent) Type() EventType { return BODY_REMOVE }

type BodyAddedEvent struct {
	Body BodySummary
}

func (e BodyAddedEvent) Type() EventType { return BODY_ADDED }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager. Emission buffers; flush dispatches on the simulation
// thread at step end. The mutex only covers the buffer and subscription
// tables because body create/remove requests may emit from other threads.
type Events struct {
	mu sync.Mutex

	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush, double-buffered with spare so a flush
	// allocates nothing once the buffers reach their working size
	buffer []Event
	spare  []Event
}

func NewEvents() *Events {
	return &Events{
		listeners: make(map[EventType][]EventListener),
		buffer:    make([]Event, 0, 256),
		spare:     make([]Event, 0, 256),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.mu.Lock()
	e.listeners[eventType] = append(e.listeners[eventType], listener)
	e.mu.Unlock()
}

func (e *Events) emit(event Event) {
	e.mu.Lock()
	e.buffer = append(e.buffer, event)
	e.mu.Unlock()
}

// flush sends all buffered events and clears the buffer. Listeners run
// outside the lock so they may create or remove bodies; anything they emit
// is delivered on the next flush.
func (e *Events) flush() {
	e.mu.Lock()
	pending := e.buffer
	e.buffer = e.spare[:0]
	e.mu.Unlock()

	for _, event := range pending {
		e.mu.Lock()
		listeners := e.listeners[event.Type()]
		e.mu.Unlock()
		for _, listener := range listeners {
			listener(event)
		}
	}

	e.mu.Lock()
	e.spare = pending[:0]
	e.mu.Unlock()
}
