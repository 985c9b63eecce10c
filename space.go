// Package tether bridges a third-party rigid-body solver and the rest of a
// real-time simulation: it queues body creation so the solver world is only
// mutated on its owning thread, tracks which pairs of bodies touch, emits
// begin/stay/end collision events once per step, and answers filtered ray
// queries. The solver itself (integration, collision detection, constraint
// solving) lives behind the solver.World interface.
package tether

import (
	"github.com/akmonengine/tether/solver"
)

// Settings tunes a Space at construction
type Settings struct {
	// FlushBatch bounds how many queued bodies one pre-step flush commits;
	// 0 means DefaultFlushBatch
	FlushBatch int
}

// Space is the bridge. One Space per solver world; all solver mutation and
// event delivery happen on the thread that steps the world, driven by the
// solver's own tick hooks.
type Space struct {
	world    solver.World
	shapes   *shapeSelector
	queue    *pendingQueue
	registry *Registry
	tracker  tracker
	emitter  emitter

	Events *Events
}

// New wires a Space to a solver world with default settings
func New(world solver.World) *Space {
	return NewWithSettings(world, Settings{})
}

// NewWithSettings wires a Space to a solver world and registers it as the
// world's tick listener and contact callback
func NewWithSettings(world solver.World, settings Settings) *Space {
	s := &Space{
		world:  world,
		shapes: newShapeSelector(world),
		queue:  newPendingQueue(settings.FlushBatch),
		Events: NewEvents(),
	}
	s.registry = newRegistry(world, s.shapes, s.queue, s.Events)
	s.emitter = emitter{events: s.Events}

	world.SetTickListener(s)
	world.SetContactCallback(s.onContact)
	return s
}

// Create allocates a body handle, builds its native body and queues it for
// the next pre-step flush. May be called from any thread.
func (s *Space) Create(cfg BodyConfig) (BodyID, error) {
	return s.registry.Create(cfg)
}

// Remove tears a body down; a no-op for unknown ids. May be called from any
// thread, though removal of an already-committed body mutates the world and
// belongs on the simulation thread.
func (s *Space) Remove(id BodyID) {
	s.registry.Remove(id)
}

// Summary returns the event-facing view of a live body
func (s *Space) Summary(id BodyID) (BodySummary, error) {
	return s.registry.Summary(id)
}

// Len returns the number of live bodies
func (s *Space) Len() int {
	return s.registry.Len()
}

// StepCount returns how many steps have completed
func (s *Space) StepCount() uint64 {
	return s.emitter.step
}

// PrePhysicsTick commits queued bodies so this step's collision detection
// already sees them
func (s *Space) PrePhysicsTick(dt float64) {
	s.queue.Flush(s.world, func(rec *bodyRecord) {
		s.Events.emit(BodyAddedEvent{Body: rec.summary()})
	})
}

// PostPhysicsTick finishes the step: diff the pair sets into events, rotate
// the double buffer, deliver everything buffered since the last flush
func (s *Space) PostPhysicsTick(dt float64) {
	s.emitter.emitStep(&s.tracker, dt, s.registry.summary)
	s.tracker.swap()
	s.Events.flush()
}

// onContact is the solver's per-contact callback. Samples whose collision
// objects have no registered handle are ignored.
func (s *Space) onContact(contact solver.Contact) {
	a, okA := s.registry.resolve(contact.BodyA)
	b, okB := s.registry.resolve(contact.BodyB)
	if !okA || !okB {
		return
	}
	s.tracker.record(a, b, contact.Point, contact.Normal, contact.Impulse)
}
