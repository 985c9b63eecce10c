package tether

import (
	"sync"

	"github.com/akmonengine/tether/scene"
	"github.com/akmonengine/tether/solver"
)

// bodyRecord is the registry's owned state for one body. Everything outside
// the registry refers to the body by id only. The fields are immutable after
// creation except added, which the queue flips inside its critical section.
type bodyRecord struct {
	id        BodyID
	surface   *scene.Node
	native    solver.Body
	mass      float64
	kinematic bool
	mask      uint32
	added     bool
}

// dynamic reports whether the body is driven by solver forces: positive mass
// and not kinematic. Everything else counts as static for query filtering.
func (rec *bodyRecord) dynamic() bool {
	return rec.mass > 0 && !rec.kinematic
}

func (rec *bodyRecord) summary() BodySummary {
	return BodySummary{
		Body:      rec.id,
		Surface:   rec.surface.Name,
		Mass:      rec.mass,
		Kinematic: rec.kinematic,
	}
}

// Registry owns the id space and both directions of the id<->native index.
// Create and Remove may be called from any thread; world mutation is always
// marshaled through the pending queue or deferred to the simulation thread.
type Registry struct {
	world  solver.World
	shapes *shapeSelector
	queue  *pendingQueue
	events *Events

	mu       sync.Mutex
	nextID   BodyID
	records  map[BodyID]*bodyRecord
	byNative map[solver.Body]BodyID
}

func newRegistry(world solver.World, shapes *shapeSelector, queue *pendingQueue, events *Events) *Registry {
	return &Registry{
		world:    world,
		shapes:   shapes,
		queue:    queue,
		events:   events,
		records:  make(map[BodyID]*bodyRecord),
		byNative: make(map[solver.Body]BodyID),
	}
}

// Create validates the config, builds the shape and the native body, queues
// the body for the next flush and returns its id. The body only becomes
// visible to the solver after the queue commits it; the id is usable
// immediately. No partial state survives an error.
func (r *Registry) Create(cfg BodyConfig) (BodyID, error) {
	if cfg.Surface == nil {
		return 0, ErrNoSurface
	}

	dynamic := cfg.Mass > 0 && !cfg.Kinematic
	shape, err := r.shapes.Select(cfg, dynamic)
	if err != nil {
		return 0, err
	}

	native := r.world.NewBody(solver.BodyDef{
		Shape:                shape,
		Position:             cfg.Surface.Transform.Position,
		Rotation:             cfg.Surface.Transform.Rotation,
		Mass:                 cfg.Mass,
		Kinematic:            cfg.Kinematic,
		Friction:             cfg.Friction,
		Restitution:          cfg.Restitution,
		LinearDamping:        cfg.LinearDamping,
		AngularDamping:       cfg.AngularDamping,
		LockRotation:         cfg.LockRotation,
		CcdMotionThreshold:   cfg.CcdMotionThreshold,
		CcdSweptSphereRadius: cfg.CcdSweptSphereRadius,
		Group:                cfg.Group,
		Mask:                 cfg.Mask,
	})

	rec := &bodyRecord{
		surface:   cfg.Surface,
		native:    native,
		mass:      cfg.Mass,
		kinematic: cfg.Kinematic,
		mask:      cfg.Mask,
	}

	r.mu.Lock()
	r.nextID++
	rec.id = r.nextID
	r.records[rec.id] = rec
	r.byNative[native] = rec.id
	r.mu.Unlock()

	r.queue.Enqueue(rec)
	r.events.emit(BodyCreateEvent{Body: rec.summary()})

	return rec.id, nil
}

// Remove drops the body from both indexes and from the simulation: a
// still-queued body is pulled out of the queue synchronously, a committed
// one is removed from the solver world best-effort. Removing an unknown or
// already-removed id is a no-op.
func (r *Registry) Remove(id BodyID) {
	r.mu.Lock()
	rec, ok := r.records[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	delete(r.records, id)
	delete(r.byNative, rec.native)
	r.mu.Unlock()

	if !r.queue.Dequeue(rec) {
		removeFromWorld(r.world, rec.native)
	}
	r.events.emit(BodyRemoveEvent{Body: rec.summary()})
}

// removeFromWorld asks the solver to drop a committed body. The solver may
// already have discarded it; a panic here must not prevent index cleanup,
// so it is swallowed.
func removeFromWorld(world solver.World, body solver.Body) {
	defer func() {
		_ = recover()
	}()
	world.RemoveBody(body)
}

// resolve maps a solver collision object back to its id. Unknown bodies
// (never registered, or already removed) report false.
func (r *Registry) resolve(body solver.Body) (BodyID, bool) {
	r.mu.Lock()
	id, ok := r.byNative[body]
	r.mu.Unlock()
	return id, ok
}

// record looks up the registry state for an id
func (r *Registry) record(id BodyID) (*bodyRecord, bool) {
	r.mu.Lock()
	rec, ok := r.records[id]
	r.mu.Unlock()
	return rec, ok
}

// summary builds the event-facing view of a body. Removed ids yield a
// summary carrying the id alone.
func (r *Registry) summary(id BodyID) BodySummary {
	if rec, ok := r.record(id); ok {
		return rec.summary()
	}
	return BodySummary{Body: id}
}

// Summary returns the event-facing view of a live body; ErrUnknownBody for
// removed or never-created ids.
func (r *Registry) Summary(id BodyID) (BodySummary, error) {
	rec, ok := r.record(id)
	if !ok {
		return BodySummary{}, ErrUnknownBody
	}
	return rec.summary(), nil
}

// Len returns the number of live bodies
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}
