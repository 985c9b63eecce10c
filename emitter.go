package tether

// emitter diffs the tracker's finalized pair sets into the step's event
// sequence and owns the step counter
type emitter struct {
	events *Events
	step   uint64
}

// emitStep buffers this step's events: begin for pairs new since the last
// step, stay for every currently touching pair (begins included), end for
// pairs that stopped touching, and one post-step event regardless. Must run
// after the last contact callback of the step and before tracker.swap.
func (em *emitter) emitStep(t *tracker, dt float64, summary func(BodyID) BodySummary) {
	em.step++

	t.curr.Range(func(key uint64) {
		a, b := pairBodies(key)
		bodyA, bodyB := summary(a), summary(b)

		contact := emptyContact()
		if agg := t.aggs.lookup(key); agg != nil {
			contact = agg.finalize()
		}

		if !t.prev.Has(key) {
			em.events.emit(CollisionBeginEvent{
				Step:    em.step,
				Dt:      dt,
				BodyA:   bodyA,
				BodyB:   bodyB,
				Contact: contact,
			})
		}

		em.events.emit(CollisionStayEvent{
			Step:    em.step,
			Dt:      dt,
			BodyA:   bodyA,
			BodyB:   bodyB,
			Contact: contact,
		})
	})

	t.prev.Range(func(key uint64) {
		if t.curr.Has(key) {
			return
		}
		a, b := pairBodies(key)
		em.events.emit(CollisionEndEvent{
			Step:    em.step,
			Dt:      dt,
			BodyA:   summary(a),
			BodyB:   summary(b),
			Contact: emptyContact(),
		})
	})

	em.events.emit(PostStepEvent{Step: em.step, Dt: dt})
}
