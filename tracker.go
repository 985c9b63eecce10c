package tether

import "github.com/go-gl/mathgl/mgl64"

// tracker maintains the per-step pair presence sets and the per-pair contact
// aggregates. prev holds the pairs present at the end of the previous step
// and is never touched while a step runs; curr collects the pairs the
// solver's contact callback reports during the current step. Single writer:
// the simulation thread.
type tracker struct {
	prev pairSet
	curr pairSet
	aggs aggregateMap
}

// record folds one contact sample into the current step. Invalid pairs
// (either id zero) are dropped.
func (t *tracker) record(a, b BodyID, point, normal mgl64.Vec3, impulse float64) {
	key := pairKey(a, b)
	if key == 0 {
		return
	}
	t.curr.Add(key)
	t.aggs.fetch(key).merge(point, normal, impulse)
}

// swap rotates the double buffer once the step's events are out: curr
// becomes prev, the retired buffer is cleared for reuse, and the aggregate
// map resets. Two owned buffers and an explicit swap, no aliasing.
func (t *tracker) swap() {
	t.prev, t.curr = t.curr, t.prev
	t.curr.Clear()
	t.aggs.Clear()
}
