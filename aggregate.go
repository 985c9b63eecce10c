package tether

import "github.com/go-gl/mathgl/mgl64"

// upNormal is the fallback contact normal when a step produced no usable
// samples for a pair
var upNormal = mgl64.Vec3{0, 1, 0}

const degenerateNormal = 1e-9

// Contact is the aggregated contact payload attached to collision events
type Contact struct {
	// MaxImpulse is the strongest impulse any sample reported this step
	MaxImpulse float64
	// Samples is how many contact samples contributed
	Samples int
	// Point is the arithmetic mean of the sampled contact points
	Point mgl64.Vec3
	// Normal is the mean sampled normal, re-normalized to unit length
	Normal mgl64.Vec3
}

func emptyContact() Contact {
	return Contact{Normal: upNormal}
}

// contactAggregate accumulates the contact samples one pair produced during
// one step. Instances live in the aggregate map's slots and are reset for
// reuse rather than freed.
type contactAggregate struct {
	maxImpulse float64
	pointSum   mgl64.Vec3
	normalSum  mgl64.Vec3
	samples    int
}

func (a *contactAggregate) reset() {
	*a = contactAggregate{}
}

// merge folds one contact sample in: impulse as a running maximum (the
// strongest contact dominates), point and normal as running sums
func (a *contactAggregate) merge(point, normal mgl64.Vec3, impulse float64) {
	if impulse > a.maxImpulse {
		a.maxImpulse = impulse
	}
	a.pointSum = a.pointSum.Add(point)
	a.normalSum = a.normalSum.Add(normal)
	a.samples++
}

// finalize averages the sums into an event payload. A degenerate summed
// normal falls back to straight up instead of producing NaN.
func (a *contactAggregate) finalize() Contact {
	if a.samples == 0 {
		return emptyContact()
	}
	inv := 1.0 / float64(a.samples)
	normal := a.normalSum.Mul(inv)
	if normal.Len() < degenerateNormal {
		normal = upNormal
	} else {
		normal = normal.Normalize()
	}
	return Contact{
		MaxImpulse: a.maxImpulse,
		Samples:    a.samples,
		Point:      a.pointSum.Mul(inv),
		Normal:     normal,
	}
}
