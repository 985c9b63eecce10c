// Package solver defines the boundary to the third-party rigid-body solver.
// The bridge in the root package drives a World through this interface and
// never looks inside it: collision detection, integration and constraint
// solving all live on the far side.
package solver

import "github.com/go-gl/mathgl/mgl64"

// Shape is a solver-native collision shape, opaque to the bridge
type Shape interface{}

// Body is the solver-native rigid body reference. The bridge only hands it
// back to the World and uses it as an index key, so implementations must be
// comparable (typically a pointer to the implementation's body struct).
type Body interface{}

// BodyDef carries every parameter the bridge applies when constructing a
// native body. Mass 0 means static; Kinematic bodies collide but are moved
// externally rather than by solver forces.
type BodyDef struct {
	Shape    Shape
	Position mgl64.Vec3
	Rotation mgl64.Quat

	Mass      float64
	Kinematic bool

	Friction       float64
	Restitution    float64
	LinearDamping  float64
	AngularDamping float64
	LockRotation   bool

	// Continuous collision detection for fast-moving dynamic bodies
	CcdMotionThreshold   float64
	CcdSweptSphereRadius float64

	Group uint32
	Mask  uint32
}

// Contact is one contact sample reported by the solver during a step
type Contact struct {
	BodyA   Body
	BodyB   Body
	Point   mgl64.Vec3
	Normal  mgl64.Vec3
	Impulse float64
}

// RayHit is one intersection returned by World.RayTest. Fraction is the
// parametric distance along the segment, in [0,1].
type RayHit struct {
	Body     Body
	Fraction float64
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
}

// TickListener receives the solver's step-boundary hooks. Both hooks run on
// the thread that owns the World.
type TickListener interface {
	PrePhysicsTick(dt float64)
	PostPhysicsTick(dt float64)
}

// ShapeFactory builds solver-native shapes from geometric descriptions
type ShapeFactory interface {
	BoxShape(halfExtents mgl64.Vec3) Shape
	SphereShape(radius float64) Shape
	CapsuleShape(radius, height float64) Shape
	CylinderShape(halfExtents mgl64.Vec3) Shape
	// MeshShape builds a triangle-mesh shape; dynamic selects the solver's
	// moving-body variant (typically a convex hull) over the static one.
	MeshShape(vertices []mgl64.Vec3, indices []uint32, dynamic bool) Shape
}

// World is the solver-side world the bridge mutates and queries. AddBody,
// RemoveBody and RayTest must only be called on the thread that steps the
// world; NewBody and the shape factory may be called from any thread.
type World interface {
	ShapeFactory

	NewBody(def BodyDef) Body
	AddBody(body Body)
	RemoveBody(body Body)

	RayTest(from, to mgl64.Vec3) []RayHit

	SetTickListener(listener TickListener)
	SetContactCallback(fn func(contact Contact))
}
