package tether

import (
	"errors"

	"github.com/akmonengine/tether/scene"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrNoSurface - Create called without a surface node
	ErrNoSurface = errors.New("tether: body config has no surface node")
	// ErrMeshOnDynamic - static triangle-mesh collider requested for a
	// dynamic body; dynamic bodies need a convex primitive or an explicit
	// dynamic mesh
	ErrMeshOnDynamic = errors.New("tether: mesh collider requires a static or kinematic body")
	// ErrNoGeometry - a mesh-backed collider was requested but neither the
	// config nor the surface subtree carries any mesh
	ErrNoGeometry = errors.New("tether: surface has no mesh geometry for a collider")
	// ErrUnknownBody - lookup against a removed or never-created id
	ErrUnknownBody = errors.New("tether: unknown body id")
)

type ColliderType int

const (
	// ColliderAuto derives the shape from the surface node (the zero value)
	ColliderAuto ColliderType = iota
	ColliderBox
	ColliderSphere
	ColliderCapsule
	ColliderCylinder
	// ColliderMesh is a static triangle mesh; invalid on dynamic bodies
	ColliderMesh
	// ColliderDynamicMesh is the moving-body mesh variant (convex hull)
	ColliderDynamicMesh
)

// Collider describes a body's collision shape. The zero value auto-derives
// from the surface.
type Collider struct {
	Type ColliderType

	// box, cylinder
	HalfExtents mgl64.Vec3
	// sphere, capsule
	Radius float64
	// capsule
	Height float64
	// mesh, dynamicMesh; nil falls back to the surface's own mesh
	Mesh *scene.Mesh
}

// BodyConfig is the creation surface for physics bodies. Mass 0 makes the
// body static (or kinematic-eligible); mass > 0 makes it dynamic.
type BodyConfig struct {
	Surface *scene.Node

	Mass           float64
	Friction       float64
	Restitution    float64
	LinearDamping  float64
	AngularDamping float64
	Kinematic      bool
	LockRotation   bool

	Collider Collider

	// Continuous collision detection for fast-moving dynamic bodies
	CcdMotionThreshold   float64
	CcdSweptSphereRadius float64

	// Collision group and collide-with mask, forwarded to the solver and
	// used by ray filtering
	Group uint32
	Mask  uint32
}
