package tether

import (
	"github.com/akmonengine/tether/scene"
	"github.com/akmonengine/tether/solver"
	"github.com/go-gl/mathgl/mgl64"
)

// fakeShape records what the shape factory was asked to build
type fakeShape struct {
	kind        string
	halfExtents mgl64.Vec3
	radius      float64
	height      float64
	vertices    int
	dynamic     bool
}

// fakeBody is the solver-native body stand-in; pointer identity is what the
// registry indexes
type fakeBody struct {
	def solver.BodyDef
}

// fakeWorld implements solver.World for tests: shapes and bodies are inert
// records, steps are driven by hand and report scripted contacts.
type fakeWorld struct {
	listener  solver.TickListener
	onContact func(solver.Contact)

	bodies        []*fakeBody
	added         []*fakeBody
	removed       []*fakeBody
	hits          []solver.RayHit
	meshBuilds    int
	panicOnRemove bool
}

func (w *fakeWorld) BoxShape(halfExtents mgl64.Vec3) solver.Shape {
	return &fakeShape{kind: "box", halfExtents: halfExtents}
}

func (w *fakeWorld) SphereShape(radius float64) solver.Shape {
	return &fakeShape{kind: "sphere", radius: radius}
}

func (w *fakeWorld) CapsuleShape(radius, height float64) solver.Shape {
	return &fakeShape{kind: "capsule", radius: radius, height: height}
}

func (w *fakeWorld) CylinderShape(halfExtents mgl64.Vec3) solver.Shape {
	return &fakeShape{kind: "cylinder", halfExtents: halfExtents}
}

func (w *fakeWorld) MeshShape(vertices []mgl64.Vec3, indices []uint32, dynamic bool) solver.Shape {
	w.meshBuilds++
	return &fakeShape{kind: "mesh", vertices: len(vertices), dynamic: dynamic}
}

func (w *fakeWorld) NewBody(def solver.BodyDef) solver.Body {
	body := &fakeBody{def: def}
	w.bodies = append(w.bodies, body)
	return body
}

func (w *fakeWorld) AddBody(body solver.Body) {
	w.added = append(w.added, body.(*fakeBody))
}

func (w *fakeWorld) RemoveBody(body solver.Body) {
	if w.panicOnRemove {
		panic("body already discarded")
	}
	w.removed = append(w.removed, body.(*fakeBody))
}

func (w *fakeWorld) RayTest(from, to mgl64.Vec3) []solver.RayHit {
	return w.hits
}

func (w *fakeWorld) SetTickListener(listener solver.TickListener) {
	w.listener = listener
}

func (w *fakeWorld) SetContactCallback(fn func(solver.Contact)) {
	w.onContact = fn
}

// step drives one solver step: pre-tick flush, the scripted contact
// callbacks, post-tick emission
func (w *fakeWorld) step(dt float64, contacts ...solver.Contact) {
	w.listener.PrePhysicsTick(dt)
	for _, contact := range contacts {
		w.onContact(contact)
	}
	w.listener.PostPhysicsTick(dt)
}

func newTestSpace() (*Space, *fakeWorld) {
	world := &fakeWorld{}
	return New(world), world
}

// testNode builds a unit-box surface node
func testNode(name string) *scene.Node {
	return &scene.Node{
		Name: name,
		Kind: scene.KindBox,
		Bounds: scene.AABB{
			Min: mgl64.Vec3{-0.5, -0.5, -0.5},
			Max: mgl64.Vec3{0.5, 0.5, 0.5},
		},
		Transform: scene.NewTransform(),
	}
}

// contactBetween builds a scripted contact sample between two native bodies
func contactBetween(a, b solver.Body, normal mgl64.Vec3, impulse float64) solver.Contact {
	return solver.Contact{
		BodyA:   a,
		BodyB:   b,
		Point:   mgl64.Vec3{0, 0.5, 0},
		Normal:  normal,
		Impulse: impulse,
	}
}
