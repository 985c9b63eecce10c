// Command fallingBoxes wires the bridge to a deliberately tiny AABB solver:
// three crates drop onto a static floor, the collision lifecycle is printed,
// then a ray is cast down through the stack. The solver here stands in for
// the real third-party engine and only implements solver.World.
package main

import (
	"flag"
	"log"
	"math"

	"github.com/akmonengine/tether"
	"github.com/akmonengine/tether/scene"
	"github.com/akmonengine/tether/solver"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/profile"
)

type miniShape struct {
	halfExtents mgl64.Vec3
}

type miniBody struct {
	shape    *miniShape
	position mgl64.Vec3
	velocity mgl64.Vec3
	mass     float64
	dynamic  bool
}

func (b *miniBody) aabb() (mgl64.Vec3, mgl64.Vec3) {
	return b.position.Sub(b.shape.halfExtents), b.position.Add(b.shape.halfExtents)
}

// miniWorld is the solver collaborator: gravity integration, AABB overlap
// contacts, slab-test rays. Everything the bridge consumes, nothing more.
type miniWorld struct {
	gravity   mgl64.Vec3
	bodies    []*miniBody
	listener  solver.TickListener
	onContact func(solver.Contact)
}

func (w *miniWorld) BoxShape(halfExtents mgl64.Vec3) solver.Shape {
	return &miniShape{halfExtents: halfExtents}
}

func (w *miniWorld) SphereShape(radius float64) solver.Shape {
	return &miniShape{halfExtents: mgl64.Vec3{radius, radius, radius}}
}

func (w *miniWorld) CapsuleShape(radius, height float64) solver.Shape {
	return &miniShape{halfExtents: mgl64.Vec3{radius, height/2 + radius, radius}}
}

func (w *miniWorld) CylinderShape(halfExtents mgl64.Vec3) solver.Shape {
	return &miniShape{halfExtents: halfExtents}
}

func (w *miniWorld) MeshShape(vertices []mgl64.Vec3, indices []uint32, dynamic bool) solver.Shape {
	he := mgl64.Vec3{}
	for _, v := range vertices {
		for i := 0; i < 3; i++ {
			he[i] = math.Max(he[i], math.Abs(v[i]))
		}
	}
	return &miniShape{halfExtents: he}
}

func (w *miniWorld) NewBody(def solver.BodyDef) solver.Body {
	return &miniBody{
		shape:    def.Shape.(*miniShape),
		position: def.Position,
		mass:     def.Mass,
		dynamic:  def.Mass > 0 && !def.Kinematic,
	}
}

func (w *miniWorld) AddBody(body solver.Body) {
	w.bodies = append(w.bodies, body.(*miniBody))
}

func (w *miniWorld) RemoveBody(body solver.Body) {
	for i, b := range w.bodies {
		if b == body {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			return
		}
	}
}

func (w *miniWorld) SetTickListener(listener solver.TickListener) {
	w.listener = listener
}

func (w *miniWorld) SetContactCallback(fn func(solver.Contact)) {
	w.onContact = fn
}

// Step advances the world: pre-tick, integrate, report overlaps, post-tick
func (w *miniWorld) Step(dt float64) {
	w.listener.PrePhysicsTick(dt)

	for _, b := range w.bodies {
		if !b.dynamic {
			continue
		}
		b.velocity = b.velocity.Add(w.gravity.Mul(dt))
		b.position = b.position.Add(b.velocity.Mul(dt))
	}

	for i := 0; i < len(w.bodies); i++ {
		for j := i + 1; j < len(w.bodies); j++ {
			w.collide(w.bodies[i], w.bodies[j])
		}
	}

	w.listener.PostPhysicsTick(dt)
}

func (w *miniWorld) collide(a, b *miniBody) {
	minA, maxA := a.aabb()
	minB, maxB := b.aabb()

	overlap := mgl64.Vec3{}
	for i := 0; i < 3; i++ {
		overlap[i] = math.Min(maxA[i], maxB[i]) - math.Max(minA[i], minB[i])
		if overlap[i] <= 0 {
			return
		}
	}

	// Push out along the axis of least penetration
	axis := 0
	for i := 1; i < 3; i++ {
		if overlap[i] < overlap[axis] {
			axis = i
		}
	}
	normal := mgl64.Vec3{}
	if a.position[axis] < b.position[axis] {
		normal[axis] = 1
	} else {
		normal[axis] = -1
	}

	impulse := 0.0
	relative := b.velocity.Sub(a.velocity).Dot(normal)
	if relative < 0 {
		mass := math.Max(a.mass, b.mass)
		impulse = -relative * mass
	}

	// Crude resolution so stacks settle: stop the dynamic body and separate
	for _, body := range []*miniBody{a, b} {
		if !body.dynamic {
			continue
		}
		sign := 1.0
		if body == a {
			sign = -1.0
		}
		body.position = body.position.Add(normal.Mul(sign * overlap[axis]))
		if body.velocity.Dot(normal)*sign < 0 {
			body.velocity = body.velocity.Sub(normal.Mul(body.velocity.Dot(normal)))
		}
	}

	point := a.position.Add(b.position).Mul(0.5)
	w.onContact(solver.Contact{
		BodyA:   a,
		BodyB:   b,
		Point:   point,
		Normal:  normal,
		Impulse: impulse,
	})
}

// RayTest runs the slab test against every body's AABB
func (w *miniWorld) RayTest(from, to mgl64.Vec3) []solver.RayHit {
	var hits []solver.RayHit
	dir := to.Sub(from)

	for _, b := range w.bodies {
		boxMin, boxMax := b.aabb()
		tMin, tMax := 0.0, 1.0
		hitAxis := -1

		ok := true
		for i := 0; i < 3 && ok; i++ {
			if dir[i] == 0 {
				ok = from[i] >= boxMin[i] && from[i] <= boxMax[i]
				continue
			}
			t1 := (boxMin[i] - from[i]) / dir[i]
			t2 := (boxMax[i] - from[i]) / dir[i]
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			if t1 > tMin {
				tMin = t1
				hitAxis = i
			}
			tMax = math.Min(tMax, t2)
			ok = tMin <= tMax
		}
		if !ok || hitAxis < 0 {
			continue
		}

		normal := mgl64.Vec3{}
		if dir[hitAxis] > 0 {
			normal[hitAxis] = -1
		} else {
			normal[hitAxis] = 1
		}
		hits = append(hits, solver.RayHit{
			Body:     b,
			Fraction: tMin,
			Point:    from.Add(dir.Mul(tMin)),
			Normal:   normal,
		})
	}
	return hits
}

func boxNode(name string, halfExtents, position mgl64.Vec3) *scene.Node {
	return &scene.Node{
		Name: name,
		Kind: scene.KindBox,
		Bounds: scene.AABB{
			Min: halfExtents.Mul(-1),
			Max: halfExtents,
		},
		Transform: scene.Transform{
			Position: position,
			Rotation: mgl64.QuatIdent(),
		},
	}
}

func main() {
	cpuProfile := flag.Bool("profile", false, "write a CPU profile")
	steps := flag.Int("steps", 240, "number of simulation steps")
	flag.Parse()

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	world := &miniWorld{gravity: mgl64.Vec3{0, -9.81, 0}}
	space := tether.New(world)

	space.Events.Subscribe(tether.COLLISION_BEGIN, func(event tether.Event) {
		ev := event.(tether.CollisionBeginEvent)
		log.Printf("step %3d  begin  %s <-> %s  impulse=%.2f normal=%v",
			ev.Step, ev.BodyA.Surface, ev.BodyB.Surface, ev.Contact.MaxImpulse, ev.Contact.Normal)
	})
	space.Events.Subscribe(tether.COLLISION_END, func(event tether.Event) {
		ev := event.(tether.CollisionEndEvent)
		log.Printf("step %3d  end    %s <-> %s", ev.Step, ev.BodyA.Surface, ev.BodyB.Surface)
	})
	space.Events.Subscribe(tether.BODY_ADDED, func(event tether.Event) {
		ev := event.(tether.BodyAddedEvent)
		log.Printf("body added: %s (id %d)", ev.Body.Surface, ev.Body.Body)
	})

	if _, err := space.Create(tether.BodyConfig{
		Surface: boxNode("floor", mgl64.Vec3{20, 0.5, 20}, mgl64.Vec3{0, -0.5, 0}),
		Mass:    0,
	}); err != nil {
		log.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		_, err := space.Create(tether.BodyConfig{
			Surface:     boxNode("crate", mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{0, 3 + float64(i)*2, 0}),
			Mass:        10,
			Friction:    0.6,
			Restitution: 0.1,
		})
		if err != nil {
			log.Fatal(err)
		}
	}

	for i := 0; i < *steps; i++ {
		world.Step(1.0 / 60)
	}

	hits := space.RaycastAll(mgl64.Vec3{0, 10, 0}, mgl64.Vec3{0, -10, 0}, tether.RayFilter{}, 8)
	for _, hit := range hits {
		log.Printf("ray hit %s (id %d) at fraction %.3f", hit.Surface.Name, hit.Body, hit.Fraction)
	}
}
