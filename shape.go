package tether

import (
	"fmt"
	"math"
	"sync"

	"github.com/akmonengine/tether/scene"
	"github.com/akmonengine/tether/solver"
	"github.com/go-gl/mathgl/mgl64"
)

// shapeEpsilon floors degenerate bounding extents so no solver shape ends up
// with zero volume
const shapeEpsilon = 1e-4

type shapeCacheKey struct {
	mesh    *scene.Mesh
	dynamic bool
}

// shapeSelector builds solver shapes for renderable surfaces. Closed-form
// primitives are derived straight from local bounds; mesh-derived shapes are
// cached by (mesh identity, dynamic flag) so the same mesh never builds
// twice; composite subtrees fall back to a fresh merged mesh, uncached.
// Cache entries are read-mostly and shared freely once published.
type shapeSelector struct {
	factory solver.ShapeFactory

	mu    sync.Mutex
	cache map[shapeCacheKey]solver.Shape
}

func newShapeSelector(factory solver.ShapeFactory) *shapeSelector {
	return &shapeSelector{
		factory: factory,
		cache:   make(map[shapeCacheKey]solver.Shape),
	}
}

// Select resolves the configured collider into a solver shape. Explicit
// collider descriptions build directly from their parameters; ColliderAuto
// derives from the surface node.
func (s *shapeSelector) Select(cfg BodyConfig, dynamic bool) (solver.Shape, error) {
	c := cfg.Collider
	switch c.Type {
	case ColliderAuto:
		return s.derive(cfg.Surface, dynamic)
	case ColliderBox:
		return s.factory.BoxShape(clampExtents(c.HalfExtents)), nil
	case ColliderSphere:
		return s.factory.SphereShape(math.Max(c.Radius, shapeEpsilon)), nil
	case ColliderCapsule:
		return s.factory.CapsuleShape(math.Max(c.Radius, shapeEpsilon), math.Max(c.Height, shapeEpsilon)), nil
	case ColliderCylinder:
		return s.factory.CylinderShape(clampExtents(c.HalfExtents)), nil
	case ColliderMesh:
		if dynamic {
			return nil, ErrMeshOnDynamic
		}
		return s.meshShape(cfg.Surface, c.Mesh, false)
	case ColliderDynamicMesh:
		return s.meshShape(cfg.Surface, c.Mesh, true)
	}
	return nil, fmt.Errorf("tether: unknown collider type %d", c.Type)
}

// derive implements the auto strategy: (1) a closed-form primitive from the
// node's local bounds, far cheaper than any mesh shape; (2) a cached shape
// for mesh-backed nodes; (3) a fresh merged-subtree mesh as a last resort
// for composite or unknown geometry.
func (s *shapeSelector) derive(node *scene.Node, dynamic bool) (solver.Shape, error) {
	switch node.Kind {
	case scene.KindBox:
		return s.factory.BoxShape(clampExtents(node.Bounds.HalfExtents())), nil
	case scene.KindSphere:
		he := clampExtents(node.Bounds.HalfExtents())
		radius := math.Max(he.X(), math.Max(he.Y(), he.Z()))
		return s.factory.SphereShape(radius), nil
	case scene.KindCylinder:
		return s.factory.CylinderShape(clampExtents(node.Bounds.HalfExtents())), nil
	}

	if node.Mesh != nil {
		return s.cached(node.Mesh, dynamic), nil
	}

	meshes := node.CollectMeshes(nil)
	if len(meshes) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoGeometry, node.Name)
	}
	vertices, indices := mergeMeshes(meshes)
	return s.factory.MeshShape(vertices, indices, dynamic), nil
}

// meshShape resolves an explicit mesh collider, preferring the configured
// mesh over the surface's own
func (s *shapeSelector) meshShape(node *scene.Node, mesh *scene.Mesh, dynamic bool) (solver.Shape, error) {
	if mesh == nil {
		mesh = node.Mesh
	}
	if mesh == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoGeometry, node.Name)
	}
	return s.cached(mesh, dynamic), nil
}

// cached returns the one shape instance for (mesh, dynamic), building it on
// first use
func (s *shapeSelector) cached(mesh *scene.Mesh, dynamic bool) solver.Shape {
	key := shapeCacheKey{mesh: mesh, dynamic: dynamic}

	s.mu.Lock()
	defer s.mu.Unlock()
	if shape, ok := s.cache[key]; ok {
		return shape
	}
	shape := s.factory.MeshShape(mesh.Vertices, mesh.Indices, dynamic)
	s.cache[key] = shape
	return shape
}

func clampExtents(he mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		math.Max(he.X(), shapeEpsilon),
		math.Max(he.Y(), shapeEpsilon),
		math.Max(he.Z(), shapeEpsilon),
	}
}

// mergeMeshes concatenates subtree geometry into one vertex/index pair
func mergeMeshes(meshes []*scene.Mesh) ([]mgl64.Vec3, []uint32) {
	var total, totalIdx int
	for _, m := range meshes {
		total += len(m.Vertices)
		totalIdx += len(m.Indices)
	}

	vertices := make([]mgl64.Vec3, 0, total)
	indices := make([]uint32, 0, totalIdx)
	for _, m := range meshes {
		base := uint32(len(vertices))
		vertices = append(vertices, m.Vertices...)
		for _, idx := range m.Indices {
			indices = append(indices, base+idx)
		}
	}
	return vertices, indices
}
