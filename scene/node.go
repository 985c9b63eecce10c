package scene

import "github.com/go-gl/mathgl/mgl64"

// Kind classifies the renderable primitive a node represents
type Kind int

const (
	// KindGroup nodes carry no geometry of their own, only children
	KindGroup Kind = iota
	KindBox
	KindSphere
	KindCylinder
	// KindMesh nodes carry arbitrary geometry in Mesh
	KindMesh
)

// Transform represents a node's placement in 3D space
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
	}
}

// Mesh holds triangle geometry for a renderable surface.
// Mesh identity (the pointer) keys the collision shape cache, so a mesh
// shared between nodes must be shared as the same *Mesh value.
type Mesh struct {
	Vertices []mgl64.Vec3
	Indices  []uint32
}

// Node is the visual surface a physics body is attached to. It is the only
// thing this package knows about the scene graph: a primitive kind, local
// bounds, an optional mesh, and children for composite surfaces.
type Node struct {
	Name      string
	Kind      Kind
	Bounds    AABB
	Transform Transform
	Mesh      *Mesh
	Children  []*Node
}

// CollectMeshes appends every mesh in the subtree rooted at n, depth first
func (n *Node) CollectMeshes(out []*Mesh) []*Mesh {
	if n.Mesh != nil {
		out = append(out, n.Mesh)
	}
	for _, child := range n.Children {
		out = child.CollectMeshes(out)
	}
	return out
}
