package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestAABBOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    AABB
		b    AABB
		want bool
	}{
		{
			name: "Separated on X axis",
			a:    AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}},
			b:    AABB{Min: mgl64.Vec3{2, 0, 0}, Max: mgl64.Vec3{3, 1, 1}},
			want: false,
		},
		{
			name: "Overlapping",
			a:    AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}},
			b:    AABB{Min: mgl64.Vec3{0.5, 0.5, 0.5}, Max: mgl64.Vec3{2, 2, 2}},
			want: true,
		},
		{
			name: "Touching faces",
			a:    AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}},
			b:    AABB{Min: mgl64.Vec3{1, 0, 0}, Max: mgl64.Vec3{2, 1, 1}},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAABBHalfExtentsAndCenter(t *testing.T) {
	box := AABB{Min: mgl64.Vec3{-1, 0, 2}, Max: mgl64.Vec3{3, 4, 4}}

	if he := box.HalfExtents(); he != (mgl64.Vec3{2, 2, 1}) {
		t.Errorf("HalfExtents() = %v, want {2,2,1}", he)
	}
	if c := box.Center(); c != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("Center() = %v, want {1,2,3}", c)
	}
}

func TestNodeCollectMeshes(t *testing.T) {
	left := &Mesh{}
	right := &Mesh{}
	root := &Node{
		Kind: KindGroup,
		Children: []*Node{
			{Kind: KindMesh, Mesh: left},
			{Kind: KindGroup, Children: []*Node{
				{Kind: KindMesh, Mesh: right},
			}},
			{Kind: KindBox},
		},
	}

	meshes := root.CollectMeshes(nil)
	if len(meshes) != 2 {
		t.Fatalf("Expected 2 meshes, got %d", len(meshes))
	}
	if meshes[0] != left || meshes[1] != right {
		t.Error("Expected depth-first mesh order")
	}
}
