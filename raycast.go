package tether

import (
	"sort"

	"github.com/akmonengine/tether/scene"
	"github.com/akmonengine/tether/solver"
	"github.com/go-gl/mathgl/mgl64"
)

// MaxRayHits caps how many hits RaycastAll may return
const MaxRayHits = 256

// RayFilter narrows a ray query. The zero value passes every hit.
type RayFilter struct {
	// IgnoreBody drops hits on this id
	IgnoreBody BodyID
	// IgnoreSurface drops hits whose body is attached to this node
	IgnoreSurface *scene.Node
	// StaticOnly keeps bodies with mass 0 or the kinematic flag;
	// DynamicOnly keeps bodies with mass > 0 and no kinematic flag
	StaticOnly  bool
	DynamicOnly bool
	// Mask, when non-zero, requires a non-zero intersection with the
	// body's collide-with mask
	Mask uint32
}

// RayResult is one ray intersection. A miss is the zero value with Hit
// false; it is a normal result, not an error.
type RayResult struct {
	Hit      bool
	Body     BodyID
	Surface  *scene.Node
	Fraction float64
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
}

// Raycast returns the closest hit between from and to, unfiltered
func (s *Space) Raycast(from, to mgl64.Vec3) RayResult {
	return s.RaycastEx(from, to, RayFilter{})
}

// RaycastEx returns the closest hit passing the filter. Simulation thread
// only, like every world query.
func (s *Space) RaycastEx(from, to mgl64.Vec3, filter RayFilter) RayResult {
	var best RayResult
	for _, hit := range s.world.RayTest(from, to) {
		result, ok := s.resolveHit(hit, filter)
		if !ok {
			continue
		}
		if !best.Hit || result.Fraction < best.Fraction {
			best = result
		}
	}
	return best
}

// RaycastAll returns every hit passing the filter, ascending by fraction,
// truncated to maxHits (clamped to [1, MaxRayHits])
func (s *Space) RaycastAll(from, to mgl64.Vec3, filter RayFilter, maxHits int) []RayResult {
	maxHits = min(max(maxHits, 1), MaxRayHits)

	var results []RayResult
	for _, hit := range s.world.RayTest(from, to) {
		if result, ok := s.resolveHit(hit, filter); ok {
			results = append(results, result)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Fraction < results[j].Fraction
	})
	if len(results) > maxHits {
		results = results[:maxHits]
	}
	return results
}

// resolveHit maps a solver hit back to a handle and applies the filter.
// Hits on collision objects with no registered handle are skipped.
func (s *Space) resolveHit(hit solver.RayHit, filter RayFilter) (RayResult, bool) {
	id, ok := s.registry.resolve(hit.Body)
	if !ok {
		return RayResult{}, false
	}
	rec, ok := s.registry.record(id)
	if !ok {
		return RayResult{}, false
	}

	if filter.IgnoreBody != 0 && filter.IgnoreBody == id {
		return RayResult{}, false
	}
	if filter.IgnoreSurface != nil && filter.IgnoreSurface == rec.surface {
		return RayResult{}, false
	}
	if filter.StaticOnly && rec.dynamic() {
		return RayResult{}, false
	}
	if filter.DynamicOnly && !rec.dynamic() {
		return RayResult{}, false
	}
	if filter.Mask != 0 && filter.Mask&rec.mask == 0 {
		return RayResult{}, false
	}

	return RayResult{
		Hit:      true,
		Body:     id,
		Surface:  rec.surface,
		Fraction: hit.Fraction,
		Point:    hit.Point,
		Normal:   hit.Normal,
	}, true
}
