package pick

import (
	"context"
	"math"
	"sort"
)

// Ray is a world-space ray with a normalized direction.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) Vec3 {
	return Vec3{
		X: r.Origin.X + t*r.Direction.X,
		Y: r.Origin.Y + t*r.Direction.Y,
		Z: r.Origin.Z + t*r.Direction.Z,
	}
}

// AABB is a world-space axis-aligned bounding box.
type AABB struct {
	Min, Max Vec3
}

// IntersectAABB tests the ray against the box using the slab method.
// Returns the entry distance, or the exit distance when the ray starts
// inside the box. The returned distance is never negative.
func (r Ray) IntersectAABB(box AABB) (t float64, hit bool) {
	tmin := math.Inf(-1)
	tmax := math.Inf(1)

	axes := [3][3]float64{
		{r.Origin.X, r.Direction.X, 0},
		{r.Origin.Y, r.Direction.Y, 0},
		{r.Origin.Z, r.Direction.Z, 0},
	}
	mins := [3]float64{box.Min.X, box.Min.Y, box.Min.Z}
	maxs := [3]float64{box.Max.X, box.Max.Y, box.Max.Z}

	for i := 0; i < 3; i++ {
		origin, dir := axes[i][0], axes[i][1]
		if dir != 0 {
			t1 := (mins[i] - origin) / dir
			t2 := (maxs[i] - origin) / dir
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			if t1 > tmin {
				tmin = t1
			}
			if t2 < tmax {
				tmax = t2
			}
		} else if origin < mins[i] || origin > maxs[i] {
			return 0, false
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// faceNormal returns the outward normal of the box face nearest to p.
func (box AABB) faceNormal(p Vec3) Vec3 {
	type face struct {
		dist   float64
		normal Vec3
	}
	faces := []face{
		{math.Abs(p.X - box.Min.X), Vec3{X: -1}},
		{math.Abs(p.X - box.Max.X), Vec3{X: 1}},
		{math.Abs(p.Y - box.Min.Y), Vec3{Y: -1}},
		{math.Abs(p.Y - box.Max.Y), Vec3{Y: 1}},
		{math.Abs(p.Z - box.Min.Z), Vec3{Z: -1}},
		{math.Abs(p.Z - box.Max.Z), Vec3{Z: 1}},
	}
	best := faces[0]
	for _, f := range faces[1:] {
		if f.dist < best.dist {
			best = f
		}
	}
	return best.normal
}

// Volume is one pickable world-space box registered with a VolumeBackend.
type Volume struct {
	Entity   Entity
	Box      AABB
	Disabled bool
}

// Projector converts a screen position into a world-space ray, typically by
// unprojecting through the host camera's inverse view-projection matrix.
// ok is false when the position falls outside the camera's viewport, which
// skips the backend for that pointer this frame.
type Projector func(Vec2) (ray Ray, ok bool)

// VolumeBackend casts rays against world-space AABBs, reporting the ray
// distance as depth plus the world-space hit position and face normal.
//
// Add and Remove must not race Pipeline.Tick; mutate between frames.
type VolumeBackend struct {
	name      string
	order     float64
	projector Projector
	volumes   []*Volume
}

// NewVolumeBackend creates a volume backend reporting the given render
// order, unprojecting pointer positions with projector.
func NewVolumeBackend(name string, order float64, projector Projector) *VolumeBackend {
	return &VolumeBackend{name: name, order: order, projector: projector}
}

// Name implements Backend.
func (b *VolumeBackend) Name() string { return b.name }

// Add registers a volume for an entity and returns it for later mutation.
func (b *VolumeBackend) Add(e Entity, box AABB) *Volume {
	v := &Volume{Entity: e, Box: box}
	b.volumes = append(b.volumes, v)
	return v
}

// Remove drops every volume registered for the entity.
func (b *VolumeBackend) Remove(e Entity) {
	kept := b.volumes[:0]
	for _, v := range b.volumes {
		if v.Entity != e {
			kept = append(kept, v)
		}
	}
	for i := len(kept); i < len(b.volumes); i++ {
		b.volumes[i] = nil
	}
	b.volumes = kept
}

// Query implements Backend.
func (b *VolumeBackend) Query(_ context.Context, sample PointerSample) ([]HitData, error) {
	if b.projector == nil {
		return nil, nil
	}
	ray, ok := b.projector(sample.Position)
	if !ok {
		return nil, nil
	}

	var hits []HitData
	for _, v := range b.volumes {
		if v.Disabled {
			continue
		}
		t, hit := ray.IntersectAABB(v.Box)
		if !hit {
			continue
		}
		p := ray.At(t)
		n := v.Box.faceNormal(p)
		hits = append(hits, HitData{
			Entity:   v.Entity,
			Depth:    t,
			Order:    b.order,
			Position: &p,
			Normal:   &n,
		})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Depth != hits[j].Depth {
			return hits[i].Depth < hits[j].Depth
		}
		return hits[i].Entity < hits[j].Entity
	})
	return hits, nil
}
