package pick

import "context"

// HitData is one candidate intersection reported by a backend: the entity
// hit, a depth-like ranking (smaller = nearer within the same render order),
// and optionally the world-space position and surface normal of the hit.
// Immutable once returned from Query.
type HitData struct {
	Entity Entity
	// Depth ranks hits within one render order; smaller is nearer. Must be
	// non-negative.
	Depth float64
	// Order is the camera/render order used for cross-backend ranking.
	// Smaller values are treated as drawn in front; a backend drawing in
	// front wins regardless of the numeric depth scale.
	Order float64
	// Position and Normal are world-space hit details, when the backend can
	// compute them. Nil for backends that only test in screen space.
	Position *Vec3
	Normal   *Vec3

	// priority is the registration tie-break, stamped by the collector.
	priority int
}

// Backend is the contract a hit-testing strategy implements. A backend is
// invoked once per pointer per frame with the pointer's current sample and
// returns zero or more hits for entities it is responsible for testing.
//
// Zero hits is a valid, non-error outcome (pointer over empty space). An
// error degrades to zero hits for that pointer this frame; it is logged and
// never propagated. Queries must be self-terminating within the frame
// budget carried by ctx; a backend that cannot finish in time must return
// an empty result rather than stall the frame.
type Backend interface {
	// Name identifies the backend in logs and in the enable/disable
	// configuration surface.
	Name() string
	// Query hit-tests the pointer's current location.
	Query(ctx context.Context, sample PointerSample) ([]HitData, error)
}

// backendRegistration is one entry in the pipeline's backend list: the
// backend handle plus the registration-time declarations the pipeline needs
// to route and rank its hits. A tagged list of these, walked in a fixed
// order, keeps merge ordering auditable.
type backendRegistration struct {
	backend  Backend
	priority int        // final deterministic tie-break; lower wins
	targets  []TargetID // render targets serviced; nil = all
}

// services reports whether the registration covers the given render target.
func (r *backendRegistration) services(t TargetID) bool {
	if len(r.targets) == 0 {
		return true
	}
	for _, rt := range r.targets {
		if rt == t {
			return true
		}
	}
	return false
}
