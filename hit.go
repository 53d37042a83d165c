package pick

import "sort"

// RankedHitList is one pointer's merged, ordered hit candidates for the
// current frame. The first entry is the pointer's topmost target; later
// entries let consumers look past a transparent front object. Rebuilt from
// scratch every frame, never mutated in place.
type RankedHitList []HitData

// Topmost returns the first entry, if any.
func (l RankedHitList) Topmost() (HitData, bool) {
	if len(l) == 0 {
		return HitData{}, false
	}
	return l[0], true
}

// mergeHits concatenates per-backend hit lists into dst and sorts them into
// the ranked order: render order ascending (a backend drawing in front wins
// regardless of depth scale), then depth ascending, then registration
// priority ascending, then entity ascending. The final key makes the order
// total, so the merged list is identical for any permutation of the inputs.
func mergeHits(dst RankedHitList, lists ...[]HitData) RankedHitList {
	for _, hits := range lists {
		dst = append(dst, hits...)
	}
	sort.Slice(dst, func(i, j int) bool {
		a, b := dst[i], dst[j]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		if a.Depth != b.Depth {
			return a.Depth < b.Depth
		}
		if a.priority != b.priority {
			return a.priority < b.priority
		}
		return a.Entity < b.Entity
	})
	return dst
}

// window limits the ranked list to the topmost entry plus depth pass-through
// entries. The state machine treats exactly this window as "hovered".
func (l RankedHitList) window(depth int) RankedHitList {
	n := 1 + depth
	if len(l) <= n {
		return l
	}
	return l[:n]
}

// contains reports whether e appears anywhere in the list.
func (l RankedHitList) contains(e Entity) bool {
	for _, h := range l {
		if h.Entity == e {
			return true
		}
	}
	return false
}

// find returns the hit for e, if present.
func (l RankedHitList) find(e Entity) (HitData, bool) {
	for _, h := range l {
		if h.Entity == e {
			return h, true
		}
	}
	return HitData{}, false
}
