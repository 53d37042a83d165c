package pick

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Pipeline runs the picking pipeline once per frame: pointer snapshot →
// backend query fan-out → hit merge → interaction state machine → event
// dispatch. Data flows strictly one direction per frame.
//
// Tick, UpdatePointer, and RemovePointer must be called from the frame loop
// goroutine. Backend queries fan out internally; everything they share is
// the immutable pointer snapshot.
type Pipeline struct {
	cfg Config
	log *zap.Logger

	registry   *Registry
	dispatcher *Dispatcher
	machine    *machine

	backends []backendRegistration
	disabled map[string]bool // from Config.DisabledBackends

	// pointerDisabled holds per-pointer backend toggles, independent of
	// the global config disable list.
	pointerDisabled map[PointerID]map[string]bool

	// captured routes a pointer's hits to one entity until released.
	captured map[PointerID]Entity

	// hitLists is this frame's exposed (pass-through limited) ranked list
	// per pointer, for consumers that look past the topmost entry.
	hitLists map[PointerID]RankedHitList

	events []Event // per-frame scratch, reused
}

// New creates a pipeline with the given configuration.
func New(cfg Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	disabled := make(map[string]bool, len(cfg.DisabledBackends))
	for _, name := range cfg.DisabledBackends {
		disabled[name] = true
	}
	log := zap.NewNop()
	return &Pipeline{
		cfg:             cfg,
		log:             log,
		registry:        NewRegistry(cfg.MaxPointers),
		dispatcher:      NewDispatcher(log),
		machine:         newMachine(cfg.DragThreshold, cfg.PassthroughDepth),
		disabled:        disabled,
		pointerDisabled: make(map[PointerID]map[string]bool),
		captured:        make(map[PointerID]Entity),
		hitLists:        make(map[PointerID]RankedHitList),
	}, nil
}

// SetLogger installs a logger for the degrade-gracefully paths (backend
// failures, listener panics, pointer-limit rejections). Defaults to a nop.
func (p *Pipeline) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	p.log = log
	p.dispatcher.setLogger(log)
}

// RegisterBackend adds a hit-testing backend. priority is the final
// deterministic tie-break when two backends report identical render order
// and depth; lower wins. targets lists the render targets the backend
// services; none means all targets.
func (p *Pipeline) RegisterBackend(b Backend, priority int, targets ...TargetID) {
	p.backends = append(p.backends, backendRegistration{
		backend:  b,
		priority: priority,
		targets:  targets,
	})
}

// SetBackendEnabled toggles one backend for one pointer. All backends start
// enabled for every pointer (minus the config's global disable list).
func (p *Pipeline) SetBackendEnabled(id PointerID, backend string, enabled bool) {
	m := p.pointerDisabled[id]
	if m == nil {
		if enabled {
			return
		}
		m = make(map[string]bool)
		p.pointerDisabled[id] = m
	}
	if enabled {
		delete(m, backend)
	} else {
		m[backend] = true
	}
}

// UpdatePointer replaces the pointer's sample for the coming frame. New
// pointers beyond the configured limit are rejected and logged.
func (p *Pipeline) UpdatePointer(id PointerID, sample PointerSample) {
	if !p.registry.Update(id, sample) {
		p.log.Warn("pick: pointer limit reached, sample dropped",
			zap.String("pointer", id.String()),
			zap.Int("limit", p.cfg.MaxPointers),
		)
	}
}

// RemovePointer removes a pointer (device disconnect), force-terminating
// any active interaction: Up for pressed entities, DragEnd for drags, then
// Out/Leave, dispatched immediately so no consumer is left mid-interaction.
func (p *Pipeline) RemovePointer(id PointerID) {
	p.events = p.machine.terminate(id, p.events[:0])
	p.dispatcher.Dispatch(p.events)
	p.registry.Remove(id)
	delete(p.captured, id)
	delete(p.pointerDisabled, id)
	delete(p.hitLists, id)
}

// CapturePointer routes all of a pointer's hits to the given entity until
// ReleaseCapture, bypassing backend queries for that pointer.
func (p *Pipeline) CapturePointer(id PointerID, e Entity) {
	p.captured[id] = e
}

// ReleaseCapture stops routing a pointer's hits to a captured entity.
func (p *Pipeline) ReleaseCapture(id PointerID) {
	delete(p.captured, id)
}

// On registers a listener for every event whose type is in mask.
func (p *Pipeline) On(mask EventMask, fn Listener) ListenerHandle {
	return p.dispatcher.On(mask, fn)
}

// OnEntity registers a listener scoped to events targeting entity.
func (p *Pipeline) OnEntity(e Entity, mask EventMask, fn Listener) ListenerHandle {
	return p.dispatcher.OnEntity(e, mask, fn)
}

// HitList returns the pointer's ranked hits from the last Tick, limited to
// the topmost entry plus the configured pass-through depth. The returned
// slice MUST NOT be mutated.
func (p *Pipeline) HitList(id PointerID) RankedHitList {
	return p.hitLists[id]
}

// State returns the interaction state of (pointer, entity) as of the last
// Tick.
func (p *Pipeline) State(id PointerID, e Entity) InteractionState {
	return p.machine.stateOf(id, e)
}

// HoveredBy returns the pointers currently hovering the entity, in
// deterministic order. An entity may be hovered by several pointers at
// once; each relationship is independent.
func (p *Pipeline) HoveredBy(e Entity) []PointerID {
	var out []PointerID
	for id, book := range p.machine.books {
		if book.hover.contains(e) {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].less(out[j]) })
	return out
}

// Tick runs one frame of the pipeline and dispatches the resulting events.
func (p *Pipeline) Tick() {
	pointers := p.registry.order // nothing mutates the registry mid-frame
	samples := make([]PointerSample, len(pointers))
	for i, id := range pointers {
		samples[i], _ = p.registry.Get(id)
	}

	results := p.queryBackends(pointers, samples)

	p.events = p.events[:0]
	for pi, id := range pointers {
		var list RankedHitList
		if e, ok := p.captured[id]; ok {
			list = RankedHitList{{Entity: e}}
		} else {
			perBackend := make([][]HitData, 0, len(p.backends))
			for bi := range p.backends {
				perBackend = append(perBackend, results[bi][pi])
			}
			list = mergeHits(nil, perBackend...)
		}
		p.hitLists[id] = list.window(p.cfg.PassthroughDepth)
		p.events = p.machine.advance(id, samples[pi], list, p.events)
	}
	p.machine.endFrame()

	p.dispatcher.Dispatch(p.events)
}

// queryBackends fans out one query per (backend, pointer) pair. Queries are
// independent: each reads only the immutable sample and writes only its own
// result slot, so no locks are needed.
func (p *Pipeline) queryBackends(pointers []PointerID, samples []PointerSample) [][][]HitData {
	results := make([][][]HitData, len(p.backends))
	for bi := range results {
		results[bi] = make([][]HitData, len(pointers))
	}
	if len(p.backends) == 0 || len(pointers) == 0 {
		return results
	}

	ctx := context.Background()
	if p.cfg.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.QueryTimeout)
		defer cancel()
	}

	var g errgroup.Group
	for bi := range p.backends {
		reg := &p.backends[bi]
		if p.disabled[reg.backend.Name()] {
			continue
		}
		for pi, id := range pointers {
			if _, ok := p.captured[id]; ok {
				continue
			}
			if !reg.services(samples[pi].Target) {
				continue
			}
			if p.pointerDisabled[id][reg.backend.Name()] {
				continue
			}
			sample := samples[pi]
			g.Go(func() error {
				results[bi][pi] = p.query(ctx, reg, sample)
				return nil
			})
		}
	}
	g.Wait() // queries never return errors; failures degrade to zero hits
	return results
}

// query invokes one backend for one pointer. Failures — errors, panics, or
// blowing the frame budget — degrade to zero hits and are logged, never
// propagated.
func (p *Pipeline) query(ctx context.Context, reg *backendRegistration, sample PointerSample) (hits []HitData) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("pick: backend panicked",
				zap.String("backend", reg.backend.Name()),
				zap.Any("panic", r),
			)
			hits = nil
		}
	}()

	out, err := reg.backend.Query(ctx, sample)
	if err != nil {
		p.log.Warn("pick: backend query failed",
			zap.String("backend", reg.backend.Name()),
			zap.Error(err),
		)
		return nil
	}
	if ctx.Err() != nil {
		p.log.Warn("pick: backend query exceeded frame budget",
			zap.String("backend", reg.backend.Name()),
			zap.Error(ctx.Err()),
		)
		return nil
	}
	for i := range out {
		out[i].priority = reg.priority
	}
	return out
}
