package pick

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// InputFeed samples Ebitengine mouse and touch state once per frame and
// feeds it into a pipeline: the mouse becomes the mouse pointer, each touch
// contact becomes its own touch pointer, and ended contacts remove their
// pointer (which force-terminates any interaction they had in flight).
//
// Call Feed from your game's Update, before Pipeline.Tick:
//
//	func (g *Game) Update() error {
//		g.feed.Feed(g.pipeline)
//		g.pipeline.Tick()
//		return nil
//	}
type InputFeed struct {
	// Target is the render target stamped on every sample this feed
	// produces. Single-window hosts can leave it as PrimaryTarget.
	Target TargetID

	touchBuf []ebiten.TouchID
	live     map[ebiten.TouchID]bool
}

// NewInputFeed creates a feed for the given render target.
func NewInputFeed(target TargetID) *InputFeed {
	return &InputFeed{Target: target, live: make(map[ebiten.TouchID]bool)}
}

// Feed reads the current device state and updates the pipeline's pointers.
func (f *InputFeed) Feed(p *Pipeline) {
	f.feedMouse(p)
	f.feedTouches(p)
}

func (f *InputFeed) feedMouse(p *Pipeline) {
	mx, my := ebiten.CursorPosition()

	var buttons ButtonSet
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		buttons = buttons.With(ButtonPrimary)
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		buttons = buttons.With(ButtonSecondary)
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		buttons = buttons.With(ButtonMiddle)
	}

	p.UpdatePointer(MousePointer(), PointerSample{
		Position: Vec2{X: float64(mx), Y: float64(my)},
		Target:   f.Target,
		Buttons:  buttons,
	})
}

func (f *InputFeed) feedTouches(p *Pipeline) {
	f.touchBuf = ebiten.AppendTouchIDs(f.touchBuf[:0])

	seen := make(map[ebiten.TouchID]bool, len(f.touchBuf))
	for _, tid := range f.touchBuf {
		seen[tid] = true
		tx, ty := ebiten.TouchPosition(tid)
		p.UpdatePointer(TouchPointer(int64(tid)), PointerSample{
			Position: Vec2{X: float64(tx), Y: float64(ty)},
			Target:   f.Target,
			// A live touch contact is a held primary button.
			Buttons: ButtonSet(0).With(ButtonPrimary),
		})
		f.live[tid] = true
	}

	for tid := range f.live {
		if !seen[tid] {
			delete(f.live, tid)
			p.RemovePointer(TouchPointer(int64(tid)))
		}
	}
}
