package pick

import (
	"encoding/json"
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// driverStep is a single action in a pointer script.
type driverStep struct {
	Action string  `json:"action"` // jump, move, press, release, wait, remove
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Button string  `json:"button,omitempty"` // primary (default), secondary, middle
	Smooth bool    `json:"smooth,omitempty"` // ease in/out instead of linear motion
}

// driverScript is the top-level JSON structure for a pointer script.
type driverScript struct {
	Steps []driverStep `json:"steps"`
}

// Driver sequences synthetic pointer input across frames: teleports, eased
// movements, button presses and releases, and pointer removal. It exists
// for deterministic interaction tests and demo automation — one Driver
// drives one pointer, and several Drivers can run concurrently against the
// same pipeline without cross-talk.
type Driver struct {
	pointer PointerID
	target  TargetID

	steps  []driverStep
	cursor int

	pos     Vec2
	buttons ButtonSet

	tweenX    *gween.Tween
	tweenY    *gween.Tween
	waitCount int
	removed   bool
}

// NewDriver creates a driver for the given pointer on the given target.
// Queue actions with MoveTo, JumpTo, Press, Release, Wait, and Remove, or
// load a JSON script with LoadScript.
func NewDriver(pointer PointerID, target TargetID) *Driver {
	return &Driver{pointer: pointer, target: target}
}

// LoadScript parses a JSON pointer script and appends its steps.
func (d *Driver) LoadScript(jsonData []byte) error {
	var script driverScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return fmt.Errorf("parse pointer script: %w", err)
	}
	if len(script.Steps) == 0 {
		return fmt.Errorf("parse pointer script: no steps")
	}
	for _, s := range script.Steps {
		if _, err := parseButton(s.Button); err != nil {
			return fmt.Errorf("parse pointer script: %w", err)
		}
	}
	d.steps = append(d.steps, script.Steps...)
	return nil
}

// JumpTo queues an instant reposition.
func (d *Driver) JumpTo(x, y float64) *Driver {
	d.steps = append(d.steps, driverStep{Action: "jump", X: x, Y: y})
	return d
}

// MoveTo queues a movement to (x, y) spread over the given frame count.
func (d *Driver) MoveTo(x, y float64, frames int) *Driver {
	d.steps = append(d.steps, driverStep{Action: "move", X: x, Y: y, Frames: frames})
	return d
}

// MoveToSmooth is MoveTo with ease-in/out motion instead of linear.
func (d *Driver) MoveToSmooth(x, y float64, frames int) *Driver {
	d.steps = append(d.steps, driverStep{Action: "move", X: x, Y: y, Frames: frames, Smooth: true})
	return d
}

// Press queues a button press.
func (d *Driver) Press(b PointerButton) *Driver {
	d.steps = append(d.steps, driverStep{Action: "press", Button: buttonName(b)})
	return d
}

// Release queues a button release.
func (d *Driver) Release(b PointerButton) *Driver {
	d.steps = append(d.steps, driverStep{Action: "release", Button: buttonName(b)})
	return d
}

// Wait queues the given number of idle frames.
func (d *Driver) Wait(frames int) *Driver {
	d.steps = append(d.steps, driverStep{Action: "wait", Frames: frames})
	return d
}

// Remove queues pointer removal (device disconnect).
func (d *Driver) Remove() *Driver {
	d.steps = append(d.steps, driverStep{Action: "remove"})
	return d
}

// Done reports whether all queued steps have been executed.
func (d *Driver) Done() bool {
	return d.removed || (d.cursor >= len(d.steps) && d.tweenX == nil && d.waitCount == 0)
}

// Step advances the driver by one frame, feeding the pipeline the pointer's
// sample for this frame. Call once per frame before Pipeline.Tick. After
// the script finishes the pointer keeps reporting its final sample until
// removed.
func (d *Driver) Step(p *Pipeline) {
	if d.removed {
		return
	}

	const dt = 1.0 / 60.0

	switch {
	case d.tweenX != nil:
		x, doneX := d.tweenX.Update(dt)
		y, doneY := d.tweenY.Update(dt)
		d.pos = Vec2{X: float64(x), Y: float64(y)}
		if doneX && doneY {
			d.tweenX, d.tweenY = nil, nil
		}
	case d.waitCount > 0:
		d.waitCount--
	default:
		if !d.startNext(p) {
			return
		}
	}

	p.UpdatePointer(d.pointer, PointerSample{
		Position: d.pos,
		Target:   d.target,
		Buttons:  d.buttons,
	})
}

// startNext consumes steps until one occupies the frame. Instantaneous
// steps (jump, press, release) combine with the frame they start on.
// Returns false when the pointer was removed this frame.
func (d *Driver) startNext(p *Pipeline) bool {
	for d.cursor < len(d.steps) {
		step := d.steps[d.cursor]
		d.cursor++

		switch step.Action {
		case "jump":
			d.pos = Vec2{X: step.X, Y: step.Y}
		case "move":
			frames := step.Frames
			if frames < 1 {
				frames = 1
			}
			duration := float32(frames) / 60.0
			fn := ease.Linear
			if step.Smooth {
				fn = ease.InOutQuad
			}
			d.tweenX = gween.New(float32(d.pos.X), float32(step.X), duration, fn)
			d.tweenY = gween.New(float32(d.pos.Y), float32(step.Y), duration, fn)
			x, doneX := d.tweenX.Update(1.0 / 60.0)
			y, doneY := d.tweenY.Update(1.0 / 60.0)
			d.pos = Vec2{X: float64(x), Y: float64(y)}
			if doneX && doneY {
				d.tweenX, d.tweenY = nil, nil
			}
			return true
		case "press":
			b, _ := parseButton(step.Button)
			d.buttons = d.buttons.With(b)
			return true
		case "release":
			b, _ := parseButton(step.Button)
			d.buttons = d.buttons.Without(b)
			return true
		case "wait":
			if step.Frames > 1 {
				d.waitCount = step.Frames - 1
			}
			return true
		case "remove":
			d.removed = true
			p.RemovePointer(d.pointer)
			return false
		}
	}
	return true
}

func parseButton(name string) (PointerButton, error) {
	switch name {
	case "", "primary":
		return ButtonPrimary, nil
	case "secondary":
		return ButtonSecondary, nil
	case "middle":
		return ButtonMiddle, nil
	default:
		return ButtonPrimary, fmt.Errorf("unknown button %q", name)
	}
}

func buttonName(b PointerButton) string {
	switch b {
	case ButtonSecondary:
		return "secondary"
	case ButtonMiddle:
		return "middle"
	default:
		return "primary"
	}
}
