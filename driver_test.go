package pick

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// run steps the driver and ticks the pipeline until the script finishes.
func run(t *testing.T, d *Driver, p *Pipeline) {
	t.Helper()
	for i := 0; !d.Done(); i++ {
		require.Less(t, i, 1000, "script did not finish")
		d.Step(p)
		p.Tick()
	}
}

func TestDriver_Click(t *testing.T) {
	p, rec := testScene(t, DefaultConfig())
	d := NewDriver(CustomPointer(), PrimaryTarget).
		JumpTo(50, 50).
		Press(ButtonPrimary).
		Release(ButtonPrimary)

	run(t, d, p)

	require.Equal(t,
		[]string{"Over(1)", "Enter(1)", "Down(1)", "Up(1)", "Click(1)"},
		names(rec.take()))
}

func TestDriver_DragAndDrop(t *testing.T) {
	p, rec := testScene(t, DefaultConfig())
	d := NewDriver(CustomPointer(), PrimaryTarget).
		JumpTo(50, 50).
		Press(ButtonPrimary).
		MoveTo(250, 50, 4).
		Release(ButtonPrimary)

	run(t, d, p)

	got := names(rec.take())
	require.Contains(t, got, "DragStart(1)")
	require.Contains(t, got, "DragEnd(1)")
	require.Contains(t, got, "Drop(2)")
	require.NotContains(t, got, "Click(1)")
	require.NotContains(t, got, "Click(2)")
}

func TestDriver_MoveReachesTarget(t *testing.T) {
	p := newTestPipeline(t, DefaultConfig())
	d := NewDriver(CustomPointer(), PrimaryTarget).
		JumpTo(0, 0).
		MoveToSmooth(120, 80, 6)

	frames := 0
	for !d.Done() {
		d.Step(p)
		p.Tick()
		frames++
	}

	require.Equal(t, 6, frames, "movement occupies exactly its frame count")
	require.Equal(t, Vec2{X: 120, Y: 80}, d.pos, "eased movement ends on the target")
}

func TestDriver_WaitAndRemove(t *testing.T) {
	p, rec := testScene(t, DefaultConfig())
	ptr := CustomPointer()
	d := NewDriver(ptr, PrimaryTarget).
		JumpTo(50, 50).
		Press(ButtonPrimary).
		Wait(3).
		Remove()

	frames := 0
	for !d.Done() {
		d.Step(p)
		p.Tick()
		frames++
	}
	// jump+press share frame 1, the wait holds frames 2-4, remove ends it.
	require.Equal(t, 5, frames)

	got := names(rec.take())
	require.Equal(t, []string{"Over(1)", "Enter(1)", "Down(1)", "Up(1)", "Out(1)", "Leave(1)"}, got)
	require.Equal(t, StateNone, p.State(ptr, entityA))

	// Stepping a removed driver is inert.
	d.Step(p)
	p.Tick()
	require.Empty(t, rec.take())
}

func TestDriver_LoadScript(t *testing.T) {
	p, rec := testScene(t, DefaultConfig())
	d := NewDriver(CustomPointer(), PrimaryTarget)

	script := []byte(`{
		"steps": [
			{"action": "jump", "x": 50, "y": 50},
			{"action": "press", "button": "secondary"},
			{"action": "release", "button": "secondary"}
		]
	}`)
	require.NoError(t, d.LoadScript(script))

	run(t, d, p)

	evs := rec.take()
	require.Equal(t, []string{"Over(1)", "Enter(1)", "Down(1)", "Up(1)", "Click(1)"}, names(evs))
	require.Equal(t, ButtonSecondary, evs[2].Button)
}

func TestDriver_LoadScript_Errors(t *testing.T) {
	d := NewDriver(CustomPointer(), PrimaryTarget)

	require.Error(t, d.LoadScript([]byte(`{"steps": [`)), "malformed JSON")
	require.Error(t, d.LoadScript([]byte(`{"steps": []}`)), "empty script")
	require.Error(t, d.LoadScript([]byte(`{"steps": [{"action": "press", "button": "pinky"}]}`)), "unknown button")
	require.True(t, d.Done(), "failed loads must not enqueue steps")
}
