package dbfader

import (
	"errors"
	"math"
	"testing"
)

// a 50 wide rail from 0 to 220 has a circle handle radius of 20, so the travel runs from 200
// (normalized 0) up to 20 (normalized 1)
var testExtent = Extent{Top: 0, Bottom: 220, Width: 50}

func newTestFader(t *testing.T, cfg FaderConfig) *Fader[Mono] {
	t.Helper()
	f, err := NewFader[Mono]("test", cfg, NewStore[Mono]())
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func linearConfig() FaderConfig {
	cfg := DefaultFaderConfig()
	cfg.Increments = Increments{-100, 10}
	return cfg
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func TestDoubleClickResetsToNeutral(t *testing.T) {
	f := newTestFader(t, linearConfig())
	level := float32(-40)
	frame := f.Tick(&level, Input{DoubleClicked: true, Extent: testExtent}, Mono{NegInf})
	if level != 0 {
		t.Fatalf("level=%v want=0", level)
	}
	if !frame.Changed || frame.Level != 0 {
		t.Fatalf("frame=%+v want changed to 0", frame)
	}
}

func TestDoubleClickClampsNeutral(t *testing.T) {
	cfg := linearConfig()
	cfg.NeutralLevel = 20
	f := newTestFader(t, cfg)
	level := float32(-40)
	f.Tick(&level, Input{DoubleClicked: true, Extent: testExtent}, Mono{NegInf})
	if level != 10 {
		t.Fatalf("level=%v want=10", level)
	}

	cfg.NeutralLevel = -200
	f = newTestFader(t, cfg)
	f.Tick(&level, Input{DoubleClicked: true, Extent: testExtent}, Mono{NegInf})
	if level != -100 {
		t.Fatalf("level=%v want=-100", level)
	}
}

func TestDoubleClickFromNegInf(t *testing.T) {
	f := newTestFader(t, linearConfig())
	level := NegInf
	frame := f.Tick(&level, Input{DoubleClicked: true, Extent: testExtent}, Mono{NegInf})
	if level != 0 || !frame.Changed {
		t.Fatalf("level=%v changed=%v", level, frame.Changed)
	}
}

func TestNoInteractionLeavesLevel(t *testing.T) {
	f := newTestFader(t, DefaultFaderConfig())
	level := float32(-7)
	frame := f.Tick(&level, Input{Extent: testExtent}, Mono{-12})
	if level != -7 || frame.Changed {
		t.Fatalf("level=%v changed=%v", level, frame.Changed)
	}

	// a drag flag with no motion is also no change
	frame = f.Tick(&level, Input{Dragging: true, Extent: testExtent}, Mono{-12})
	if level != -7 || frame.Changed {
		t.Fatalf("level=%v changed=%v", level, frame.Changed)
	}
}

func TestDragUpIncreasesLevel(t *testing.T) {
	f := newTestFader(t, linearConfig())
	level := float32(-45)
	frame := f.Tick(&level, Input{Dragging: true, DragDelta: -18, Extent: testExtent}, Mono{NegInf})
	if !approx(level, -34) {
		t.Fatalf("level=%v want=-34", level)
	}
	if !frame.Changed {
		t.Fatal("expected changed")
	}
	if !approx(frame.Handle, 0.6) || !approx(frame.HandlePosition, 92) {
		t.Fatalf("handle=%v position=%v want=0.6,92", frame.Handle, frame.HandlePosition)
	}

	f.Tick(&level, Input{Dragging: true, DragDelta: 36, Extent: testExtent}, Mono{NegInf})
	if !approx(level, -56) {
		t.Fatalf("level=%v want=-56", level)
	}
}

func TestFineDragScaling(t *testing.T) {
	f := newTestFader(t, linearConfig())
	const start = float32(-45)

	coarse := start
	f.Tick(&coarse, Input{Dragging: true, DragDelta: -18, Extent: testExtent}, Mono{NegInf})

	for _, mods := range []Modifiers{{Ctrl: true}, {Shift: true}, {Alt: true}, {Ctrl: true, Shift: true}} {
		fine := start
		f.Tick(&fine, Input{Dragging: true, DragDelta: -18, Modifiers: mods, Extent: testExtent}, Mono{NegInf})
		if !approx(fine-start, DefaultFineDragRatio*(coarse-start)) {
			t.Errorf("%+v: fine change=%v want=%v", mods, fine-start, DefaultFineDragRatio*(coarse-start))
		}
	}
}

func TestConfiguredFineDragRatio(t *testing.T) {
	cfg := linearConfig()
	cfg.FineDragRatio = 0.5
	f := newTestFader(t, cfg)
	level := float32(-45)
	f.Tick(&level, Input{Dragging: true, DragDelta: -18, Modifiers: Modifiers{Shift: true}, Extent: testExtent}, Mono{NegInf})
	if !approx(level, -39.5) {
		t.Fatalf("level=%v want=-39.5", level)
	}
}

func TestDragClampsToTravel(t *testing.T) {
	f := newTestFader(t, linearConfig())
	level := float32(0)
	f.Tick(&level, Input{Dragging: true, DragDelta: -1000, Extent: testExtent}, Mono{NegInf})
	if level != 10 {
		t.Fatalf("level=%v want=10", level)
	}
	f.Tick(&level, Input{Dragging: true, DragDelta: 1000, Extent: testExtent}, Mono{NegInf})
	if level != NegInf {
		t.Fatalf("level=%v want=-inf", level)
	}

	// dragging further down from -inf is not a change
	frame := f.Tick(&level, Input{Dragging: true, DragDelta: 5, Extent: testExtent}, Mono{NegInf})
	if frame.Changed || level != NegInf {
		t.Fatalf("level=%v changed=%v", level, frame.Changed)
	}

	// and dragging up from -inf starts from the bottom of the travel
	f.Tick(&level, Input{Dragging: true, DragDelta: -90, Extent: testExtent}, Mono{NegInf})
	if !approx(level, -45) {
		t.Fatalf("level=%v want=-45", level)
	}
}

func TestOutOfRangeLevelIsClampedByDrag(t *testing.T) {
	f := newTestFader(t, linearConfig())
	level := float32(50)
	frame := f.Tick(&level, Input{Extent: testExtent}, Mono{NegInf})
	if frame.Handle != 1 || frame.HandlePosition != 20 {
		t.Fatalf("handle=%v position=%v want=1,20", frame.Handle, frame.HandlePosition)
	}
	f.Tick(&level, Input{Dragging: true, DragDelta: 18, Extent: testExtent}, Mono{NegInf})
	if !approx(level, -1) {
		t.Fatalf("level=%v want=-1", level)
	}
}

func TestRectHandleShrinksTravel(t *testing.T) {
	cfg := linearConfig()
	cfg.Handle = HandleRect
	cfg.HandleAspect = 0.5
	f := newTestFader(t, cfg)
	rng := f.PositionRange(testExtent)
	if rng.Start != 210 || rng.End != 10 {
		t.Fatalf("range=%+v want=210..10", rng)
	}
}

func TestCollapsedTravelIgnoresDrag(t *testing.T) {
	f := newTestFader(t, linearConfig())
	level := float32(-20)
	frame := f.Tick(&level, Input{Dragging: true, DragDelta: -10, Extent: Extent{Top: 0, Bottom: 30, Width: 50}}, Mono{NegInf})
	if level != -20 || frame.Changed {
		t.Fatalf("level=%v changed=%v", level, frame.Changed)
	}
}

func TestTickTracksPeaks(t *testing.T) {
	cfg := linearConfig()
	cfg.PeakBufferSize = 3
	f := newTestFader(t, cfg)
	level := float32(0)
	signals := []float32{-50, -12, -80, -90, -95}
	peaks := []float32{-50, -12, -12, -12, -80}
	for i, s := range signals {
		frame := f.Tick(&level, Input{Extent: testExtent}, Mono{s})
		if frame.Peaks[0] != peaks[i] {
			t.Errorf("tick %d: peak=%v want=%v", i, frame.Peaks[0], peaks[i])
		}
		if frame.Signal[0] != NormalizedFromValue(s, cfg.Increments) {
			t.Errorf("tick %d: signal=%v", i, frame.Signal[0])
		}
		if frame.PeakPositions[0] != NormalizedFromValue(peaks[i], cfg.Increments) {
			t.Errorf("tick %d: peak position=%v", i, frame.PeakPositions[0])
		}
	}
}

func TestStereoFadersDoNotShareHistory(t *testing.T) {
	store := NewStore[Stereo]()
	a, err := NewFader[Stereo]("a", DefaultFaderConfig(), store)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewFader[Stereo]("b", DefaultFaderConfig(), store)
	if err != nil {
		t.Fatal(err)
	}
	la, lb := float32(0), float32(0)
	a.Tick(&la, Input{Extent: testExtent}, Stereo{0, -6})
	frame := b.Tick(&lb, Input{Extent: testExtent}, Stereo{-40, -50})
	if frame.Peaks != (Stereo{-40, -50}) {
		t.Fatalf("peaks=%v leaked between faders", frame.Peaks)
	}
	frame = a.Tick(&la, Input{Extent: testExtent}, Stereo{-40, -50})
	if frame.Peaks != (Stereo{0, -6}) {
		t.Fatalf("peaks=%v want=[0 -6]", frame.Peaks)
	}
}

func TestNewFaderRejectsBadConfig(t *testing.T) {
	mutate := []func(*FaderConfig){
		func(c *FaderConfig) { c.Increments = Increments{0} },
		func(c *FaderConfig) { c.Increments = Increments{0, -1} },
		func(c *FaderConfig) { c.PeakBufferSize = 0 },
		func(c *FaderConfig) { c.FineDragRatio = 0 },
		func(c *FaderConfig) { c.FineDragRatio = float32(math.NaN()) },
		func(c *FaderConfig) { c.NeutralLevel = float32(math.Inf(1)) },
		func(c *FaderConfig) { c.Handle = HandleRect; c.HandleAspect = 0 },
		func(c *FaderConfig) { c.Handle = HandleShape(7) },
	}
	for i, m := range mutate {
		cfg := DefaultFaderConfig()
		m(&cfg)
		_, err := NewFader[Mono]("bad", cfg, NewStore[Mono]())
		if !errors.Is(err, ErrConfig) {
			t.Errorf("case %d: err=%v want ErrConfig", i, err)
		}
	}
	if _, err := NewFader[Mono]("nil", DefaultFaderConfig(), nil); err == nil {
		t.Error("expected error for nil store")
	}
}

func TestNewFaderCopiesIncrements(t *testing.T) {
	cfg := linearConfig()
	f := newTestFader(t, cfg)
	cfg.Increments[1] = 1000
	if f.Increments().Max() != 10 {
		t.Fatalf("increments aliased caller slice: %v", f.Increments())
	}
}
