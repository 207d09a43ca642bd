package dbfader

import (
	"math"
	"testing"
)

func newTestStrip(t *testing.T, store *Store[Stereo], signal Stereo) Strip {
	t.Helper()
	cfg := DefaultFaderConfig()
	cfg.Increments = Increments{-100, 10}
	cfg.PeakBufferSize = 2
	s, err := NewStrip[Stereo]("Main", cfg, -45, SourceFunc[Stereo](func() Stereo { return signal }), store, nil)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestStripStepStoresLevel(t *testing.T) {
	s := newTestStrip(t, NewStore[Stereo](), Stereo{-6, -12})
	if s.Channels() != 2 || s.ID() != "Main" || s.Name() != "Main" {
		t.Fatalf("channels=%d id=%s", s.Channels(), s.ID())
	}

	r := s.Step(Input{Dragging: true, DragDelta: -18, Extent: testExtent})
	if !r.Changed || math.Abs(float64(r.Level+34)) > 1e-3 {
		t.Fatalf("readout=%+v want level -34", r)
	}
	if s.Level() != r.Level {
		t.Fatalf("level=%v readout=%v", s.Level(), r.Level)
	}
	if len(r.Signal) != 2 || len(r.Peaks) != 2 || len(r.PeakPositions) != 2 {
		t.Fatalf("readout shape %+v", r)
	}
	if r.Peaks[0] != -6 || r.Peaks[1] != -12 {
		t.Fatalf("peaks=%v", r.Peaks)
	}

	r = s.Step(Input{Extent: testExtent})
	if r.Changed {
		t.Fatal("idle tick reported change")
	}
}

func TestStripFollowsExternalLevel(t *testing.T) {
	s := newTestStrip(t, NewStore[Stereo](), Stereo{NegInf, NegInf})
	s.SetLevel(500)
	r := s.Step(Input{Extent: testExtent})
	if r.Handle != 1 || r.Changed {
		t.Fatalf("readout=%+v want handle 1, unchanged", r)
	}
	r = s.Step(Input{DoubleClicked: true, Extent: testExtent})
	if s.Level() != 0 || !r.Changed {
		t.Fatalf("level=%v changed=%v", s.Level(), r.Changed)
	}
}

func TestStripWithoutGangIgnoresHardware(t *testing.T) {
	s := newTestStrip(t, NewStore[Stereo](), Stereo{})
	if s.Owns(1) || s.HandleHWChange(1, 100) {
		t.Fatal("strip without hardware claimed a control")
	}
}

func TestStripRejectsNilSource(t *testing.T) {
	if _, err := NewStrip[Mono]("x", DefaultFaderConfig(), 0, nil, NewStore[Mono](), nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestFormatLevel(t *testing.T) {
	if got := FormatLevel(NegInf); got != "-∞ dB" {
		t.Errorf("got %q", got)
	}
	if got := FormatLevel(-3.25); got != "-3.2 dB" && got != "-3.3 dB" {
		t.Errorf("got %q", got)
	}
	if got := FormatLevel(6); got != "6.0 dB" {
		t.Errorf("got %q", got)
	}
}
