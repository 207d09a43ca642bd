package dbfader

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/michaelquigley/scarlettctl"
)

// meterFloorDb is the quietest level a hardware meter reports before it reads as silence
const meterFloorDb = -96.0

// SignalSource supplies one sample per channel each tick
type SignalSource[S Signal] interface {
	Signal() S
}

// SourceFunc adapts a function to a SignalSource
type SourceFunc[S Signal] func() S

func (f SourceFunc[S]) Signal() S {
	return f()
}

// ScarlettSource reads hardware level-meter controls
// A mono source reports the loudest of its controls; a stereo source reads one control per channel.
type ScarlettSource[S Signal] struct {
	controls []*scarlettctl.Control
}

// NewScarlettSource creates a source over the given level controls
func NewScarlettSource[S Signal](controls ...*scarlettctl.Control) (*ScarlettSource[S], error) {
	var shape S
	if len(controls) < 1 {
		return nil, configErrorf("levels", "need at least 1 level control")
	}
	if len(shape) > 1 && len(controls) != len(shape) {
		return nil, configErrorf("levels", "need exactly %d level controls for %d channels, got %d", len(shape), len(shape), len(controls))
	}
	return &ScarlettSource[S]{controls: controls}, nil
}

func (s *ScarlettSource[S]) Signal() S {
	var out S
	if len(out) == 1 {
		loudest := NegInf
		for _, ctl := range s.controls {
			loudest = max(loudest, s.read(ctl))
		}
		out[0] = loudest
		return out
	}
	for i := 0; i < len(out); i++ {
		out[i] = s.read(s.controls[i])
	}
	return out
}

func (s *ScarlettSource[S]) read(ctl *scarlettctl.Control) float32 {
	raw, err := ctl.GetValue()
	if err != nil {
		slog.Debug("failed to read level", "control", ctl.Name, "error", err)
		return NegInf
	}
	return MeterLevelToDB(raw, ctl.Min, ctl.Max)
}

// MeterLevelToDB converts a raw meter reading to dBFS, floored at -96 dB; min and below is -inf
func MeterLevelToDB(raw, minRaw, maxRaw int64) float32 {
	if raw <= minRaw || raw <= 0 || maxRaw <= 0 {
		return NegInf
	}
	db := 20.0 * math.Log10(float64(raw)/float64(maxRaw))
	return float32(max(db, meterFloorDb))
}

// SyntheticSource generates a wandering dB signal for running without hardware
type SyntheticSource[S Signal] struct {
	rng   *rand.Rand
	step  float64
	phase []float64
}

// NewSyntheticSource creates a generator; step is the phase advance per tick in radians
func NewSyntheticSource[S Signal](seed int64, step float64) *SyntheticSource[S] {
	var shape S
	src := &SyntheticSource[S]{
		rng:   rand.New(rand.NewSource(seed)),
		step:  step,
		phase: make([]float64, len(shape)),
	}
	for i := range src.phase {
		src.phase[i] = float64(i) * 0.9
	}
	return src
}

func (src *SyntheticSource[S]) Signal() S {
	var out S
	for i := 0; i < len(out); i++ {
		src.phase[i] += src.step * (1 + 0.35*float64(i))
		db := -30 + 22*math.Sin(src.phase[i]) + src.rng.Float64()*6
		if src.rng.Float64() < 0.02 {
			// transient
			db = -2 + src.rng.Float64()*4
		}
		out[i] = float32(db)
	}
	return out
}

// LevelColor returns the HSV colour for a normalized level
// dark green (silent) -> bright green -> yellow -> red (full scale)
func LevelColor(normalized float32) (h, s, v float32) {
	normalized = min(max(normalized, 0), 1)
	s = 1.0

	if normalized <= 0.5 {
		h = 120.0 / 360.0
		v = 0.3 + (normalized/0.5)*0.3
	} else if normalized <= 0.8 {
		t := (normalized - 0.5) / 0.3
		h = (120.0 - t*60.0) / 360.0
		v = 0.6 + t*0.2
	} else {
		t := (normalized - 0.8) / 0.2
		h = (60.0 - t*60.0) / 360.0
		v = 0.8 + t*0.2
	}
	return h, s, v
}
