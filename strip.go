package dbfader

import (
	"fmt"
	"math"
	"sync/atomic"
)

// Strip is one fader on a console: a level, the hardware it drives and the signal it meters
type Strip interface {
	ID() ID
	Name() string
	Channels() int
	Increments() Increments
	Level() float32
	SetLevel(level float32)
	Step(in Input) Readout
	Owns(numID uint) bool
	HandleHWChange(numID uint, newValue int64) bool
}

// Readout is a strip's state after a tick, flattened for drawing
type Readout struct {
	Level          float32
	Changed        bool
	Handle         float32
	HandlePosition float32
	Signal         []float32
	Peaks          []float32
	PeakPositions  []float32
}

type strip[S Signal] struct {
	name   string
	fader  *Fader[S]
	source SignalSource[S]
	gang   *Gang // nil without hardware
	level  atomic.Uint32
}

// NewStrip creates a strip. With a gang, the hardware level wins over the level argument.
func NewStrip[S Signal](name string, cfg FaderConfig, level float32, source SignalSource[S], store *Store[S], gang *Gang) (Strip, error) {
	if source == nil {
		return nil, fmt.Errorf("strip '%s': source cannot be nil", name)
	}
	f, err := NewFader[S](ID(name), cfg, store)
	if err != nil {
		return nil, err
	}
	s := &strip[S]{
		name:   name,
		fader:  f,
		source: source,
		gang:   gang,
	}
	if gang != nil {
		level = gang.Level()
	}
	s.SetLevel(level)
	return s, nil
}

func (s *strip[S]) ID() ID {
	return s.fader.ID()
}

func (s *strip[S]) Name() string {
	return s.name
}

func (s *strip[S]) Channels() int {
	var shape S
	return len(shape)
}

func (s *strip[S]) Increments() Increments {
	return s.fader.Increments()
}

func (s *strip[S]) Level() float32 {
	return math.Float32frombits(s.level.Load())
}

func (s *strip[S]) SetLevel(level float32) {
	s.level.Store(math.Float32bits(level))
}

// Step ticks the fader once, writing any level change through to the hardware
func (s *strip[S]) Step(in Input) Readout {
	level := s.Level()
	frame := s.fader.Tick(&level, in, s.source.Signal())
	if frame.Changed {
		s.SetLevel(level)
		if s.gang != nil {
			_ = s.gang.HandleUIChange(level)
		}
	}
	return Readout{
		Level:          frame.Level,
		Changed:        frame.Changed,
		Handle:         frame.Handle,
		HandlePosition: frame.HandlePosition,
		Signal:         channelSlice(frame.Signal),
		Peaks:          channelSlice(frame.Peaks),
		PeakPositions:  channelSlice(frame.PeakPositions),
	}
}

func (s *strip[S]) Owns(numID uint) bool {
	return s.gang != nil && s.gang.Owns(numID)
}

// HandleHWChange follows an external hardware change; the level may land between ticks and
// outside the increments, which the next tick clamps
func (s *strip[S]) HandleHWChange(numID uint, newValue int64) bool {
	if s.gang == nil {
		return false
	}
	level, changed := s.gang.HandleHWChange(numID, newValue)
	if changed {
		s.SetLevel(level)
	}
	return changed
}

func channelSlice[S Signal](signal S) []float32 {
	out := make([]float32, len(signal))
	for i := range out {
		out[i] = signal[i]
	}
	return out
}

// FormatLevel renders a level for display
func FormatLevel(level float32) string {
	if level == NegInf {
		return "-∞ dB"
	}
	return fmt.Sprintf("%.1f dB", level)
}
