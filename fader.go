package dbfader

import (
	"fmt"
	"math"
)

const (
	// DefaultFineDragRatio scales drag deltas while a precision modifier is held
	DefaultFineDragRatio float32 = 0.2

	// handleRadiusDivisor derives the handle radius from the rail width
	handleRadiusDivisor float32 = 2.5
)

// HandleShape selects how far the handle reaches along the rail
type HandleShape int

const (
	HandleCircle HandleShape = iota
	HandleRect
)

func (hs HandleShape) String() string {
	switch hs {
	case HandleCircle:
		return "circle"
	case HandleRect:
		return "rect"
	default:
		return fmt.Sprintf("HandleShape(%d)", int(hs))
	}
}

// FaderConfig is set once, before a fader is used
type FaderConfig struct {
	Increments     Increments
	NeutralLevel   float32
	PeakBufferSize int
	FineDragRatio  float32
	Handle         HandleShape
	HandleAspect   float32 // rect handles only
}

// DefaultFaderConfig returns a circle-handled fader over DefaultIncrements, resetting to 0 dB
func DefaultFaderConfig() FaderConfig {
	return FaderConfig{
		Increments:     DefaultIncrements(),
		NeutralLevel:   0,
		PeakBufferSize: DefaultPeakBufferSize,
		FineDragRatio:  DefaultFineDragRatio,
		Handle:         HandleCircle,
		HandleAspect:   1,
	}
}

// Validate returns a *ConfigError describing the first unusable field
func (cfg FaderConfig) Validate() error {
	if err := cfg.Increments.Validate(); err != nil {
		return err
	}
	if cfg.PeakBufferSize < 1 {
		return configErrorf("peak_buffer_size", "must be at least 1, got %d", cfg.PeakBufferSize)
	}
	if !finite(cfg.FineDragRatio) || cfg.FineDragRatio <= 0 {
		return configErrorf("fine_drag_ratio", "must be finite and positive, got %v", cfg.FineDragRatio)
	}
	if !finite(cfg.NeutralLevel) {
		return configErrorf("neutral_level", "must be finite, got %v", cfg.NeutralLevel)
	}
	switch cfg.Handle {
	case HandleCircle:
	case HandleRect:
		if !finite(cfg.HandleAspect) || cfg.HandleAspect <= 0 {
			return configErrorf("handle_aspect", "must be finite and positive, got %v", cfg.HandleAspect)
		}
	default:
		return configErrorf("handle", "unknown handle shape %v", cfg.Handle)
	}
	return nil
}

// Extent is the laid-out rectangle of the fader rail, in screen coordinates with y growing down
type Extent struct {
	Top    float32
	Bottom float32
	Width  float32
}

// Modifiers is the state of the modifier keys during a tick
type Modifiers struct {
	Ctrl  bool
	Shift bool
	Alt   bool
}

// Precision reports whether any fine-adjustment modifier is held
func (m Modifiers) Precision() bool {
	return m.Ctrl || m.Shift || m.Alt
}

// Input is what the host observed for a fader during one tick
type Input struct {
	Dragging      bool
	DragDelta     float32 // pointer motion along the rail, positive is down
	DoubleClicked bool
	Modifiers     Modifiers
	Extent        Extent
}

// Frame is the outcome of one tick
type Frame[S Signal] struct {
	Level          float32
	Changed        bool
	Handle         float32 // normalized handle position
	HandlePosition float32 // on-screen handle position
	Signal         S       // normalized signal per channel
	Peaks          S       // peak level per channel
	PeakPositions  S       // normalized peak per channel
}

// Fader translates pointer input into level changes and meters its signal
type Fader[S Signal] struct {
	id    ID
	cfg   FaderConfig
	store *Store[S]
}

// NewFader validates cfg and creates a fader whose peak history lives in store under id
func NewFader[S Signal](id ID, cfg FaderConfig, store *Store[S]) (*Fader[S], error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("fader '%s': %w", id, err)
	}
	if store == nil {
		return nil, fmt.Errorf("fader '%s': store cannot be nil", id)
	}
	cfg.Increments = append(Increments(nil), cfg.Increments...)
	return &Fader[S]{id: id, cfg: cfg, store: store}, nil
}

// ID returns the fader's identity
func (f *Fader[S]) ID() ID {
	return f.id
}

// Config returns the fader's configuration
func (f *Fader[S]) Config() FaderConfig {
	return f.cfg
}

// Increments returns the fader's breakpoints
func (f *Fader[S]) Increments() Increments {
	return f.cfg.Increments
}

// HandleRadius returns how far the handle reaches along the rail from its centre
func (f *Fader[S]) HandleRadius(e Extent) float32 {
	radius := e.Width / handleRadiusDivisor
	if f.cfg.Handle == HandleRect {
		radius *= f.cfg.HandleAspect
	}
	return radius
}

// PositionRange returns the handle travel for e; up is louder, so the range is flipped
func (f *Fader[S]) PositionRange(e Extent) PositionRange {
	radius := f.HandleRadius(e)
	return PositionRange{Start: e.Bottom - radius, End: e.Top + radius}
}

// Reset moves level to the neutral level, clamped to the increments
func (f *Fader[S]) Reset(level *float32) {
	*level = f.cfg.Increments.Clamp(f.cfg.NeutralLevel)
}

// Tick applies one tick of input to level and advances the peak meter with signal
func (f *Fader[S]) Tick(level *float32, in Input, signal S) Frame[S] {
	before := *level

	if in.DoubleClicked {
		f.Reset(level)
	}

	rng := f.PositionRange(in.Extent)
	if in.Dragging && in.DragDelta != 0 && rng.Span() < 0 {
		delta := in.DragDelta
		if in.Modifiers.Precision() {
			delta *= f.cfg.FineDragRatio
		}
		centre := PositionFromValue(*level, rng, f.cfg.Increments)
		*level = ValueFromPosition(centre+delta, rng, f.cfg.Increments)
	}

	frame := Frame[S]{
		Level:          *level,
		Changed:        *level != before,
		Handle:         NormalizedFromValue(*level, f.cfg.Increments),
		HandlePosition: PositionFromValue(*level, rng, f.cfg.Increments),
	}

	meter, err := f.store.Meter(f.id, f.cfg.PeakBufferSize)
	if err != nil {
		// the buffer size was validated in NewFader
		panic(err)
	}
	frame.Peaks = meter.Next(signal)
	for i := 0; i < len(signal); i++ {
		frame.Signal[i] = NormalizedFromValue(signal[i], f.cfg.Increments)
		frame.PeakPositions[i] = NormalizedFromValue(frame.Peaks[i], f.cfg.Increments)
	}

	return frame
}

func finite(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}
