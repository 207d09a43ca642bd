package dbfader

// DefaultPeakBufferSize is the number of ticks a peak is held for, one second at 60 fps
const DefaultPeakBufferSize = 60

// Mono carries one sample per tick
type Mono [1]float32

// Stereo carries a left and a right sample per tick
type Stereo [2]float32

// Signal is the per-tick sample shape of a fader; its length is the channel count
type Signal interface {
	Mono | Stereo
}

// PeakTracker holds the maximum of the last N samples of a single channel
// There is no decay; a peak is held until it leaves the window
type PeakTracker struct {
	buf   []float32
	head  int
	count int
}

// NewPeakTracker creates a tracker with a window of size samples
func NewPeakTracker(size int) (*PeakTracker, error) {
	if size < 1 {
		return nil, configErrorf("peak_buffer_size", "must be at least 1, got %d", size)
	}
	return &PeakTracker{buf: make([]float32, size)}, nil
}

// Next appends sample to the window, evicting the oldest sample when full, and returns the
// maximum currently held. Call it exactly once per tick.
func (pt *PeakTracker) Next(sample float32) float32 {
	pt.buf[pt.head] = sample
	pt.head = (pt.head + 1) % len(pt.buf)
	if pt.count < len(pt.buf) {
		pt.count++
	}
	return pt.peak()
}

func (pt *PeakTracker) peak() float32 {
	// the newest sample is at head-1; walk back count samples
	newest := (pt.head - 1 + len(pt.buf)) % len(pt.buf)
	peak := pt.buf[newest]
	for i := 1; i < pt.count; i++ {
		v := pt.buf[(newest-i+len(pt.buf))%len(pt.buf)]
		if v > peak {
			peak = v
		}
	}
	return peak
}

// Len returns the number of samples currently held
func (pt *PeakTracker) Len() int {
	return pt.count
}

// Cap returns the window size
func (pt *PeakTracker) Cap() int {
	return len(pt.buf)
}

// Reset forgets all history
func (pt *PeakTracker) Reset() {
	pt.head = 0
	pt.count = 0
}

// Meter keeps one independent PeakTracker per channel of S
type Meter[S Signal] struct {
	trackers []*PeakTracker
}

// NewMeter creates a meter with a window of size samples on every channel
func NewMeter[S Signal](size int) (*Meter[S], error) {
	var shape S
	m := &Meter[S]{trackers: make([]*PeakTracker, len(shape))}
	for i := range m.trackers {
		pt, err := NewPeakTracker(size)
		if err != nil {
			return nil, err
		}
		m.trackers[i] = pt
	}
	return m, nil
}

// Next feeds each channel's sample to that channel's tracker and returns the per-channel peaks
func (m *Meter[S]) Next(signal S) S {
	var peaks S
	for i := 0; i < len(signal); i++ {
		peaks[i] = m.trackers[i].Next(signal[i])
	}
	return peaks
}

// Channels returns the number of channels metered
func (m *Meter[S]) Channels() int {
	return len(m.trackers)
}

// Reset forgets the history of every channel
func (m *Meter[S]) Reset() {
	for _, pt := range m.trackers {
		pt.Reset()
	}
}
