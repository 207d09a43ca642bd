package dbfader

// Mixer is the host-independent part of a console: its strips, which of them are on screen and
// the peak history they keep alive
type Mixer struct {
	strips   []Strip
	hidden   []bool
	registry *Registry
}

// NewMixer creates a mixer over strips whose peak meters live in registry
func NewMixer(strips []Strip, registry *Registry) *Mixer {
	return &Mixer{
		strips:   strips,
		hidden:   make([]bool, len(strips)),
		registry: registry,
	}
}

// Strips returns every strip, visible or not
func (m *Mixer) Strips() []Strip {
	return m.strips
}

// Visible reports whether strip i is on screen
func (m *Mixer) Visible(i int) bool {
	return !m.hidden[i]
}

// SetVisible shows or hides strip i. A hidden strip does not tick, so its peak history is
// dropped at the next EndFrame.
func (m *Mixer) SetVisible(i int, visible bool) {
	m.hidden[i] = !visible
}

// Step ticks strip i; hidden strips return a zero Readout and false
func (m *Mixer) Step(i int, in Input) (Readout, bool) {
	if m.hidden[i] {
		return Readout{}, false
	}
	return m.strips[i].Step(in), true
}

// EndFrame finishes a frame, evicting peak meters of strips that did not tick
func (m *Mixer) EndFrame() int {
	return m.registry.Sweep()
}
