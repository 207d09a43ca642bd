package dbfader

import (
	"fmt"
	"log/slog"
)

// Gang drives several hardware volume controls from a single fader
// Every control receives the same level (mirror mode); ranges may differ per control.
type Gang struct {
	channels []*HardwareChannel
}

// NewGang creates a gang over at least one channel
func NewGang(channels ...*HardwareChannel) (*Gang, error) {
	if len(channels) < 1 {
		return nil, fmt.Errorf("gang must have at least 1 channel")
	}
	return &Gang{channels: channels}, nil
}

// Level returns the level of the first channel in the gang
func (g *Gang) Level() float32 {
	first := g.channels[0]
	return first.ConvertToDB(first.CurrentValue())
}

// HandleUIChange writes level to every channel in the gang
func (g *Gang) HandleUIChange(level float32) error {
	var lastErr error
	for _, ch := range g.channels {
		if err := ch.HandleUIChange(level); err != nil {
			slog.Error("failed to write gang channel", "control", ch.Control().Name, "error", err)
			lastErr = err
		}
	}
	return lastErr
}

// HandleHWChange routes a hardware change to the channel with numID. It returns the new level
// and true when the change was external and the fader should follow it.
func (g *Gang) HandleHWChange(numID uint, newValue int64) (float32, bool) {
	for _, ch := range g.channels {
		if ch.Control().NumID == numID {
			if !ch.HandleHWChange(newValue) {
				return 0, false
			}
			return ch.ConvertToDB(newValue), true
		}
	}
	return 0, false
}

// Owns reports whether the control with numID belongs to the gang
func (g *Gang) Owns(numID uint) bool {
	for _, ch := range g.channels {
		if ch.Control().NumID == numID {
			return true
		}
	}
	return false
}

// Channels returns the ganged channels
func (g *Gang) Channels() []*HardwareChannel {
	return g.channels
}
