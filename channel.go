package dbfader

import (
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/michaelquigley/scarlettctl"
)

// DefaultMaxDb is the gain of a hardware volume control at its raw maximum
const DefaultMaxDb float32 = 12

// HardwareChannel binds one hardware volume control to a dB level
// The hardware is the source of truth; the cached values only break feedback loops.
type HardwareChannel struct {
	control *scarlettctl.Control
	maxDb   float32

	lastUIValue int64 // last value written by the fader
	lastHWValue int64 // last value reported by the hardware
}

// NewHardwareChannel creates a channel from a hardware control, reading its initial value
func NewHardwareChannel(control *scarlettctl.Control, maxDb float32) (*HardwareChannel, error) {
	if control == nil {
		return nil, fmt.Errorf("control cannot be nil")
	}
	if control.Max <= control.Min {
		return nil, fmt.Errorf("control '%s' has an empty range [%d, %d]", control.Name, control.Min, control.Max)
	}

	initialValue, err := control.GetValue()
	if err != nil {
		return nil, fmt.Errorf("failed to read initial value of '%s': %w", control.Name, err)
	}

	return &HardwareChannel{
		control:     control,
		maxDb:       maxDb,
		lastUIValue: initialValue,
		lastHWValue: initialValue,
	}, nil
}

// HandleUIChange writes the raw value for level to the hardware, skipping unchanged values
func (ch *HardwareChannel) HandleUIChange(level float32) error {
	newValue := ch.ConvertFromDB(level)
	if atomic.LoadInt64(&ch.lastUIValue) == newValue {
		return nil
	}
	atomic.StoreInt64(&ch.lastUIValue, newValue)

	if err := ch.control.SetValue(newValue); err != nil {
		slog.Error("failed to write control", "control", ch.control.Name, "value", newValue, "error", err)
		return err
	}
	return nil
}

// HandleHWChange records a value reported by the hardware and reports whether it differs from
// the last one seen. The echo of our own write carries the same value and is ignored.
func (ch *HardwareChannel) HandleHWChange(newValue int64) bool {
	if atomic.LoadInt64(&ch.lastHWValue) == newValue {
		return false
	}
	atomic.StoreInt64(&ch.lastHWValue, newValue)
	if atomic.LoadInt64(&ch.lastUIValue) == newValue {
		return false
	}
	atomic.StoreInt64(&ch.lastUIValue, newValue)
	return true
}

// CurrentValue returns the last raw value written or observed
func (ch *HardwareChannel) CurrentValue() int64 {
	return atomic.LoadInt64(&ch.lastUIValue)
}

// Control returns the underlying hardware control
func (ch *HardwareChannel) Control() *scarlettctl.Control {
	return ch.control
}

// ConvertToDB converts a raw hardware value to decibels
// The taper is logarithmic: min is -inf and max is maxDb.
func (ch *HardwareChannel) ConvertToDB(rawValue int64) float32 {
	if rawValue <= ch.control.Min || rawValue <= 0 {
		return NegInf
	}
	db := 20.0*math.Log10(float64(rawValue)/float64(ch.control.Max)) + float64(ch.maxDb)
	return float32(db)
}

// ConvertFromDB converts decibels to the nearest raw hardware value
func (ch *HardwareChannel) ConvertFromDB(db float32) int64 {
	if db == NegInf || math.IsNaN(float64(db)) {
		return ch.control.Min
	}
	ratio := math.Pow(10, float64(db-ch.maxDb)/20.0)
	rawValue := int64(math.Round(ratio * float64(ch.control.Max)))
	return min(max(rawValue, ch.control.Min), ch.control.Max)
}
