package dbfader

import (
	"log/slog"

	"github.com/michaelquigley/scarlettctl"
)

// EventMonitor follows hardware control changes made outside the console
// Changes land in the strips' level cells from the monitor goroutine; the next tick picks them up.
type EventMonitor struct {
	card    *scarlettctl.Card
	strips  []Strip
	monitor *scarlettctl.EventMonitor
}

// NewEventMonitor creates a new event monitor
func NewEventMonitor(card *scarlettctl.Card, strips []Strip) *EventMonitor {
	return &EventMonitor{
		card:    card,
		strips:  strips,
		monitor: card.NewEventMonitor(),
	}
}

// Start watches hardware events in a background goroutine
func (em *EventMonitor) Start() error {
	go func() {
		if err := em.monitor.WatchControls(em.handleControlChange); err != nil {
			slog.Error("event monitor failed", "error", err)
		}
	}()
	return nil
}

// Stop stops the event monitor
func (em *EventMonitor) Stop() {
	em.monitor.Stop()
}

func (em *EventMonitor) handleControlChange(control *scarlettctl.Control, value int64) error {
	routeControlChange(em.strips, control.NumID, value)
	return nil
}

// routeControlChange hands a change to the strip owning numID; unknown controls are ignored
func routeControlChange(strips []Strip, numID uint, value int64) bool {
	for _, s := range strips {
		if s.Owns(numID) {
			if s.HandleHWChange(numID, value) {
				slog.Debug("hardware level changed", "strip", s.Name(), "level", FormatLevel(s.Level()))
			}
			return true
		}
	}
	return false
}
