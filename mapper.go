package dbfader

import (
	"fmt"

	"github.com/michaelquigley/scarlettctl"
)

// syntheticStep advances synthetic sources by roughly one slow cycle every few seconds at 60 fps
const syntheticStep = 0.035

// ControlMapper builds strips from configuration, resolving hardware controls on the card
// Without a card every strip runs on a synthetic signal and keeps its level in memory.
type ControlMapper struct {
	card     *scarlettctl.Card
	config   *Config
	registry *Registry
}

// NewControlMapper creates a new control mapper; card may be nil
func NewControlMapper(card *scarlettctl.Card, config *Config, registry *Registry) *ControlMapper {
	return &ControlMapper{
		card:     card,
		config:   config,
		registry: registry,
	}
}

// LoadStrips creates a Strip for every configured strip
func (cm *ControlMapper) LoadStrips() ([]Strip, error) {
	var strips []Strip

	for i, sc := range cm.config.Strips {
		cfg, err := sc.FaderConfig()
		if err != nil {
			return nil, fmt.Errorf("strip %d (%s): %w", i, sc.Name, err)
		}

		gang, err := cm.loadGang(i, sc)
		if err != nil {
			return nil, err
		}

		levels, err := cm.findControls(i, sc, "level", sc.Levels)
		if err != nil {
			return nil, err
		}

		var strip Strip
		if sc.Stereo {
			strip, err = newMappedStrip[Stereo](i, sc, cfg, gang, levels, cm.registry.Stereo())
		} else {
			strip, err = newMappedStrip[Mono](i, sc, cfg, gang, levels, cm.registry.Mono())
		}
		if err != nil {
			return nil, fmt.Errorf("strip %d (%s): failed to create strip: %w", i, sc.Name, err)
		}

		strips = append(strips, strip)
	}

	return strips, nil
}

func newMappedStrip[S Signal](i int, sc StripConfig, cfg FaderConfig, gang *Gang, levels []*scarlettctl.Control, store *Store[S]) (Strip, error) {
	var source SignalSource[S]
	if len(levels) > 0 {
		src, err := NewScarlettSource[S](levels...)
		if err != nil {
			return nil, err
		}
		source = src
	} else {
		source = NewSyntheticSource[S](int64(i+1), syntheticStep)
	}
	return NewStrip[S](sc.Name, cfg, sc.Level, source, store, gang)
}

func (cm *ControlMapper) loadGang(i int, sc StripConfig) (*Gang, error) {
	controls, err := cm.findControls(i, sc, "control", sc.Controls)
	if err != nil || len(controls) == 0 {
		return nil, err
	}

	var channels []*HardwareChannel
	for j, control := range controls {
		if control.Type != scarlettctl.ControlTypeInteger && control.Type != scarlettctl.ControlTypeInteger64 {
			return nil, fmt.Errorf("strip %d (%s), control %d (%s): type %d not supported", i, sc.Name, j, control.Name, control.Type)
		}
		ch, err := NewHardwareChannel(control, sc.HardwareMaxDb())
		if err != nil {
			return nil, fmt.Errorf("strip %d (%s), control %d (%s): failed to create channel: %w", i, sc.Name, j, control.Name, err)
		}
		channels = append(channels, ch)
	}

	gang, err := NewGang(channels...)
	if err != nil {
		return nil, fmt.Errorf("strip %d (%s): %w", i, sc.Name, err)
	}
	return gang, nil
}

func (cm *ControlMapper) findControls(i int, sc StripConfig, kind string, names []string) ([]*scarlettctl.Control, error) {
	if len(names) == 0 || cm.card == nil {
		return nil, nil
	}
	var controls []*scarlettctl.Control
	for j, name := range names {
		control, err := cm.card.FindControl(name)
		if err != nil {
			return nil, fmt.Errorf("strip %d (%s), %s %d (%s): not found on hardware: %w", i, sc.Name, kind, j, name, err)
		}
		controls = append(controls, control)
	}
	return controls, nil
}
