package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/michaelquigley/dbfader"
	"github.com/michaelquigley/scarlettctl"
	pkgerrors "github.com/pkg/errors"
)

// consoleOptions are the flags shared by the commands that open a console
type consoleOptions struct {
	configPath string
	synthetic  bool
}

// loadConfig reads --config, or the main config; a missing main config falls back to the default
func (opts *consoleOptions) loadConfig() (*dbfader.Config, error) {
	if opts.configPath != "" {
		cfg, err := dbfader.LoadConfig(opts.configPath)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "error loading config '%s'", opts.configPath)
		}
		return cfg, nil
	}
	path, err := dbfader.MainConfigPath()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "error locating main config")
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		slog.Info("no console config found, using the default", "path", path)
		return dbfader.DefaultConfig(), nil
	}
	cfg, err := dbfader.LoadMainConfig()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "error loading main config")
	}
	return cfg, nil
}

// console is an opened mixer and whatever hardware it holds
type console struct {
	mixer   *dbfader.Mixer
	card    *scarlettctl.Card
	monitor *dbfader.EventMonitor
}

func (opts *consoleOptions) open() (*console, error) {
	cfg, err := opts.loadConfig()
	if err != nil {
		return nil, err
	}

	out := &console{}
	if !opts.synthetic {
		card, err := scarlettctl.OpenCard(cfg.Card)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "error opening card '%d'", cfg.Card)
		}
		out.card = card
	}

	registry := dbfader.NewRegistry()
	mapper := dbfader.NewControlMapper(out.card, cfg, registry)
	strips, err := mapper.LoadStrips()
	if err != nil {
		out.close()
		return nil, pkgerrors.Wrap(err, "error loading strips")
	}

	if out.card != nil {
		out.monitor = dbfader.NewEventMonitor(out.card, strips)
		if err := out.monitor.Start(); err != nil {
			out.close()
			return nil, pkgerrors.Wrap(err, "error starting event monitor")
		}
	}

	out.mixer = dbfader.NewMixer(strips, registry)
	slog.Debug("console opened", "strips", len(strips), "synthetic", opts.synthetic)
	return out, nil
}

func (c *console) close() {
	if c.monitor != nil {
		c.monitor.Stop()
	}
	if c.card != nil {
		c.card.Close()
	}
}
