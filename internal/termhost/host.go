package termhost

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/eiannone/keyboard"
	"github.com/michaelquigley/dbfader"
	"golang.org/x/term"
)

const (
	defaultRows = 20
	chromeRows  = 3
)

// Host drives a mixer from the keyboard and draws it in the terminal
type Host struct {
	mixer    *dbfader.Mixer
	out      io.Writer
	selected int
	commands chan command
}

// New creates a host drawing to out
func New(mixer *dbfader.Mixer, out io.Writer) *Host {
	return &Host{mixer: mixer, out: out}
}

// Run ticks the mixer fps times a second until ctx is done or quit is pressed
func (h *Host) Run(ctx context.Context, fps float64) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := h.startInputListener(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(time.Duration(float64(time.Second) / fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			pending, quit := h.drain()
			if quit {
				return nil
			}
			if _, err := io.WriteString(h.out, clearScreen()+h.frame(pending, rows())); err != nil {
				return err
			}
		}
	}
}

// frame applies one frame of commands and ticks every visible strip exactly once
func (h *Host) frame(pending []command, rows int) string {
	strips := h.mixer.Strips()
	var drags []command
	for _, c := range pending {
		switch c {
		case commandNext:
			h.selected = (h.selected + 1) % len(strips)
		case commandPrev:
			h.selected = (h.selected - 1 + len(strips)) % len(strips)
		case commandToggle:
			h.mixer.SetVisible(h.selected, !h.mixer.Visible(h.selected))
		default:
			drags = append(drags, c)
		}
	}

	columns := make([]column, len(strips))
	for i, s := range strips {
		in := dragInput(nil, rows)
		if i == h.selected {
			in = dragInput(drags, rows)
		}
		readout, visible := h.mixer.Step(i, in)
		columns[i] = column{name: s.Name(), selected: i == h.selected, hidden: !visible, readout: readout}
	}
	h.mixer.EndFrame()

	return render(columns, rows)
}

func (h *Host) drain() ([]command, bool) {
	var pending []command
	for {
		select {
		case c, ok := <-h.commands:
			if !ok || c == commandQuit {
				return pending, true
			}
			pending = append(pending, c)
		default:
			return pending, false
		}
	}
}

func (h *Host) startInputListener(ctx context.Context) error {
	if err := keyboard.Open(); err != nil {
		return err
	}

	h.commands = make(chan command, 64)

	closeOnce := &sync.Once{}
	go func() {
		<-ctx.Done()
		closeOnce.Do(func() {
			_ = keyboard.Close()
		})
	}()

	go func() {
		defer close(h.commands)
		defer closeOnce.Do(func() {
			_ = keyboard.Close()
		})
		for {
			char, key, err := keyboard.GetKey()
			if err != nil {
				slog.Debug("keyboard input stopped", "error", err)
				return
			}
			c, ok := translate(char, key)
			if !ok {
				continue
			}
			select {
			case h.commands <- c:
			case <-ctx.Done():
				return
			}
			if c == commandQuit {
				return
			}
		}
	}()
	return nil
}

func rows() int {
	fd := int(os.Stdout.Fd())
	if _, height, err := term.GetSize(fd); err == nil && height > chromeRows+2 {
		return height - chromeRows
	}
	return defaultRows
}
