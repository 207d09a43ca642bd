package termhost

import (
	"github.com/eiannone/keyboard"
	"github.com/michaelquigley/dbfader"
)

type command int

const (
	commandUp command = iota
	commandDown
	commandFineUp
	commandFineDown
	commandNext
	commandPrev
	commandReset
	commandToggle
	commandQuit
)

// handleWidth gives a handle radius of one row
const handleWidth = 2.5

func translate(char rune, key keyboard.Key) (command, bool) {
	switch {
	case key == keyboard.KeyEsc || key == keyboard.KeyCtrlC || char == 'q' || char == 'Q':
		return commandQuit, true
	case key == keyboard.KeyArrowUp:
		return commandUp, true
	case key == keyboard.KeyArrowDown:
		return commandDown, true
	case char == 'k':
		return commandFineUp, true
	case char == 'j':
		return commandFineDown, true
	case key == keyboard.KeyTab || key == keyboard.KeyArrowRight:
		return commandNext, true
	case key == keyboard.KeyArrowLeft:
		return commandPrev, true
	case key == keyboard.KeyEnter || char == '0':
		return commandReset, true
	case char == 'h':
		return commandToggle, true
	}
	return 0, false
}

// dragInput folds one frame of drag commands into a single tick of input for the selected strip
// One row per key press; fine presses only count when no coarse press arrived in the same frame.
func dragInput(commands []command, rows int) dbfader.Input {
	var coarse, fine float32
	reset := false
	for _, c := range commands {
		switch c {
		case commandUp:
			coarse--
		case commandDown:
			coarse++
		case commandFineUp:
			fine--
		case commandFineDown:
			fine++
		case commandReset:
			reset = true
		}
	}

	in := dbfader.Input{
		DoubleClicked: reset,
		Extent:        dbfader.Extent{Top: 0, Bottom: float32(rows), Width: handleWidth},
	}
	switch {
	case coarse != 0:
		in.Dragging = true
		in.DragDelta = coarse
	case fine != 0:
		in.Dragging = true
		in.DragDelta = fine
		in.Modifiers.Shift = true
	}
	return in
}
