package imguihost

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/michaelquigley/dbfader"
)

const (
	xPadding = 0.1
	yPadding = 0.1
)

type rect struct {
	min imgui.Vec2
	max imgui.Vec2
}

func (r rect) width() float32  { return r.max.X - r.min.X }
func (r rect) height() float32 { return r.max.Y - r.min.Y }
func (r rect) centerX() float32 {
	return (r.min.X + r.max.X) / 2
}

// split pads the widget and divides it into thirds: rail, label and signal meter
func split(widget rect) (rail, label, meter rect) {
	padX := widget.width() * 2 * xPadding
	padY := widget.height() * 2.8 * yPadding
	inner := rect{
		min: imgui.Vec2{X: widget.min.X + padX, Y: widget.min.Y + padY},
		max: imgui.Vec2{X: widget.max.X - padX, Y: widget.max.Y - padY},
	}
	third := inner.width() / 3
	rail = rect{min: inner.min, max: imgui.Vec2{X: inner.min.X + third, Y: inner.max.Y}}
	label = rect{min: imgui.Vec2{X: rail.max.X, Y: inner.min.Y}, max: imgui.Vec2{X: rail.max.X + third, Y: inner.max.Y}}
	meter = rect{min: imgui.Vec2{X: label.max.X, Y: inner.min.Y}, max: inner.max}
	return rail, label, meter
}

// extent converts the rail rectangle into the fader's travel extent
func extent(rail rect) dbfader.Extent {
	return dbfader.Extent{Top: rail.min.Y, Bottom: rail.max.Y, Width: rail.width()}
}

// itemInput is the imgui state of the fader's invisible button for one frame
type itemInput struct {
	active        bool
	hovered       bool
	doubleClicked bool
	mouseDeltaY   float32
	ctrl          bool
	shift         bool
	alt           bool
}

func (ii itemInput) input(rail rect) dbfader.Input {
	return dbfader.Input{
		Dragging:      ii.active,
		DragDelta:     ii.mouseDeltaY,
		DoubleClicked: ii.hovered && ii.doubleClicked,
		Modifiers:     dbfader.Modifiers{Ctrl: ii.ctrl, Shift: ii.shift, Alt: ii.alt},
		Extent:        extent(rail),
	}
}

// channelXs spreads meter bars across the meter rectangle, as the stereo meter draws them at
// one and two thirds
func channelXs(meter rect, channels int) []float32 {
	if channels == 1 {
		return []float32{meter.centerX()}
	}
	xs := make([]float32, channels)
	for i := range xs {
		xs[i] = meter.min.X + meter.width()*float32(i+1)/float32(channels+1)
	}
	return xs
}
