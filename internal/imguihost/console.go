package imguihost

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/michaelquigley/dbfader"
)

const (
	faderWidth  = 75.0
	faderHeight = 200.0
	railRadius  = 1.0
	barRadius   = 1.0
)

// Console draws a mixer's strips as a bank of faders
// Draw is called every frame by the backend loop.
type Console struct {
	mixer   *dbfader.Mixer
	visible []bool
}

// NewConsole creates a console over mixer
func NewConsole(mixer *dbfader.Mixer) *Console {
	visible := make([]bool, len(mixer.Strips()))
	for i := range visible {
		visible[i] = mixer.Visible(i)
	}
	return &Console{mixer: mixer, visible: visible}
}

// Draw renders the console; every strip on screen ticks once per call
func (c *Console) Draw() {
	strips := c.mixer.Strips()
	if len(strips) == 0 {
		imgui.Text("No strips configured")
		return
	}

	imgui.BeginChildStrV("FaderBank", imgui.Vec2{X: 0, Y: faderHeight + 90},
		imgui.ChildFlagsNone,
		imgui.WindowFlagsHorizontalScrollbar)

	columnWidth := float32(faderWidth + 10)
	imgui.BeginTableV("console_table", int32(len(strips)),
		imgui.TableFlagsNone,
		imgui.Vec2{X: float32(len(strips)) * columnWidth, Y: 0}, 0.0)
	for i := range strips {
		imgui.TableSetupColumnV(fmt.Sprintf("##col%d", i),
			imgui.TableColumnFlagsWidthFixed, columnWidth, 0)
	}

	// labels and visibility
	imgui.TableNextRow()
	for i, s := range strips {
		imgui.TableNextColumn()
		if imgui.Checkbox(fmt.Sprintf("%s##visible%d", s.Name(), i), &c.visible[i]) {
			c.mixer.SetVisible(i, c.visible[i])
		}
	}

	// faders
	imgui.TableNextRow()
	for i, s := range strips {
		imgui.TableNextColumn()
		if !c.mixer.Visible(i) {
			imgui.Dummy(imgui.Vec2{X: faderWidth, Y: faderHeight})
			continue
		}
		c.drawFader(i, s)
	}

	// levels
	imgui.TableNextRow()
	for i, s := range strips {
		imgui.TableNextColumn()
		if c.mixer.Visible(i) {
			imgui.Text(dbfader.FormatLevel(s.Level()))
		}
	}

	imgui.EndTable()
	imgui.EndChild()

	c.mixer.EndFrame()
}

func (c *Console) drawFader(i int, s dbfader.Strip) {
	imgui.InvisibleButton(fmt.Sprintf("##fader%d", i), imgui.Vec2{X: faderWidth, Y: faderHeight})
	widget := rect{min: imgui.ItemRectMin(), max: imgui.ItemRectMax()}
	rail, _, meter := split(widget)

	io := imgui.CurrentIO()
	ii := itemInput{
		active:        imgui.IsItemActive(),
		hovered:       imgui.IsItemHovered(),
		doubleClicked: imgui.IsMouseDoubleClickedNil(imgui.MouseButtonLeft),
		mouseDeltaY:   io.MouseDelta().Y,
		ctrl:          io.KeyCtrl(),
		shift:         io.KeyShift(),
		alt:           io.KeyAlt(),
	}
	readout, _ := c.mixer.Step(i, ii.input(rail))

	if ii.hovered || ii.active {
		imgui.SetTooltip(dbfader.FormatLevel(readout.Level))
	}

	drawList := imgui.WindowDrawList()
	c.drawRail(drawList, rail, readout, ii.active)
	c.drawMeter(drawList, meter, readout)
}

func (c *Console) drawRail(drawList *imgui.DrawList, rail rect, readout dbfader.Readout, active bool) {
	x := rail.centerX()
	drawList.AddRectFilled(
		imgui.Vec2{X: x - railRadius, Y: rail.min.Y},
		imgui.Vec2{X: x + railRadius, Y: rail.max.Y},
		imgui.ColorU32Vec4(imgui.Vec4{X: 0.35, Y: 0.35, Z: 0.35, W: 1}))

	fill := imgui.Vec4{X: 0.6, Y: 0.6, Z: 0.6, W: 1}
	if active {
		fill = imgui.Vec4{X: 0.85, Y: 0.85, Z: 0.85, W: 1}
	}
	drawList.AddCircleFilled(
		imgui.Vec2{X: x, Y: readout.HandlePosition},
		rail.width()/3,
		imgui.ColorU32Vec4(fill))
}

func (c *Console) drawMeter(drawList *imgui.DrawList, meter rect, readout dbfader.Readout) {
	background := imgui.ColorU32Vec4(imgui.Vec4{X: 0.1, Y: 0.1, Z: 0.1, W: 1})
	for ch, x := range channelXs(meter, len(readout.Signal)) {
		drawList.AddRectFilled(
			imgui.Vec2{X: x - barRadius, Y: meter.min.Y},
			imgui.Vec2{X: x + barRadius, Y: meter.max.Y},
			background)

		signalY := meter.max.Y - meter.height()*readout.Signal[ch]
		drawList.AddRectFilled(
			imgui.Vec2{X: x - barRadius, Y: signalY},
			imgui.Vec2{X: x + barRadius, Y: meter.max.Y},
			imgui.ColorU32Vec4(imgui.Vec4{X: 0.2, Y: 0.7, Z: 0.3, W: 1}))

		peak := readout.PeakPositions[ch]
		if peak <= 0 {
			continue
		}
		var r, g, b float32
		h, sat, v := dbfader.LevelColor(peak)
		imgui.ColorConvertHSVtoRGB(h, sat, v, &r, &g, &b)
		peakY := meter.max.Y - meter.height()*peak
		drawList.AddLine(
			imgui.Vec2{X: x - 3*barRadius, Y: peakY},
			imgui.Vec2{X: x + 3*barRadius, Y: peakY},
			imgui.ColorU32Vec4(imgui.Vec4{X: r, Y: g, Z: b, W: 1}))
	}
}
