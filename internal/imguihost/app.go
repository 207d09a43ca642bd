package imguihost

import (
	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/glfwbackend"
	"github.com/AllenDang/cimgui-go/imgui"
)

// Run opens a window and draws the console until the window is closed
func Run(console *Console, title string, width, height int) error {
	b, err := backend.CreateBackend(glfwbackend.NewGLFWBackend())
	if err != nil {
		return err
	}
	b.SetBgColor(imgui.Vec4{X: 0.12, Y: 0.12, Z: 0.14, W: 1})
	b.CreateWindow(title, width, height)
	b.Run(func() {
		imgui.SetNextWindowPos(imgui.Vec2{})
		imgui.SetNextWindowSize(imgui.CurrentIO().DisplaySize())
		imgui.BeginV(title, nil, imgui.WindowFlagsNoDecoration|imgui.WindowFlagsNoMove)
		console.Draw()
		imgui.End()
	})
	return nil
}
