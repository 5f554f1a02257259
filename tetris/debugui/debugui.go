// Package debugui provides Dear ImGui panels for inspecting a running game.
// Panels are plain structs with a Render method; ImguiSystem queues them as
// deferred work on the loop scheduler so they draw after the game has ticked.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/tetris/loop"
)

// ImguiItem holds a Dear ImGui render function that runs once per frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state.
// Frontends use it to stop game keys leaking into focused widgets.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem refreshes the input state and defers every item's render
// function until all other systems have executed.
type ImguiSystem struct {
	Items      []ImguiItem
	InputState ImguiInputState
}

// Add appends a render function.
func (i *ImguiSystem) Add(render func()) {
	i.Items = append(i.Items, ImguiItem{Render: render})
}

// Execute updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Execute(frame *loop.Frame) {
	i.InputState.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	i.InputState.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

	for _, item := range i.Items {
		frame.Defer(item.Render)
	}
}
