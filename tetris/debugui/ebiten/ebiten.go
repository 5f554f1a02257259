// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/tetris/loop"
	"github.com/plus3/tetris/tetris/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and sizes the Ebiten window.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: backend}
}

// Overlay bundles the backend with the standard game panels and registers
// them on a scheduler.
type Overlay struct {
	backend   *ImguiBackend
	scheduler *loop.Scheduler
	system    *debugui.ImguiSystem

	inspector *debugui.GameInspector
	events    *debugui.EventLog
	perf      *debugui.PerformanceStats
	timer     *debugui.FrameTimer
}

// NewOverlay registers an ImguiSystem on scheduler and subscribes the event
// log to the scheduler's game.
func NewOverlay(backend *ImguiBackend, scheduler *loop.Scheduler) *Overlay {
	o := &Overlay{
		backend:   backend,
		scheduler: scheduler,
		system:    &debugui.ImguiSystem{},
		inspector: debugui.NewGameInspector(10),
		events:    debugui.NewEventLog(512, 25),
		perf:      debugui.NewPerformanceStats(120),
		timer:     debugui.NewFrameTimer(),
	}

	scheduler.Game().Subscribe(o.events.Listener())

	o.system.Add(func() {
		o.inspector.Render(scheduler.Game(), scheduler.Apply)
	})
	o.system.Add(o.events.Render)
	o.system.Add(func() {
		o.perf.Render(scheduler.GetStats(), o.timer.GetDeltaTime())
	})
	scheduler.Register(o.system)

	return o
}

// Step runs one scheduler frame inside an ImGui frame.
func (o *Overlay) Step(step func()) {
	o.backend.BeginFrame()
	step()
	o.backend.EndFrame()
}

// WantsKeyboard reports whether a focused widget is consuming key input.
func (o *Overlay) WantsKeyboard() bool {
	return o.system.InputState.WantCaptureKeyboard
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Draw(screen)
}

func (o *Overlay) Layout(outsideWidth, outsideHeight int) {
	o.backend.Layout(outsideWidth, outsideHeight)
}
