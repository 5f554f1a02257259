package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/tetris/tetris"
)

// GameInspector shows session state, the board and per-game statistics, and
// exposes the player commands as buttons.
type GameInspector struct {
	cellSize float32
}

func NewGameInspector(cellSize float32) *GameInspector {
	return &GameInspector{cellSize: cellSize}
}

var inspectorCommands = []tetris.Command{
	tetris.CommandMoveLeft,
	tetris.CommandMoveRight,
	tetris.CommandRotate,
	tetris.CommandSoftDrop,
	tetris.CommandHardDrop,
	tetris.CommandTogglePause,
	tetris.CommandEndGame,
	tetris.CommandRestart,
}

// Render draws the inspector window. Button presses are routed through apply.
func (gi *GameInspector) Render(g *tetris.Game, apply func(tetris.Command) bool) {
	if !imgui.BeginV("Game Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	snap := g.Snapshot()

	imgui.Text(fmt.Sprintf("Phase: %s", snap.Phase))
	imgui.Text(fmt.Sprintf("Score: %d", snap.Score))
	imgui.Text(fmt.Sprintf("Level: %d  Lines: %d", snap.Level, snap.Lines))
	imgui.Text(fmt.Sprintf("Drop Interval: %s", snap.DropInterval))
	imgui.Text(fmt.Sprintf("Drop Counter: %s", g.DropCounter()))
	imgui.Text(fmt.Sprintf("Active: %s at (%d, %d)", snap.ActiveType, snap.Position.X, snap.Position.Y))
	imgui.Text(fmt.Sprintf("Next: %s", snap.NextType))
	imgui.Separator()

	for i, c := range inspectorCommands {
		if i%4 != 0 {
			imgui.SameLine()
		}
		if imgui.Button(c.String()) {
			apply(c)
		}
	}

	if imgui.TreeNodeStr("Board") {
		gi.renderBoard(snap)
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Statistics") {
		gi.renderStats(g.Stats())
		imgui.TreePop()
	}

	imgui.End()
}

func (gi *GameInspector) renderBoard(snap tetris.Snapshot) {
	cells := snap.Composite()
	drawList := imgui.WindowDrawList()
	origin := imgui.CursorScreenPos()
	empty := imgui.ColorU32Vec4(imgui.NewVec4(0.1, 0.1, 0.1, 1))

	for y, row := range cells {
		for x, v := range row {
			color := empty
			if v != tetris.Empty {
				rgba := tetris.RGBA(v)
				color = imgui.ColorU32Vec4(imgui.NewVec4(
					float32(rgba.R)/255, float32(rgba.G)/255, float32(rgba.B)/255, 1,
				))
			}
			minX := origin.X + float32(x)*gi.cellSize
			minY := origin.Y + float32(y)*gi.cellSize
			drawList.AddRectFilled(
				imgui.NewVec2(minX+1, minY+1),
				imgui.NewVec2(minX+gi.cellSize-1, minY+gi.cellSize-1),
				color,
			)
		}
	}

	imgui.Dummy(imgui.NewVec2(float32(snap.Cols)*gi.cellSize, float32(snap.Rows)*gi.cellSize))
}

func (gi *GameInspector) renderStats(stats tetris.StatsSnapshot) {
	imgui.Text(fmt.Sprintf("Pieces: %d", stats.TotalPieces()))
	imgui.Text(fmt.Sprintf("Hard Drop Rows: %d", stats.HardDropRows))
	imgui.Text(fmt.Sprintf("Auto Drops: %d", stats.AutoDrops))
	imgui.Text(fmt.Sprintf("Play Time: %s", stats.PlayTime.Round(time.Millisecond)))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("PieceTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Piece")
		imgui.TableSetupColumn("Spawned")
		imgui.TableHeadersRow()
		for _, p := range tetris.PieceTypes {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(p.String())
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", stats.Pieces[p]))
		}
		imgui.EndTable()
	}

	for rows := 1; rows <= len(stats.Clears); rows++ {
		imgui.BulletText(fmt.Sprintf("%d-line clears: %d", rows, stats.ClearCount(rows)))
	}
}
