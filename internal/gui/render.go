package gui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/tetris/tetris"
)

const (
	panelGap     = 20
	previewCells = 4

	// ebitenutil.DebugPrint glyph metrics.
	glyphWidth  = 6
	glyphHeight = 16
)

var (
	backgroundColor = color.RGBA{0x11, 0x11, 0x11, 0xff}
	gridColor       = color.RGBA{0x33, 0x33, 0x33, 0xff}
	outlineColor    = color.RGBA{0, 0, 0, 0xff}
	shineColor      = color.RGBA{51, 51, 51, 51}
	dimColor        = color.RGBA{0, 0, 0, 178}
)

// Renderer draws snapshots at a fixed cell size.
type Renderer struct {
	cellSize   float32
	rows, cols int
}

func NewRenderer(cellSize, rows, cols int) *Renderer {
	return &Renderer{cellSize: float32(cellSize), rows: rows, cols: cols}
}

// ScreenSize is the logical window size: the board plus a side panel wide
// enough for the next-piece preview.
func (r *Renderer) ScreenSize() (int, int) {
	cs := int(r.cellSize)
	return r.cols*cs + panelGap*2 + previewCells*cs, r.rows * cs
}

func (r *Renderer) boardWidth() float32  { return float32(r.cols) * r.cellSize }
func (r *Renderer) boardHeight() float32 { return float32(r.rows) * r.cellSize }

func (r *Renderer) Draw(screen *ebiten.Image, snap tetris.Snapshot) {
	screen.Fill(color.Black)
	r.drawBoard(screen, snap)
	r.drawPanel(screen, snap)
}

func (r *Renderer) drawBoard(screen *ebiten.Image, snap tetris.Snapshot) {
	w, h := r.boardWidth(), r.boardHeight()
	vector.DrawFilledRect(screen, 0, 0, w, h, backgroundColor, false)

	for i := 0; i <= r.rows; i++ {
		y := float32(i) * r.cellSize
		vector.StrokeLine(screen, 0, y, w, y, 1, gridColor, false)
	}
	for i := 0; i <= r.cols; i++ {
		x := float32(i) * r.cellSize
		vector.StrokeLine(screen, x, 0, x, h, 1, gridColor, false)
	}

	for y, row := range snap.Composite() {
		for x, v := range row {
			if v != tetris.Empty {
				r.drawBlock(screen, float32(x)*r.cellSize, float32(y)*r.cellSize, tetris.RGBA(v))
			}
		}
	}

	switch {
	case snap.Over:
		r.drawOverlay(screen, "GAME OVER")
	case snap.Paused:
		r.drawOverlay(screen, "PAUSED")
	}
}

func (r *Renderer) drawBlock(dst *ebiten.Image, x, y float32, c color.Color) {
	size := r.cellSize - 1
	vector.DrawFilledRect(dst, x, y, size, size, c, false)
	vector.StrokeRect(dst, x, y, size, size, 1, outlineColor, false)
	vector.DrawFilledRect(dst, x+2, y+2, r.cellSize/3, r.cellSize/3, shineColor, false)
}

func (r *Renderer) drawOverlay(screen *ebiten.Image, msg string) {
	vector.DrawFilledRect(screen, 0, 0, r.boardWidth(), r.boardHeight(), dimColor, false)
	x, y := textOrigin(msg, int(r.boardWidth())/2, int(r.boardHeight())/2)
	ebitenutil.DebugPrintAt(screen, msg, x, y)
}

func (r *Renderer) drawPanel(screen *ebiten.Image, snap tetris.Snapshot) {
	left := int(r.boardWidth()) + panelGap
	lines := []string{
		fmt.Sprintf("Score: %d", snap.Score),
		fmt.Sprintf("Level: %d", snap.Level),
		fmt.Sprintf("Lines: %d", snap.Lines),
		"",
		"Next:",
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, left, i*glyphHeight)
	}

	top := float32(len(lines) * glyphHeight)
	box := float32(previewCells) * r.cellSize
	vector.DrawFilledRect(screen, float32(left), top, box, box, backgroundColor, false)

	if snap.Next != nil {
		ox, oy := previewOrigin(snap.Next, r.cellSize, box)
		for y, row := range snap.Next {
			for x, v := range row {
				if v != tetris.Empty {
					r.drawBlock(screen, float32(left)+ox+float32(x)*r.cellSize, top+oy+float32(y)*r.cellSize, tetris.RGBA(v))
				}
			}
		}
	}

	help := []string{
		"Left/Right  move",
		"Down        soft drop",
		"Up          rotate",
		"Space       hard drop",
		"P           pause",
		"Enter       restart",
		"Backspace   end game",
		"Esc/Q       quit",
	}
	helpTop := int(top+box) + glyphHeight
	for i, line := range help {
		ebitenutil.DebugPrintAt(screen, line, left, helpTop+i*glyphHeight)
	}
}

// previewOrigin centers a shape's full matrix inside a square box.
func previewOrigin(s tetris.Shape, cellSize, box float32) (float32, float32) {
	n := float32(s.Size()) * cellSize
	return (box - n) / 2, (box - n) / 2
}

// textOrigin returns the top-left point that centers msg on (cx, cy).
func textOrigin(msg string, cx, cy int) (int, int) {
	return cx - len(msg)*glyphWidth/2, cy - glyphHeight/2
}
