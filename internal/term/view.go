package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/tetris/tetris"
)

const (
	// Each board cell is two terminal columns wide so blocks look square.
	cellWidth    = 2
	previewCells = 4
	panelGap     = 3
)

var (
	styleDefault = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	styleBorder  = tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack)
	styleEmpty   = tcell.StyleDefault.Background(tcell.NewRGBColor(0x11, 0x11, 0x11))
	styleBanner  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack).Bold(true)
)

var helpLines = []string{
	"←/→ h/l  move",
	"↓ j      soft drop",
	"↑ k      rotate",
	"space    hard drop",
	"p        pause",
	"enter    restart",
	"bksp     end game",
	"q/esc    quit",
}

// View draws snapshots onto a tcell screen.
type View struct {
	screen tcell.Screen
}

func NewView(screen tcell.Screen) *View {
	return &View{screen: screen}
}

func pieceStyle(c tetris.Cell) tcell.Style {
	rgba := tetris.RGBA(c)
	return tcell.StyleDefault.Background(tcell.NewRGBColor(int32(rgba.R), int32(rgba.G), int32(rgba.B)))
}

// Origin of the board interior.
func boardOrigin() (int, int) { return 1, 1 }

func panelLeft(cols int) int { return cols*cellWidth + 2 + panelGap }

func (v *View) Draw(snap tetris.Snapshot) {
	v.screen.Fill(' ', styleDefault)
	v.drawBorder(0, 0, snap.Cols*cellWidth+2, snap.Rows+2)
	v.drawBoard(snap)
	v.drawPanel(snap)

	switch {
	case snap.Over:
		v.drawBanner(snap, "GAME OVER")
	case snap.Paused:
		v.drawBanner(snap, "PAUSED")
	}

	v.screen.Show()
}

func (v *View) drawBorder(x, y, w, h int) {
	for i := x + 1; i < x+w-1; i++ {
		v.screen.SetContent(i, y, tcell.RuneHLine, nil, styleBorder)
		v.screen.SetContent(i, y+h-1, tcell.RuneHLine, nil, styleBorder)
	}
	for j := y + 1; j < y+h-1; j++ {
		v.screen.SetContent(x, j, tcell.RuneVLine, nil, styleBorder)
		v.screen.SetContent(x+w-1, j, tcell.RuneVLine, nil, styleBorder)
	}
	v.screen.SetContent(x, y, tcell.RuneULCorner, nil, styleBorder)
	v.screen.SetContent(x+w-1, y, tcell.RuneURCorner, nil, styleBorder)
	v.screen.SetContent(x, y+h-1, tcell.RuneLLCorner, nil, styleBorder)
	v.screen.SetContent(x+w-1, y+h-1, tcell.RuneLRCorner, nil, styleBorder)
}

func (v *View) drawCell(x, y int, c tetris.Cell) {
	style := styleEmpty
	if c != tetris.Empty {
		style = pieceStyle(c)
	}
	for i := range cellWidth {
		v.screen.SetContent(x+i, y, ' ', nil, style)
	}
}

func (v *View) drawBoard(snap tetris.Snapshot) {
	ox, oy := boardOrigin()
	for y, row := range snap.Composite() {
		for x, c := range row {
			v.drawCell(ox+x*cellWidth, oy+y, c)
		}
	}
}

func (v *View) drawText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (v *View) drawPanel(snap tetris.Snapshot) {
	left := panelLeft(snap.Cols)
	v.drawText(left, 1, fmt.Sprintf("Score: %d", snap.Score), styleDefault)
	v.drawText(left, 2, fmt.Sprintf("Level: %d", snap.Level), styleDefault)
	v.drawText(left, 3, fmt.Sprintf("Lines: %d", snap.Lines), styleDefault)
	v.drawText(left, 5, "Next:", styleDefault)

	boxW := previewCells*cellWidth + 2
	v.drawBorder(left, 6, boxW, previewCells+2)
	for y := range previewCells {
		for x := range previewCells {
			v.drawCell(left+1+x*cellWidth, 7+y, tetris.Empty)
		}
	}
	if snap.Next != nil {
		off := (previewCells - snap.Next.Size()) / 2
		for y, row := range snap.Next {
			for x, c := range row {
				if c != tetris.Empty {
					v.drawCell(left+1+(x+off)*cellWidth, 7+y+off, c)
				}
			}
		}
	}

	top := 6 + previewCells + 3
	for i, line := range helpLines {
		v.drawText(left, top+i, line, styleBorder)
	}
}

func (v *View) drawBanner(snap tetris.Snapshot, msg string) {
	ox, oy := boardOrigin()
	width := snap.Cols * cellWidth
	x := ox + (width-len(msg))/2
	y := oy + snap.Rows/2
	v.drawText(x-1, y, " "+msg+" ", styleBanner)
}
