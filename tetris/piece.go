package tetris

import (
	"fmt"
	"image/color"
)

// PieceType identifies one of the seven tetrominoes. The value doubles as the
// cell value a locked piece leaves on the board.
type PieceType uint8

const (
	PieceNone PieceType = iota
	PieceI
	PieceJ
	PieceL
	PieceO
	PieceS
	PieceT
	PieceZ
)

// PieceCount is the number of playable piece types.
const PieceCount = 7

// PieceTypes lists the playable types in catalog order.
var PieceTypes = [PieceCount]PieceType{PieceI, PieceJ, PieceL, PieceO, PieceS, PieceT, PieceZ}

func (p PieceType) String() string {
	switch p {
	case PieceNone:
		return "None"
	case PieceI:
		return "I"
	case PieceJ:
		return "J"
	case PieceL:
		return "L"
	case PieceO:
		return "O"
	case PieceS:
		return "S"
	case PieceT:
		return "T"
	case PieceZ:
		return "Z"
	default:
		return fmt.Sprintf("PieceType(%d)", uint8(p))
	}
}

// Valid reports whether p is one of the seven playable types.
func (p PieceType) Valid() bool {
	return p >= PieceI && p <= PieceZ
}

var catalog = [PieceCount + 1]Shape{
	PieceNone: nil,
	PieceI: {
		{0, 0, 0, 0},
		{1, 1, 1, 1},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	},
	PieceJ: {
		{2, 0, 0},
		{2, 2, 2},
		{0, 0, 0},
	},
	PieceL: {
		{0, 0, 3},
		{3, 3, 3},
		{0, 0, 0},
	},
	PieceO: {
		{4, 4},
		{4, 4},
	},
	PieceS: {
		{0, 5, 5},
		{5, 5, 0},
		{0, 0, 0},
	},
	PieceT: {
		{0, 6, 0},
		{6, 6, 6},
		{0, 0, 0},
	},
	PieceZ: {
		{7, 7, 0},
		{0, 7, 7},
		{0, 0, 0},
	},
}

// NewShape returns a fresh copy of the catalog shape for p. The catalog itself
// is never handed out, so callers may rotate the result freely.
func NewShape(p PieceType) Shape {
	if !p.Valid() {
		panic(fmt.Sprintf("tetris: invalid piece type %d", uint8(p)))
	}
	return catalog[p].Clone()
}

var colors = [PieceCount + 1]string{
	PieceNone: "",
	PieceI:    "#FF0D72",
	PieceJ:    "#0DC2FF",
	PieceL:    "#0DFF72",
	PieceO:    "#F538FF",
	PieceS:    "#FF8E0D",
	PieceT:    "#FFE138",
	PieceZ:    "#3877FF",
}

var rgba = [PieceCount + 1]color.RGBA{
	PieceNone: {0, 0, 0, 0},
	PieceI:    {0xFF, 0x0D, 0x72, 0xFF},
	PieceJ:    {0x0D, 0xC2, 0xFF, 0xFF},
	PieceL:    {0x0D, 0xFF, 0x72, 0xFF},
	PieceO:    {0xF5, 0x38, 0xFF, 0xFF},
	PieceS:    {0xFF, 0x8E, 0x0D, 0xFF},
	PieceT:    {0xFF, 0xE1, 0x38, 0xFF},
	PieceZ:    {0x38, 0x77, 0xFF, 0xFF},
}

// Color returns the hex color identifier for a cell value. Empty cells and
// out-of-range values yield "".
func Color(c Cell) string {
	if int(c) >= len(colors) {
		return ""
	}
	return colors[c]
}

// RGBA returns the display color for a cell value. Empty cells are fully
// transparent.
func RGBA(c Cell) color.RGBA {
	if int(c) >= len(rgba) {
		return color.RGBA{}
	}
	return rgba[c]
}
