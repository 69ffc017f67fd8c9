package mino

import (
	"fmt"
	"strings"
)

const (
	Rotation0 = 0
	RotationR = 1
	Rotation2 = 2
	RotationL = 3

	RotationStates = 4
)

type PieceType int

const (
	PieceI PieceType = iota
	PieceO
	PieceT
	PieceS
	PieceZ
	PieceJ
	PieceL

	PieceCount = 7
)

var pieceNames = [PieceCount]string{"I", "O", "T", "S", "Z", "J", "L"}

func (t PieceType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("PieceType(%d)", int(t))
	}
	return pieceNames[t]
}

func (t PieceType) Valid() bool {
	return t >= PieceI && t < PieceCount
}

// Block is the color index cells of this type take when locked.
func (t PieceType) Block() Block {
	return Block(t + 1)
}

// Matrix returns the occupancy matrix of the given rotation state.
func (t PieceType) Matrix(rotation int) Matrix {
	return catalog[t][normalizeRotation(rotation)]
}

// Width is the side length of the type's rotation matrices.
func (t PieceType) Width() int {
	return catalog[t][Rotation0].size
}

// Matrix is a square occupancy grid of at most 4x4 cells. It is a value type, so the catalog
// can hand it out without being mutated by callers.
type Matrix struct {
	size  int
	cells [4][4]bool
}

func newMatrix(rows [][]int) Matrix {
	m := Matrix{size: len(rows)}
	for r := range rows {
		if len(rows[r]) != m.size {
			panic(fmt.Sprintf("mino: matrix row %d has %d columns, want %d", r, len(rows[r]), m.size))
		}
		for c, v := range rows[r] {
			m.cells[r][c] = v != 0
		}
	}
	return m
}

func (m Matrix) Size() int { return m.size }

func (m Matrix) Filled(row, col int) bool {
	if row < 0 || col < 0 || row >= m.size || col >= m.size {
		return false
	}
	return m.cells[row][col]
}

// Points lists the occupied cells relative to the matrix's top-left corner, row by row.
func (m Matrix) Points() []Point {
	points := make([]Point, 0, 4)
	for r := 0; r < m.size; r++ {
		for c := 0; c < m.size; c++ {
			if m.cells[r][c] {
				points = append(points, Point{c, r})
			}
		}
	}
	return points
}

func (m Matrix) String() string {
	var b strings.Builder
	for r := 0; r < m.size; r++ {
		if r > 0 {
			b.WriteRune('\n')
		}
		for c := 0; c < m.size; c++ {
			if m.cells[r][c] {
				b.WriteRune('X')
			} else {
				b.WriteRune('.')
			}
		}
	}
	return b.String()
}

// catalog holds every rotation state of every piece type, indexed by [type][rotation].
var catalog = [PieceCount][RotationStates]Matrix{
	PieceI: {
		newMatrix([][]int{{0, 0, 0, 0}, {1, 1, 1, 1}, {0, 0, 0, 0}, {0, 0, 0, 0}}),
		newMatrix([][]int{{0, 0, 1, 0}, {0, 0, 1, 0}, {0, 0, 1, 0}, {0, 0, 1, 0}}),
		newMatrix([][]int{{0, 0, 0, 0}, {0, 0, 0, 0}, {1, 1, 1, 1}, {0, 0, 0, 0}}),
		newMatrix([][]int{{0, 1, 0, 0}, {0, 1, 0, 0}, {0, 1, 0, 0}, {0, 1, 0, 0}}),
	},
	PieceO: {
		newMatrix([][]int{{1, 1}, {1, 1}}),
		newMatrix([][]int{{1, 1}, {1, 1}}),
		newMatrix([][]int{{1, 1}, {1, 1}}),
		newMatrix([][]int{{1, 1}, {1, 1}}),
	},
	PieceT: {
		newMatrix([][]int{{0, 1, 0}, {1, 1, 1}, {0, 0, 0}}),
		newMatrix([][]int{{0, 1, 0}, {0, 1, 1}, {0, 1, 0}}),
		newMatrix([][]int{{0, 0, 0}, {1, 1, 1}, {0, 1, 0}}),
		newMatrix([][]int{{0, 1, 0}, {1, 1, 0}, {0, 1, 0}}),
	},
	PieceS: {
		newMatrix([][]int{{0, 1, 1}, {1, 1, 0}, {0, 0, 0}}),
		newMatrix([][]int{{0, 1, 0}, {0, 1, 1}, {0, 0, 1}}),
		newMatrix([][]int{{0, 0, 0}, {0, 1, 1}, {1, 1, 0}}),
		newMatrix([][]int{{1, 0, 0}, {1, 1, 0}, {0, 1, 0}}),
	},
	PieceZ: {
		newMatrix([][]int{{1, 1, 0}, {0, 1, 1}, {0, 0, 0}}),
		newMatrix([][]int{{0, 0, 1}, {0, 1, 1}, {0, 1, 0}}),
		newMatrix([][]int{{0, 0, 0}, {1, 1, 0}, {0, 1, 1}}),
		newMatrix([][]int{{0, 1, 0}, {1, 1, 0}, {1, 0, 0}}),
	},
	PieceJ: {
		newMatrix([][]int{{1, 0, 0}, {1, 1, 1}, {0, 0, 0}}),
		newMatrix([][]int{{0, 1, 1}, {0, 1, 0}, {0, 1, 0}}),
		newMatrix([][]int{{0, 0, 0}, {1, 1, 1}, {0, 0, 1}}),
		newMatrix([][]int{{0, 1, 0}, {0, 1, 0}, {1, 1, 0}}),
	},
	PieceL: {
		newMatrix([][]int{{0, 0, 1}, {1, 1, 1}, {0, 0, 0}}),
		newMatrix([][]int{{0, 1, 0}, {0, 1, 0}, {0, 1, 1}}),
		newMatrix([][]int{{0, 0, 0}, {1, 1, 1}, {1, 0, 0}}),
		newMatrix([][]int{{1, 1, 0}, {0, 1, 0}, {0, 1, 0}}),
	},
}

func normalizeRotation(rotation int) int {
	rotation %= RotationStates
	if rotation < 0 {
		rotation += RotationStates
	}
	return rotation
}

// Piece is the active, falling piece. Point is the board position of the top-left corner of
// the current rotation's matrix.
type Piece struct {
	Point
	Type     PieceType
	Rotation int
}

// NewPiece places a piece of type t in rotation 0, centered horizontally on the top row.
func NewPiece(t PieceType) Piece {
	w := t.Width()
	return Piece{
		Type:  t,
		Point: Point{X: Cols/2 - (w+1)/2, Y: 0},
	}
}

func (p Piece) String() string {
	return fmt.Sprintf("%s r%d %s", p.Type, p.Rotation, p.Point)
}

func (p Piece) Matrix() Matrix {
	return p.Type.Matrix(p.Rotation)
}

func (p Piece) Block() Block {
	return p.Type.Block()
}

// Rotated returns p turned one step clockwise. Position is unchanged.
func (p Piece) Rotated() Piece {
	p.Rotation = normalizeRotation(p.Rotation + 1)
	return p
}

// Moved returns p shifted by (dx, dy).
func (p Piece) Moved(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// Cells returns the absolute board coordinates of every occupied cell.
func (p Piece) Cells() []Point {
	points := p.Matrix().Points()
	for i := range points {
		points[i] = points[i].Add(p.Point)
	}
	return points
}
