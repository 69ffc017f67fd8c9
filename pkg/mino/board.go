package mino

import (
	"sort"
	"strings"
)

const (
	Cols = 10
	Rows = 20
)

// Board is the grid of locked cells. Row 0 is the top row. The zero value is an empty board.
type Board struct {
	cells [Rows][Cols]Block
}

func NewBoard() *Board {
	return &Board{}
}

// Occupied reports whether a cell blocks a piece. Cells below the floor or beside the walls are
// always occupied, cells above the top row never are.
func (b *Board) Occupied(row, col int) bool {
	if row >= Rows || col < 0 || col >= Cols {
		return true
	}
	if row < 0 {
		return false
	}
	return b.cells[row][col] != BlockNone
}

// Block returns the value of an in-bounds cell.
func (b *Board) Block(row, col int) Block {
	return b.cells[row][col]
}

// Set writes a locked cell. The caller guarantees the coordinate is in bounds.
func (b *Board) Set(row, col int, block Block) {
	b.cells[row][col] = block
}

func (b *Board) Clear() {
	b.cells = [Rows][Cols]Block{}
}

func (b *Board) rowFull(row int) bool {
	for col := 0; col < Cols; col++ {
		if b.cells[row][col] == BlockNone {
			return false
		}
	}
	return true
}

// FullRows lists the indices of every completely filled row, top to bottom.
func (b *Board) FullRows() []int {
	var rows []int
	for row := 0; row < Rows; row++ {
		if b.rowFull(row) {
			rows = append(rows, row)
		}
	}
	return rows
}

// RemoveRows deletes the given rows and drops everything above them, keeping the relative
// order of the remaining rows and opening one empty row at the top per removed row. Removing a
// row only shifts the rows above it, so indices are processed from the top down.
func (b *Board) RemoveRows(rows []int) {
	sorted := append([]int(nil), rows...)
	sort.Ints(sorted)

	for i, row := range sorted {
		if i > 0 && row == sorted[i-1] {
			continue
		}
		if row < 0 || row >= Rows {
			continue
		}
		b.removeRow(row)
	}
}

func (b *Board) removeRow(row int) {
	for r := row; r > 0; r-- {
		b.cells[r] = b.cells[r-1]
	}
	b.cells[0] = [Cols]Block{}
}

// Rows returns a copy of the grid.
func (b *Board) Rows() [Rows][Cols]Block {
	return b.cells
}

func (b *Board) Empty() bool {
	return b.cells == [Rows][Cols]Block{}
}

func (b *Board) String() string {
	var s strings.Builder
	for row := 0; row < Rows; row++ {
		if row > 0 {
			s.WriteRune('\n')
		}
		for col := 0; col < Cols; col++ {
			s.WriteRune(b.cells[row][col].Rune())
		}
	}
	return s.String()
}
