package game

import (
	"strings"

	"github.com/qnkhuat/termtris/pkg/mino"
)

// Snapshot is a copy of everything a renderer needs to draw one frame. It shares no memory
// with the Game it was taken from.
type Snapshot struct {
	Cells [mino.Rows][mino.Cols]mino.Block

	HasPiece   bool
	Piece      []mino.Point
	PieceBlock mino.Block

	Score    int
	GameOver bool

	FlashingRows []int
	FlashVisible bool
}

func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Cells:        g.board.Rows(),
		Score:        g.score,
		GameOver:     g.gameOver,
		FlashingRows: g.Flashing(),
		FlashVisible: true,
	}
	if g.clear.active() {
		s.FlashVisible = g.clear.visible()
	}
	if g.piece != nil {
		s.HasPiece = true
		s.Piece = g.piece.Cells()
		s.PieceBlock = g.piece.Block()
	}
	return s
}

func (s Snapshot) Flashing(row int) bool {
	for _, r := range s.FlashingRows {
		if r == row {
			return true
		}
	}
	return false
}

// Block returns what is shown at a cell: the active piece over the locked cells.
func (s Snapshot) Block(row, col int) mino.Block {
	if s.HasPiece {
		for _, p := range s.Piece {
			if p.X == col && p.Y == row {
				return s.PieceBlock
			}
		}
	}
	return s.Cells[row][col]
}

// Render draws the frame as text, one line per row. Flashing rows are drawn as '#' while
// visible and blank while hidden.
func (s Snapshot) Render() string {
	var b strings.Builder
	for row := 0; row < mino.Rows; row++ {
		if row > 0 {
			b.WriteRune('\n')
		}

		flashing := s.Flashing(row)
		for col := 0; col < mino.Cols; col++ {
			block := s.Block(row, col)
			switch {
			case flashing && block != mino.BlockNone && s.FlashVisible:
				b.WriteRune('#')
			case flashing && block != mino.BlockNone:
				b.WriteRune(' ')
			default:
				b.WriteRune(block.Rune())
			}
		}
	}
	return b.String()
}
