package gui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/qnkhuat/termtris/pkg/game"
	"github.com/qnkhuat/termtris/pkg/mino"
)

const (
	// cellWidth is the number of screen columns per board cell, which keeps cells roughly square
	cellWidth = 2

	// BoardWidth and BoardHeight are the screen size of the board including its border
	BoardWidth  = mino.Cols*cellWidth + 2
	BoardHeight = mino.Rows + 2

	gameOverText = " GAME OVER "
	gameOverRow  = mino.Rows/2 - 1
)

// drawText places text at the specified coordinates with the provided style
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range []rune(text) {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// drawRune places a rune at the specified coordinates with the provided style
func drawRune(s tcell.Screen, x, y int, style tcell.Style, r rune) {
	s.SetContent(x, y, r, nil, style)
}

// DefStyle is the default style for tcell rendering
var DefStyle = tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset)

// cellStyle returns the style of a board cell
func cellStyle(snap game.Snapshot, row, col int, t Theme) tcell.Style {
	block := snap.Block(row, col)

	if snap.Flashing(row) && !block.Empty() {
		if snap.FlashVisible {
			return DefStyle.Background(t.Flash)
		}
		return DefStyle.Background(t.Empty)
	}
	return DefStyle.Background(t.Block(block))
}

// drawCell fills the two columns of a board cell
func drawCell(s tcell.Screen, x, y int, style tcell.Style) {
	for i := 0; i < cellWidth; i++ {
		drawRune(s, x+i, y, style, ' ')
	}
}

// drawBorder draws the well around the board, x and y being its top left corner
func drawBorder(s tcell.Screen, x, y int, t Theme) {
	style := DefStyle.Foreground(t.Border)
	right := x + BoardWidth - 1
	bottom := y + BoardHeight - 1

	drawRune(s, x, y, style, tcell.RuneULCorner)
	drawRune(s, right, y, style, tcell.RuneURCorner)
	drawRune(s, x, bottom, style, tcell.RuneLLCorner)
	drawRune(s, right, bottom, style, tcell.RuneLRCorner)
	for col := x + 1; col < right; col++ {
		drawRune(s, col, y, style, tcell.RuneHLine)
		drawRune(s, col, bottom, style, tcell.RuneHLine)
	}
	for row := y + 1; row < bottom; row++ {
		drawRune(s, x, row, style, tcell.RuneVLine)
		drawRune(s, right, row, style, tcell.RuneVLine)
	}
}

// drawLabel writes text centered across the well on the given board row
func drawLabel(s tcell.Screen, x, y, row int, text string, style tcell.Style) {
	offset := (mino.Cols*cellWidth - len([]rune(text))) / 2
	if offset < 0 {
		offset = 0
	}
	drawText(s, x+1+offset, y+1+row, style, text)
}

// drawBoard draws the board, the falling piece and the border at x, y. A finished game gets
// its final score written across the middle of the well.
func drawBoard(s tcell.Screen, x, y int, snap game.Snapshot, t Theme) {
	drawBorder(s, x, y, t)

	for row := 0; row < mino.Rows; row++ {
		for col := 0; col < mino.Cols; col++ {
			drawCell(s, x+1+col*cellWidth, y+1+row, cellStyle(snap, row, col, t))
		}
	}

	if snap.GameOver {
		style := DefStyle.Foreground(t.Score).Bold(true)
		drawLabel(s, x, y, gameOverRow, gameOverText, style)
		drawLabel(s, x, y, gameOverRow+1, fmt.Sprintf(" %d ", snap.Score), style)
	}
}
