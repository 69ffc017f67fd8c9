package gui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qnkhuat/termtris/pkg/event"
	"github.com/qnkhuat/termtris/pkg/game"
	"github.com/qnkhuat/termtris/pkg/mino"
)

type actionLog struct {
	actions []event.GameAction
}

func (l *actionLog) do(a event.GameAction) bool {
	l.actions = append(l.actions, a)
	return true
}

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()

	s := tcell.NewSimulationScreen("")
	require.NoError(t, s.Init())
	s.SetSize(40, 30)
	t.Cleanup(s.Fini)
	return s
}

func background(s tcell.Screen, x, y int) tcell.Color {
	_, _, style, _ := s.GetContent(x, y)
	_, bg, _ := style.Decompose()
	return bg
}

// screenX is the first screen column of a board column, for a board drawn at the origin
func screenX(col int) int {
	return 1 + col*cellWidth
}

func TestActionFor(t *testing.T) {
	tests := []struct {
		key    tcell.Key
		r      rune
		action event.GameAction
	}{
		{tcell.KeyLeft, 0, event.ActionMoveLeft},
		{tcell.KeyRight, 0, event.ActionMoveRight},
		{tcell.KeyDown, 0, event.ActionSoftDrop},
		{tcell.KeyUp, 0, event.ActionRotate},
		{tcell.KeyRune, 'h', event.ActionMoveLeft},
		{tcell.KeyRune, 'L', event.ActionMoveRight},
		{tcell.KeyRune, 'j', event.ActionSoftDrop},
		{tcell.KeyRune, 'k', event.ActionRotate},
		{tcell.KeyRune, 'x', event.ActionRotate},
		{tcell.KeyRune, 'r', event.ActionRestart},
		{tcell.KeyRune, 'q', event.ActionQuit},
		{tcell.KeyEscape, 0, event.ActionQuit},
		{tcell.KeyCtrlC, 0, event.ActionQuit},
		{tcell.KeyRune, 'a', event.ActionUnknown},
		{tcell.KeyEnter, 0, event.ActionUnknown},
	}

	for _, tt := range tests {
		ev := tcell.NewEventKey(tt.key, tt.r, tcell.ModNone)
		assert.Equal(t, tt.action, actionFor(ev), "key %s", ev.Name())
	}
}

func TestDrawBoard(t *testing.T) {
	s := newScreen(t)
	g := game.NewGame(game.Config{LineClearAnimation: true, Rand: mino.NewSequence(mino.PieceO)})

	drawBoard(s, 0, 0, g.Snapshot(), ThemeBasic)

	r, _, _, _ := s.GetContent(0, 0)
	assert.Equal(t, tcell.RuneULCorner, r)
	r, _, _, _ = s.GetContent(BoardWidth-1, BoardHeight-1)
	assert.Equal(t, tcell.RuneLRCorner, r)
	r, _, _, _ = s.GetContent(0, 5)
	assert.Equal(t, tcell.RuneVLine, r)

	// The O piece covers columns 4 and 5 of the two top rows.
	for _, col := range []int{4, 5} {
		for _, row := range []int{0, 1} {
			assert.Equal(t, ThemeBasic.Yellow, background(s, screenX(col), 1+row))
			assert.Equal(t, ThemeBasic.Yellow, background(s, screenX(col)+1, 1+row))
		}
	}
	assert.Equal(t, ThemeBasic.Empty, background(s, screenX(3), 1))
	assert.Equal(t, ThemeBasic.Empty, background(s, screenX(4), 3))
}

func TestDrawFlashingRows(t *testing.T) {
	snap := game.Snapshot{FlashingRows: []int{19}, FlashVisible: true}
	for col := 0; col < mino.Cols; col++ {
		snap.Cells[19][col] = mino.BlockRed
	}
	snap.Cells[18][0] = mino.BlockRed

	s := newScreen(t)
	drawBoard(s, 0, 0, snap, ThemeBasic)
	assert.Equal(t, ThemeBasic.Flash, background(s, screenX(0), 20))
	assert.Equal(t, ThemeBasic.Flash, background(s, screenX(9), 20))
	assert.Equal(t, ThemeBasic.Red, background(s, screenX(0), 19))

	snap.FlashVisible = false
	drawBoard(s, 0, 0, snap, ThemeBasic)
	assert.Equal(t, ThemeBasic.Empty, background(s, screenX(0), 20))
	assert.Equal(t, ThemeBasic.Red, background(s, screenX(0), 19))
}

func TestThemes(t *testing.T) {
	for _, want := range []string{"basic", "mono"} {
		theme, err := ImportThemes(want, Themes)
		require.NoError(t, err)
		assert.Equal(t, want, theme.Name)
	}

	imported, err := ImportThemes("basic", Themes)
	require.NoError(t, err)
	assert.Equal(t, ThemeBasic.Hex(), imported.Hex())
	assert.Equal(t, "#0", imported.Hex().Empty)

	_, err = ImportThemes("missing", Themes)
	assert.Error(t, err)

	assert.Equal(t, ThemeBasic.Orange, ThemeBasic.Block(mino.BlockOrange))
	assert.Equal(t, ThemeBasic.Empty, ThemeBasic.Block(mino.BlockNone))
}

func TestReadThemes(t *testing.T) {
	themes, err := ReadThemes(strings.NewReader(`[{"name": "dark", "cyan": "#00ffff", "empty": "#0"}]`))
	require.NoError(t, err)
	require.Len(t, themes, 1)

	theme, err := ImportThemes("dark", themes)
	require.NoError(t, err)
	assert.Equal(t, int32(0x00ffff), theme.Cyan.Hex())
	assert.Equal(t, tcell.ColorDefault, theme.Empty)

	_, err = ReadThemes(bytes.NewBufferString("{"))
	assert.Error(t, err)
}

func TestKeypress(t *testing.T) {
	var log actionLog
	g := NewGUI(ThemeBasic, "tester", log.do)

	assert.Nil(t, g.handleKeypress(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone)))
	assert.Nil(t, g.handleKeypress(tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone)))
	assert.Nil(t, g.handleKeypress(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone)))
	assert.Equal(t, []event.GameAction{event.ActionMoveLeft, event.ActionRotate}, log.actions)
}

func TestGameOverDialog(t *testing.T) {
	var log actionLog
	g := NewGUI(ThemeBasic, "tester", log.do)

	g.Render(game.Snapshot{Score: 300})
	g.refresh()
	assert.False(t, g.showingGameOver())
	assert.Contains(t, g.side.GetText(true), "tester")
	assert.Contains(t, g.side.GetText(true), "300")

	g.Render(game.Snapshot{Score: 800, GameOver: true})
	g.refresh()
	require.True(t, g.showingGameOver())

	// Movement keys go to the dialog buttons while it is showing.
	left := tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone)
	assert.Equal(t, left, g.handleKeypress(left))
	assert.Empty(t, log.actions)

	assert.Nil(t, g.handleKeypress(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone)))
	assert.Equal(t, []event.GameAction{event.ActionRestart}, log.actions)

	g.Render(game.Snapshot{})
	g.refresh()
	assert.False(t, g.showingGameOver())
}

func rowText(s tcell.Screen, x, y, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		r, _, _, _ := s.GetContent(x+i, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestDrawGameOverLabel(t *testing.T) {
	s := newScreen(t)

	drawBoard(s, 0, 0, game.Snapshot{Score: 800}, ThemeBasic)
	assert.Equal(t, "                    ", rowText(s, 1, 1+gameOverRow, mino.Cols*cellWidth))

	drawBoard(s, 0, 0, game.Snapshot{Score: 800, GameOver: true}, ThemeBasic)
	assert.Equal(t, "     GAME OVER      ", rowText(s, 1, 1+gameOverRow, mino.Cols*cellWidth))
	assert.Equal(t, "        800         ", rowText(s, 1, 2+gameOverRow, mino.Cols*cellWidth))

	_, _, style, _ := s.GetContent(5, 1+gameOverRow)
	fg, _, attrs := style.Decompose()
	assert.Equal(t, ThemeBasic.Score, fg)
	assert.NotZero(t, attrs&tcell.AttrBold)

	r, _, _, _ := s.GetContent(0, 1+gameOverRow)
	assert.Equal(t, tcell.RuneVLine, r)
}
