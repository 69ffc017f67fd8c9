package game

import (
	"fmt"
	"time"

	"github.com/qnkhuat/termtris/pkg/event"
	"github.com/qnkhuat/termtris/pkg/mino"
)

// kicks are the horizontal offsets tried, in order, when a rotation collides in place.
var kicks = [...]int{-1, 1, -2, 2}

// Game is a single falling-block game. It is not safe for concurrent use: one goroutine owns it
// and calls every method, see Runner.
type Game struct {
	board *mino.Board
	piece *mino.Piece

	score    int
	gameOver bool

	clear lineClear
	drop  time.Duration

	animate bool
	rand    mino.Randomizer
	events  func(e interface{})
}

// NewGame starts a game with an empty board and a freshly spawned piece.
func NewGame(c Config) *Game {
	g := &Game{
		board:   mino.NewBoard(),
		animate: c.LineClearAnimation,
		rand:    c.Rand,
		events:  c.Events,
	}
	if g.rand == nil {
		g.rand = mino.NewRandomizer(c.Seed)
	}

	g.spawn()

	return g
}

func (g *Game) emit(e interface{}) {
	if g.events == nil {
		return
	}
	g.events(e)
}

// Restart throws away the current game, including a line clear in progress, and starts over.
func (g *Game) Restart() {
	g.board.Clear()
	g.piece = nil
	g.score = 0
	g.gameOver = false
	g.clear.reset()
	g.drop = 0

	g.emit(&event.RestartEvent{})

	g.spawn()
}

func (g *Game) Score() int {
	return g.score
}

func (g *Game) GameOver() bool {
	return g.gameOver
}

// Piece returns the active piece. ok is false while no piece is falling.
func (g *Game) Piece() (p mino.Piece, ok bool) {
	if g.piece == nil {
		return mino.Piece{}, false
	}
	return *g.piece, true
}

// Flashing returns the rows waiting to be removed, if a line clear is in progress.
func (g *Game) Flashing() []int {
	return append([]int(nil), g.clear.rows...)
}

// Locked reports whether input is ignored: the game is over, rows are flashing or there is no
// active piece.
func (g *Game) Locked() bool {
	return g.gameOver || g.clear.active() || g.piece == nil
}

// Collides reports whether p, shifted by (dx, dy) and turned to rotation, would leave the board
// sideways, pass the floor or overlap a locked cell. Cells above the top row never overlap.
func (g *Game) Collides(p mino.Piece, dx, dy, rotation int) bool {
	p.Rotation = rotation
	p = p.Moved(dx, dy)

	for _, c := range p.Cells() {
		if g.board.Occupied(c.Y, c.X) {
			return true
		}
	}
	return false
}

func (g *Game) MoveLeft() {
	g.shift(-1)
}

func (g *Game) MoveRight() {
	g.shift(1)
}

func (g *Game) shift(dx int) {
	if g.Locked() {
		return
	}
	if g.Collides(*g.piece, dx, 0, g.piece.Rotation) {
		return
	}
	g.piece.X += dx
}

// SoftDrop moves the piece down one row, or locks it when it is resting on something.
func (g *Game) SoftDrop() {
	if g.Locked() {
		return
	}
	if !g.Collides(*g.piece, 0, 1, g.piece.Rotation) {
		g.piece.Y++
		return
	}
	g.lock()
}

// Rotate turns the piece clockwise. When the turned piece collides in place it is shifted by
// each of the kick offsets in turn and the first free position is taken. If none is free the
// piece is left as it was.
func (g *Game) Rotate() {
	if g.Locked() {
		return
	}

	next := (g.piece.Rotation + 1) % mino.RotationStates
	if !g.Collides(*g.piece, 0, 0, next) {
		g.piece.Rotation = next
		return
	}

	for _, dx := range kicks {
		if !g.Collides(*g.piece, dx, 0, next) {
			g.piece.X += dx
			g.piece.Rotation = next
			return
		}
	}
}

// Do applies an input action. Unknown actions and ActionQuit are ignored.
func (g *Game) Do(a event.GameAction) {
	switch a {
	case event.ActionMoveLeft:
		g.MoveLeft()
	case event.ActionMoveRight:
		g.MoveRight()
	case event.ActionSoftDrop:
		g.SoftDrop()
	case event.ActionRotate:
		g.Rotate()
	case event.ActionRestart:
		g.Restart()
	}
}

// Update advances the game by elapsed time. While rows are flashing gravity is suspended; once
// the flash is over the rows are removed and the next piece spawns. Otherwise elapsed time is
// accumulated and the piece drops one row each time a full DropInterval has built up.
func (g *Game) Update(elapsed time.Duration) {
	if g.gameOver {
		return
	}
	if elapsed < 0 {
		elapsed = 0
	}

	if g.clear.active() {
		if g.clear.advance(elapsed) {
			rows := g.clear.rows
			g.clear.reset()

			g.removeRows(rows)
			g.spawn()
			g.drop = 0
		}
		return
	}

	g.drop += elapsed
	if g.drop >= DropInterval {
		g.SoftDrop()
		g.drop -= DropInterval
	}
}

func (g *Game) spawn() {
	p := mino.NewPiece(mino.Random(g.rand))
	g.piece = &p

	if g.Collides(p, 0, 0, p.Rotation) {
		g.setGameOver(fmt.Sprintf("%s piece has no room to spawn", p.Type))
		return
	}

	g.emit(&event.SpawnEvent{Piece: p.Type.String()})
}

// lock writes the active piece into the board. A cell above the top row ends the game.
func (g *Game) lock() {
	p := *g.piece
	block := p.Block()

	for _, c := range p.Cells() {
		if c.Y < 0 {
			g.setGameOver(fmt.Sprintf("%s piece locked above the board", p.Type))
			return
		}
		g.board.Set(c.Y, c.X, block)
	}

	rows := g.board.FullRows()
	if len(rows) == 0 {
		g.spawn()
		return
	}

	g.emit(&event.LinesEvent{Rows: rows, Flashing: g.animate})

	if g.animate {
		g.piece = nil
		g.clear.start(rows)
		return
	}

	g.removeRows(rows)
	g.spawn()
}

func (g *Game) removeRows(rows []int) {
	g.board.RemoveRows(rows)

	points := Points(len(rows))
	g.score += points

	g.emit(&event.ScoreEvent{Lines: len(rows), Score: points, Total: g.score})
}

func (g *Game) setGameOver(reason string) {
	if g.gameOver {
		return
	}
	g.gameOver = true

	g.emit(&event.GameOverEvent{Event: event.Event{Message: reason}, Score: g.score})
}
