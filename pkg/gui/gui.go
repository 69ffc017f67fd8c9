package gui

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/qnkhuat/termtris/pkg/event"
	"github.com/qnkhuat/termtris/pkg/game"
)

const (
	pageGame     = "game"
	pageGameOver = "gameover"

	sideWidth = 24

	DefaultStatusText = "Arrows or HJL to move/drop, Up/K/X to rotate, R to restart, Q to quit"
)

// GUI is a terminal front end for a game. It implements game.Renderer: Render stores the frame
// and asks the application to redraw, so the game's goroutine never waits on the screen.
type GUI struct {
	App *tview.Application

	board  *tview.Box
	side   *tview.TextView
	status *tview.TextView
	modal  *tview.Modal
	pages  *tview.Pages

	theme Theme
	name  string
	do    func(event.GameAction) bool

	mtx      sync.Mutex
	snap     game.Snapshot
	gameOver bool

	draw chan struct{}
}

// NewGUI builds the layout. do receives every action the player triggers, usually Runner.Do.
func NewGUI(theme Theme, name string, do func(event.GameAction) bool) *GUI {
	g := &GUI{
		App:   tview.NewApplication(),
		theme: theme,
		name:  name,
		do:    do,
		draw:  make(chan struct{}, 1),
	}

	g.board = tview.NewBox()
	g.board.SetDrawFunc(g.drawBoard)

	g.side = tview.NewTextView().
		SetScrollable(false).
		SetTextAlign(tview.AlignLeft).
		SetWrap(false).
		SetWordWrap(false).
		SetDynamicColors(true)

	g.status = tview.NewTextView().
		SetScrollable(false).
		SetTextAlign(tview.AlignLeft).
		SetTextColor(theme.Text).
		SetText(DefaultStatusText)

	g.modal = tview.NewModal().
		AddButtons([]string{"Restart", "Quit"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			switch buttonLabel {
			case "Restart":
				g.do(event.ActionRestart)
			case "Quit":
				g.do(event.ActionQuit)
			}
		})

	grid := tview.NewGrid().
		SetBorders(false).
		SetRows(BoardHeight, 1, -1).
		SetColumns(1, BoardWidth, 2, sideWidth, -1).
		AddItem(tview.NewBox(), 0, 0, 3, 1, 0, 0, false).
		AddItem(g.board, 0, 1, 1, 1, 0, 0, true).
		AddItem(g.side, 0, 3, 1, 1, 0, 0, false).
		AddItem(g.status, 1, 1, 1, 4, 0, 0, false)

	g.pages = tview.NewPages().
		AddPage(pageGame, grid, true, true).
		AddPage(pageGameOver, g.modal, true, false)

	g.App.SetRoot(g.pages, true).
		SetFocus(g.board).
		SetInputCapture(g.handleKeypress)

	g.updateSide(game.Snapshot{})

	return g
}

// Render implements game.Renderer.
func (g *GUI) Render(s game.Snapshot) {
	g.mtx.Lock()
	g.snap = s
	g.mtx.Unlock()

	select {
	case g.draw <- struct{}{}:
	default:
	}
}

// Run shows the GUI until the application is stopped.
func (g *GUI) Run(ctx context.Context) error {
	drawCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go g.handleDraw(drawCtx)

	if err := g.App.Run(); err != nil {
		return fmt.Errorf("gui: %w", err)
	}
	return nil
}

// Stop ends Run. It is safe to call from any goroutine.
func (g *GUI) Stop() {
	g.App.Stop()
}

func (g *GUI) handleDraw(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-g.draw:
			g.App.QueueUpdateDraw(g.refresh)
		}
	}
}

func (g *GUI) snapshot() game.Snapshot {
	g.mtx.Lock()
	defer g.mtx.Unlock()
	return g.snap
}

// refresh brings the widgets in line with the latest frame. Must run on the application's
// goroutine.
func (g *GUI) refresh() {
	s := g.snapshot()
	g.updateSide(s)

	switch {
	case s.GameOver && !g.gameOver:
		g.gameOver = true
		g.modal.SetText(fmt.Sprintf("Game over\n\nScore: %d", s.Score))
		g.pages.ShowPage(pageGameOver)
		g.App.SetFocus(g.modal)
	case !s.GameOver && g.gameOver:
		g.gameOver = false
		g.pages.HidePage(pageGameOver)
		g.App.SetFocus(g.board)
	}
}

func (g *GUI) updateSide(s game.Snapshot) {
	name := g.name
	if name == "" {
		name = "Anonymous"
	}

	score := fmt.Sprintf("[%s]%d[-]", colorTag(g.theme.Score), s.Score)
	text := fmt.Sprintf("[::b]%s[::-]\n\nScore\n%s", tview.Escape(name), score)
	if len(s.FlashingRows) > 0 {
		text += fmt.Sprintf("\n\n%d lines!", len(s.FlashingRows))
	}

	g.side.SetText(text)
}

func (g *GUI) drawBoard(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	drawBoard(screen, x, y, g.snapshot(), g.theme)
	return x, y, width, height
}

// handleKeypress maps keys to game actions while the game is in front. Once the game-over dialog
// is showing, keys go to its buttons, except quit keys.
func (g *GUI) handleKeypress(ev *tcell.EventKey) *tcell.EventKey {
	a := actionFor(ev)

	if g.showingGameOver() {
		if a == event.ActionQuit || a == event.ActionRestart {
			g.do(a)
			return nil
		}
		return ev
	}

	if a == event.ActionUnknown {
		return nil
	}
	g.do(a)
	return nil
}

func (g *GUI) showingGameOver() bool {
	name, _ := g.pages.GetFrontPage()
	return name == pageGameOver
}

// colorTag formats a color for tview's dynamic color tags
func colorTag(c tcell.Color) string {
	v := c.Hex()
	if v < 0 {
		return "-"
	}
	return fmt.Sprintf("#%06x", v)
}
