package game

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"github.com/qnkhuat/termtris/pkg/event"
)

// Renderer draws frames. Render is called from the Runner's goroutine and must not block for
// long; the snapshot is owned by the renderer once passed.
type Renderer interface {
	Render(s Snapshot)
}

// RendererFunc adapts a plain function to Renderer.
type RendererFunc func(s Snapshot)

func (f RendererFunc) Render(s Snapshot) { f(s) }

// ErrRunnerUsed is returned by Run on a Runner that has already been run.
var ErrRunnerUsed = errors.New("game: runner already ran")

// Runner drives a Game in real time. Run is the only goroutine touching the game: it advances
// the game on every frame tick and applies actions queued with Do in between, so input from any
// goroutine is serialized with gravity.
type Runner struct {
	Game     *Game
	Renderer Renderer
	Logger   *log.Logger

	// Frame is the tick period, FrameInterval when zero.
	Frame time.Duration

	actions chan event.GameAction
	done    chan struct{}
	once    sync.Once

	ticker *time.Ticker
	last   time.Time
}

func NewRunner(g *Game, r Renderer, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Runner{
		Game:     g,
		Renderer: r,
		Logger:   logger,
		Frame:    FrameInterval,
		actions:  make(chan event.GameAction, ActionQueueSize),
		done:     make(chan struct{}),
	}
}

// Do queues an action for the game. It returns false once the runner has stopped.
func (r *Runner) Do(a event.GameAction) bool {
	select {
	case <-r.done:
		return false
	default:
	}

	select {
	case r.actions <- a:
		return true
	case <-r.done:
		return false
	}
}

// Done is closed when Run returns.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Run blocks until the context is cancelled or ActionQuit is received. When the game ends the
// frame ticker is stopped, so nothing changes until ActionRestart starts a fresh one.
// A Runner runs once; later calls return ErrRunnerUsed.
func (r *Runner) Run(ctx context.Context) error {
	first := false
	r.once.Do(func() { first = true })
	if !first {
		return ErrRunnerUsed
	}

	defer close(r.done)
	defer r.stop()

	if !r.Game.GameOver() {
		r.start()
	}
	r.render()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case a := <-r.actions:
			if a == event.ActionQuit {
				r.Logger.Printf("Quit with score %d", r.Game.Score())
				return nil
			}

			r.Game.Do(a)

			if a == event.ActionRestart {
				r.stop()
				r.start()
				r.Logger.Println("Restarted")
			}
		case now := <-r.tick():
			r.Game.Update(now.Sub(r.last))
			r.last = now
		}

		if r.Game.GameOver() && r.ticker != nil {
			r.stop()
			r.Logger.Printf("Game over with score %d", r.Game.Score())
		}

		r.render()
	}
}

func (r *Runner) tick() <-chan time.Time {
	if r.ticker == nil {
		return nil
	}
	return r.ticker.C
}

func (r *Runner) start() {
	frame := r.Frame
	if frame <= 0 {
		frame = FrameInterval
	}

	r.ticker = time.NewTicker(frame)
	r.last = time.Now()
}

// stop is safe to call when no ticker is running. A tick already sitting in the old ticker's
// channel is never read since tick only returns the current ticker's channel.
func (r *Runner) stop() {
	if r.ticker == nil {
		return
	}
	r.ticker.Stop()
	r.ticker = nil
}

func (r *Runner) render() {
	if r.Renderer == nil {
		return
	}
	r.Renderer.Render(r.Game.Snapshot())
}
