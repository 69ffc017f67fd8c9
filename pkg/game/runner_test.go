package game

import (
	"bytes"
	"context"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qnkhuat/termtris/pkg/event"
	"github.com/qnkhuat/termtris/pkg/mino"
)

type recorder struct {
	mu     sync.Mutex
	frames int
	last   Snapshot
}

func (r *recorder) Render(s Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames++
	r.last = s
}

func (r *recorder) snapshot() (Snapshot, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last, r.frames
}

// syncBuffer lets the test read the log while the runner writes it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func startRunner(t *testing.T, g *Game, frame time.Duration) (*Runner, *recorder, chan error, context.CancelFunc) {
	t.Helper()

	rec := &recorder{}
	r := NewRunner(g, rec, nil)
	r.Frame = frame

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		errc <- r.Run(ctx)
	}()
	t.Cleanup(cancel)

	return r, rec, errc, cancel
}

func TestRunnerAppliesActions(t *testing.T) {
	g := newTestGame(true, mino.PieceT)
	r, rec, _, _ := startRunner(t, g, time.Hour)

	require.True(t, r.Do(event.ActionMoveLeft))
	require.True(t, r.Do(event.ActionSoftDrop))

	assert.Eventually(t, func() bool {
		s, _ := rec.snapshot()
		return s.HasPiece && s.Block(2, 2) == mino.BlockPurple && s.Block(1, 3) == mino.BlockPurple
	}, time.Second, 5*time.Millisecond)
}

func TestRunnerGravity(t *testing.T) {
	g := newTestGame(true, mino.PieceT)
	_, rec, _, _ := startRunner(t, g, time.Millisecond)

	assert.Eventually(t, func() bool {
		s, _ := rec.snapshot()
		return s.HasPiece && s.Block(1, 4) == mino.BlockPurple && s.Block(0, 4) == mino.BlockNone
	}, 3*time.Second, 10*time.Millisecond)
}

func TestRunnerQuit(t *testing.T) {
	g := newTestGame(true, mino.PieceT)
	r, _, errc, _ := startRunner(t, g, time.Hour)

	require.True(t, r.Do(event.ActionQuit))

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("runner did not stop")
	}

	<-r.Done()
	assert.False(t, r.Do(event.ActionMoveLeft))
}

func TestRunnerContextCancel(t *testing.T) {
	g := newTestGame(true, mino.PieceT)
	_, _, errc, cancel := startRunner(t, g, time.Hour)

	cancel()

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("runner did not stop")
	}
}

func TestRunnerIdleAfterGameOver(t *testing.T) {
	g := newTestGame(true, mino.PieceT)
	g.setGameOver("test")

	r, rec, _, _ := startRunner(t, g, time.Millisecond)

	assert.Eventually(t, func() bool {
		_, frames := rec.snapshot()
		return frames == 1
	}, time.Second, time.Millisecond)

	// No ticker is running, so nothing is drawn until input arrives.
	time.Sleep(30 * time.Millisecond)
	s, frames := rec.snapshot()
	assert.Equal(t, 1, frames)
	assert.True(t, s.GameOver)

	require.True(t, r.Do(event.ActionRestart))

	assert.Eventually(t, func() bool {
		s, frames := rec.snapshot()
		return !s.GameOver && frames > 3
	}, time.Second, 5*time.Millisecond)
}

func TestRunnerLogsGameOver(t *testing.T) {
	g := newTestGame(true, mino.PieceI, mino.PieceO)
	g.board.Set(0, 5, mino.BlockRed)

	var buf syncBuffer
	r := NewRunner(g, nil, log.New(&buf, "", 0))
	r.Frame = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	for i := 0; i < mino.Rows; i++ {
		require.True(t, r.Do(event.ActionSoftDrop))
	}

	assert.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "Game over with score 0")
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-r.Done()
}

func TestLogEvents(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	quiet := LogEvents(logger, false)
	quiet(&event.SpawnEvent{Piece: "T"})
	assert.Empty(t, buf.String())

	quiet(&event.ScoreEvent{Lines: 2, Score: 300, Total: 400})
	quiet(&event.GameOverEvent{Event: event.Event{Message: "T piece has no room to spawn"}, Score: 400})
	assert.Equal(t,
		"Cleared 2 lines for 300 points, score 400\nGame over: T piece has no room to spawn, final score 400\n",
		buf.String())

	buf.Reset()
	LogEvents(logger, true)(&event.SpawnEvent{Piece: "I"})
	assert.Equal(t, "Spawned I\n", buf.String())
}

func TestRunnerRunsOnce(t *testing.T) {
	g := newTestGame(true, mino.PieceT)
	r, _, errc, _ := startRunner(t, g, time.Hour)

	require.True(t, r.Do(event.ActionQuit))
	require.NoError(t, <-errc)

	assert.NotPanics(t, func() {
		assert.ErrorIs(t, r.Run(context.Background()), ErrRunnerUsed)
	})
	<-r.Done()
}

func TestLogFinalBoard(t *testing.T) {
	var buf bytes.Buffer
	rec := &recorder{}
	renderer := LogFinalBoard(rec, log.New(&buf, "", 0))

	over := Snapshot{Score: 500, GameOver: true}
	over.Cells[mino.Rows-1][0] = mino.BlockRed

	renderer.Render(Snapshot{})
	assert.Empty(t, buf.String())

	renderer.Render(over)
	renderer.Render(over)
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1+mino.Rows)
	assert.Equal(t, "Final board, score 500:", lines[0])
	assert.Equal(t, "..........", lines[1])
	assert.Equal(t, "Z.........", lines[mino.Rows])

	// A restarted game logs its own final board.
	renderer.Render(Snapshot{})
	renderer.Render(over)
	assert.Equal(t, 2, strings.Count(buf.String(), "Final board"))

	_, frames := rec.snapshot()
	assert.Equal(t, 5, frames)
}

func TestRendererFunc(t *testing.T) {
	var got []int
	var r Renderer = RendererFunc(func(s Snapshot) { got = append(got, s.Score) })
	r.Render(Snapshot{Score: 100})
	r.Render(Snapshot{Score: 300})
	assert.Equal(t, []int{100, 300}, got)
}
