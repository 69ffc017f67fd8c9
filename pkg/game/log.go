package game

import (
	"log"

	"github.com/qnkhuat/termtris/pkg/event"
)

// LogEvents returns a Config.Events handler writing engine events to logger. Spawns are only
// logged when verbose is set.
func LogEvents(logger *log.Logger, verbose bool) func(e interface{}) {
	return func(e interface{}) {
		switch ev := e.(type) {
		case *event.SpawnEvent:
			if verbose {
				logger.Printf("Spawned %s", ev.Piece)
			}
		case *event.LinesEvent:
			logger.Printf("Completed rows %v (flashing: %t)", ev.Rows, ev.Flashing)
		case *event.ScoreEvent:
			logger.Printf("Cleared %d lines for %d points, score %d", ev.Lines, ev.Score, ev.Total)
		case *event.GameOverEvent:
			logger.Printf("Game over: %s, final score %d", ev.Message, ev.Score)
		case *event.RestartEvent:
			logger.Println("Game reset")
		default:
			logger.Printf("Unknown event %T", e)
		}
	}
}

// LogFinalBoard wraps r so that the board is written to logger as text each time a game ends.
func LogFinalBoard(r Renderer, logger *log.Logger) Renderer {
	over := false
	return RendererFunc(func(s Snapshot) {
		if s.GameOver && !over {
			logger.Printf("Final board, score %d:\n%s", s.Score, s.Render())
		}
		over = s.GameOver
		r.Render(s)
	})
}
