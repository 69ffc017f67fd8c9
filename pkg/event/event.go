package event

// Event is the common part of everything the engine reports while it runs.
type Event struct {
	Message string
}

type SpawnEvent struct {
	Event
	Piece string
}

// LinesEvent is reported when completed rows are found after a lock. Flashing is false when the
// rows are removed without the flash animation.
type LinesEvent struct {
	Event
	Rows     []int
	Flashing bool
}

type ScoreEvent struct {
	Event
	Lines int
	Score int
	Total int
}

type GameOverEvent struct {
	Event
	Score int
}

type RestartEvent struct {
	Event
}
