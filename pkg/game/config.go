package game

import (
	"time"

	"github.com/qnkhuat/termtris/pkg/mino"
)

const (
	// DropInterval is the time between two gravity steps.
	DropInterval = 600 * time.Millisecond

	// FlashDuration is how long completed rows blink before they are removed.
	FlashDuration = 400 * time.Millisecond
	// FlashBlinks is the number of visible/hidden phases within FlashDuration.
	FlashBlinks = 4

	// FrameInterval is how often a Runner advances the game and redraws.
	FrameInterval = 16 * time.Millisecond

	ActionQueueSize = 10
)

type Config struct {
	// LineClearAnimation makes completed rows blink for FlashDuration before they are removed.
	// When false rows are removed as soon as the piece locks.
	LineClearAnimation bool

	// Seed seeds the piece randomizer. Zero seeds from the clock. Ignored when Rand is set.
	Seed int64
	Rand mino.Randomizer

	// Events receives the values from pkg/event as they happen. It is called synchronously
	// from whichever goroutine is driving the game.
	Events func(e interface{})
}

func DefaultConfig() Config {
	return Config{
		LineClearAnimation: true,
	}
}
