package game

import "time"

// lineClear tracks completed rows that are blinking before their removal. It is idle while rows
// is empty.
type lineClear struct {
	rows  []int
	timer time.Duration
}

func (c *lineClear) start(rows []int) {
	c.rows = append([]int(nil), rows...)
	c.timer = 0
}

func (c *lineClear) active() bool {
	return len(c.rows) > 0
}

// advance moves the flash timer forward and reports whether the flash is over.
func (c *lineClear) advance(delta time.Duration) bool {
	c.timer += delta
	return c.timer >= FlashDuration
}

func (c *lineClear) reset() {
	c.rows = nil
	c.timer = 0
}

func (c *lineClear) visible() bool {
	return FlashVisible(c.timer, FlashDuration, FlashBlinks)
}

// FlashVisible reports whether flashing rows are drawn highlighted at the given point of the
// flash. The flash is split into blinks equal phases, even phases are visible.
func FlashVisible(timer, duration time.Duration, blinks int) bool {
	if blinks <= 0 {
		return true
	}
	phase := duration / time.Duration(blinks)
	if phase <= 0 {
		return true
	}
	return (timer/phase)%2 == 0
}

// Points is the score awarded for clearing lines rows with a single piece.
func Points(lines int) int {
	if lines <= 0 {
		return 0
	}

	switch lines {
	case 1:
		return 100
	case 2:
		return 300
	case 3:
		return 500
	case 4:
		return 800
	default:
		return lines * 200
	}
}
