package mino

import (
	"math/rand"
	"time"
)

// Randomizer picks piece types. *rand.Rand satisfies it.
type Randomizer interface {
	Intn(n int) int
}

// NewRandomizer returns a seeded source. A zero seed uses the current time.
func NewRandomizer(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UTC().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Random chooses one of the seven piece types uniformly.
func Random(r Randomizer) PieceType {
	return PieceType(r.Intn(PieceCount))
}

// Sequence is a Randomizer that deals a fixed, repeating list of piece types. It is used to
// script games in tests and demos.
type Sequence struct {
	Types []PieceType

	i int
}

func NewSequence(types ...PieceType) *Sequence {
	return &Sequence{Types: types}
}

func (s *Sequence) Intn(n int) int {
	if len(s.Types) == 0 {
		return 0
	}

	t := s.Types[s.i]
	if s.i == len(s.Types)-1 {
		s.i = 0
	} else {
		s.i++
	}

	return int(t) % n
}
