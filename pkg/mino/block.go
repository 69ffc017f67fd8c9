package mino

// Block is the value of a single board cell. BlockNone is an empty cell, every other value is
// the color index of the piece type that was locked there.
type Block int

const (
	BlockNone Block = iota
	BlockCyan
	BlockYellow
	BlockPurple
	BlockGreen
	BlockRed
	BlockBlue
	BlockOrange
)

func (b Block) String() string {
	return string(b.Rune())
}

func (b Block) Rune() rune {
	switch b {
	case BlockNone:
		return '.'
	case BlockCyan:
		return 'I'
	case BlockYellow:
		return 'O'
	case BlockPurple:
		return 'T'
	case BlockGreen:
		return 'S'
	case BlockRed:
		return 'Z'
	case BlockBlue:
		return 'J'
	case BlockOrange:
		return 'L'
	default:
		return '?'
	}
}

func (b Block) Empty() bool {
	return b == BlockNone
}
