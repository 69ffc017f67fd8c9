package gui

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gdamore/tcell/v2"

	"github.com/qnkhuat/termtris/pkg/mino"
)

// Terminal safe color palette is available here
// Themes should be limited to the colors defined in this reference
// https://upload.wikimedia.org/wikipedia/commons/1/15/Xterm_256color_chart.svg

// Theme is used for dynamically coloring the UI
type Theme struct {
	Name   string      `json:"name"`
	Cyan   tcell.Color `json:"cyan"`
	Yellow tcell.Color `json:"yellow"`
	Purple tcell.Color `json:"purple"`
	Green  tcell.Color `json:"green"`
	Red    tcell.Color `json:"red"`
	Blue   tcell.Color `json:"blue"`
	Orange tcell.Color `json:"orange"`
	Empty  tcell.Color `json:"empty"`
	Flash  tcell.Color `json:"flash"`
	Border tcell.Color `json:"border"`
	Text   tcell.Color `json:"text"`
	Score  tcell.Color `json:"score"`
}

// ThemeHex is the form themes take in configuration files
type ThemeHex struct {
	Name   string `json:"name"`
	Cyan   string `json:"cyan"`
	Yellow string `json:"yellow"`
	Purple string `json:"purple"`
	Green  string `json:"green"`
	Red    string `json:"red"`
	Blue   string `json:"blue"`
	Orange string `json:"orange"`
	Empty  string `json:"empty"`
	Flash  string `json:"flash"`
	Border string `json:"border"`
	Text   string `json:"text"`
	Score  string `json:"score"`
}

// fmtHex returns a one character hex for the ColorDefault
// and otherwise it returns a standard hex. This is useful
// because it allows ColorDefault to be imported from the config
// and parsed properly rather than being interpreted as black
func fmtHex(v int32) string {
	if v == -1 {
		return "#0"
	}
	return fmt.Sprintf("#%06x", v)
}

// Hex converts a Theme to a ThemeHex
func (t Theme) Hex() ThemeHex {
	return ThemeHex{
		t.Name,
		fmtHex(t.Cyan.Hex()),
		fmtHex(t.Yellow.Hex()),
		fmtHex(t.Purple.Hex()),
		fmtHex(t.Green.Hex()),
		fmtHex(t.Red.Hex()),
		fmtHex(t.Blue.Hex()),
		fmtHex(t.Orange.Hex()),
		fmtHex(t.Empty.Hex()),
		fmtHex(t.Flash.Hex()),
		fmtHex(t.Border.Hex()),
		fmtHex(t.Text.Hex()),
		fmtHex(t.Score.Hex()),
	}
}

// Theme converts a ThemeHex to a Theme
func (t ThemeHex) Theme() Theme {
	return Theme{
		t.Name,
		tcell.GetColor(t.Cyan),
		tcell.GetColor(t.Yellow),
		tcell.GetColor(t.Purple),
		tcell.GetColor(t.Green),
		tcell.GetColor(t.Red),
		tcell.GetColor(t.Blue),
		tcell.GetColor(t.Orange),
		tcell.GetColor(t.Empty),
		tcell.GetColor(t.Flash),
		tcell.GetColor(t.Border),
		tcell.GetColor(t.Text),
		tcell.GetColor(t.Score),
	}
}

// Block returns the color a board cell of the given block is filled with
func (t Theme) Block(b mino.Block) tcell.Color {
	switch b {
	case mino.BlockCyan:
		return t.Cyan
	case mino.BlockYellow:
		return t.Yellow
	case mino.BlockPurple:
		return t.Purple
	case mino.BlockGreen:
		return t.Green
	case mino.BlockRed:
		return t.Red
	case mino.BlockBlue:
		return t.Blue
	case mino.BlockOrange:
		return t.Orange
	default:
		return t.Empty
	}
}

// ImportThemes returns a converted Theme from a slice of ThemeHex
// entities if its name matches the want argument
func ImportThemes(want string, themes []ThemeHex) (Theme, error) {
	for _, t := range themes {
		if t.Name == want {
			return t.Theme(), nil
		}
	}

	return Theme{}, fmt.Errorf("theme: no theme named %q", want)
}

// ReadThemes decodes a JSON array of themes
func ReadThemes(r io.Reader) ([]ThemeHex, error) {
	var themes []ThemeHex
	if err := json.NewDecoder(r).Decode(&themes); err != nil {
		return nil, fmt.Errorf("theme: decode: %w", err)
	}
	return themes, nil
}

// ThemeBasic is the default theme
var ThemeBasic = Theme{
	"basic",            // Name
	tcell.Color44,      // Cyan
	tcell.Color220,     // Yellow
	tcell.Color128,     // Purple
	tcell.Color40,      // Green
	tcell.Color160,     // Red
	tcell.Color27,      // Blue
	tcell.Color208,     // Orange
	tcell.ColorDefault, // Empty
	tcell.Color231,     // Flash
	tcell.Color247,     // Border
	tcell.ColorDefault, // Text
	tcell.Color226,     // Score
}

// ThemeMono draws every piece in the same gray
var ThemeMono = Theme{
	"mono",             // Name
	tcell.Color250,     // Cyan
	tcell.Color250,     // Yellow
	tcell.Color250,     // Purple
	tcell.Color250,     // Green
	tcell.Color250,     // Red
	tcell.Color250,     // Blue
	tcell.Color250,     // Orange
	tcell.ColorDefault, // Empty
	tcell.Color231,     // Flash
	tcell.Color240,     // Border
	tcell.ColorDefault, // Text
	tcell.Color231,     // Score
}

// Themes are the built-in themes
var Themes = []ThemeHex{ThemeBasic.Hex(), ThemeMono.Hex()}
