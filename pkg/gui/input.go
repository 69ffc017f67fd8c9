package gui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/qnkhuat/termtris/pkg/event"
)

type Keybinding struct {
	k tcell.Key
	r rune
	m tcell.ModMask

	a event.GameAction
}

var keybindings = []*Keybinding{
	{k: tcell.KeyLeft, a: event.ActionMoveLeft},
	{r: 'h', a: event.ActionMoveLeft},
	{r: 'H', a: event.ActionMoveLeft},
	{k: tcell.KeyRight, a: event.ActionMoveRight},
	{r: 'l', a: event.ActionMoveRight},
	{r: 'L', a: event.ActionMoveRight},
	{k: tcell.KeyDown, a: event.ActionSoftDrop},
	{r: 'j', a: event.ActionSoftDrop},
	{r: 'J', a: event.ActionSoftDrop},
	{k: tcell.KeyUp, a: event.ActionRotate},
	{r: 'k', a: event.ActionRotate},
	{r: 'K', a: event.ActionRotate},
	{r: 'x', a: event.ActionRotate},
	{r: 'X', a: event.ActionRotate},
	{r: 'r', a: event.ActionRestart},
	{r: 'R', a: event.ActionRestart},
	{r: 'q', a: event.ActionQuit},
	{r: 'Q', a: event.ActionQuit},
	{k: tcell.KeyEscape, a: event.ActionQuit},
	{k: tcell.KeyCtrlC, a: event.ActionQuit},
}

// actionFor returns the action bound to a key press, ActionUnknown when there is none
func actionFor(ev *tcell.EventKey) event.GameAction {
	k := ev.Key()
	r := ev.Rune()

	for _, bind := range keybindings {
		if bind.k != 0 && bind.k != k {
			continue
		}
		if bind.r != 0 && (k != tcell.KeyRune || bind.r != r) {
			continue
		}
		if bind.m != 0 && bind.m != ev.Modifiers() {
			continue
		}

		return bind.a
	}

	return event.ActionUnknown
}
