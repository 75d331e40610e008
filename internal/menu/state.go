package menu

import (
	"strings"

	"github.com/aanand-mishra/mahasiswa/internal/messages"
)

// State is a state of the menu loop.
type State int

const (
	MainMenu State = iota
	AddingStudent
	ViewingAll
	Searching
	Editing
	Deleting
	Exiting
)

var stateNames = [...]string{
	MainMenu:      "main_menu",
	AddingStudent: "adding_student",
	ViewingAll:    "viewing_all",
	Searching:     "searching",
	Editing:       "editing",
	Deleting:      "deleting",
	Exiting:       "exiting",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// option is one line of the main menu.
type option struct {
	key    string
	label  string // message key
	target State
}

// mainMenuOptions is in display order.
var mainMenuOptions = []option{
	{"1", messages.AddOption, AddingStudent},
	{"2", messages.ViewAllOption, ViewingAll},
	{"3", messages.SearchOption, Searching},
	{"4", messages.EditOption, Editing},
	{"5", messages.DeleteOption, Deleting},
	{"0", messages.ExitOption, Exiting},
}

// Next is the transition function of the menu loop.
//
// From MainMenu the input selects an operation or Exiting; unrecognised
// input keeps MainMenu and reports false. Operation states always return to
// MainMenu whatever their outcome. Exiting is terminal.
func Next(s State, input string) (State, bool) {
	switch s {
	case MainMenu:
		choice := strings.TrimSpace(input)
		for _, o := range mainMenuOptions {
			if o.key == choice {
				return o.target, true
			}
		}
		return MainMenu, false
	case Exiting:
		return Exiting, true
	default:
		return MainMenu, true
	}
}
