package domain

import "strings"

// GameState es el sessionLoopState del cliente.
type GameState string

const (
	StateUnknown GameState = ""
	StateMenus   GameState = "MENUS"
	StatePregame GameState = "PREGAME"
	StateIngame  GameState = "INGAME"
)

func ParseGameState(s string) GameState {
	switch GameState(strings.ToUpper(strings.TrimSpace(s))) {
	case StateMenus:
		return StateMenus
	case StatePregame:
		return StatePregame
	case StateIngame:
		return StateIngame
	}
	return StateUnknown
}

func (s GameState) Display() string {
	switch s {
	case StateIngame:
		return "In-Game"
	case StatePregame:
		return "Agent Select"
	case StateMenus:
		return "In-Menus"
	}
	return string(s)
}
