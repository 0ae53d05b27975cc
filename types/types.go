// Package types defines the shared data structures for the Maniero engine.
// This package contains only type definitions and trivial lookups — no game logic.
package types

import "strings"

// Direction identifies one of the four cardinal exits of a room.
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

// Directions lists all four directions in a stable order.
var Directions = []Direction{North, South, East, West}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	}
	return "unknown"
}

// ParseDirection maps a direction name ("north", "south", ...) to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(s) {
	case "north":
		return North, true
	case "south":
		return South, true
	case "east":
		return East, true
	case "west":
		return West, true
	}
	return 0, false
}

// CommandType classifies a command by the behavior it triggers.
// The player-facing vocabulary (canonical name, aliases) comes from game
// content; the type is what handlers dispatch on.
type CommandType int

const (
	CommandUnknown CommandType = iota
	CommandNorth
	CommandSouth
	CommandEast
	CommandWest
	CommandLook
	CommandPickup
	CommandOpen
	CommandUse
	CommandFight
)

var commandTypeNames = map[string]CommandType{
	"north":  CommandNorth,
	"south":  CommandSouth,
	"east":   CommandEast,
	"west":   CommandWest,
	"look":   CommandLook,
	"pickup": CommandPickup,
	"open":   CommandOpen,
	"use":    CommandUse,
	"fight":  CommandFight,
}

// ParseCommandType maps a content-file type name to a CommandType.
func ParseCommandType(s string) (CommandType, bool) {
	t, ok := commandTypeNames[strings.ToLower(s)]
	return t, ok
}

// Direction returns the movement direction for directional command types.
func (t CommandType) Direction() (Direction, bool) {
	switch t {
	case CommandNorth:
		return North, true
	case CommandSouth:
		return South, true
	case CommandEast:
		return East, true
	case CommandWest:
		return West, true
	}
	return 0, false
}

// IsMovement reports whether the command type is one of the four directions.
func (t CommandType) IsMovement() bool {
	_, ok := t.Direction()
	return ok
}

// Command is one entry of the known command vocabulary.
type Command struct {
	Type    CommandType
	Name    string   // canonical name, e.g. "nord"
	Aliases []string // e.g. "n"
}

// Matches reports whether word equals the canonical name or any alias.
func (c Command) Matches(word string) bool {
	if strings.EqualFold(c.Name, word) {
		return true
	}
	for _, a := range c.Aliases {
		if strings.EqualFold(a, word) {
			return true
		}
	}
	return false
}

// GameInfo carries game metadata from the content files.
type GameInfo struct {
	Title   string
	Author  string
	Version string
	Intro   string
}
