// Package keymap translates key names into furniture manipulation commands and
// room resize steps.
package keymap

import (
	"strings"

	"room-planner/internal/room"
	"room-planner/internal/selection"
)

// Default binds WASD and the arrow keys to horizontal movement, Q/E to vertical
// movement and R/F to rotation.
var Default = map[string]selection.Command{
	"w":          selection.Forward,
	"arrowup":    selection.Forward,
	"s":          selection.Backward,
	"arrowdown":  selection.Backward,
	"a":          selection.Left,
	"arrowleft":  selection.Left,
	"d":          selection.Right,
	"arrowright": selection.Right,
	"q":          selection.Up,
	"e":          selection.Down,
	"r":          selection.RotatePositive,
	"f":          selection.RotateNegative,
}

// Lookup returns the command bound to key in Default. Key names are case-insensitive.
func Lookup(key string) (selection.Command, bool) {
	cmd, ok := Default[strings.ToLower(key)]
	return cmd, ok
}

// Resize is one press of a room size control.
type Resize struct {
	Axis  room.Axis
	Delta float32
}

// RoomKeys binds the number row to the settings panel's -/+ buttons: 1/2 for width,
// 3/4 for length and 5/6 for height.
var RoomKeys = map[string]Resize{
	"1": {room.Width, -room.ResizeStep},
	"2": {room.Width, room.ResizeStep},
	"3": {room.Length, -room.ResizeStep},
	"4": {room.Length, room.ResizeStep},
	"5": {room.Height, -room.ResizeStep},
	"6": {room.Height, room.ResizeStep},
}

// LookupResize returns the room resize bound to key.
func LookupResize(key string) (Resize, bool) {
	r, ok := RoomKeys[strings.ToLower(key)]
	return r, ok
}

// Help lists the bindings the way the settings panel shows them.
func Help() []string {
	return []string{
		"Use WASD or Arrow keys to move the selected item",
		"Q/E to move up/down",
		"R/F to rotate furniture direction",
		"1/2 width, 3/4 length, 5/6 height -/+",
	}
}
