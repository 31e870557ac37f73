package world

import "fmt"

// Entity is an object in the world that can be hit by traces and touched by moving players.
type Entity struct {
	ID   int32
	Name string
}

// Worldspawn owns every brush without an explicit owner.
var Worldspawn = &Entity{ID: 0, Name: "worldspawn"}

// EntityID ...
func (e *Entity) EntityID() int32 {
	return e.ID
}

func (e *Entity) String() string {
	return fmt.Sprintf("%s#%d", e.Name, e.ID)
}
