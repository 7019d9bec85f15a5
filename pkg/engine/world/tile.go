// Package world provides the tile grid that floor plans are drawn onto.
package world

import "fmt"

// Tile is a terrain value. Two tiles are equivalent when their IDs match.
type Tile struct {
	ID int `json:"id"`
}

// NewTile creates a tile with the given terrain id
func NewTile(id int) Tile {
	return Tile{ID: id}
}

// Equivalent reports whether two tiles hold the same terrain
func (t Tile) Equivalent(o Tile) bool {
	return t.ID == o.ID
}

func (t Tile) String() string {
	return fmt.Sprintf("tile(%d)", t.ID)
}
