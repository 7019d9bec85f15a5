// Package gen provides the generation pipeline: steps applied in order to a
// context that exposes capabilities through small interfaces.
package gen

import (
	"roomweaver/pkg/engine/geom"
	"roomweaver/pkg/engine/rng"
	"roomweaver/pkg/engine/world"
)

// Context is the minimum every generation context offers
type Context interface {
	Rand() rng.Random
	InitSeed(seed uint64)
}

// TiledContext is a context backed by a tile map
type TiledContext interface {
	Context
	Width() int
	Height() int
	GetTile(l geom.Loc) world.Tile
	SetTile(l geom.Loc, t world.Tile) bool
	TileBlocked(l geom.Loc) bool
	RoomTerrain() world.Tile
	WallTerrain() world.Tile
	// CreateNew replaces the tile map with a wall-filled one of the given size
	CreateNew(width, height int) error
}

// Placeable is a context that can hold spawned objects of type S
type Placeable[S any] interface {
	Context
	GetFreeTiles(r geom.Rect) []geom.Loc
	CanPlaceItem(l geom.Loc) bool
	PlaceItem(l geom.Loc, item S) error
}

// InBounds reports whether l lies on the context's tile map
func InBounds(ctx TiledContext, l geom.Loc) bool {
	return l.X >= 0 && l.Y >= 0 && l.X < ctx.Width() && l.Y < ctx.Height()
}
