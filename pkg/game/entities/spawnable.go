// Package entities holds the objects that generation places on a level.
package entities

// Spawnable is an object that can be placed on a map tile
type Spawnable interface {
	Copy() Spawnable
	Name() string
	Glyph() rune
}

// StairsUp marks where the level is entered
type StairsUp struct{}

func (StairsUp) Copy() Spawnable { return StairsUp{} }
func (StairsUp) Name() string    { return "Stairs Up" }
func (StairsUp) Glyph() rune     { return '<' }

// StairsDown marks the way to the next level
type StairsDown struct{}

func (StairsDown) Copy() Spawnable { return StairsDown{} }
func (StairsDown) Name() string    { return "Stairs Down" }
func (StairsDown) Glyph() rune     { return '>' }

// Item is a collectible lying on the floor
type Item struct {
	Label  string `json:"label"`
	Symbol rune   `json:"symbol"`
}

// NewItem creates an item shown with the given symbol
func NewItem(label string, symbol rune) *Item {
	return &Item{Label: label, Symbol: symbol}
}

func (i *Item) Copy() Spawnable {
	c := *i
	return &c
}

func (i *Item) Name() string { return i.Label }

func (i *Item) Glyph() rune {
	if i.Symbol == 0 {
		return '*'
	}
	return i.Symbol
}

// DefaultItems are scattered when a recipe names none
var DefaultItems = []*Item{
	NewItem("Keycard", 'k'),
	NewItem("Battery", 'b'),
	NewItem("Medkit", '+'),
	NewItem("Data Log", '?'),
}
