// Package deck gives each level a functional layer type that themes the
// rooms generated on it.
package deck

import (
	"github.com/leonelquinteros/gotext"

	"roomweaver/pkg/engine/pick"
	"roomweaver/pkg/game/entities"
)

// Type is the functional layer type of a deck
type Type int

const (
	Habitation         Type = iota // Crew rest, atmosphere, habitation
	Research                       // Labs, medical, experiments
	Logistics                      // Cargo, storage, distribution
	PowerDistribution              // Substations, relays, grid
	EmergencySystems               // Shelters, lifeboats, crisis
	CoreInfrastructure             // Central monitoring, primary conduits
)

// typeCount is the number of functional layer types (for cycling).
const typeCount = 6

// preferredWeight is the spawn rate of a room type that suits the deck;
// every other type has rate 1
const preferredWeight = 4

// FunctionalType returns the functional layer type for the given level
// (0-based). Types cycle so each deck has an identity.
func FunctionalType(level int) Type {
	if level <= 0 {
		return Habitation
	}
	return Type(level % typeCount)
}

// String returns the translated name of the layer type
func (t Type) String() string {
	switch t {
	case Habitation:
		return gotext.Get("Habitation")
	case Research:
		return gotext.Get("Research")
	case Logistics:
		return gotext.Get("Logistics")
	case PowerDistribution:
		return gotext.Get("Power Distribution")
	case EmergencySystems:
		return gotext.Get("Emergency Systems")
	case CoreInfrastructure:
		return gotext.Get("Core Infrastructure")
	default:
		return gotext.Get("Unknown")
	}
}

// PreferredRooms returns the room types that suit the layer type
func PreferredRooms(t Type) []string {
	switch t {
	case Habitation:
		return []string{"Crew Quarters", "Hydroponics", "Med Bay"}
	case Research:
		return []string{"Lab", "Med Bay", "Server Room"}
	case Logistics:
		return []string{"Cargo Bay", "Storage"}
	case PowerDistribution:
		return []string{"Reactor Core", "Engineering"}
	case EmergencySystems:
		return []string{"Med Bay", "Storage", "Crew Quarters"}
	case CoreInfrastructure:
		return []string{"Bridge", "Server Room", "Engineering"}
	default:
		return nil
	}
}

// RoomWeights returns every room type weighted for the level: the types
// its deck prefers are drawn more often, none are excluded
func RoomWeights(level int) (*pick.SpawnList[string], error) {
	list := pick.NewSpawnList[string]()
	for _, name := range entities.RoomTypes {
		if err := list.Add(name, 1); err != nil {
			return nil, err
		}
	}
	for _, name := range PreferredRooms(FunctionalType(level)) {
		if err := list.Set(name, preferredWeight); err != nil {
			return nil, err
		}
	}
	return list, nil
}
