package entities

// Furniture is a fixed piece of room dressing
type Furniture struct {
	Label       string
	Description string
	Icon        rune
}

func (f *Furniture) Copy() Spawnable {
	c := *f
	return &c
}

func (f *Furniture) Name() string { return f.Label }
func (f *Furniture) Glyph() rune  { return f.Icon }

// FurnitureTemplate describes furniture that suits a room type
type FurnitureTemplate struct {
	Label       string
	Description string
	Icon        rune
}

// New creates a piece of furniture from the template
func (t FurnitureTemplate) New() *Furniture {
	return &Furniture{Label: t.Label, Description: t.Description, Icon: t.Icon}
}

// RoomTypes are the kinds of room a level is named with
var RoomTypes = []string{
	"Bridge", "Cargo Bay", "Engineering", "Med Bay", "Crew Quarters",
	"Reactor Core", "Server Room", "Lab", "Hydroponics", "Storage",
}

// RoomAdjectives prefix room types in room names
var RoomAdjectives = []string{
	"Abandoned", "Damaged", "Dark", "Derelict", "Emergency",
	"Flickering", "Isolated", "Sealed", "Depressurized", "Overgrown",
}

// RoomFurniture lists the furniture suited to each room type
var RoomFurniture = map[string][]FurnitureTemplate{
	"Bridge": {
		{"Captain's Chair", "A worn command chair facing the viewscreen.", 'Ω'},
		{"Navigation Console", "Star charts flicker on a dusty display.", '≡'},
	},
	"Cargo Bay": {
		{"Shipping Container", "A dented crate with an unreadable manifest.", '▣'},
		{"Loading Dolly", "A wheeled cart missing a wheel.", '□'},
	},
	"Engineering": {
		{"Tool Rack", "Wrenches and cutters, several missing.", '╦'},
		{"Schematic Display", "Blueprints with whole sections marked red.", '▤'},
	},
	"Med Bay": {
		{"Medical Bed", "Sterile sheets, stripped in a hurry.", '╦'},
		{"Medicine Cabinet", "Mostly empty shelves of supplies.", '▥'},
	},
	"Crew Quarters": {
		{"Bunk Bed", "Personal effects on unmade sheets.", '╦'},
		{"Footlocker", "The lock is broken and the contents gone.", '▣'},
	},
	"Reactor Core": {
		{"Control Rods", "Dampeners stuck halfway down.", '╫'},
		{"Coolant Pipes", "Thick tubes humming with fluid.", '═'},
	},
	"Server Room": {
		{"Server Rack", "A few lights still blink.", '▥'},
		{"Cooling Unit", "Industrial fans turning slowly.", '※'},
	},
	"Lab": {
		{"Microscope Station", "Slides still loaded, samples dried out.", '◎'},
		{"Specimen Jars", "Samples floating in murky liquid.", '○'},
	},
	"Hydroponics": {
		{"Growth Bed", "Wilted plants in nutrient solution.", '≋'},
		{"UV Lamps", "Artificial sunlight, flickering.", '¤'},
	},
	"Storage": {
		{"Supply Shelf", "Canned goods and emergency rations.", '▤'},
		{"Crate Stack", "Boxes piled without order.", '▣'},
	},
}

// FurnitureFor returns the templates for a room type
func FurnitureFor(roomType string) []FurnitureTemplate {
	return RoomFurniture[roomType]
}
