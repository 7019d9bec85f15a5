package generator

import (
	"roomweaver/pkg/engine/pick"
	"roomweaver/pkg/engine/world"
	"roomweaver/pkg/game/state"
	"roomweaver/pkg/mapgen/roomgen"
)

// atriumRows is a pillared hall that fits a grid cell
var atriumRows = []string{
	".......",
	".#...#.",
	".......",
	".#...#.",
	".......",
}

func atrium() roomgen.RoomGen {
	room, err := roomgen.ParseSpecific(atriumRows, map[rune]world.Tile{'.': state.Floor, '#': state.Wall}, state.Floor, false)
	if err != nil {
		panic(err)
	}
	return room
}

// gridRooms are the shapes grid cells are filled with
func gridRooms() roomgen.Choices {
	return roomgen.Choices{
		roomgen.Weighted(roomgen.NewSquare(pick.Range(4, 9), pick.Range(3, 8)), 6),
		roomgen.Weighted(roomgen.NewCross(pick.Range(5, 9), pick.Range(5, 8), pick.Range(2, 4), pick.Range(2, 4)), 2),
		roomgen.Weighted(atrium(), 1),
	}
}

func corridor() *roomgen.Shape {
	return &roomgen.Shape{RoomGen: roomgen.NewHall(pick.Range(1, 2))}
}

// decorate appends the steps shared by every preset once the floor
// plan is drawn
func decorate(level int, steps []StepSpec) []StepSpec {
	return append(steps,
		Spec("draw_floor", map[string]int{"padding": 1}),
		Spec("noise_terrain", map[string]any{"terrain": state.Water, "threshold": 0.55, "scale": 0.12}),
		Spec("erase_isolated", map[string]any{"terrain": state.Water}),
		Spec("name_rooms", nil),
		Spec("furnish_rooms", map[string]int{"percent": 60}),
		Spec("stairs", nil),
		Spec("scatter_items", map[string]any{
			"amount":          pick.Range(2+level, 4+level),
			"success_percent": 50,
		}),
	)
}

// GridRecipe lays rooms out on a grid of cells that widens with the level
func GridRecipe(level int) Recipe {
	steps := []StepSpec{
		Spec("init_grid", map[string]int{
			"cell_x":      min(3+level/2, 8),
			"cell_y":      min(2+level/3, 6),
			"cell_width":  8,
			"cell_height": 7,
			"cell_wall":   1,
		}),
		Spec("grid_rooms", map[string]any{"room_ratio": 70, "expand_percent": 20, "rooms": gridRooms()}),
		Spec("grid_halls", map[string]any{
			"hall_percent": 60,
			"halls":        roomgen.Choices{roomgen.Weighted(corridor().RoomGen, 1)},
		}),
		Spec("grid_to_floor", nil),
		Spec("connect_branches", map[string]any{"hall_gen": corridor()}),
		Spec("connect_arms", map[string]any{"connect_percent": 30, "hall_gen": corridor()}),
	}
	return Recipe{Name: "grid", Steps: decorate(level, steps)}
}

// BSPRecipe partitions a floor that grows with the level
func BSPRecipe(level int) Recipe {
	steps := []StepSpec{
		Spec("bsp_floor", map[string]int{
			"width":         min(26+level*6, 100),
			"height":        min(14+level*4, 60),
			"min_node_size": max(6, 8-level/3),
			"min_room_size": 4,
			"room_padding":  2,
		}),
		Spec("connect_branches", nil),
		Spec("connect_arms", map[string]int{"connect_percent": 20}),
	}
	return Recipe{Name: "bsp", Steps: decorate(level, steps)}
}
