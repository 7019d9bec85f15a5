package setup

import (
	"errors"
	"fmt"
	"log"

	"go.uber.org/multierr"

	"roomweaver/pkg/game/state"
)

// ErrNoTiles is returned for a level whose tile map was never created
var ErrNoTiles = errors.New("level has no tiles")

// ValidateLevel reports every reason the level is not playable: a floor
// plan split in several components, a missing entrance or exit, floor
// that cannot be walked to from the entrance.
func ValidateLevel(m *state.Map) error {
	if m.Grid == nil {
		return ErrNoTiles
	}

	var err error
	plan := m.RoomPlan()
	switch {
	case plan == nil:
		err = multierr.Append(err, errors.New("level has no floor plan"))
	case !plan.IsConnected():
		err = multierr.Append(err, fmt.Errorf("floor plan has %d components", len(plan.Components())))
	}

	in, hasIn := m.Entrance()
	if !hasIn {
		err = multierr.Append(err, errors.New("level has no entrance"))
	}
	out, hasOut := m.Exit()
	if !hasOut {
		err = multierr.Append(err, errors.New("level has no exit"))
	}
	if !hasIn {
		return err
	}

	reachable := ReachableFloor(m, in)
	if hasOut && !reachable.Has(out) {
		err = multierr.Append(err, fmt.Errorf("exit %v unreachable from entrance %v", out, in))
	}
	if lost := UnreachableFloor(m, reachable); len(lost) > 0 {
		log.Printf("level %d: first unreachable floor tile %v", m.Level, lost[0])
		err = multierr.Append(err, fmt.Errorf("%d floor tiles unreachable from entrance %v", len(lost), in))
	}
	return err
}
