package cache

import (
	"fmt"
	"strings"
)

// State is the coherence state of a cache line.
type State int

// Line states. NONE and VI use Invalid and Valid; MSI uses Invalid, Shared
// and Modified.
const (
	Invalid State = iota
	Valid
	Shared
	Modified
)

func (s State) String() string {
	switch s {
	case Invalid:
		return "I"
	case Valid:
		return "V"
	case Shared:
		return "S"
	case Modified:
		return "M"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Line is the metadata of one cache line. Tag is meaningful only when State
// is not Invalid.
type Line struct {
	Tag   uint64
	Dirty bool
	State State
}

// Action is the kind of event a cache receives.
type Action int

// Actions. Load and Store come from the core that owns the cache. LoadMiss
// and StoreMiss notify the cache that another core missed on a block.
const (
	Load Action = iota
	Store
	LoadMiss
	StoreMiss
)

// IsLocal reports whether the action was issued by the owning core.
func (a Action) IsLocal() bool {
	return a == Load || a == Store
}

func (a Action) String() string {
	switch a {
	case Load:
		return "LOAD"
	case Store:
		return "STORE"
	case LoadMiss:
		return "LD_MISS"
	case StoreMiss:
		return "ST_MISS"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Actions lists all actions in report order.
var Actions = []Action{Load, Store, LoadMiss, StoreMiss}

// ParseAction converts a trace spelling into an Action.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(s) {
	case "0", "r", "load", "ld":
		return Load, nil
	case "1", "w", "store", "st":
		return Store, nil
	case "ld_miss":
		return LoadMiss, nil
	case "st_miss":
		return StoreMiss, nil
	}

	return 0, fmt.Errorf("unknown action %q", s)
}
