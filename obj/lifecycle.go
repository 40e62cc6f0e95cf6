package obj

// Lifecycle is the single source of a sprite's active/alive/visible flags.
//
//	Alive:    active, alive, visible
//	Dying:    visible only; frozen in place but still painted
//	Inactive: none
//
// Transitions only move forward: Alive -> Dying -> Inactive, or Alive ->
// Inactive in one step.
type Lifecycle int

const (
	Alive Lifecycle = iota
	Dying
	Inactive
)

func (l Lifecycle) String() string {
	switch l {
	case Alive:
		return "alive"
	case Dying:
		return "dying"
	case Inactive:
		return "inactive"
	default:
		return "unknown"
	}
}

func (l Lifecycle) active() bool  { return l == Alive }
func (l Lifecycle) visible() bool { return l == Alive || l == Dying }

// advance reports whether moving from l to next is allowed.
func (l Lifecycle) advance(next Lifecycle) bool {
	return next > l && next <= Inactive
}
