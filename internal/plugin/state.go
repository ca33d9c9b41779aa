package plugin

// State represents the lifecycle state of a Host.
type State int

// Host states.
const (
	// StateReady - The runtime is up and the sideways module is installed.
	StateReady State = iota

	// StateLoaded - At least one script has run successfully.
	StateLoaded

	// StateError - The last script failed to load.
	StateError

	// StateClosed - The runtime has been released.
	StateClosed
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateLoaded:
		return "loaded"
	case StateError:
		return "error"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// IsUsable returns true if scripts can still run.
func (s State) IsUsable() bool {
	return s != StateClosed
}
