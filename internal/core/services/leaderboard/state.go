package leaderboard

// State is the reconciler's position within a cycle.
type State int32

const (
	StateIdle State = iota
	StateResolvingChannel
	StateFetching
	StateRendering
	StateLocatingMessage
	StateUpserting
	StatePersisting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolvingChannel:
		return "resolving_channel"
	case StateFetching:
		return "fetching"
	case StateRendering:
		return "rendering"
	case StateLocatingMessage:
		return "locating_message"
	case StateUpserting:
		return "upserting"
	case StatePersisting:
		return "persisting"
	default:
		return "unknown"
	}
}
