package serial

type State int

const (
	StateDisconnected State = iota
	StateConnected
	StatePolling
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnected:
		return "connected"
	case StatePolling:
		return "polling"
	default:
		return "unknown"
	}
}
