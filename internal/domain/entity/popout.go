package entity

// PopoutState is the lifecycle state of a popout window.
type PopoutState int

const (
	PopoutCreated     PopoutState = iota // Handle exists, no window yet
	PopoutOpened                         // Window open, waiting for the child layout
	PopoutInitialized                    // Child layout confirmed ready
	PopoutClosed                         // Window gone
	PopoutBlocked                        // Platform refused the window (terminal)
)

// String returns a human-readable name for the state.
func (s PopoutState) String() string {
	switch s {
	case PopoutCreated:
		return "created"
	case PopoutOpened:
		return "opened"
	case PopoutInitialized:
		return "initialized"
	case PopoutClosed:
		return "closed"
	case PopoutBlocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether no further transitions can happen.
func (s PopoutState) IsTerminal() bool {
	return s == PopoutClosed || s == PopoutBlocked
}
