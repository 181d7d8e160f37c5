package entity

import "time"

// HandoffPayload is a serialised layout configuration waiting to be read by
// a freshly opened popout window.
type HandoffPayload struct {
	Key       string
	Payload   []byte
	CreatedAt time.Time
}
