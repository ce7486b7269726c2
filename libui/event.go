package ui

import "time"

// Event kinds delivered to the reducer.
const (
	KindTick   = "tick"   // animation frame; Data is nil
	KindAction = "action" // application-defined; Data is the payload
	KindMouse  = "mouse"  // Data is a Mouse
)

// Event represents one input to the reducer. At is stamped by the loop
// from its clock when the event is taken, so reducers never read the
// time themselves.
type Event struct {
	Kind string
	Data any
	At   time.Time
}

// Mouse represents a decoded mouse event.
type Mouse struct {
	X       int
	Y       int
	Buttons int
}

// Action wraps an application event for the loop.
func Action(data any) Event {
	return Event{Kind: KindAction, Data: data}
}
