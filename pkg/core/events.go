// pkg/core/events.go
package core

// EventType enumerates the presentation callbacks emitted by the
// interaction controller. These are the only outputs the UI layer sees.
type EventType int

const (
	EventMarkerLongPressed EventType = iota
	EventMarkerDragged
	EventDragEnded
	EventMarkerRemoved
	EventConnectModeDisabled
)

// String returns the event type name for logging.
func (t EventType) String() string {
	switch t {
	case EventMarkerLongPressed:
		return "markerLongPressed"
	case EventMarkerDragged:
		return "markerDragged"
	case EventDragEnded:
		return "dragEnded"
	case EventMarkerRemoved:
		return "markerRemoved"
	case EventConnectModeDisabled:
		return "connectModeDisabled"
	default:
		return "unknown"
	}
}

// Event is a presentation callback payload. Handle and Geometry are set
// where the event type carries them (long-press and drag events).
type Event struct {
	Type     EventType
	Handle   MapHandle
	Geometry Coordinate
}
