package pong

import "fmt"

type EventKind uint8

const (
	// EventSpawn is a local button press. The peer must be notified.
	EventSpawn EventKind = iota + 1
	// EventPeerSpawn is a ball requested over the link.
	EventPeerSpawn
	// EventScore means at least one ball left the field this frame.
	EventScore
	// EventReset is a joystick select press.
	EventReset
)

func (k EventKind) String() string {
	switch k {
	case EventSpawn:
		return "spawn"
	case EventPeerSpawn:
		return "peer-spawn"
	case EventScore:
		return "score"
	case EventReset:
		return "reset"
	default:
		return fmt.Sprintf("event(%d)", uint8(k))
	}
}

// Event is posted by Update for the thread side to act on.
type Event struct {
	Kind    EventKind
	Frame   uint64
	Score   uint32
	Spawned bool // spawn events: a slot was free
}

func (e Event) String() string {
	switch e.Kind {
	case EventSpawn, EventPeerSpawn:
		if !e.Spawned {
			return fmt.Sprintf("pong: %s frame=%d (field full)", e.Kind, e.Frame)
		}
	}
	return fmt.Sprintf("pong: %s frame=%d score=%d", e.Kind, e.Frame, e.Score)
}
