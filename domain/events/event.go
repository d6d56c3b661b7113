package events

// Event is the interface that all room events implement.
type Event interface {
	Name() string
}

type EventHandler func(event Event)
