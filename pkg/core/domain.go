package core

import "fmt"

// EventType represents the type of change observed on a storage key.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change of a stored blob made outside the Store.
type Event struct {
	Type      EventType
	Key       string
	Timestamp int64 // Unix milliseconds
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.Key)
}
