package amqp

import (
	"encoding/json"
	"time"
)

// EventSyncMessage announces a locally stored point event for replay into
// the family spreadsheet. It carries only the row id; the worker fetches
// the full event from the database.
type EventSyncMessage struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEventSyncMessage(id int64) *EventSyncMessage {
	return &EventSyncMessage{ID: id, Timestamp: time.Now()}
}

func (m *EventSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func EventSyncMessageFromJSON(data []byte) (*EventSyncMessage, error) {
	var msg EventSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
