package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"budget/internal/core"
)

// SnapshotArchivedMessage announces that a month was archived. Consumers
// read the snapshot itself from the shared store.
type SnapshotArchivedMessage struct {
	Month      string    `json:"month"`
	ArchivedAt time.Time `json:"archived_at"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewSnapshotArchivedMessage(month string, archivedAt time.Time) *SnapshotArchivedMessage {
	return &SnapshotArchivedMessage{
		Month:      month,
		ArchivedAt: archivedAt.UTC(),
		Timestamp:  time.Now().UTC(),
	}
}

func (m *SnapshotArchivedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// SnapshotArchivedMessageFromJSON decodes data and rejects messages
// without a valid month key.
func SnapshotArchivedMessageFromJSON(data []byte) (*SnapshotArchivedMessage, error) {
	var msg SnapshotArchivedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if err := core.ValidateMonthKey(msg.Month); err != nil {
		return nil, fmt.Errorf("snapshot archived message: %w", err)
	}
	return &msg, nil
}
