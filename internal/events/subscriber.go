package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMissingKey reports a collection update that names no collection.
var ErrMissingKey = errors.New("collection update has no key")

// Message is one payload received from the event bus with its subject.
type Message struct {
	Topic string
	Data  []byte
}

// Subscriber receives events from the event bus.
type Subscriber interface {
	// Subscribe delivers messages matching topic on the returned channel.
	// The cancel function unsubscribes and closes the channel.
	Subscribe(topic string) (<-chan Message, func(), error)
	Close() error
}

// CollectionKey returns the collection named by a collection-updated subject,
// or "" for any other subject.
func CollectionKey(topic string) string {
	rest, ok := strings.CutPrefix(topic, TopicCollectionPrefix)
	if !ok {
		return ""
	}
	key, ok := strings.CutSuffix(rest, ".updated")
	if !ok || strings.Contains(key, ".") {
		return ""
	}
	return key
}

// DecodeCollectionUpdated decodes a collection-updated message. A payload
// without a key takes it from the subject.
func DecodeCollectionUpdated(m Message) (CollectionUpdated, error) {
	var ev CollectionUpdated
	if err := json.Unmarshal(m.Data, &ev); err != nil {
		return CollectionUpdated{}, fmt.Errorf("decoding %s: %w", m.Topic, err)
	}
	if ev.Key == "" {
		ev.Key = CollectionKey(m.Topic)
	}
	if ev.Key == "" {
		return CollectionUpdated{}, fmt.Errorf("%s: %w", m.Topic, ErrMissingKey)
	}
	if ev.Records < 0 {
		return CollectionUpdated{}, fmt.Errorf("%s: negative record count %d", m.Topic, ev.Records)
	}
	return ev, nil
}
