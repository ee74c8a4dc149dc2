// Package notifications delivers live feed events to websocket clients,
// fanning out across instances through Redis pub/sub.
package notifications

import (
	"encoding/json"
	"fmt"
)

// Event types sent on the live feed.
const (
	EventPostPublished   = "post_published"
	EventProjectUpdated  = "project_updated"
	EventProfileUpdated  = "profile_updated"
	EventMessagesDropped = "messages_dropped"
)

// Event is the JSON envelope written to feed clients.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Encode marshals the event for the wire.
func (e Event) Encode() (string, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("marshal %s event: %w", e.Type, err)
	}
	return string(b), nil
}

// PostPublishedPayload announces a newly published blog post.
type PostPublishedPayload struct {
	ID       uint     `json:"id"`
	Title    string   `json:"title"`
	Slug     string   `json:"slug"`
	Excerpt  string   `json:"excerpt"`
	Author   string   `json:"author"`
	Tags     []string `json:"tags"`
	ReadTime string   `json:"read_time"`
}
