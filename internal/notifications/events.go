package notifications

import (
	"encoding/json"
	"time"
)

// Live feed event types.
const (
	EventWorkoutCreated = "workout_created"
	EventWorkoutLiked   = "workout_liked"
	EventCommentCreated = "comment_created"
)

// FeedEvent is the envelope pushed to feed websocket clients.
type FeedEvent struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	At      time.Time   `json:"at"`
}

// NewFeedEvent stamps an event with the current time.
func NewFeedEvent(eventType string, payload interface{}) FeedEvent {
	return FeedEvent{Type: eventType, Payload: payload, At: time.Now().UTC()}
}

// Encode marshals the event for the wire.
func (e FeedEvent) Encode() (string, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// WorkoutLikedPayload is sent with EventWorkoutLiked.
type WorkoutLikedPayload struct {
	WorkoutID  uint `json:"workout_id"`
	LikesCount int  `json:"likes_count"`
	Liked      bool `json:"liked"`
}

// eventType extracts the type field without decoding the payload.
func eventType(payload string) string {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal([]byte(payload), &head); err != nil {
		return "unknown"
	}
	if head.Type == "" {
		return "unknown"
	}
	return head.Type
}
