// Package events defines event types and structures for run lifecycle notifications.
package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/kaljuvee/postwave/pkg/models"
)

type EventType string

// Topic is the event bus topic carrying all run lifecycle events.
const Topic = "postwave.runs"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	RunStartedEvent        EventType = "run.started"
	ContentFetchedEvent    EventType = "run.content_fetched"
	PostsGeneratedEvent    EventType = "run.posts_generated"
	ApprovalRequestedEvent EventType = "run.approval_requested"
	RunDecidedEvent        EventType = "run.decided"
	PostPublishedEvent     EventType = "run.post_published"
	PostFailedEvent        EventType = "run.post_failed"
	RunFinishedEvent       EventType = "run.finished"
)

type BaseEvent struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	RunID     string         `json:"run_id"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

func NewBaseEvent(eventType EventType, runID string) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		RunID:     runID,
	}
}

type RunStarted struct {
	BaseEvent

	URL       string   `json:"url"`
	Platforms []string `json:"platforms"`
	Style     string   `json:"style,omitempty"`
}

func (e RunStarted) GetType() EventType {
	return RunStartedEvent
}

type ContentFetched struct {
	BaseEvent

	URL   string `json:"url"`
	Chars int    `json:"chars"`
}

func (e ContentFetched) GetType() EventType {
	return ContentFetchedEvent
}

type PostsGenerated struct {
	BaseEvent

	PostCount  int `json:"post_count"`
	ErrorCount int `json:"error_count"`
}

func (e PostsGenerated) GetType() EventType {
	return PostsGeneratedEvent
}

type ApprovalRequested struct {
	BaseEvent

	PendingCount int `json:"pending_count"`
}

func (e ApprovalRequested) GetType() EventType {
	return ApprovalRequestedEvent
}

type RunDecided struct {
	BaseEvent

	Approved bool `json:"approved"`
}

func (e RunDecided) GetType() EventType {
	return RunDecidedEvent
}

type PostPublished struct {
	BaseEvent

	Platform       models.Platform `json:"platform"`
	PlatformPostID string          `json:"platform_post_id"`
}

func (e PostPublished) GetType() EventType {
	return PostPublishedEvent
}

type PostFailed struct {
	BaseEvent

	Platform models.Platform `json:"platform"`
	Reason   string          `json:"reason"`
}

func (e PostFailed) GetType() EventType {
	return PostFailedEvent
}

type RunFinished struct {
	BaseEvent

	Status     models.RunStatus `json:"status"`
	PostCount  int              `json:"post_count"`
	ErrorCount int              `json:"error_count"`
	Duration   time.Duration    `json:"duration"`
}

func (e RunFinished) GetType() EventType {
	return RunFinishedEvent
}
