// Package models defines the core domain models for the post pipeline.
package models

import "time"

// Platform identifies a supported social network.
type Platform string

const (
	PlatformTwitter  Platform = "twitter"
	PlatformLinkedIn Platform = "linkedin"
	PlatformReddit   Platform = "reddit"
)

// PostStatus represents the lifecycle state of a generated post.
type PostStatus string

const (
	PostStatusDraft           PostStatus = "draft"            // Reserved for manually created posts
	PostStatusPendingApproval PostStatus = "pending_approval" // Awaiting the approval gate
	PostStatusApproved        PostStatus = "approved"         // Eligible for publishing
	PostStatusPublished       PostStatus = "published"        // Terminal, post id in metadata
	PostStatusFailed          PostStatus = "failed"           // Terminal
)

// MetadataPostID is the metadata key carrying the platform-assigned post identifier.
const MetadataPostID = "post_id"

// Post is one generated draft for one platform within one run.
type Post struct {
	ID            string         `json:"id"`
	Platform      Platform       `json:"platform"`
	Content       string         `json:"content"`
	Status        PostStatus     `json:"status"`
	ScheduledTime *time.Time     `json:"scheduled_time,omitempty"` // reserved for a future scheduling stage
	MediaURLs     []string       `json:"media_urls,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// PlatformPostID returns the platform-assigned identifier recorded after a
// successful publish, or an empty string.
func (p *Post) PlatformPostID() string {
	if p.Metadata == nil {
		return ""
	}

	id, _ := p.Metadata[MetadataPostID].(string)

	return id
}

// Terminal reports whether the post has reached a terminal status.
func (p *Post) Terminal() bool {
	return p.Status == PostStatusPublished || p.Status == PostStatusFailed
}

// Clone returns a deep copy of the post.
func (p *Post) Clone() *Post {
	clone := *p

	if p.ScheduledTime != nil {
		scheduled := *p.ScheduledTime
		clone.ScheduledTime = &scheduled
	}

	if p.MediaURLs != nil {
		clone.MediaURLs = append([]string(nil), p.MediaURLs...)
	}

	if p.Metadata != nil {
		clone.Metadata = make(map[string]any, len(p.Metadata))
		for key, value := range p.Metadata {
			clone.Metadata[key] = value
		}
	}

	return &clone
}
