package models

import "time"

// RunStatus represents the lifecycle state of a pipeline run.
type RunStatus string

const (
	RunStatusRunning          RunStatus = "running"
	RunStatusAwaitingApproval RunStatus = "awaiting_approval"
	RunStatusApproved         RunStatus = "approved" // Decision received, publish in progress
	RunStatusCompleted        RunStatus = "completed"
	RunStatusRejected         RunStatus = "rejected"
	RunStatusCancelled        RunStatus = "cancelled"
	RunStatusFailed           RunStatus = "failed"
)

// Decided reports whether the approval gate has already been resolved.
func (s RunStatus) Decided() bool {
	switch s {
	case RunStatusApproved, RunStatusCompleted, RunStatusRejected, RunStatusCancelled:
		return true
	default:
		return false
	}
}

// ContentRequest carries the caller-supplied parameters for one run.
type ContentRequest struct {
	URL       string   `json:"url"       validate:"required,url"`
	Platforms []string `json:"platforms" validate:"required,min=1"`
	Style     string   `json:"style"`
}

// RunState is the working memory of one pipeline run. It is owned exclusively
// by the engine invocation that created it and is never shared across runs.
type RunState struct {
	ID            string         `json:"id"`
	Request       ContentRequest `json:"request"`
	Content       string         `json:"content,omitempty"`
	Posts         []*Post        `json:"posts"`
	Errors        []string       `json:"errors"`
	Status        RunStatus      `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	AwaitingSince *time.Time     `json:"awaiting_since,omitempty"`
	DecidedAt     *time.Time     `json:"decided_at,omitempty"`
	FinishedAt    *time.Time     `json:"finished_at,omitempty"`
}

// Clone returns a deep copy of the run state, including its posts.
func (r *RunState) Clone() *RunState {
	clone := *r

	if r.Errors != nil {
		clone.Errors = append([]string(nil), r.Errors...)
	}

	if r.Posts != nil {
		clone.Posts = make([]*Post, len(r.Posts))
		for i, post := range r.Posts {
			clone.Posts[i] = post.Clone()
		}
	}

	clone.AwaitingSince = cloneTime(r.AwaitingSince)
	clone.DecidedAt = cloneTime(r.DecidedAt)
	clone.FinishedAt = cloneTime(r.FinishedAt)

	return &clone
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	copied := *t

	return &copied
}

// AppendError records a stage error message in arrival order.
func (r *RunState) AppendError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// Post returns the post with the given id, or nil.
func (r *RunState) Post(postID string) *Post {
	for _, post := range r.Posts {
		if post.ID == postID {
			return post
		}
	}

	return nil
}

// PostsWithStatus returns the posts currently in the given status, preserving order.
func (r *RunState) PostsWithStatus(status PostStatus) []*Post {
	var out []*Post

	for _, post := range r.Posts {
		if post.Status == status {
			out = append(out, post)
		}
	}

	return out
}

// RemovePost deletes the post with the given id and reports whether it existed.
func (r *RunState) RemovePost(postID string) bool {
	for i, post := range r.Posts {
		if post.ID == postID {
			r.Posts = append(r.Posts[:i], r.Posts[i+1:]...)

			return true
		}
	}

	return false
}
