// Package web provides the REST API for starting, inspecting and deciding
// post pipeline runs.
package web

import (
	"time"

	"github.com/kaljuvee/postwave/pkg/models"
	"github.com/kaljuvee/postwave/pkg/platforms"
)

// CreateRunRequest represents the request body for starting a new run.
type CreateRunRequest struct {
	URL       string   `json:"url"       validate:"required,url"`
	Platforms []string `json:"platforms" validate:"required,min=1"`
	Style     string   `json:"style"`
}

// DecisionRequest represents the request body for the approval decision.
type DecisionRequest struct {
	Approve *bool `json:"approve" validate:"required"`
}

// EditPostRequest represents the request body for overwriting a draft.
type EditPostRequest struct {
	Content string `json:"content" validate:"required"`
}

// RejectPostRequest represents the request body for rejecting one draft.
// Remove drops the record entirely instead of marking it failed.
type RejectPostRequest struct {
	Remove bool `json:"remove"`
}

// PostResponse is one post record plus the advisory character-limit flag.
type PostResponse struct {
	ID             string            `json:"id"`
	Platform       models.Platform   `json:"platform"`
	Content        string            `json:"content"`
	Status         models.PostStatus `json:"status"`
	Metadata       map[string]any    `json:"metadata,omitempty"`
	CharacterCount int               `json:"character_count"`
	CharacterLimit int               `json:"character_limit"`
	OverLimit      bool              `json:"over_limit"`
}

// RunResponse is the API shape of a run.
type RunResponse struct {
	ID            string                `json:"id"`
	URL           string                `json:"url"`
	Style         string                `json:"style,omitempty"`
	Status        models.RunStatus      `json:"status"`
	Content       string                `json:"content,omitempty"`
	Posts         []PostResponse        `json:"posts"`
	Errors        []string              `json:"errors"`
	CreatedAt     time.Time             `json:"created_at"`
	AwaitingSince *time.Time            `json:"awaiting_since,omitempty"`
	DecidedAt     *time.Time            `json:"decided_at,omitempty"`
	FinishedAt    *time.Time            `json:"finished_at,omitempty"`
}

func TransformPostResponse(post *models.Post) PostResponse {
	count := len([]rune(post.Content))

	return PostResponse{
		ID:             post.ID,
		Platform:       post.Platform,
		Content:        post.Content,
		Status:         post.Status,
		Metadata:       post.Metadata,
		CharacterCount: count,
		CharacterLimit: platforms.Limit(post.Platform),
		OverLimit:      platforms.OverLimit(post.Platform, post.Content),
	}
}

func TransformRunResponse(run *models.RunState) RunResponse {
	posts := make([]PostResponse, 0, len(run.Posts))
	for _, post := range run.Posts {
		posts = append(posts, TransformPostResponse(post))
	}

	errs := run.Errors
	if errs == nil {
		errs = []string{}
	}

	return RunResponse{
		ID:            run.ID,
		URL:           run.Request.URL,
		Style:         run.Request.Style,
		Status:        run.Status,
		Content:       run.Content,
		Posts:         posts,
		Errors:        errs,
		CreatedAt:     run.CreatedAt,
		AwaitingSince: run.AwaitingSince,
		DecidedAt:     run.DecidedAt,
		FinishedAt:    run.FinishedAt,
	}
}
