// Package pipeline implements the post generation workflow: fetch source
// content, fan out draft generation per platform, suspend for an approval
// decision, and fan out publishing of approved drafts.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/kaljuvee/postwave/pkg/models"
)

// Stage failure sentinels. Fetch and no-content failures are total and halt
// the run; generation and publish failures are per-platform and only ever
// reach the run's error list.
var (
	// ErrFetch indicates the content fetcher failed for the source URL.
	ErrFetch = errors.New("content fetch failed")

	// ErrNoContent indicates the fetcher succeeded but yielded empty text.
	ErrNoContent = errors.New("no content available for post generation")

	// ErrGeneration indicates draft generation failed for one platform.
	ErrGeneration = errors.New("post generation failed")

	// ErrPublish indicates publishing failed for one post.
	ErrPublish = errors.New("post publish failed")
)

// Run lifecycle errors.
var (
	// ErrRunNotFound indicates no run exists with the given identifier.
	ErrRunNotFound = errors.New("run not found")

	// ErrPostNotFound indicates the run has no post with the given identifier.
	ErrPostNotFound = errors.New("post not found")

	// ErrPostNotPending indicates a per-post operation on a post that already
	// left the pending_approval status.
	ErrPostNotPending = errors.New("post is not pending approval")

	// ErrAlreadyDecided indicates a second decision on an already-decided run.
	ErrAlreadyDecided = errors.New("run already decided")

	// ErrNotAwaitingApproval indicates the run is not suspended at the approval gate.
	ErrNotAwaitingApproval = errors.New("run is not awaiting approval")

	// ErrApprovalExpired indicates the decision arrived after the approval window closed.
	ErrApprovalExpired = errors.New("approval window expired")
)

// StageError wraps a stage failure with its origin.
type StageError struct {
	Stage    Stage           // Stage the error occurred in
	Platform models.Platform // Platform, for per-item errors
	URL      string          // Source URL, for fetch errors
	Err      error
}

func (e *StageError) Error() string {
	switch {
	case e.Platform != "":
		return fmt.Sprintf("%s: %s: %v", e.Stage, e.Platform, e.Err)
	case e.URL != "":
		return fmt.Sprintf("%s: %s: %v", e.Stage, e.URL, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func (e *StageError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// IsTotal reports whether an error halts the whole run rather than a single
// platform's item.
func IsTotal(err error) bool {
	return errors.Is(err, ErrFetch) || errors.Is(err, ErrNoContent)
}
