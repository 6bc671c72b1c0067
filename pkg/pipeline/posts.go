package pipeline

import (
	"errors"
	"fmt"

	"github.com/kaljuvee/postwave/pkg/models"
)

// Per-post operations on a suspended run. The whole-run gate never deletes
// records; rejection of an individual draft is the caller's choice between
// MarkPostFailed and RemovePost. Returned posts are copies taken under the
// run lock, safe to read while the run keeps moving.

// UpdatePostContent overwrites a pending draft's text. Only allowed while the
// run is suspended at the approval gate.
func (e *Engine) UpdatePostContent(runID, postID, content string) (*models.Post, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	post, err := e.pendingPost(runID, postID)
	if err != nil {
		return nil, err
	}

	post.Content = content

	return post.Clone(), nil
}

// ApprovePost marks a single pending draft approved ahead of the gate
// decision. It does not publish: publishing still requires approving the run.
func (e *Engine) ApprovePost(runID, postID string) (*models.Post, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	post, err := e.pendingPost(runID, postID)
	if err != nil {
		return nil, err
	}

	post.Status = models.PostStatusApproved

	return post.Clone(), nil
}

// MarkPostFailed rejects a single draft by moving it to the failed status,
// keeping the record for inspection.
func (e *Engine) MarkPostFailed(runID, postID string) (*models.Post, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	run, post, err := e.suspendedPost(runID, postID)
	if err != nil {
		return nil, err
	}

	if post.Terminal() {
		return nil, fmt.Errorf("%w: post %s is already %s", ErrPostNotPending, postID, post.Status)
	}

	post.Status = models.PostStatusFailed
	run.AppendError((&StageError{Stage: StageApproval, Platform: post.Platform, Err: errors.New("rejected by reviewer")}).Error())

	return post.Clone(), nil
}

// RemovePost rejects a single draft by deleting its record from the run.
func (e *Engine) RemovePost(runID, postID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	run, _, err := e.suspendedPost(runID, postID)
	if err != nil {
		return err
	}

	run.RemovePost(postID)

	return nil
}

func (e *Engine) pendingPost(runID, postID string) (*models.Post, error) {
	_, post, err := e.suspendedPost(runID, postID)
	if err != nil {
		return nil, err
	}

	if post.Status != models.PostStatusPendingApproval {
		return nil, fmt.Errorf("%w: post %s is %s", ErrPostNotPending, postID, post.Status)
	}

	return post, nil
}

func (e *Engine) suspendedPost(runID, postID string) (*models.RunState, *models.Post, error) {
	run, err := e.store.Get(runID)
	if err != nil {
		return nil, nil, err
	}

	if run.Status != models.RunStatusAwaitingApproval {
		return nil, nil, ErrNotAwaitingApproval
	}

	post := run.Post(postID)
	if post == nil {
		return nil, nil, ErrPostNotFound
	}

	return run, post, nil
}
