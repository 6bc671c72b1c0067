package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/kaljuvee/postwave/pkg/models"
	"github.com/kaljuvee/postwave/pkg/protocol"
)

// PublishStage fans out publishing across approved posts. One post's failure
// never prevents the others from being attempted.
type PublishStage struct {
	publisher protocol.Publisher
	logger    *slog.Logger
}

func NewPublishStage(publisher protocol.Publisher, logger *slog.Logger) *PublishStage {
	return &PublishStage{
		publisher: publisher,
		logger:    logger.With("stage", StagePublish),
	}
}

// PublishResult is the outcome of one publish attempt. Err carries a
// *StageError wrapping ErrPublish when the attempt failed.
type PublishResult struct {
	Post           *models.Post
	PlatformPostID string
	Err            error
}

// Run attempts to publish every approved post in the given sequence and
// returns one result per attempt in completion order. Posts not in the
// approved status are skipped. The stage never mutates the posts; the engine
// applies terminal statuses from the results under its run lock.
func (s *PublishStage) Run(ctx context.Context, posts []*models.Post) []PublishResult {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results []PublishResult
	)

	for _, post := range posts {
		if post.Status != models.PostStatusApproved {
			continue
		}

		wg.Add(1)

		go func(post *models.Post) {
			defer wg.Done()

			postID, err := s.publisher.Publish(ctx, post.Platform, post.Content)
			if err != nil {
				s.logger.WarnContext(ctx, "Publish failed", "platform", post.Platform, "error", err)

				err = &StageError{
					Stage:    StagePublish,
					Platform: post.Platform,
					Err:      fmt.Errorf("%w: %v", ErrPublish, err),
				}
			}

			mu.Lock()
			results = append(results, PublishResult{Post: post, PlatformPostID: postID, Err: err})
			mu.Unlock()
		}(post)
	}

	wg.Wait()

	return results
}
