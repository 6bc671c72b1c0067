package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/kaljuvee/postwave/pkg/models"
	"github.com/kaljuvee/postwave/pkg/platforms"
	"github.com/kaljuvee/postwave/pkg/protocol"
)

// GenerationStage fans out draft generation across the requested platforms.
// Platform failures are isolated: one platform's failure never blocks the
// others. The only total failure is empty source content.
type GenerationStage struct {
	generator protocol.Generator
	logger    *slog.Logger
}

func NewGenerationStage(generator protocol.Generator, logger *slog.Logger) *GenerationStage {
	return &GenerationStage{
		generator: generator,
		logger:    logger.With("stage", StageGenerate),
	}
}

// Run generates one draft per requested platform. The returned posts preserve
// request order and contain at most one post per platform; errors are appended
// in the order their originating call completed. Unrecognized platform
// identifiers are rejected before the generator is invoked and reported like
// generation failures.
func (s *GenerationStage) Run(ctx context.Context, content string, requested []string, style string) ([]*models.Post, []error) {
	if strings.TrimSpace(content) == "" {
		return nil, []error{&StageError{Stage: StageGenerate, Err: ErrNoContent}}
	}

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		errs []error
	)

	slots := make([]*models.Post, len(requested))
	seen := make(map[models.Platform]bool, len(requested))

	for i, identifier := range requested {
		platform, err := platforms.Resolve(identifier)
		if err != nil {
			// Generation goroutines from earlier iterations append concurrently.
			mu.Lock()
			errs = append(errs, &StageError{Stage: StageGenerate, Platform: models.Platform(identifier), Err: err})
			mu.Unlock()

			continue
		}

		if seen[platform] {
			continue
		}

		seen[platform] = true

		wg.Add(1)

		go func(slot int, platform models.Platform) {
			defer wg.Done()

			text, err := s.generator.Generate(ctx, content, platform, style)
			if err != nil {
				s.logger.WarnContext(ctx, "Draft generation failed", "platform", platform, "error", err)

				mu.Lock()
				errs = append(errs, &StageError{
					Stage:    StageGenerate,
					Platform: platform,
					Err:      fmt.Errorf("%w: %v", ErrGeneration, err),
				})
				mu.Unlock()

				return
			}

			slots[slot] = &models.Post{
				ID:       uuid.New().String(),
				Platform: platform,
				Content:  text,
				Status:   models.PostStatusPendingApproval,
				Metadata: map[string]any{},
			}
		}(i, platform)
	}

	wg.Wait()

	posts := make([]*models.Post, 0, len(requested))

	for _, post := range slots {
		if post != nil {
			posts = append(posts, post)
		}
	}

	return posts, errs
}
