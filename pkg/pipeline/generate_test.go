package pipeline

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/kaljuvee/postwave/pkg/models"
	"github.com/kaljuvee/postwave/pkg/platforms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.Default()
}

func TestGenerationStage_EmptyContent(t *testing.T) {
	generator := &fakeGenerator{}
	stage := NewGenerationStage(generator, testLogger())

	posts, errs := stage.Run(t.Context(), "   ", []string{"twitter", "linkedin", "reddit"}, "professional")

	assert.Empty(t, posts)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrNoContent)
	assert.Empty(t, generator.calls, "generator must not be invoked without content")
}

func TestGenerationStage_AllSucceed(t *testing.T) {
	stage := NewGenerationStage(&fakeGenerator{}, testLogger())

	posts, errs := stage.Run(t.Context(), "Hello world", []string{"twitter", "linkedin"}, "professional")

	require.Empty(t, errs)
	require.Len(t, posts, 2)
	assert.Equal(t, models.PlatformTwitter, posts[0].Platform)
	assert.Equal(t, models.PlatformLinkedIn, posts[1].Platform)

	for _, post := range posts {
		assert.NotEmpty(t, post.ID)
		assert.Equal(t, models.PostStatusPendingApproval, post.Status)
		assert.Contains(t, post.Content, "Hello world")
	}
}

func TestGenerationStage_PartialFailureIsolation(t *testing.T) {
	generator := &fakeGenerator{
		fail: map[models.Platform]error{models.PlatformTwitter: errors.New("model overloaded")},
	}
	stage := NewGenerationStage(generator, testLogger())

	posts, errs := stage.Run(t.Context(), "Hello world", []string{"twitter", "linkedin"}, "casual")

	require.Len(t, posts, 1)
	assert.Equal(t, models.PlatformLinkedIn, posts[0].Platform)

	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrGeneration)
	assert.Contains(t, errs[0].Error(), "twitter")
}

func TestGenerationStage_UnknownPlatformRejectedBeforeGeneration(t *testing.T) {
	generator := &fakeGenerator{}
	stage := NewGenerationStage(generator, testLogger())

	posts, errs := stage.Run(t.Context(), "Hello world", []string{"mastodon", "twitter"}, "")

	require.Len(t, posts, 1)
	assert.Equal(t, models.PlatformTwitter, posts[0].Platform)

	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], platforms.ErrUnknownPlatform)

	assert.Equal(t, []models.Platform{models.PlatformTwitter}, generator.calls)
}

func TestGenerationStage_CountInvariant(t *testing.T) {
	// Record count plus error count equals the requested platform count.
	generator := &fakeGenerator{
		fail: map[models.Platform]error{models.PlatformReddit: errors.New("nope")},
	}
	stage := NewGenerationStage(generator, testLogger())

	requested := []string{"twitter", "linkedin", "reddit", "mastodon"}
	posts, errs := stage.Run(t.Context(), "Hello world", requested, "technical")

	assert.Len(t, requested, len(posts)+len(errs))
}

func TestGenerationStage_UnknownPlatformsAmongConcurrentFailures(t *testing.T) {
	// Unknown identifiers are recorded from the request loop while generation
	// goroutines for the known platforms record their own failures; no error
	// may be lost to the interleaving.
	generator := &fakeGenerator{
		fail: map[models.Platform]error{
			models.PlatformTwitter:  errors.New("model overloaded"),
			models.PlatformLinkedIn: errors.New("model overloaded"),
			models.PlatformReddit:   errors.New("model overloaded"),
		},
	}
	stage := NewGenerationStage(generator, testLogger())

	requested := []string{"twitter", "bogus1", "linkedin", "bogus2", "reddit", "bogus3"}
	posts, errs := stage.Run(t.Context(), "Hello world", requested, "")

	assert.Empty(t, posts)
	require.Len(t, errs, len(requested))

	unknown := 0
	for _, err := range errs {
		if errors.Is(err, platforms.ErrUnknownPlatform) {
			unknown++
		} else {
			assert.ErrorIs(t, err, ErrGeneration)
		}
	}

	assert.Equal(t, 3, unknown)
}

func TestGenerationStage_PreservesRequestOrderUnderConcurrency(t *testing.T) {
	// Twitter completes last, yet the result sequence keeps request order.
	generator := &fakeGenerator{
		delay: map[models.Platform]time.Duration{models.PlatformTwitter: 50 * time.Millisecond},
	}
	stage := NewGenerationStage(generator, testLogger())

	posts, errs := stage.Run(t.Context(), "Hello world", []string{"twitter", "linkedin", "reddit"}, "")

	require.Empty(t, errs)
	require.Len(t, posts, 3)
	assert.Equal(t, models.PlatformTwitter, posts[0].Platform)
	assert.Equal(t, models.PlatformLinkedIn, posts[1].Platform)
	assert.Equal(t, models.PlatformReddit, posts[2].Platform)
}

func TestGenerationStage_DuplicatePlatformsGenerateOnce(t *testing.T) {
	generator := &fakeGenerator{}
	stage := NewGenerationStage(generator, testLogger())

	posts, errs := stage.Run(t.Context(), "Hello world", []string{"twitter", "twitter"}, "")

	assert.Empty(t, errs)
	require.Len(t, posts, 1)
	assert.Len(t, generator.calls, 1)
}
