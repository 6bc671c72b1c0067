package anthropic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaljuvee/postwave/pkg/models"
)

func TestBuildPrompt_Twitter(t *testing.T) {
	prompt, err := buildPrompt("Big tender announced.", models.PlatformTwitter, "casual")
	require.NoError(t, err)

	assert.Contains(t, prompt, "Twitter post")
	assert.Contains(t, prompt, "under 280 characters")
	assert.Contains(t, prompt, "Style: casual")
	assert.Contains(t, prompt, "Big tender announced.")
}

func TestBuildPrompt_LinkedIn(t *testing.T) {
	prompt, err := buildPrompt("Big tender announced.", models.PlatformLinkedIn, "")
	require.NoError(t, err)

	assert.Contains(t, prompt, "LinkedIn post")
	assert.Contains(t, prompt, "up to 3000 characters")
	assert.Contains(t, prompt, "Style: professional")
}

func TestBuildPrompt_UnknownPlatform(t *testing.T) {
	_, err := buildPrompt("content", models.Platform("myspace"), "casual")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "myspace")
}

func TestNewGeneratorDefaults(t *testing.T) {
	generator := NewGenerator("key", "")
	assert.Equal(t, DefaultModel, generator.model)
}
