package template

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaljuvee/postwave/pkg/models"
	"github.com/kaljuvee/postwave/pkg/platforms"
)

const sampleContent = `Office Supplies Procurement 2025
The city seeks a supplier for office materials.
Budget is set at fifty thousand euros.
Submissions close at the end of December.`

func TestGenerator_Deterministic(t *testing.T) {
	generator, err := NewGenerator()
	require.NoError(t, err)

	first, err := generator.Generate(t.Context(), sampleContent, models.PlatformLinkedIn, "professional")
	require.NoError(t, err)

	second, err := generator.Generate(t.Context(), sampleContent, models.PlatformLinkedIn, "professional")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "Office Supplies Procurement 2025")
	assert.Contains(t, first, "#professional")
}

func TestGenerator_TwitterStaysUnderLimit(t *testing.T) {
	generator, err := NewGenerator()
	require.NoError(t, err)

	long := strings.Repeat("A very long paragraph of tender detail text.\n", 50)

	draft, err := generator.Generate(t.Context(), long, models.PlatformTwitter, "casual")
	require.NoError(t, err)

	assert.False(t, platforms.OverLimit(models.PlatformTwitter, draft))
}

func TestGenerator_UnknownPlatform(t *testing.T) {
	generator, err := NewGenerator()
	require.NoError(t, err)

	_, err = generator.Generate(t.Context(), sampleContent, models.Platform("myspace"), "")
	require.Error(t, err)
}

func TestGenerator_DefaultStyle(t *testing.T) {
	generator, err := NewGenerator()
	require.NoError(t, err)

	draft, err := generator.Generate(t.Context(), sampleContent, models.PlatformTwitter, "")
	require.NoError(t, err)
	assert.Contains(t, draft, "#professional")
}
