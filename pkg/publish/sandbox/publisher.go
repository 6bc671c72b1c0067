// Package sandbox provides a publisher that records posts in memory instead
// of calling a real platform. Useful for development and demos.
package sandbox

import (
	"context"
	"fmt"
	"sync"

	"github.com/kaljuvee/postwave/pkg/models"
)

// Published is one record accepted by the sandbox.
type Published struct {
	ID       string
	Platform models.Platform
	Content  string
}

// Publisher accepts every post and hands back a synthetic platform id.
type Publisher struct {
	mu        sync.Mutex
	published []Published
}

func NewPublisher() *Publisher {
	return &Publisher{}
}

func (p *Publisher) Publish(_ context.Context, platform models.Platform, content string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := fmt.Sprintf("sandbox-%s-%d", platform, len(p.published)+1)
	p.published = append(p.published, Published{
		ID:       id,
		Platform: platform,
		Content:  content,
	})

	return id, nil
}

// Records returns a copy of everything accepted so far.
func (p *Publisher) Records() []Published {
	p.mu.Lock()
	defer p.mu.Unlock()

	records := make([]Published, len(p.published))
	copy(records, p.published)

	return records
}
