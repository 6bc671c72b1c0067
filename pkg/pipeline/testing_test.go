package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kaljuvee/postwave/pkg/models"
)

// Collaborator fakes shared by the stage and engine tests.

type fakeFetcher struct {
	content string
	err     error
	calls   int
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string) (string, error) {
	f.calls++

	if f.err != nil {
		return "", f.err
	}

	return f.content, nil
}

type fakeGenerator struct {
	mu    sync.Mutex
	fail  map[models.Platform]error
	delay map[models.Platform]time.Duration
	calls []models.Platform
}

func (g *fakeGenerator) Generate(_ context.Context, content string, platform models.Platform, style string) (string, error) {
	if d, ok := g.delay[platform]; ok {
		time.Sleep(d)
	}

	g.mu.Lock()
	g.calls = append(g.calls, platform)
	g.mu.Unlock()

	if err, ok := g.fail[platform]; ok {
		return "", err
	}

	return fmt.Sprintf("%s draft (%s): %s", platform, style, content), nil
}

type fakePublisher struct {
	mu    sync.Mutex
	fail  map[models.Platform]error
	delay time.Duration
	calls []models.Platform
}

func (p *fakePublisher) Publish(_ context.Context, platform models.Platform, _ string) (string, error) {
	if p.delay > 0 {
		time.Sleep(p.delay)
	}

	p.mu.Lock()
	p.calls = append(p.calls, platform)
	n := len(p.calls)
	p.mu.Unlock()

	if err, ok := p.fail[platform]; ok {
		return "", err
	}

	return fmt.Sprintf("%s-%d", platform, n), nil
}

func (p *fakePublisher) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.calls)
}

func newTestEngine(fetcher *fakeFetcher, generator *fakeGenerator, publisher *fakePublisher, opts ...Option) *Engine {
	if fetcher == nil {
		fetcher = &fakeFetcher{content: "Hello world"}
	}

	if generator == nil {
		generator = &fakeGenerator{}
	}

	if publisher == nil {
		publisher = &fakePublisher{}
	}

	return NewEngine(fetcher, generator, publisher, opts...)
}
