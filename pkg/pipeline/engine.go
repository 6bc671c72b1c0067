package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kaljuvee/postwave/pkg/eventbus"
	"github.com/kaljuvee/postwave/pkg/events"
	"github.com/kaljuvee/postwave/pkg/log"
	"github.com/kaljuvee/postwave/pkg/models"
	"github.com/kaljuvee/postwave/pkg/otelhelper"
	"github.com/kaljuvee/postwave/pkg/protocol"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Engine sequences one run through fetch, generation, the approval gate and
// publishing. Every stage error is accumulated on the run; nothing escapes the
// engine as a fault.
type Engine struct {
	fetcher     protocol.Fetcher
	generation  *GenerationStage
	publishing  *PublishStage
	store       *Store
	bus         eventbus.EventBus
	tracer      trace.Tracer
	logger      *slog.Logger
	approvalTTL time.Duration
	now         func() time.Time

	// Guards all run state mutation: stage result application, gate
	// decisions and per-post operations. Readers take Snapshot copies.
	mu sync.Mutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithEventBus enables run lifecycle event publishing.
func WithEventBus(bus eventbus.EventBus) Option {
	return func(e *Engine) {
		e.bus = bus
	}
}

// WithTracer enables distributed tracing of pipeline stages.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) {
		e.tracer = tracer
	}
}

// WithApprovalTTL bounds how long a suspended run accepts a decision. Zero
// (the default) waits indefinitely.
func WithApprovalTTL(ttl time.Duration) Option {
	return func(e *Engine) {
		e.approvalTTL = ttl
	}
}

func withClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func NewEngine(fetcher protocol.Fetcher, generator protocol.Generator, publisher protocol.Publisher, opts ...Option) *Engine {
	e := &Engine{
		fetcher: fetcher,
		store:   NewStore(),
		tracer:  noop.NewTracerProvider().Tracer("pipeline"),
		logger:  log.WithModule("pipeline"),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.generation = NewGenerationStage(generator, e.logger)
	e.publishing = NewPublishStage(publisher, e.logger)

	return e
}

// Runs returns the engine's run store. Runs handed out by the store are live:
// the engine keeps mutating them, so concurrent readers must go through
// Snapshot instead.
func (e *Engine) Runs() *Store {
	return e.store
}

// Snapshot returns a deep copy of the run taken under the engine lock. The
// copy is owned by the caller and safe to read or serialize while the engine
// keeps working on the live run.
func (e *Engine) Snapshot(runID string) (*models.RunState, error) {
	run, err := e.store.Get(runID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return run.Clone(), nil
}

// Snapshots returns deep copies of all runs, newest first.
func (e *Engine) Snapshots() []*models.RunState {
	runs := e.store.List()

	e.mu.Lock()
	defer e.mu.Unlock()

	clones := make([]*models.RunState, len(runs))
	for i, run := range runs {
		clones[i] = run.Clone()
	}

	return clones
}

// Start executes a new run up to the approval gate and returns its handle.
// All failure is reported through the run state: a total fetch or content
// failure leaves the run in the failed status, per-platform generation
// failures only land in the error list.
func (e *Engine) Start(ctx context.Context, req models.ContentRequest) *models.RunState {
	now := e.now().UTC()
	run := &models.RunState{
		ID:        uuid.New().String(),
		Request:   req,
		Posts:     []*models.Post{},
		Errors:    []string{},
		Status:    models.RunStatusRunning,
		CreatedAt: now,
	}

	e.store.Put(run)

	logger := log.WithRun(e.logger, run.ID)
	logger.InfoContext(ctx, "Starting run", "url", req.URL, "platforms", req.Platforms, "style", req.Style)

	e.emit(ctx, run.ID, events.RunStarted{
		BaseEvent: events.NewBaseEvent(events.RunStartedEvent, run.ID),
		URL:       req.URL,
		Platforms: req.Platforms,
		Style:     req.Style,
	})

	e.advance(ctx, run, StageFetch, logger)

	return run
}

// advance drives the run from the given stage until it either suspends at the
// approval gate or reaches a terminal state.
func (e *Engine) advance(ctx context.Context, run *models.RunState, from Stage, logger *slog.Logger) {
	current := from

	for {
		switch current {
		case StageFetch:
			e.runFetch(ctx, run, logger)
		case StageGenerate:
			e.runGenerate(ctx, run, logger)
		case StageApproval:
			e.suspend(ctx, run, logger)

			return
		case StagePublish:
			e.runPublish(ctx, run, logger)
		case StageDone:
			e.finish(ctx, run, logger)

			return
		}

		current = NextStage(current, run)
	}
}

func (e *Engine) runFetch(ctx context.Context, run *models.RunState, logger *slog.Logger) {
	ctx, span := otelhelper.StartSpan(ctx, e.tracer, "pipeline.fetch",
		attribute.String(otelhelper.RunIDKey, run.ID),
		attribute.String(otelhelper.URLKey, run.Request.URL),
	)
	defer span.End()

	content, err := e.fetcher.Fetch(ctx, run.Request.URL)
	if err != nil {
		stageErr := &StageError{
			Stage: StageFetch,
			URL:   run.Request.URL,
			Err:   fmt.Errorf("%w: %v", ErrFetch, err),
		}

		logger.ErrorContext(ctx, "Content fetch failed", "url", run.Request.URL, "error", err)
		otelhelper.SetError(span, stageErr)

		e.mu.Lock()
		run.AppendError(stageErr.Error())
		run.Status = models.RunStatusFailed
		e.mu.Unlock()

		return
	}

	e.mu.Lock()
	run.Content = content
	e.mu.Unlock()

	logger.InfoContext(ctx, "Content fetched", "url", run.Request.URL, "chars", len(content))

	e.emit(ctx, run.ID, events.ContentFetched{
		BaseEvent: events.NewBaseEvent(events.ContentFetchedEvent, run.ID),
		URL:       run.Request.URL,
		Chars:     len(content),
	})
}

func (e *Engine) runGenerate(ctx context.Context, run *models.RunState, logger *slog.Logger) {
	ctx, span := otelhelper.StartSpan(ctx, e.tracer, "pipeline.generate",
		attribute.String(otelhelper.RunIDKey, run.ID),
		attribute.Int("postwave.platform.count", len(run.Request.Platforms)),
	)
	defer span.End()

	posts, errs := e.generation.Run(ctx, run.Content, run.Request.Platforms, run.Request.Style)

	e.mu.Lock()

	if posts != nil {
		run.Posts = posts
	}

	for _, err := range errs {
		run.AppendError(err.Error())

		if IsTotal(err) {
			run.Status = models.RunStatusFailed
			e.mu.Unlock()

			otelhelper.SetError(span, err)

			return
		}
	}

	e.mu.Unlock()

	logger.InfoContext(ctx, "Drafts generated", "posts", len(posts), "errors", len(errs))

	e.emit(ctx, run.ID, events.PostsGenerated{
		BaseEvent:  events.NewBaseEvent(events.PostsGeneratedEvent, run.ID),
		PostCount:  len(posts),
		ErrorCount: len(errs),
	})
}

// suspend parks the run at the approval gate until a decision arrives.
func (e *Engine) suspend(ctx context.Context, run *models.RunState, logger *slog.Logger) {
	now := e.now().UTC()

	e.mu.Lock()
	run.Status = models.RunStatusAwaitingApproval
	run.AwaitingSince = &now
	pending := len(run.PostsWithStatus(models.PostStatusPendingApproval))
	e.mu.Unlock()

	logger.InfoContext(ctx, "Run awaiting approval", "pending_posts", pending)

	e.emit(ctx, run.ID, events.ApprovalRequested{
		BaseEvent:    events.NewBaseEvent(events.ApprovalRequestedEvent, run.ID),
		PendingCount: pending,
	})
}

func (e *Engine) runPublish(ctx context.Context, run *models.RunState, logger *slog.Logger) {
	ctx, span := otelhelper.StartSpan(ctx, e.tracer, "pipeline.publish",
		attribute.String(otelhelper.RunIDKey, run.ID),
	)
	defer span.End()

	results := e.publishing.Run(ctx, run.Posts)

	failed := 0

	e.mu.Lock()

	for _, res := range results {
		if res.Err != nil {
			failed++
			res.Post.Status = models.PostStatusFailed
			run.AppendError(res.Err.Error())

			continue
		}

		res.Post.Status = models.PostStatusPublished

		if res.Post.Metadata == nil {
			res.Post.Metadata = map[string]any{}
		}

		res.Post.Metadata[models.MetadataPostID] = res.PlatformPostID
	}

	e.mu.Unlock()

	for _, res := range results {
		if res.Err != nil {
			reason := res.Err.Error()

			var stageErr *StageError
			if errors.As(res.Err, &stageErr) {
				reason = stageErr.Err.Error()
			}

			e.emit(ctx, run.ID, events.PostFailed{
				BaseEvent: events.NewBaseEvent(events.PostFailedEvent, run.ID),
				Platform:  res.Post.Platform,
				Reason:    reason,
			})

			continue
		}

		e.emit(ctx, run.ID, events.PostPublished{
			BaseEvent:      events.NewBaseEvent(events.PostPublishedEvent, run.ID),
			Platform:       res.Post.Platform,
			PlatformPostID: res.PlatformPostID,
		})
	}

	logger.InfoContext(ctx, "Publish stage finished",
		"published", len(results)-failed,
		"failed", failed,
	)
}

func (e *Engine) finish(ctx context.Context, run *models.RunState, logger *slog.Logger) {
	now := e.now().UTC()

	e.mu.Lock()

	if run.Status == models.RunStatusApproved {
		run.Status = models.RunStatusCompleted
	}

	run.FinishedAt = &now
	e.mu.Unlock()

	logger.InfoContext(ctx, "Run finished",
		"status", run.Status,
		"posts", len(run.Posts),
		"errors", len(run.Errors),
	)

	e.emit(ctx, run.ID, events.RunFinished{
		BaseEvent:  events.NewBaseEvent(events.RunFinishedEvent, run.ID),
		Status:     run.Status,
		PostCount:  len(run.Posts),
		ErrorCount: len(run.Errors),
		Duration:   run.FinishedAt.Sub(run.CreatedAt),
	})
}

func (e *Engine) emit(ctx context.Context, runID string, event eventbus.Event) {
	if e.bus == nil {
		return
	}

	if err := e.bus.Publish(ctx, runID, event); err != nil {
		e.logger.WarnContext(ctx, "Failed to publish run event", "event_type", event.GetType(), "error", err)
	}
}
