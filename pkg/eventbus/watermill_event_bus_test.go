package eventbus_test

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaljuvee/postwave/pkg/channels/gochannel"
	"github.com/kaljuvee/postwave/pkg/eventbus"
	"github.com/kaljuvee/postwave/pkg/events"
)

func newTestBus(t *testing.T) eventbus.EventBus {
	t.Helper()

	pub, sub, err := gochannel.CreateTestChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := eventbus.NewWatermillEventBus(pub, sub)
	t.Cleanup(func() { _ = bus.Close() })

	return bus
}

func TestWatermillEventBus_PublishAndHandle(t *testing.T) {
	bus := newTestBus(t)

	received := make(chan any, 1)

	err := bus.Handle(events.RunStartedEvent, func(_ context.Context, event any) error {
		received <- event

		return nil
	})
	require.NoError(t, err)

	require.NoError(t, bus.Subscribe(t.Context()))

	sent := events.RunStarted{
		BaseEvent: events.NewBaseEvent(events.RunStartedEvent, "run-1"),
		URL:       "https://example.com/article",
		Platforms: []string{"twitter"},
	}

	require.NoError(t, bus.Publish(t.Context(), "run-1", sent))

	select {
	case event := <-received:
		got, ok := event.(*events.RunStarted)
		require.True(t, ok)
		assert.Equal(t, "run-1", got.RunID)
		assert.Equal(t, "https://example.com/article", got.URL)
		assert.Equal(t, events.RunStartedEvent, got.Type)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestWatermillEventBus_UnhandledTypesAreDropped(t *testing.T) {
	bus := newTestBus(t)

	received := make(chan any, 2)

	err := bus.Handle(events.RunFinishedEvent, func(_ context.Context, event any) error {
		received <- event

		return nil
	})
	require.NoError(t, err)

	require.NoError(t, bus.Subscribe(t.Context()))

	decided := events.RunDecided{
		BaseEvent: events.NewBaseEvent(events.RunDecidedEvent, "run-1"),
		Approved:  true,
	}
	require.NoError(t, bus.Publish(t.Context(), "run-1", decided))

	finished := events.RunFinished{
		BaseEvent: events.NewBaseEvent(events.RunFinishedEvent, "run-1"),
		Status:    "completed",
	}
	require.NoError(t, bus.Publish(t.Context(), "run-1", finished))

	select {
	case event := <-received:
		got, ok := event.(*events.RunFinished)
		require.True(t, ok)
		assert.Equal(t, events.RunFinishedEvent, got.Type)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}

	assert.Empty(t, received)
}

func TestWatermillEventBus_GenerateID(t *testing.T) {
	bus := newTestBus(t)

	first := bus.GenerateID()
	second := bus.GenerateID()

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}
