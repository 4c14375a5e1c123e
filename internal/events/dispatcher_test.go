package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherInvokesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var seen []string
	d.Subscribe(EventContentChanged, func(_ context.Context, e Event) error {
		seen = append(seen, e.Resource)
		return nil
	})
	d.Subscribe(EventContentChanged, func(_ context.Context, e Event) error {
		seen = append(seen, e.Resource+"-2")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventContentChanged, Resource: "pages"})
	require.NoError(t, err)
	assert.Equal(t, []string{"pages", "pages-2"}, seen)
}

func TestDispatcherFailingHandlerDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var called bool
	d.Subscribe(EventNeedSubmitted, func(_ context.Context, _ Event) error {
		return errors.New("notification down")
	})
	d.Subscribe(EventNeedSubmitted, func(_ context.Context, _ Event) error {
		called = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventNeedSubmitted}))
	assert.True(t, called)
}

func TestDispatcherIgnoresUnrelatedEvents(t *testing.T) {
	d := NewInMemoryDispatcher()

	var called bool
	d.Subscribe(EventNeedSubmitted, func(_ context.Context, _ Event) error {
		called = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventContentChanged}))
	assert.False(t, called)
}
