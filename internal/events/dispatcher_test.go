package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatcher_DeliversToSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var got []string
	dispatcher.Subscribe(EventTicketCompleted, func(_ context.Context, e Event) error {
		got = append(got, e.TicketNumber)
		return nil
	})
	dispatcher.Subscribe(EventTicketCompleted, func(_ context.Context, e Event) error {
		got = append(got, e.TicketNumber+"-second")
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventTicketCompleted, TicketNumber: "OS-1"})
	require.NoError(t, err)
	require.Equal(t, []string{"OS-1", "OS-1-second"}, got)
}

func TestDispatcher_IgnoresOtherTypes(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	called := false
	dispatcher.Subscribe(EventTicketOverdue, func(context.Context, Event) error {
		called = true
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventTicketCreated}))
	require.False(t, called)
}

func TestDispatcher_FailingHandlerDoesNotStopOthers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	reached := false
	dispatcher.Subscribe(EventTicketCreated, func(context.Context, Event) error {
		return errors.New("boom")
	})
	dispatcher.Subscribe(EventTicketCreated, func(context.Context, Event) error {
		reached = true
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventTicketCreated}))
	require.True(t, reached)
}
