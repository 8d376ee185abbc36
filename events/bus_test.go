package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	bus := NewBus()
	first := bus.Subscribe("first")
	second := bus.Subscribe("second")

	bus.Publish(Event{Table: "plants", Action: ActionUpdate, ID: 3})

	evt := <-first
	assert.Equal(t, "plants", evt.Table)
	assert.Equal(t, ActionUpdate, evt.Action)
	assert.Equal(t, uint(3), evt.ID)

	evt = <-second
	assert.Equal(t, uint(3), evt.ID)
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	bus := NewBus()
	feed := bus.Subscribe("client")
	bus.Unsubscribe("client")

	_, open := <-feed
	assert.False(t, open)

	// Publishing after unsubscribe must not panic.
	bus.Publish(Event{Table: "cart", Action: ActionDelete, ID: 1})
}

func TestPublishNeverBlocksOnSlowSubscriber(t *testing.T) {
	bus := NewBus()
	feed := bus.Subscribe("slow")

	// Overfill the buffer; extra events are dropped, not blocked on.
	for i := 0; i < 200; i++ {
		bus.Publish(Event{Table: "orders", Action: ActionCreate, ID: uint(i)})
	}

	received := 0
	for {
		select {
		case <-feed:
			received++
		default:
			require.Equal(t, 64, received, "buffer size worth of events kept")
			return
		}
	}
}
