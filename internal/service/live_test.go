package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLiveSubscribeBroadcast(t *testing.T) {
	live := NewLive()

	id1, ch1 := live.Subscribe()
	id2, ch2 := live.Subscribe()
	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 2, live.SubscriberCount())

	live.Broadcast([]byte("hello"))

	assert.Equal(t, []byte("hello"), <-ch1)
	assert.Equal(t, []byte("hello"), <-ch2)

	live.Unsubscribe(id1)
	assert.Equal(t, 1, live.SubscriberCount())

	// channel of the removed subscriber is closed
	_, open := <-ch1
	assert.False(t, open)

	live.Broadcast([]byte("again"))
	assert.Equal(t, []byte("again"), <-ch2)

	live.Unsubscribe(id2)
	assert.Equal(t, 0, live.SubscriberCount())
}

func TestLiveUnsubscribeTwice(t *testing.T) {
	live := NewLive()
	id, _ := live.Subscribe()
	live.Unsubscribe(id)
	assert.NotPanics(t, func() {
		live.Unsubscribe(id)
	})
}

func TestLiveDropsSlowSubscriber(t *testing.T) {
	live := NewLive()

	_, ch1 := live.Subscribe()
	_, ch2 := live.Subscribe()

	// fill the buffers without draining them
	for i := 0; i <= subscriberBufferSize; i++ {
		live.Broadcast([]byte("x"))
	}

	// neither subscriber drained, so the overflowing broadcast dropped both
	assert.Equal(t, 0, live.SubscriberCount())

	// drain what they buffered and confirm the channels got closed
	for _, ch := range []<-chan []byte{ch1, ch2} {
		count := 0
		for range ch {
			count++
		}
		assert.Equal(t, subscriberBufferSize, count)
	}
}
