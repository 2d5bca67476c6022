package redis_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/hxnotify/pkg/adapters/redis"
	"github.com/aretw0/hxnotify/pkg/domain"
	"github.com/aretw0/hxnotify/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, opts ...redis.Option) (*miniredis.Miniredis, *redis.Publisher) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, redis.NewFromClient(client, opts...)
}

func TestPublisher_Contract(t *testing.T) {
	_, pub := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, closeSub, err := pub.Subscribe(ctx)
	require.NoError(t, err)
	defer closeSub()

	var mu sync.Mutex
	var got []domain.AppEvent
	go func() {
		for evt := range events {
			mu.Lock()
			got = append(got, evt)
			mu.Unlock()
		}
	}()

	received := func() []domain.AppEvent {
		assert.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(got) >= 2
		}, 2*time.Second, 10*time.Millisecond)
		mu.Lock()
		defer mu.Unlock()
		return append([]domain.AppEvent(nil), got...)
	}

	ports.RunEventSinkContract(t, pub, received)
}

func TestPublisher_CustomChannel(t *testing.T) {
	mr, pub := setup(t, redis.WithChannel("ui:events"))
	assert.Equal(t, "ui:events", pub.Channel())

	sub := mr.NewSubscriber()
	defer sub.Close()
	sub.Subscribe("ui:events")

	evt := domain.NewAppEvent(domain.EventFinishLoading, "req-9")
	evt.Detail[domain.KeyNextTween] = domain.NewConfirmModalTimeline(0)
	require.NoError(t, pub.Emit(context.Background(), evt))

	select {
	case msg := <-sub.Messages():
		assert.Equal(t, "ui:events", msg.Channel)
		assert.Contains(t, msg.Message, `"name":"finish-loading"`)
		assert.Contains(t, msg.Message, `"paused":true`)
	case <-time.After(time.Second):
		t.Fatal("no message published")
	}
}

func TestPublisher_PingAndFailure(t *testing.T) {
	mr, pub := setup(t)
	require.NoError(t, pub.Ping(context.Background()))

	mr.Close()
	err := pub.Emit(context.Background(), domain.NewAppEvent(domain.EventStartLoading, "x"))
	assert.ErrorContains(t, err, "failed to publish")
}
