package redis_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	rxfsm "github.com/colintheshots/RxFsm"
	redisadapter "github.com/colintheshots/RxFsm/pkg/adapters/redis"
	"github.com/colintheshots/RxFsm/pkg/domain"
	"github.com/colintheshots/RxFsm/pkg/registry"
)

func newPumpFixture(t *testing.T) (*backend.Client, *registry.Registry, *rxfsm.Fsm, *sync.Mutex) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	streams := registry.New()
	idle := domain.NewState("idle",
		domain.WithTransitions(domain.NewTransition("start", streams.GetOrCreate("start"))))
	running := domain.NewState("running",
		domain.WithTransitions(domain.NewTransition("stop", streams.GetOrCreate("stop"))))
	machine := domain.NewState("machine",
		domain.WithSubStates(idle, running),
		domain.WithInitialSubState(idle))

	fsm := rxfsm.Create().WithTopStates(machine).WithInitialState("/machine")
	require.NoError(t, fsm.Activate())

	return client, streams, fsm, &sync.Mutex{}
}

func TestPump_DispatchesPublishedOccurrences(t *testing.T) {
	client, streams, fsm, lock := newPumpFixture(t)

	pump := redisadapter.NewPump(client, streams,
		redisadapter.WithPrefix("fsm:"),
		redisadapter.WithLock(lock))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = pump.Run(ctx) }()

	// Publish until the subscription is established and the message
	// lands; repeated deliveries are harmless because the transition
	// belongs to the state being left.
	require.Eventually(t, func() bool {
		client.Publish(ctx, "fsm:start", "/machine/running")
		lock.Lock()
		defer lock.Unlock()
		return fsm.CurrentPath() == "/machine/running"
	}, 5*time.Second, 20*time.Millisecond)
}

func TestPump_UnknownTargetLeavesStateUntouched(t *testing.T) {
	client, streams, fsm, lock := newPumpFixture(t)

	pump := redisadapter.NewPump(client, streams,
		redisadapter.WithPrefix("fsm:"),
		redisadapter.WithLock(lock))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = pump.Run(ctx) }()

	delivered := make(chan struct{}, 16)
	streams.GetOrCreate("start").Subscribe(func(domain.Occurrence) error {
		delivered <- struct{}{}
		return nil
	})

	require.Eventually(t, func() bool {
		client.Publish(ctx, "fsm:start", "/nowhere")
		select {
		case <-delivered:
			return true
		default:
			return false
		}
	}, 5*time.Second, 20*time.Millisecond)

	lock.Lock()
	defer lock.Unlock()
	require.Equal(t, "/machine/idle", fsm.CurrentPath())
}

func TestPump_StopsOnContextCancel(t *testing.T) {
	client, streams, _, lock := newPumpFixture(t)

	pump := redisadapter.NewPump(client, streams, redisadapter.WithLock(lock))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- pump.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("pump did not stop after context cancellation")
	}
}
