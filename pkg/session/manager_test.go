package session_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/superdense"
	"github.com/aretw0/superdense/internal/testutils"
	"github.com/aretw0/superdense/pkg/domain"
	"github.com/aretw0/superdense/pkg/runner"
	"github.com/aretw0/superdense/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T, clock *testutils.FakeClock, opts ...session.Option) *session.Manager {
	t.Helper()
	base := []session.Option{
		session.WithClock(clock),
		session.WithRunnerOptions(runner.WithManualTicks()),
	}
	return session.NewManager(superdense.New(), append(base, opts...)...)
}

func TestManager_CreateGetDelete(t *testing.T) {
	m := newManager(t, testutils.NewFakeClock())
	ctx := context.Background()

	s, err := m.Create(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, testutils.Epoch, s.CreatedAt)

	got, err := m.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.NoError(t, m.Delete(ctx, s.ID))
	_, err = m.Get(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, m.Delete(ctx, s.ID), domain.ErrSessionNotFound)
}

func TestManager_SessionsAreIndependent(t *testing.T) {
	m := newManager(t, testutils.NewFakeClock())
	ctx := context.Background()

	a, err := m.Create(ctx)
	require.NoError(t, err)
	b, err := m.Create(ctx)
	require.NoError(t, err)

	require.NoError(t, a.Runner.SelectBit(ctx, domain.SlotFirst, domain.Bit1))
	assert.Equal(t, "1-", a.Runner.Snapshot().Input.Bits.String())
	assert.Equal(t, "--", b.Runner.Snapshot().Input.Bits.String())
}

func TestManager_ListSorted(t *testing.T) {
	n := 0
	m := newManager(t, testutils.NewFakeClock(), session.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("s-%d", 4-n)
	}))
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := m.Create(ctx)
		require.NoError(t, err)
	}

	ids, err := m.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"s-1", "s-2", "s-3"}, ids)
	assert.Equal(t, 3, m.Len())
}

func TestManager_DuplicateID(t *testing.T) {
	m := newManager(t, testutils.NewFakeClock(), session.WithIDGenerator(func() string { return "same" }))
	ctx := context.Background()

	_, err := m.Create(ctx)
	require.NoError(t, err)
	_, err = m.Create(ctx)
	assert.Error(t, err)
}

func TestManager_Prune(t *testing.T) {
	clock := testutils.NewFakeClock()
	m := newManager(t, clock)
	ctx := context.Background()

	stale, err := m.Create(ctx)
	require.NoError(t, err)
	busy, err := m.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, busy.Runner.SetInput(ctx, domain.Input{Bits: domain.NewBitPair(true, true)}))
	require.NoError(t, busy.Runner.Start(ctx))

	clock.Advance(10 * time.Minute)
	fresh, err := m.Create(ctx)
	require.NoError(t, err)

	removed := m.Prune(ctx, 5*time.Minute)
	assert.Equal(t, 1, removed)

	_, err = m.Get(ctx, stale.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = m.Get(ctx, busy.ID)
	assert.NoError(t, err)
	_, err = m.Get(ctx, fresh.ID)
	assert.NoError(t, err)
}

func TestManager_GetRefreshesTTL(t *testing.T) {
	clock := testutils.NewFakeClock()
	m := newManager(t, clock)
	ctx := context.Background()

	s, err := m.Create(ctx)
	require.NoError(t, err)

	clock.Advance(4 * time.Minute)
	_, err = m.Get(ctx, s.ID)
	require.NoError(t, err)

	clock.Advance(4 * time.Minute)
	assert.Zero(t, m.Prune(ctx, 5*time.Minute))
}

func TestManager_SessionObserver(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]int{}
	m := newManager(t, testutils.NewFakeClock(), session.WithSessionObserver(func(id string) runner.Observer {
		return func(evt *domain.Event) {
			mu.Lock()
			seen[id]++
			mu.Unlock()
		}
	}))
	ctx := context.Background()

	s, err := m.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Runner.SetGateCutting(ctx, true))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, seen[s.ID])
}

func TestManager_ConcurrentAccess(t *testing.T) {
	m := newManager(t, testutils.NewFakeClock())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := m.Create(ctx)
			if !assert.NoError(t, err) {
				return
			}
			_, err = m.Get(ctx, s.ID)
			assert.NoError(t, err)
			assert.NoError(t, m.Delete(ctx, s.ID))
		}()
	}
	wg.Wait()
	assert.Zero(t, m.Len())
}
