package submit

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/BruksfildServices01/booking-calendar/internal/httperr"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLocalGuardRejectsSecondAcquire(t *testing.T) {
	g := NewLocalGuard()

	release, err := g.Acquire(context.Background(), "create:1")
	require.NoError(t, err)

	_, err = g.Acquire(context.Background(), "create:1")
	assert.ErrorIs(t, err, ErrInFlight)
	assert.True(t, httperr.IsBusiness(err, "submission_in_progress"))

	other, err := g.Acquire(context.Background(), "create:2")
	require.NoError(t, err)
	other()

	release()
	release() // second call is a no-op

	again, err := g.Acquire(context.Background(), "create:1")
	require.NoError(t, err)
	again()
	assert.Zero(t, g.InFlight())
}

func TestLocalGuardCanceledContext(t *testing.T) {
	g := NewLocalGuard()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Acquire(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, g.InFlight())
}

func TestLocalGuardConcurrentSubmitsRunOnce(t *testing.T) {
	g := NewLocalGuard()

	var (
		wg       sync.WaitGroup
		winners  atomic.Int32
		attempts atomic.Int32
		start    = make(chan struct{})
		hold     = make(chan struct{})
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			release, err := g.Acquire(context.Background(), "same")
			attempts.Add(1)
			if err != nil {
				return
			}
			winners.Add(1)
			<-hold
			release()
		}()
	}

	close(start)
	require.Eventually(t, func() bool { return attempts.Load() == 20 }, time.Second, time.Millisecond)
	close(hold)
	wg.Wait()

	assert.Equal(t, int32(1), winners.Load())
	assert.Zero(t, g.InFlight())
}
