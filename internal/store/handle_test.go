package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandle_SingleFlightConnect(t *testing.T) {
	s := testStore(t)
	var calls atomic.Int32
	release := make(chan struct{})

	h := NewHandle(func(context.Context) (*Store, error) {
		calls.Add(1)
		<-release
		return s, nil
	})
	assert.Equal(t, StateUninitialized, h.State())

	var wg sync.WaitGroup
	results := make([]*Store, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := h.Get(context.Background())
			assert.NoError(t, err)
			results[i] = got
		}()
	}

	require.Eventually(t, func() bool { return h.State() == StateConnecting }, time.Second, 5*time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, StateReady, h.State())
	for _, got := range results {
		assert.Same(t, s, got)
	}

	again, err := h.Get(context.Background())
	require.NoError(t, err)
	assert.Same(t, s, again)
	assert.Equal(t, int32(1), calls.Load())
}

func TestHandle_FailureResetsForRetry(t *testing.T) {
	s := testStore(t)
	boom := errors.New("boom")
	var calls atomic.Int32

	h := NewHandle(func(context.Context) (*Store, error) {
		if calls.Add(1) == 1 {
			return nil, boom
		}
		return s, nil
	})

	_, err := h.Get(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, StateUninitialized, h.State())

	got, err := h.Get(context.Background())
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, StateReady, h.State())
	assert.Equal(t, int32(2), calls.Load())
}

func TestHandle_CallerCancelDoesNotAbortConnect(t *testing.T) {
	s := testStore(t)
	release := make(chan struct{})
	h := NewHandle(func(ctx context.Context) (*Store, error) {
		<-release
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return s, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := h.Get(ctx)
		done <- err
	}()
	require.Eventually(t, func() bool { return h.State() == StateConnecting }, time.Second, 5*time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	close(release)
	require.Eventually(t, func() bool { return h.State() == StateReady }, time.Second, 5*time.Millisecond)
}

func TestHandle_Close(t *testing.T) {
	h := NewHandle(OpenPath(t.TempDir() + "/handle.db"))
	_, err := h.Get(context.Background())
	require.NoError(t, err)
	require.NoError(t, h.Close())
	assert.Equal(t, StateUninitialized, h.State())
	require.NoError(t, h.Close())
}

func TestHandle_CloseDuringConnect(t *testing.T) {
	path := t.TempDir() + "/handle.db"
	release := make(chan struct{})
	opened := make(chan *Store, 2)
	h := NewHandle(func(ctx context.Context) (*Store, error) {
		<-release
		s, err := Open(ctx, path)
		if err == nil {
			opened <- s
		}
		return s, err
	})

	done := make(chan error, 1)
	go func() {
		_, err := h.Get(context.Background())
		done <- err
	}()
	require.Eventually(t, func() bool { return h.State() == StateConnecting }, time.Second, 5*time.Millisecond)
	require.NoError(t, h.Close())

	close(release)
	assert.ErrorIs(t, <-done, ErrHandleClosed)
	assert.Equal(t, StateUninitialized, h.State())
	abandoned := <-opened
	assert.Error(t, abandoned.conn.Ping())

	got, err := h.Get(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, abandoned, got)
	assert.Equal(t, StateReady, h.State())
	require.NoError(t, h.Close())
}
