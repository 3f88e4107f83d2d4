package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// State is the lifecycle state of a Handle.
type State int32

const (
	StateUninitialized State = iota
	StateConnecting
	StateReady
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

// ErrHandleClosed is returned to callers whose connect attempt was overtaken
// by Close.
var ErrHandleClosed = errors.New("store: handle closed")

// Opener establishes a new store connection.
type Opener func(ctx context.Context) (*Store, error)

// Handle is a lazily connected, reusable store.
//
// The first Get triggers a connect; concurrent callers share that single
// in-flight attempt. A successful connection is reused until Close. A failed
// attempt returns the handle to StateUninitialized so the next Get retries.
// A connection that completes after Close is closed and discarded.
type Handle struct {
	open  Opener
	group singleflight.Group

	mu    sync.Mutex
	state State
	store *Store
	epoch uint64
}

// NewHandle returns an unconnected handle that uses open to connect.
func NewHandle(open Opener) *Handle {
	return &Handle{open: open}
}

// OpenPath returns an Opener for the SQLite database at path.
func OpenPath(path string) Opener {
	return func(ctx context.Context) (*Store, error) {
		return Open(ctx, path)
	}
}

// State returns the current lifecycle state.
func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Get returns the connected store, connecting first if needed.
// ctx bounds only the caller's wait; the shared connect attempt runs to
// completion so other waiters are not cancelled with it.
func (h *Handle) Get(ctx context.Context) (*Store, error) {
	h.mu.Lock()
	if h.state == StateReady {
		s := h.store
		h.mu.Unlock()
		return s, nil
	}
	h.mu.Unlock()

	ch := h.group.DoChan("connect", func() (any, error) {
		h.mu.Lock()
		if h.state == StateReady {
			s := h.store
			h.mu.Unlock()
			return s, nil
		}
		h.state = StateConnecting
		epoch := h.epoch
		h.mu.Unlock()

		s, err := h.open(context.WithoutCancel(ctx))

		h.mu.Lock()
		defer h.mu.Unlock()
		if err != nil {
			h.state = StateUninitialized
			return nil, err
		}
		if h.epoch != epoch {
			h.state = StateUninitialized
			return nil, errors.Join(ErrHandleClosed, s.Close())
		}
		h.store = s
		h.state = StateReady
		return s, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if errors.Is(res.Err, ErrHandleClosed) {
			return nil, res.Err
		}
		if res.Err != nil {
			return nil, fmt.Errorf("store: connect: %w", res.Err)
		}
		return res.Val.(*Store), nil
	}
}

// Close closes the connection, if any, and resets the handle. An attempt
// still connecting is abandoned. The handle may be reused afterwards.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.epoch++
	if h.state != StateReady {
		return nil
	}
	err := h.store.Close()
	h.store = nil
	h.state = StateUninitialized
	return err
}
