/*
Package profile contains the core state of the service: the single cached GitHub profile record,
the actions that change it, and the pure reducer that decides whether an action replaces it.

This file defines the Container, the single source of truth for the live record. It loads the record
from the durable Store once at construction, applies dispatched actions through Reduce, mirrors every
result back into the Store, and notifies subscribed observers.
*/
package profile

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"ghprofile/internal/pkg/logx"
)

// Container owns the authoritative in-memory UserProfile.
type Container struct {
	// store is the durable mirror of the record.
	store Store

	// current holds the live record. Reads never take mu.
	current atomic.Pointer[UserProfile]

	// mu serializes dispatches so that saves and notifications follow state updates in order.
	mu sync.Mutex

	// observers are notified after each dispatch, keyed by subscription id.
	observers map[uint64]Observer

	// order keeps subscription ids in registration order.
	order []uint64

	// nextID is the id handed to the next subscriber.
	nextID uint64

	// structured logger with container context.
	logger zerolog.Logger
}

// NewContainer builds a Container whose initial record is read from store exactly once.
func NewContainer(ctx context.Context, store Store) *Container {
	c := &Container{
		store:     store,
		observers: make(map[uint64]Observer),
		logger:    logx.Component("ProfileContainer"),
	}

	initial := store.Load(ctx)
	c.current.Store(&initial)

	c.logger.Info().Str("username", initial.Username).Msg("Profile state initialized from store.")
	return c
}

// Current returns the live record.
func (c *Container) Current() UserProfile {
	return *c.current.Load()
}

// Dispatch feeds action and the current record into Reduce, replaces the live record with the result,
// persists it, and notifies observers. The record is persisted on every dispatch, including no-op
// transitions, and cancelling ctx does not abort the save. A failed save is logged and absorbed;
// the in-memory record stays authoritative.
//
// Observers run while the dispatch lock is held, so an observer must not call Dispatch or unsubscribe.
func (c *Container) Dispatch(ctx context.Context, action Action) UserProfile {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.Current()
	next := Reduce(prev, action)
	c.current.Store(&next)

	if next == prev {
		c.logger.Debug().Str("action", string(action.Kind)).Str("username", next.Username).Msg("Dispatch left profile unchanged.")
	} else {
		c.logger.Info().Str("action", string(action.Kind)).Str("from", prev.Username).Str("to", next.Username).Msg("Profile replaced.")
	}

	// The record is already live, so the save must outlast a caller that goes away.
	if err := c.store.Save(context.WithoutCancel(ctx), next); err != nil {
		c.logger.Error().Err(err).Str("username", next.Username).Msg("Failed to persist profile.")
	}

	for _, id := range c.order {
		c.observers[id](next)
	}

	return next
}

// ChangeUser dispatches a CHANGE_USER action carrying payload.
func (c *Container) ChangeUser(ctx context.Context, payload Payload) UserProfile {
	return c.Dispatch(ctx, ChangeUser(payload))
}

// Subscribe registers fn to receive the record after every dispatch.
// The returned function removes the subscription; calling it more than once is harmless.
func (c *Container) Subscribe(fn Observer) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.observers[id] = fn
	c.order = append(c.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()

			delete(c.observers, id)
			for i, oid := range c.order {
				if oid == id {
					c.order = append(c.order[:i], c.order[i+1:]...)
					break
				}
			}
		})
	}
}
