/*
Package feed pushes the current profile record to connected views over WebSocket.

This file defines the Hub, which subscribes to the profile container and fans every new record
out to registered clients. A client receives the current record as soon as it registers.
*/
package feed

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"ghprofile/internal/app/profile"
	"ghprofile/internal/pkg/logx"
)

// MessageTypeProfile tags messages carrying a profile record.
const MessageTypeProfile = "profile"

// Message is the JSON frame sent to clients.
type Message struct {
	Type string              `json:"type"`
	Data profile.UserProfile `json:"data"`
}

// Source is the profile state the hub mirrors. *profile.Container implements it.
type Source interface {
	Current() profile.UserProfile
	Subscribe(fn profile.Observer) (unsubscribe func())
}

// Hub tracks connected clients and broadcasts profile changes to them.
type Hub struct {
	source Source

	// clients is owned by the Run goroutine.
	clients map[string]*Client

	register   chan *Client
	unregister chan *Client

	// changed coalesces change notifications; the Run loop always sends the latest record.
	changed chan struct{}

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	unsubscribe func()

	logger zerolog.Logger
}

// NewHub creates a Hub subscribed to source. Call Run to start it and Shutdown to stop it.
func NewHub(source Source) *Hub {
	h := &Hub{
		source:     source,
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		changed:    make(chan struct{}, 1),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		logger:     logx.Component("FeedHub"),
	}

	h.unsubscribe = source.Subscribe(func(profile.UserProfile) { h.notify() })
	return h
}

// notify flags a pending change without blocking the dispatching goroutine.
func (h *Hub) notify() {
	select {
	case h.changed <- struct{}{}:
	default:
	}
}

// Run is the hub's event loop. It returns after Shutdown.
func (h *Hub) Run() {
	defer close(h.done)

	h.logger.Info().Msg("Feed hub started.")

	for {
		select {
		case c := <-h.register:
			h.clients[c.id] = c
			if !c.enqueue(h.encodeCurrent()) {
				h.drop(c)
			}
			h.logger.Debug().Str("client_id", c.id).Int("clients", len(h.clients)).Msg("Client registered.")

		case c := <-h.unregister:
			if _, ok := h.clients[c.id]; ok {
				h.drop(c)
				h.logger.Debug().Str("client_id", c.id).Int("clients", len(h.clients)).Msg("Client unregistered.")
			}

		case <-h.changed:
			msg := h.encodeCurrent()
			for _, c := range h.clients {
				if !c.enqueue(msg) {
					c.logger.Warn().Msg("Client send buffer full. Dropping client.")
					h.drop(c)
				}
			}

		case <-h.stop:
			for _, c := range h.clients {
				h.drop(c)
			}
			h.logger.Info().Msg("Feed hub stopped.")
			return
		}
	}
}

// Register adds c to the hub. It is a no-op once the hub has stopped.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		close(c.send)
	}
}

// Unregister removes c from the hub.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Shutdown unsubscribes from the source, disconnects all clients, and waits for Run to return.
// Run must have been started.
func (h *Hub) Shutdown() {
	h.stopOnce.Do(func() {
		h.unsubscribe()
		close(h.stop)
	})
	<-h.done
}

// drop removes c and closes its send queue, which makes its write pump close the connection.
func (h *Hub) drop(c *Client) {
	delete(h.clients, c.id)
	close(c.send)
}

func (h *Hub) encodeCurrent() []byte {
	data, err := json.Marshal(Message{Type: MessageTypeProfile, Data: h.source.Current()})
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode profile message.")
		return nil
	}
	return data
}
