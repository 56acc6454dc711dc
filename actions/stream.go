package actions

import (
	"context"
	"sync"
)

// StreamState is the simulated stream connection. There is no platform
// behind it; the flag only drives what the overlay shows.
type StreamState struct {
	mu        sync.Mutex
	connected bool
}

func (s *StreamState) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

func (s *StreamState) toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = !s.connected
	return s.connected
}

type connectStream struct {
	state *StreamState
}

func (connectStream) Name() string     { return "Connect to Twitch" }
func (connectStream) Category() string { return "Stream Integration" }

func (c connectStream) Run(ctx context.Context, _ string) (Notice, error) {
	status := "Disconnected"
	if c.state.toggle() {
		status = "Connected"
	}
	return Notice{Title: "Stream Status", Message: "Stream " + status}, nil
}
