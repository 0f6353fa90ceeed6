// go-gapframe
// Copyright (c) 2025 The Gapframe Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-gapframe.
//
// go-gapframe is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-gapframe is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-gapframe; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

// Package monitor streams completed frames to WebSocket clients.
//
// The tap follows the link's own delivery policy: best effort, no
// backpressure. A client that cannot keep up is dropped, never allowed to
// stall the acquisition loop.
package monitor

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	gapframe "github.com/gapframe/go-gapframe"
)

const (
	writeTimeout = 5 * time.Second

	// DefaultPollInterval paces the completion-flag polling loop.
	DefaultPollInterval = 10 * time.Millisecond
)

// Server fans completed frames out to connected WebSocket clients as binary
// messages.
type Server struct {
	clients  map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader
	mu       sync.Mutex
	closed   bool
}

// NewServer creates a new monitor server
func NewServer() *Server {
	return &Server{
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Handler returns the HTTP handler that upgrades connections and registers
// clients.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			gapframe.Debugf("monitor: upgrade failed: %v", err)
			return
		}

		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			_ = conn.Close()
			return
		}
		s.clients[conn] = struct{}{}
		s.mu.Unlock()

		// The tap is one-way; the reader only notices disconnects.
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					s.drop(conn)
					return
				}
			}
		}()
	})
}

// ClientCount returns the number of connected clients
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Broadcast sends one frame to every client. Slow or failed clients are
// dropped.
func (s *Server) Broadcast(frame []byte) {
	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for conn := range s.clients {
		conns = append(conns, conn)
	}
	s.mu.Unlock()

	for _, conn := range conns {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
			gapframe.Debugf("monitor: dropping client: %v", err)
			s.drop(conn)
		}
	}
}

// Close disconnects all clients and refuses new ones
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for conn := range s.clients {
		_ = conn.Close()
		delete(s.clients, conn)
	}
	return nil
}

func (s *Server) drop(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	_ = conn.Close()
}

// Watch polls the link's completion flag, broadcasting and re-arming each
// finalized frame until the context ends. The frame is copied before the
// re-arm so clients never observe a recycled buffer.
func Watch(ctx context.Context, link *gapframe.Link, server *Server, pollInterval time.Duration) error {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if !link.Complete() {
			continue
		}

		frame := append([]byte(nil), link.Data()...)
		server.Broadcast(frame)
		if err := link.ConsumeAndRearm(); err != nil {
			return fmt.Errorf("failed to re-arm link: %w", err)
		}
	}
}
