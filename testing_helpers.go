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

package gapframe

import (
	"sync"

	"github.com/gapframe/go-gapframe/internal/dma"
)

// MockTransport is a scripted transport for tests: the test plays the role
// of the sender, delivering bytes with Feed and gaps with Idle. The receive
// side runs through the same circular engine the real transports use.
type MockTransport struct {
	engine *dma.Engine
	onIdle func()
	mu     sync.Mutex
	writes [][]byte
	closed bool
}

// NewMockTransport creates a new mock transport
func NewMockTransport() *MockTransport {
	return &MockTransport{
		engine: dma.NewEngine(),
	}
}

// Attach binds the link's buffer and idle callback
func (m *MockTransport) Attach(buf []byte, onIdle func()) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.onIdle != nil {
		return ErrAlreadyAttached
	}
	m.engine.Bind(buf)
	m.onIdle = onIdle
	return nil
}

// Remaining returns the engine's countdown value
func (m *MockTransport) Remaining() int {
	return m.engine.Remaining()
}

// TransferComplete returns the engine's full-transfer flag
func (m *MockTransport) TransferComplete() bool {
	return m.engine.TransferComplete()
}

// Enable opens the receive channel
func (m *MockTransport) Enable() error {
	m.engine.Enable()
	return nil
}

// Disable closes the receive channel
func (m *MockTransport) Disable() error {
	m.engine.Disable()
	return nil
}

// Reconfigure resets the engine's counters
func (m *MockTransport) Reconfigure(length int) error {
	return m.engine.Reconfigure(length)
}

// Write records transmitted bytes for later inspection
func (m *MockTransport) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, ErrTransportClosed
	}
	m.writes = append(m.writes, append([]byte(nil), p...))
	return len(p), nil
}

// Close marks the transport closed
func (m *MockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Mode returns ModeMock
func (*MockTransport) Mode() Mode {
	return ModeMock
}

// Feed simulates inbound bytes landing in the buffer. Bytes fed while the
// channel is disabled are silently lost, as on hardware.
func (m *MockTransport) Feed(p []byte) {
	_, _ = m.engine.Write(p)
}

// Idle simulates the idle-line condition: the sender paused.
func (m *MockTransport) Idle() {
	m.mu.Lock()
	onIdle := m.onIdle
	m.mu.Unlock()
	if onIdle != nil {
		onIdle()
	}
}

// Writes returns a copy of everything sent through Write
func (m *MockTransport) Writes() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.writes))
	copy(out, m.writes)
	return out
}
