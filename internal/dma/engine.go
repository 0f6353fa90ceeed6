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

// Package dma emulates a peripheral-to-memory circular transfer channel.
// Concrete transports push received bytes through an Engine so every
// transport presents identical counter and full-transfer semantics to the
// link layer.
package dma

import (
	"errors"
	"sync"
)

// Engine errors
var (
	// ErrNotBound is returned for operations before Bind.
	ErrNotBound = errors.New("engine not bound to a buffer")
	// ErrBadLength is returned when a transfer count exceeds the buffer.
	ErrBadLength = errors.New("transfer count exceeds bound buffer")
	// ErrEnabled is returned when Reconfigure is called on a live channel.
	ErrEnabled = errors.New("channel must be disabled to reconfigure")
)

// Engine is a software rendition of a circular receive channel: a bound
// memory region, a programmed transfer count, a write cursor that counts the
// transfer down, and a full-transfer flag raised when the count reaches zero
// as the cursor wraps to the origin.
//
// Bytes written while the channel is disabled are dropped, matching a
// hardware channel whose enable bit is clear. Overwrite on wraparound is
// silent; the engine never reports it.
type Engine struct {
	buf      []byte
	mu       sync.Mutex
	expected int
	pos      int
	full     bool
	enabled  bool
}

// NewEngine creates an unbound engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Bind sets the receive region. The initial transfer count is the full
// region length.
func (e *Engine) Bind(buf []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.buf = buf
	e.expected = len(buf)
	e.pos = 0
	e.full = false
}

// Write moves inbound bytes into the region, wrapping circularly. It always
// reports the full count as accepted; bytes arriving on a disabled channel
// are lost, not errors.
func (e *Engine) Write(p []byte) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.buf == nil {
		return 0, ErrNotBound
	}
	if !e.enabled {
		return len(p), nil
	}
	for _, b := range p {
		e.buf[e.pos] = b
		e.pos++
		if e.pos >= e.expected {
			e.pos = 0
			e.full = true
		}
	}
	return len(p), nil
}

// Remaining returns the count of bytes still expected before the current
// transfer completes. After a full pass the counter reads as freshly
// reloaded; callers disambiguate with TransferComplete.
func (e *Engine) Remaining() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.expected - e.pos
}

// TransferComplete reports whether a full transfer has finished since the
// last Reconfigure.
func (e *Engine) TransferComplete() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.full
}

// Enable opens the channel.
func (e *Engine) Enable() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enabled = true
}

// Disable closes the channel.
func (e *Engine) Disable() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enabled = false
}

// Enabled reports whether the channel is open.
func (e *Engine) Enabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enabled
}

// Reconfigure reprograms the transfer count, rewinds the cursor to the
// origin and clears the full-transfer flag. The channel must be disabled.
func (e *Engine) Reconfigure(length int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.buf == nil {
		return ErrNotBound
	}
	if e.enabled {
		return ErrEnabled
	}
	if length <= 0 || length > len(e.buf) {
		return ErrBadLength
	}
	e.expected = length
	e.pos = 0
	e.full = false
	return nil
}
