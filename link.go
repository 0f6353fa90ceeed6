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
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Config contains configuration options for a Link
type Config struct {
	// Capacity is the receive buffer size in bytes. A frame longer than
	// Capacity without a gap is truncated at Capacity by the engine's
	// full-transfer semantics.
	Capacity int
	// Debounce is the interval the line must stay quiet after an idle
	// event before a frame boundary is confirmed.
	Debounce time.Duration
}

// DefaultConfig returns the default link configuration
func DefaultConfig() *Config {
	return &Config{
		Capacity: 1024,
		Debounce: time.Millisecond,
	}
}

// Link extracts variable-length frames from an unframed byte stream.
//
// A transport moves inbound bytes into the link's buffer asynchronously and
// reports a gap in the stream as an idle event. The link answers each idle
// event by latching the byte count and arming a single-shot confirmation
// timer; further idle events restart the timer, so a boundary is declared
// only after the line stays quiet for a full debounce interval. The
// completion flag is the single hand-off point between the transport's event
// goroutines and the consumer: the consumer must not touch Data or Length
// unless Complete reports true, and clears the flag only through
// ConsumeAndRearm.
type Link struct {
	transport Transport
	config    *Config
	buf       []byte
	timer     *confirmTimer
	mu        sync.Mutex
	timerGen  uint64
	length    int
	state     LinkState
	complete  atomic.Bool
	closed    bool
}

// New creates a link over the given transport, binds the receive buffer and
// enables the channel. The transport must not be shared between links.
func New(transport Transport, opts ...Option) (*Link, error) {
	link := &Link{
		transport: transport,
		config:    DefaultConfig(),
	}

	for _, opt := range opts {
		if err := opt(link); err != nil {
			return nil, err
		}
	}

	if link.config.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if link.config.Debounce <= 0 {
		return nil, ErrInvalidDebounce
	}

	// One byte past capacity is reserved for the terminator.
	link.buf = make([]byte, link.config.Capacity+1)
	link.timer = newConfirmTimer(link.config.Debounce)

	if err := transport.Attach(link.buf[:link.config.Capacity], link.idleDetected); err != nil {
		return nil, fmt.Errorf("failed to attach transport: %w", err)
	}
	if err := transport.Enable(); err != nil {
		return nil, fmt.Errorf("failed to enable transport: %w", err)
	}

	return link, nil
}

// Capacity returns the receive buffer capacity in bytes.
func (l *Link) Capacity() int {
	return l.config.Capacity
}

// Debounce returns the configured debounce interval.
func (l *Link) Debounce() time.Duration {
	return l.config.Debounce
}

// State returns the current acquisition state.
func (l *Link) State() LinkState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Transport returns the underlying transport.
func (l *Link) Transport() Transport {
	return l.transport
}

// Complete reports whether a finalized frame is waiting to be consumed.
func (l *Link) Complete() bool {
	return l.complete.Load()
}

// Length returns the finalized frame length. Valid only while Complete
// reports true; returns 0 otherwise.
func (l *Link) Length() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != StateComplete {
		return 0
	}
	return l.length
}

// Data returns the finalized frame bytes. The slice aliases the link's own
// buffer and is valid only until ConsumeAndRearm; returns nil unless
// Complete reports true. The byte past the returned slice is a NUL
// terminator for text-oriented consumers.
func (l *Link) Data() []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != StateComplete {
		return nil
	}
	return l.buf[:l.length]
}

// Consume copies the finalized frame into p and re-arms the link in one
// step. Returns ErrNotComplete if no frame is waiting and ErrBufferTooSmall
// if p cannot hold it.
func (l *Link) Consume(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return 0, ErrLinkClosed
	}
	if l.state != StateComplete {
		return 0, ErrNotComplete
	}
	if len(p) < l.length {
		return 0, ErrBufferTooSmall
	}
	n := copy(p, l.buf[:l.length])
	if err := l.rearmLocked(); err != nil {
		return n, err
	}
	return n, nil
}

// ConsumeAndRearm drops the finalized frame and resets the link for the next
// one. This is the only way the completion flag is cleared.
func (l *Link) ConsumeAndRearm() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrLinkClosed
	}
	return l.rearmLocked()
}

// rearmLocked resets length, flag, buffer and the transport's counters. The
// channel stays disabled for the whole reset so a live byte can never land
// in a half-reset engine.
func (l *Link) rearmLocked() error {
	if err := l.transport.Disable(); err != nil {
		return fmt.Errorf("failed to disable transport: %w", err)
	}
	l.timerGen++
	l.timer.stop()
	l.length = 0
	l.complete.Store(false)
	for i := range l.buf {
		l.buf[i] = 0
	}
	if err := l.transport.Reconfigure(l.config.Capacity); err != nil {
		return fmt.Errorf("failed to reconfigure transport: %w", err)
	}
	l.state = StateIdle
	if err := l.transport.Enable(); err != nil {
		return fmt.Errorf("failed to enable transport: %w", err)
	}
	return nil
}

// Close stops the confirmation timer and closes the transport.
func (l *Link) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	l.timerGen++
	l.timer.stop()
	l.mu.Unlock()

	if err := l.transport.Close(); err != nil {
		return fmt.Errorf("failed to close transport: %w", err)
	}
	return nil
}

// idleDetected handles the transport's idle-line event: latch the byte count
// seen so far and (re)start the confirmation countdown.
func (l *Link) idleDetected() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || l.state == StateComplete {
		return
	}

	used := l.config.Capacity - l.transport.Remaining()
	if used == 0 && !l.transport.TransferComplete() {
		// A pause on a line that never moved a byte. Without the
		// full-transfer flag the zero count really means empty, and an
		// empty frame is never emitted.
		return
	}

	l.length = used
	l.state = StateDebouncing
	l.timerGen++
	gen := l.timerGen
	l.timer.arm(func() { l.confirm(gen) })
	debugf("idle: %d bytes latched, debounce armed", used)
}

// confirm runs when the confirmation timer elapses undisturbed and finalizes
// the frame boundary.
func (l *Link) confirm(gen uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.timerGen || l.state != StateDebouncing {
		// A stale countdown; a newer arm or a re-arm superseded it.
		return
	}

	used := l.config.Capacity - l.transport.Remaining()
	if used != l.length {
		// Bytes landed during the debounce window without a fresh idle
		// event yet. The frame is still growing; the next idle event
		// restarts the countdown.
		l.state = StateFilling
		return
	}

	if l.length == 0 {
		// A full circular pass returns the remaining counter to its
		// programmed value, so zero here means exactly capacity bytes.
		l.length = l.config.Capacity
	}
	// The channel stays disabled while the flag is set: the consumer has
	// exclusive access to the buffer until re-arm, and inbound bytes are
	// dropped, not buffered.
	if err := l.transport.Disable(); err != nil {
		debugf("disable on finalize failed: %v", err)
	}
	l.buf[l.length] = 0
	l.state = StateComplete
	l.complete.Store(true)
	debugf("frame finalized: %d bytes", l.length)
}
