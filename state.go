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
	"time"
)

// LinkState represents the finite state machine for frame acquisition
type LinkState int

const (
	// StateIdle means no bytes have been seen since the last re-arm.
	StateIdle LinkState = iota
	// StateFilling means bytes are arriving with no confirmed gap yet.
	StateFilling
	// StateDebouncing means a gap was seen and the confirmation timer is armed.
	StateDebouncing
	// StateComplete means a frame boundary has been finalized.
	StateComplete
)

// String returns a human-readable state name
func (s LinkState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFilling:
		return "filling"
	case StateDebouncing:
		return "debouncing"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// confirmTimer is the single-shot debounce countdown owned by a link.
// Arming while already armed restarts the count; on elapse it fires exactly
// once and stays stopped until the next arm. Missed arms are never queued.
type confirmTimer struct {
	timer    *time.Timer
	interval time.Duration
}

func newConfirmTimer(interval time.Duration) *confirmTimer {
	return &confirmTimer{interval: interval}
}

// arm resets the countdown to zero elapsed and starts it. The callback runs
// on the timer's own goroutine.
func (t *confirmTimer) arm(fire func()) {
	t.stop()
	t.timer = time.AfterFunc(t.interval, fire)
}

// stop halts the countdown without firing. Safe to call when not armed.
func (t *confirmTimer) stop() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
