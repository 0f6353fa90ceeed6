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

// Package testing provides a scripted virtual peer for exercising links
// without hardware.
package testing

import "time"

// Sink receives the peer's traffic. Feed delivers a burst of bytes and Idle
// reports the line going quiet afterwards.
type Sink interface {
	Feed(p []byte)
	Idle()
}

// Step is one scripted action on the wire.
type Step struct {
	// Burst is delivered as a single chunk. Nil means no data.
	Burst []byte
	// Gap reports an idle condition after the burst.
	Gap bool
}

// VirtualPeer replays a scripted byte stream, bursts separated by gaps, the
// way a remote sender would produce it.
type VirtualPeer struct {
	steps []Step
}

// NewVirtualPeer creates an empty script
func NewVirtualPeer() *VirtualPeer {
	return &VirtualPeer{}
}

// Say appends a complete utterance: one burst followed by a gap.
func (v *VirtualPeer) Say(payload string) *VirtualPeer {
	v.steps = append(v.steps, Step{Burst: []byte(payload), Gap: true})
	return v
}

// Burst appends bytes with no gap afterwards, as a sender still mid-frame.
func (v *VirtualPeer) Burst(p []byte) *VirtualPeer {
	v.steps = append(v.steps, Step{Burst: append([]byte(nil), p...)})
	return v
}

// Pause appends a gap with no preceding data, a spurious idle.
func (v *VirtualPeer) Pause() *VirtualPeer {
	v.steps = append(v.steps, Step{Gap: true})
	return v
}

// Steps returns the script so far
func (v *VirtualPeer) Steps() []Step {
	return v.steps
}

// Run replays the script into the sink.
func (v *VirtualPeer) Run(sink Sink) {
	for _, step := range v.steps {
		if len(step.Burst) > 0 {
			sink.Feed(step.Burst)
		}
		if step.Gap {
			sink.Idle()
		}
	}
}

// RunPaced replays the script, sleeping after each step. The pace must
// exceed the receiving link's debounce window or consecutive utterances
// coalesce exactly as they would on a real wire.
func (v *VirtualPeer) RunPaced(sink Sink, pace time.Duration) {
	for _, step := range v.steps {
		if len(step.Burst) > 0 {
			sink.Feed(step.Burst)
		}
		if step.Gap {
			sink.Idle()
		}
		time.Sleep(pace)
	}
}

// Canned payloads shared by integration tests.
const (
	// HeartbeatLine is the periodic console heartbeat.
	HeartbeatLine = "Hello World!\r\n"
	// PromptLine is a typical terminal command echo.
	PromptLine = "status\r\n"
)
