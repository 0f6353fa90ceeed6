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

// Transport defines the interface for a receive engine that moves inbound
// bytes into a link-owned buffer. This can be implemented by serial ports,
// I2C UART bridges, or mocks.
//
// The receive side follows circular-transfer semantics: the engine is
// programmed to expect a fixed number of bytes, counts down as bytes land,
// and on reaching zero raises its transfer-complete flag and wraps the write
// cursor back to the buffer origin. A link disambiguates "no bytes" from
// "one full pass" by reading the flag.
type Transport interface {
	// Attach binds the link's receive buffer and idle-event callback.
	// Called exactly once, by the owning link, before Enable.
	Attach(buf []byte, onIdle func()) error

	// Remaining returns the count of bytes the engine still expects
	// before the current transfer fills the buffer.
	Remaining() int

	// TransferComplete reports whether a full transfer has completed
	// since the last Reconfigure.
	TransferComplete() bool

	// Enable opens the receive channel. Bytes arriving while the channel
	// is disabled are lost.
	Enable() error

	// Disable closes the receive channel.
	Disable() error

	// Reconfigure resets the engine to expect length bytes at the buffer
	// origin and clears the transfer-complete flag. The channel must be
	// disabled when Reconfigure is called.
	Reconfigure(length int) error

	// Write transmits bytes on the outbound side of the port.
	Write(p []byte) (int, error)

	// Close releases the transport.
	Close() error

	// Mode returns the transport's receive mode.
	Mode() Mode
}

// Mode identifies how a transport moves inbound bytes into the buffer.
type Mode string

const (
	// ModeCircular moves bytes in bursts through a circular engine.
	ModeCircular Mode = "circular"
	// ModeByte moves bytes one at a time, as an interrupt-per-byte
	// fallback for engines without burst transfer support.
	ModeByte Mode = "byte"
	// ModeMock identifies a mock transport for testing.
	ModeMock Mode = "mock"
)
