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
	"errors"
	"fmt"
)

// Link errors
var (
	// ErrNotComplete is returned when frame data is requested before a
	// frame boundary has been confirmed.
	ErrNotComplete = errors.New("no completed frame available")
	// ErrBufferTooSmall is returned by Consume when the destination cannot
	// hold the finalized frame.
	ErrBufferTooSmall = errors.New("destination buffer too small for frame")
	// ErrLinkClosed is returned for operations on a closed link.
	ErrLinkClosed = errors.New("link closed")
	// ErrInvalidCapacity is returned for a non-positive buffer capacity.
	ErrInvalidCapacity = errors.New("invalid buffer capacity")
	// ErrInvalidDebounce is returned for a non-positive debounce interval.
	ErrInvalidDebounce = errors.New("invalid debounce interval")
)

// Transport errors
var (
	// ErrTransportRead indicates the transport failed while moving inbound bytes.
	ErrTransportRead = errors.New("transport read failed")
	// ErrTransportWrite indicates the transport failed while transmitting.
	ErrTransportWrite = errors.New("transport write failed")
	// ErrTransportClosed indicates the transport has been closed.
	ErrTransportClosed = errors.New("transport closed")
	// ErrNotAttached indicates the transport has no bound receive buffer.
	ErrNotAttached = errors.New("transport not attached to a link")
	// ErrAlreadyAttached indicates a second link tried to bind the transport.
	ErrAlreadyAttached = errors.New("transport already attached to a link")
	// ErrPortNotFound indicates the named port does not exist.
	ErrPortNotFound = errors.New("port not found")
)

// ErrorType classifies transport errors for retry decisions
type ErrorType int

const (
	// ErrorTypeTransient indicates a temporary condition worth retrying.
	ErrorTypeTransient ErrorType = iota
	// ErrorTypePermanent indicates a condition that will not clear on retry.
	ErrorTypePermanent
)

// TransportError wraps a low-level transport failure with operation context
type TransportError struct {
	Err  error
	Op   string
	Port string
	Type ErrorType
}

// NewTransportError creates a new TransportError
func NewTransportError(op, port string, err error, errType ErrorType) *TransportError {
	return &TransportError{
		Op:   op,
		Port: port,
		Err:  err,
		Type: errType,
	}
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.Port != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Port, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether the error represents a transient transport
// condition. Wrapped errors are inspected with errors.Is/errors.As.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var terr *TransportError
	if errors.As(err, &terr) {
		return terr.Type == ErrorTypeTransient
	}

	return errors.Is(err, ErrTransportRead) || errors.Is(err, ErrTransportWrite)
}
