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

// Option is a functional option for configuring a Link
type Option func(*Link) error

// WithCapacity sets the receive buffer capacity in bytes
func WithCapacity(capacity int) Option {
	return func(l *Link) error {
		if capacity <= 0 {
			return ErrInvalidCapacity
		}
		l.config.Capacity = capacity
		return nil
	}
}

// WithDebounce sets the quiet interval required to confirm a frame boundary
func WithDebounce(debounce time.Duration) Option {
	return func(l *Link) error {
		if debounce <= 0 {
			return ErrInvalidDebounce
		}
		l.config.Debounce = debounce
		return nil
	}
}

// WithConfig replaces the whole link configuration
func WithConfig(config *Config) Option {
	return func(l *Link) error {
		if config == nil {
			return nil
		}
		l.config = config
		return nil
	}
}
