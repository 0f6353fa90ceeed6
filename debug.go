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
	"os"
	"sync/atomic"
)

var debugEnabled atomic.Bool

// SetDebugEnabled enables or disables debug output on stderr.
func SetDebugEnabled(enabled bool) {
	debugEnabled.Store(enabled)
}

// DebugEnabled returns true if debug output is enabled.
func DebugEnabled() bool {
	return debugEnabled.Load()
}

// Debugf writes a formatted debug line when debug output is enabled. It is
// exported for the transport sub-packages.
func Debugf(format string, args ...any) {
	debugf(format, args...)
}

func debugf(format string, args ...any) {
	if debugEnabled.Load() {
		fmt.Fprintf(os.Stderr, "gapframe: "+format+"\n", args...)
	}
}

func debugln(args ...any) {
	if debugEnabled.Load() {
		fmt.Fprintln(os.Stderr, append([]any{"gapframe:"}, args...)...)
	}
}
