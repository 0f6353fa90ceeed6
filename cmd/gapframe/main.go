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

// gapframe exercises the frame acquisition library against real hardware:
// a periodic heartbeat over the debug link, frame echo on every link, and
// an optional websocket tap for watching traffic from a browser.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
