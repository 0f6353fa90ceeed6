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

/*
Package gapframe extracts discrete, variable-length messages from unframed
serial byte streams.

Many devices emit messages with no length prefix, no delimiter byte and no
checksum: a burst of bytes, then silence. The only framing is temporal. This
library turns that convention into a small, testable contract: a transport
moves inbound bytes into a link-owned buffer and reports gaps in the stream,
and the link declares a frame finished only after the line stays quiet for a
configurable debounce interval.

The acquisition cycle per link:

  - bytes arrive asynchronously, in bursts, through a circular receive engine
  - a gap in the stream raises an idle event; the link latches the byte count
    and arms a single-shot confirmation timer
  - another gap before the timer elapses restarts the countdown, so bursts
    separated by short pauses coalesce into one frame
  - when the countdown runs out undisturbed the link finalizes the length,
    NUL-terminates the payload and raises its completion flag
  - the consumer observes the flag, drains the buffer and re-arms the link

Basic usage:

	import (
	    "github.com/gapframe/go-gapframe"
	    "github.com/gapframe/go-gapframe/transport/serial"
	)

	transport, err := serial.New("/dev/ttyUSB0", nil)
	if err != nil {
	    log.Fatal(err)
	}

	link, err := gapframe.New(transport,
	    gapframe.WithCapacity(1024),
	    gapframe.WithDebounce(time.Millisecond),
	)
	if err != nil {
	    log.Fatal(err)
	}
	defer link.Close()

	for {
	    if link.Complete() {
	        fmt.Printf("%s,%d\n", link.Data(), link.Length())
	        if err := link.ConsumeAndRearm(); err != nil {
	            log.Fatal(err)
	        }
	    }
	    time.Sleep(10 * time.Millisecond)
	}

Links are independent: each owns its buffer, its counters and its timer, so
several ports with different capacities and debounce intervals run side by
side without shared state. The channel is lossy by design. A consumer that
fails to drain before the next burst loses data silently, and a sender that
exceeds the buffer capacity without pausing is truncated by the engine's
circular full-transfer semantics. There is no backpressure to the sender.

Transport selection:

  - transport/serial: local serial ports via go.bug.st/serial
  - transport/i2c: UART bridges behind an I2C bus via periph.io
  - MockTransport in this package: scripted byte delivery for tests

The detection package enumerates candidate serial ports, and the monitor
package streams completed frames to WebSocket clients.
*/
package gapframe
