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

// Package serial provides a serial-port transport for gapframe links.
//
// Received bytes are pumped into a circular engine on a dedicated goroutine.
// The idle-line condition is synthesized from the port's read deadline: a
// read that returns no data after bytes have been flowing means the sender
// paused for at least the guard interval.
package serial

import (
	"errors"
	"time"

	gapframe "github.com/gapframe/go-gapframe"
	"github.com/gapframe/go-gapframe/internal/dma"
	itransport "github.com/gapframe/go-gapframe/internal/transport"
	sio "go.bug.st/serial"
)

const (
	// defaultBaudRate matches the common debug-console rate.
	defaultBaudRate = 115200
	// defaultIdleGuard is the silence needed before an idle event fires.
	// A couple of milliseconds spans one character time at any practical
	// baud rate.
	defaultIdleGuard = 2 * time.Millisecond

	burstChunkSize = 256
)

// Config contains serial port settings for a transport
type Config struct {
	// BaudRate for the port.
	BaudRate int
	// IdleGuard is the read deadline used to detect the sender pausing.
	IdleGuard time.Duration
	// Mode selects burst or per-byte delivery into the engine.
	Mode gapframe.Mode
}

// DefaultConfig returns default serial transport settings
func DefaultConfig() *Config {
	return &Config{
		BaudRate:  defaultBaudRate,
		IdleGuard: defaultIdleGuard,
		Mode:      gapframe.ModeCircular,
	}
}

// Transport implements the gapframe.Transport interface over a local serial
// port via go.bug.st/serial.
type Transport struct {
	port     sio.Port
	engine   *dma.Engine
	onIdle   func()
	done     chan struct{}
	portName string
	config   *Config
}

// New opens the named serial port and wraps it as a transport. A nil config
// uses DefaultConfig.
func New(portName string, config *Config) (*Transport, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Mode == "" {
		config.Mode = gapframe.ModeCircular
	}

	mode := &sio.Mode{
		BaudRate: config.BaudRate,
		DataBits: 8,
		Parity:   sio.NoParity,
		StopBits: sio.OneStopBit,
	}
	// Freshly enumerated USB adapters can report busy for a moment, so
	// the open is retried before giving up.
	port, err := itransport.WithRetry(itransport.RetryConfig{
		Description: "open",
		MaxRetries:  2,
		RetryDelay:  100 * time.Millisecond,
	}, func() (sio.Port, bool, error) {
		p, openErr := sio.Open(portName, mode)
		if openErr == nil {
			return p, false, nil
		}
		if isBusyError(openErr) {
			return nil, true, nil
		}
		return nil, false, gapframe.NewTransportError("open", portName, openErr, gapframe.ErrorTypePermanent)
	})
	if err != nil {
		return nil, err
	}
	if err := port.SetReadTimeout(config.IdleGuard); err != nil {
		_ = port.Close()
		return nil, gapframe.NewTransportError("configure", portName, err, gapframe.ErrorTypePermanent)
	}

	return &Transport{
		port:     port,
		portName: portName,
		engine:   dma.NewEngine(),
		config:   config,
	}, nil
}

func isBusyError(err error) bool {
	var portErr *sio.PortError
	if errors.As(err, &portErr) {
		return portErr.Code() == sio.PortBusy
	}
	return false
}

// PortName returns the opened port's name
func (t *Transport) PortName() string {
	return t.portName
}

// Attach binds the link's buffer and idle callback and starts the receive pump
func (t *Transport) Attach(buf []byte, onIdle func()) error {
	if t.done != nil {
		return gapframe.ErrAlreadyAttached
	}
	t.engine.Bind(buf)
	t.onIdle = onIdle
	t.done = make(chan struct{})
	go t.pump()
	return nil
}

// pump moves port bytes into the engine and synthesizes idle events. It runs
// until the transport closes or the port errors out.
func (t *Transport) pump() {
	chunkSize := burstChunkSize
	if t.config.Mode == gapframe.ModeByte {
		chunkSize = 1
	}
	chunk := make([]byte, chunkSize)
	pending := false

	for {
		select {
		case <-t.done:
			return
		default:
		}

		n, err := t.port.Read(chunk)
		if err != nil {
			select {
			case <-t.done:
			default:
				gapframe.Debugf("serial %s: receive pump stopped: %v", t.portName, err)
			}
			return
		}
		if n > 0 {
			_, _ = t.engine.Write(chunk[:n])
			pending = true
			continue
		}

		// The deadline passed with nothing new. If bytes were flowing,
		// this is the gap the link debounces; one event per gap.
		if pending {
			pending = false
			if t.onIdle != nil {
				t.onIdle()
			}
		}
	}
}

// Remaining returns the engine's countdown value
func (t *Transport) Remaining() int {
	return t.engine.Remaining()
}

// TransferComplete returns the engine's full-transfer flag
func (t *Transport) TransferComplete() bool {
	return t.engine.TransferComplete()
}

// Enable opens the receive channel
func (t *Transport) Enable() error {
	t.engine.Enable()
	return nil
}

// Disable closes the receive channel. The pump keeps draining the port so
// bytes arriving while disabled are consumed and lost, not buffered.
func (t *Transport) Disable() error {
	t.engine.Disable()
	return nil
}

// Reconfigure resets the engine's counters
func (t *Transport) Reconfigure(length int) error {
	return t.engine.Reconfigure(length)
}

// Write transmits bytes on the port
func (t *Transport) Write(p []byte) (int, error) {
	n, err := t.port.Write(p)
	if err != nil {
		return n, gapframe.NewTransportError("write", t.portName, err, gapframe.ErrorTypeTransient)
	}
	return n, nil
}

// Close stops the pump and closes the port
func (t *Transport) Close() error {
	if t.done != nil {
		select {
		case <-t.done:
		default:
			close(t.done)
		}
	}
	if err := t.port.Close(); err != nil {
		return gapframe.NewTransportError("close", t.portName, err, gapframe.ErrorTypePermanent)
	}
	return nil
}

// Mode returns the configured receive mode
func (t *Transport) Mode() gapframe.Mode {
	return t.config.Mode
}
