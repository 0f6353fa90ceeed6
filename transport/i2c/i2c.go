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

// Package i2c provides a gapframe transport for UART bridges on an I2C bus
// (SC16IS74x register file). The bridge has no idle-line hardware visible to
// the host, so the idle condition is synthesized from polls of the receive
// FIFO level: a poll that finds the FIFO empty after bytes have been flowing
// means the sender paused.
package i2c

import (
	"time"

	gapframe "github.com/gapframe/go-gapframe"
	"github.com/gapframe/go-gapframe/internal/dma"
	itransport "github.com/gapframe/go-gapframe/internal/transport"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

const (
	// SC16IS74x register file. Register addresses sit in bits 6:3 of the
	// sub-address byte.
	regRHR   = 0x00 // receive holding (read)
	regTHR   = 0x00 // transmit holding (write)
	regTXLVL = 0x08 // TX FIFO free space
	regRXLVL = 0x09 // RX FIFO fill level

	// DefaultAddr is the bridge's address with A0/A1 tied high.
	DefaultAddr = 0x4D

	// Max clock frequency (400 kHz).
	maxClockFreq = 400 * physic.KiloHertz

	defaultPollInterval = time.Millisecond

	txFIFOSize = 64

	// txDrainTimeout bounds the wait for TX FIFO space. At any sane baud
	// rate the FIFO drains in well under a second.
	txDrainTimeout = time.Second
)

// Config contains bridge settings for a transport
type Config struct {
	// Addr is the bridge's I2C address.
	Addr uint16
	// PollInterval is the RX level polling period; an empty poll after
	// traffic is the idle condition.
	PollInterval time.Duration
}

// DefaultConfig returns default bridge settings
func DefaultConfig() *Config {
	return &Config{
		Addr:         DefaultAddr,
		PollInterval: defaultPollInterval,
	}
}

// Transport implements the gapframe.Transport interface for I2C UART bridges
type Transport struct {
	dev     *i2c.Dev
	bus     i2c.BusCloser
	engine  *dma.Engine
	onIdle  func()
	done    chan struct{}
	busName string
	config  *Config
}

// New opens the named I2C bus and wraps the bridge at config.Addr as a
// transport. A nil config uses DefaultConfig.
func New(busName string, config *Config) (*Transport, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if _, err := host.Init(); err != nil {
		return nil, gapframe.NewTransportError("init", busName, err, gapframe.ErrorTypePermanent)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, gapframe.NewTransportError("open", busName, err, gapframe.ErrorTypePermanent)
	}

	// Ignore error, continue with default speed.
	_ = bus.SetSpeed(maxClockFreq)

	return &Transport{
		dev:     &i2c.Dev{Addr: config.Addr, Bus: bus},
		bus:     bus,
		busName: busName,
		engine:  dma.NewEngine(),
		config:  config,
	}, nil
}

// BusName returns the opened bus name
func (t *Transport) BusName() string {
	return t.busName
}

// Attach binds the link's buffer and idle callback and starts the FIFO poller
func (t *Transport) Attach(buf []byte, onIdle func()) error {
	if t.done != nil {
		return gapframe.ErrAlreadyAttached
	}
	t.engine.Bind(buf)
	t.onIdle = onIdle
	t.done = make(chan struct{})
	go t.poll()
	return nil
}

// poll drains the bridge's RX FIFO into the engine and synthesizes idle
// events from empty polls.
func (t *Transport) poll() {
	ticker := time.NewTicker(t.config.PollInterval)
	defer ticker.Stop()

	pending := false
	for {
		select {
		case <-t.done:
			return
		case <-ticker.C:
		}

		level, err := t.readReg(regRXLVL)
		if err != nil {
			gapframe.Debugf("i2c %s: RXLVL read failed: %v", t.busName, err)
			continue
		}

		if level == 0 {
			if pending {
				pending = false
				if t.onIdle != nil {
					t.onIdle()
				}
			}
			continue
		}

		chunk := make([]byte, level)
		if err := t.dev.Tx([]byte{subAddr(regRHR)}, chunk); err != nil {
			gapframe.Debugf("i2c %s: RHR drain failed: %v", t.busName, err)
			continue
		}
		_, _ = t.engine.Write(chunk)
		pending = true
	}
}

// readReg reads a single bridge register
func (t *Transport) readReg(reg byte) (byte, error) {
	var val [1]byte
	if err := t.dev.Tx([]byte{subAddr(reg)}, val[:]); err != nil {
		return 0, err
	}
	return val[0], nil
}

// subAddr maps a register address into the bridge's sub-address byte
func subAddr(reg byte) byte {
	return reg << 3
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

// Disable closes the receive channel. The poller keeps draining the FIFO so
// bytes arriving while disabled are consumed and lost, not buffered.
func (t *Transport) Disable() error {
	t.engine.Disable()
	return nil
}

// Reconfigure resets the engine's counters
func (t *Transport) Reconfigure(length int) error {
	return t.engine.Reconfigure(length)
}

// Write transmits bytes through the bridge's TX FIFO, a FIFO-sized chunk at
// a time.
func (t *Transport) Write(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		free, err := itransport.TimeoutRetry(txDrainTimeout, func() (byte, bool, error) {
			lvl, regErr := t.readReg(regTXLVL)
			if regErr != nil {
				return 0, false, gapframe.NewTransportError("write", t.busName, regErr, gapframe.ErrorTypeTransient)
			}
			return lvl, lvl == 0, nil
		})
		if err != nil {
			return written, err
		}
		n := int(free)
		if n > txFIFOSize {
			n = txFIFOSize
		}
		if n > len(p)-written {
			n = len(p) - written
		}
		frame := append([]byte{subAddr(regTHR)}, p[written:written+n]...)
		if err := t.dev.Tx(frame, nil); err != nil {
			return written, gapframe.NewTransportError("write", t.busName, err, gapframe.ErrorTypeTransient)
		}
		written += n
	}
	return written, nil
}

// Close stops the poller and releases the bus
func (t *Transport) Close() error {
	if t.done != nil {
		select {
		case <-t.done:
		default:
			close(t.done)
		}
	}
	if err := t.bus.Close(); err != nil {
		return gapframe.NewTransportError("close", t.busName, err, gapframe.ErrorTypePermanent)
	}
	return nil
}

// Mode returns ModeByte; the bridge delivers bytes without burst transfer
// support on the host side.
func (*Transport) Mode() gapframe.Mode {
	return gapframe.ModeByte
}
