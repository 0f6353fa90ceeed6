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

package i2c

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	gapframe "github.com/gapframe/go-gapframe"
	"github.com/gapframe/go-gapframe/internal/dma"
)

// TestDefaultConfig verifies default bridge settings
func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	assert.Equal(t, uint16(DefaultAddr), cfg.Addr)
	assert.Equal(t, time.Millisecond, cfg.PollInterval)
}

// TestSubAddr verifies the register-to-sub-address mapping
func TestSubAddr(t *testing.T) {
	t.Parallel()

	assert.Equal(t, byte(0x00), subAddr(regRHR))
	assert.Equal(t, byte(0x40), subAddr(regTXLVL))
	assert.Equal(t, byte(0x48), subAddr(regRXLVL))
}

// TestTransportProperties verifies basic transport properties without real
// hardware
func TestTransportProperties(t *testing.T) {
	t.Parallel()

	transport := &Transport{
		busName: "/dev/i2c-1",
		engine:  dma.NewEngine(),
		config:  DefaultConfig(),
	}

	assert.Equal(t, "/dev/i2c-1", transport.BusName())
	assert.Equal(t, gapframe.ModeByte, transport.Mode())

	buf := make([]byte, 8)
	transport.engine.Bind(buf)
	assert.Equal(t, 8, transport.Remaining())
	assert.False(t, transport.TransferComplete())
}
