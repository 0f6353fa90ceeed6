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

package serial

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gapframe "github.com/gapframe/go-gapframe"
	"github.com/gapframe/go-gapframe/internal/dma"
)

// TestDefaultConfig verifies the default port settings
func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	assert.Equal(t, 115200, cfg.BaudRate)
	assert.Equal(t, 2*time.Millisecond, cfg.IdleGuard)
	assert.Equal(t, gapframe.ModeCircular, cfg.Mode)
}

// TestTransportProperties verifies basic transport properties without
// opening real hardware
func TestTransportProperties(t *testing.T) {
	t.Parallel()

	transport := &Transport{
		portName: "/dev/ttyUSB0",
		engine:   dma.NewEngine(),
		config:   &Config{Mode: gapframe.ModeByte},
	}

	assert.Equal(t, "/dev/ttyUSB0", transport.PortName())
	assert.Equal(t, gapframe.ModeByte, transport.Mode())
}

// TestTransportEngineDelegation verifies the counter surface is backed by
// the circular engine
func TestTransportEngineDelegation(t *testing.T) {
	t.Parallel()

	transport := &Transport{
		engine: dma.NewEngine(),
		config: DefaultConfig(),
	}
	buf := make([]byte, 16)
	transport.engine.Bind(buf)

	require.NoError(t, transport.Enable())
	_, err := transport.engine.Write([]byte{1, 2, 3})
	require.NoError(t, err)

	assert.Equal(t, 13, transport.Remaining())
	assert.False(t, transport.TransferComplete())

	require.NoError(t, transport.Disable())
	require.NoError(t, transport.Reconfigure(16))
	assert.Equal(t, 16, transport.Remaining())
}

// TestOpenMissingPort verifies the error surface for a nonexistent port
func TestOpenMissingPort(t *testing.T) {
	t.Parallel()

	_, err := New("/dev/does-not-exist-gapframe", nil)
	require.Error(t, err)

	var terr *gapframe.TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "open", terr.Op)
	assert.False(t, gapframe.IsRetryable(err))
}
