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

package dma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoundEngine(size int) (*Engine, []byte) {
	buf := make([]byte, size)
	e := NewEngine()
	e.Bind(buf)
	e.Enable()
	return e, buf
}

// TestEngineCountdown verifies the remaining counter tracks landed bytes
func TestEngineCountdown(t *testing.T) {
	t.Parallel()

	e, buf := newBoundEngine(8)

	n, err := e.Write([]byte{0xAA, 0xBB})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 6, e.Remaining())
	assert.False(t, e.TransferComplete())
	assert.Equal(t, []byte{0xAA, 0xBB, 0, 0, 0, 0, 0, 0}, buf)
}

// TestEngineWraparound verifies circular overwrite past the transfer count
func TestEngineWraparound(t *testing.T) {
	t.Parallel()

	e, buf := newBoundEngine(4)

	// Six bytes into a four byte window: the last two land back at the
	// origin and the full-transfer flag latches.
	_, err := e.Write([]byte{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, []byte{5, 6, 3, 4}, buf)
	assert.Equal(t, 2, e.Remaining())
	assert.True(t, e.TransferComplete())
}

// TestEngineFullPassAliasing verifies that exactly one full pass leaves the
// counter indistinguishable from the empty state except for the flag.
func TestEngineFullPassAliasing(t *testing.T) {
	t.Parallel()

	e, _ := newBoundEngine(4)

	_, err := e.Write([]byte{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 4, e.Remaining())
	assert.True(t, e.TransferComplete())
}

// TestEngineDisabledDropsBytes verifies the enable gate
func TestEngineDisabledDropsBytes(t *testing.T) {
	t.Parallel()

	e, buf := newBoundEngine(4)
	e.Disable()

	n, err := e.Write([]byte{7, 7})
	require.NoError(t, err)
	assert.Equal(t, 2, n, "dropped bytes still count as accepted")
	assert.Equal(t, 4, e.Remaining())
	assert.Equal(t, []byte{0, 0, 0, 0}, buf)
	assert.False(t, e.Enabled())
}

// TestEngineReconfigure verifies reset semantics and guards
func TestEngineReconfigure(t *testing.T) {
	t.Parallel()

	e, _ := newBoundEngine(8)
	_, err := e.Write([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	require.NoError(t, err)
	require.True(t, e.TransferComplete())

	// A live channel refuses reprogramming.
	require.ErrorIs(t, e.Reconfigure(8), ErrEnabled)

	e.Disable()
	require.NoError(t, e.Reconfigure(8))
	assert.Equal(t, 8, e.Remaining())
	assert.False(t, e.TransferComplete())

	require.ErrorIs(t, e.Reconfigure(0), ErrBadLength)
	require.ErrorIs(t, e.Reconfigure(9), ErrBadLength)

	// A shorter window wraps earlier.
	require.NoError(t, e.Reconfigure(2))
	e.Enable()
	_, err = e.Write([]byte{1, 2})
	require.NoError(t, err)
	assert.True(t, e.TransferComplete())
	assert.Equal(t, 2, e.Remaining())
}

// TestEngineUnbound verifies operations before Bind fail
func TestEngineUnbound(t *testing.T) {
	t.Parallel()

	e := NewEngine()
	_, err := e.Write([]byte{1})
	assert.ErrorIs(t, err, ErrNotBound)
	assert.ErrorIs(t, e.Reconfigure(4), ErrNotBound)
}
