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

package detection

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDetector struct {
	devices []DeviceInfo
}

func (*fakeDetector) Transport() string { return "fake" }

func (f *fakeDetector) Detect(_ context.Context, _ *Options) ([]DeviceInfo, error) {
	return f.devices, nil
}

// TestDetectFiltersBlockedAndIgnored verifies blocklist and ignore-path
// filtering in a detection pass
func TestDetectFiltersBlockedAndIgnored(t *testing.T) {
	// The registry is package-global; restore it so the fake detector
	// never leaks into other tests.
	registryMu.Lock()
	saved := registry
	registryMu.Unlock()
	t.Cleanup(func() {
		registryMu.Lock()
		registry = saved
		registryMu.Unlock()
	})

	RegisterDetector(&fakeDetector{devices: []DeviceInfo{
		{Path: "/dev/ttyUSB0", VIDPID: "0403:6001", Transport: "fake"},
		{Path: "/dev/ttyUSB1", VIDPID: "DEAD:BEEF", Transport: "fake"},
		{Path: "/dev/ttyS9", Transport: "fake"},
	}})

	devices, err := Detect(context.Background(), &Options{
		Blocklist:   []string{"dead:beef"},
		IgnorePaths: []string{"/dev/ttyS*"},
	})
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "/dev/ttyUSB0", devices[0].Path)
}

// TestIsBlocked verifies case-insensitive blocklist matching
func TestIsBlocked(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		vidpid    string
		blocklist []string
		want      bool
	}{
		{name: "empty blocklist", vidpid: "0403:6001", blocklist: nil, want: false},
		{name: "exact match", vidpid: "0403:6001", blocklist: []string{"0403:6001"}, want: true},
		{name: "case folded", vidpid: "04d8:f2c4", blocklist: []string{"04D8:F2C4"}, want: true},
		{name: "whitespace trimmed", vidpid: " 0403:6001 ", blocklist: []string{"0403:6001"}, want: true},
		{name: "no match", vidpid: "1234:5678", blocklist: []string{"0403:6001"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsBlocked(tt.vidpid, tt.blocklist))
		})
	}
}

// TestIsPathIgnored verifies exact and glob ignore matching
func TestIsPathIgnored(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		devicePath  string
		ignorePaths []string
		want        bool
	}{
		{name: "empty ignore list", devicePath: "/dev/ttyUSB0", ignorePaths: nil, want: false},
		{name: "empty device path", devicePath: "", ignorePaths: []string{"/dev/ttyUSB0"}, want: false},
		{name: "exact match", devicePath: "/dev/ttyUSB0", ignorePaths: []string{"/dev/ttyUSB0"}, want: true},
		{name: "glob match", devicePath: "/dev/ttyACM3", ignorePaths: []string{"/dev/ttyACM*"}, want: true},
		{name: "windows com port", devicePath: "COM7", ignorePaths: []string{"COM7"}, want: true},
		{name: "no match", devicePath: "/dev/ttyUSB0", ignorePaths: []string{"/dev/ttyACM*"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsPathIgnored(tt.devicePath, tt.ignorePaths))
		})
	}
}

// TestFormatVIDPID verifies normalization of vendor/product pairs
func TestFormatVIDPID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0403:6001", FormatVIDPID("0403", "6001"))
	assert.Equal(t, "0403:6001", FormatVIDPID(" 0403 ", " 6001"))
	assert.Equal(t, "", FormatVIDPID("", "6001"))
	assert.Equal(t, "", FormatVIDPID("0403", ""))
}
