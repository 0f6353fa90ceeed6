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
	"context"
	"path/filepath"

	"github.com/gapframe/go-gapframe/detection"
)

// detectLinux lists /dev/i2c-* bus nodes. The bridge itself is not probed;
// whether one answers at the configured address is the transport's problem.
func detectLinux(ctx context.Context, _ *detection.Options) ([]detection.DeviceInfo, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	buses, err := filepath.Glob("/dev/i2c-*")
	if err != nil {
		return nil, err
	}

	devices := make([]detection.DeviceInfo, 0, len(buses))
	for _, bus := range buses {
		devices = append(devices, detection.DeviceInfo{
			Path:      bus,
			Name:      bus,
			Transport: "i2c",
		})
	}
	return devices, nil
}
