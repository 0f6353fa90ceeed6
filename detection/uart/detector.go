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

// Package uart detects local serial ports for the serial transport
package uart

import (
	"context"
	"fmt"

	"github.com/gapframe/go-gapframe/detection"
	"go.bug.st/serial/enumerator"
)

// detector implements the detection.Detector interface for serial ports
type detector struct{}

// New creates a new serial port detector
func New() detection.Detector {
	return &detector{}
}

// init registers the detector on package import
func init() {
	detection.RegisterDetector(New())
}

// Transport returns the transport type
func (*detector) Transport() string {
	return "serial"
}

// Detect enumerates local serial ports
func (*detector) Detect(ctx context.Context, _ *detection.Options) ([]detection.DeviceInfo, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate serial ports: %w", err)
	}

	devices := make([]detection.DeviceInfo, 0, len(ports))
	seen := make(map[string]bool, len(ports))
	for _, port := range ports {
		info := detection.DeviceInfo{
			Path:      port.Name,
			Name:      port.Name,
			Transport: "serial",
		}
		if port.IsUSB {
			info.VIDPID = detection.FormatVIDPID(port.VID, port.PID)
			info.Serial = port.SerialNumber
			if port.Product != "" {
				info.Name = port.Product
			}
		}
		devices = append(devices, info)
		seen[port.Name] = true
	}

	// Platform fallbacks catch ports the enumerator misses.
	for _, extra := range platformPorts() {
		if !seen[extra.Path] {
			devices = append(devices, extra)
		}
	}

	return devices, nil
}
