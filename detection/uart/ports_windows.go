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

//go:build windows

package uart

import (
	"github.com/gapframe/go-gapframe/detection"
	"golang.org/x/sys/windows/registry"
)

// platformPorts lists COM ports from the Windows registry. Virtual COM
// ports (some USB CDC stacks, com0com pairs) appear here even when the
// enumerator misses them.
func platformPorts() []detection.DeviceInfo {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, `HARDWARE\DEVICEMAP\SERIALCOMM`, registry.QUERY_VALUE)
	if err != nil {
		return nil
	}
	defer func() { _ = key.Close() }()

	values, err := key.ReadValueNames(-1)
	if err != nil {
		return nil
	}

	ports := make([]detection.DeviceInfo, 0, len(values))
	for _, value := range values {
		portName, _, err := key.GetStringValue(value)
		if err != nil {
			continue
		}
		ports = append(ports, detection.DeviceInfo{
			Path:      portName,
			Name:      portName,
			Transport: "serial",
		})
	}

	return ports
}
