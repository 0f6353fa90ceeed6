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

// Package detection enumerates candidate ports for gapframe transports.
// Transport-specific detectors register themselves on import:
//
//	import (
//	    "github.com/gapframe/go-gapframe/detection"
//	    _ "github.com/gapframe/go-gapframe/detection/uart"
//	)
//
//	devices, err := detection.Detect(ctx, nil)
package detection

import (
	"context"
	"fmt"
	"sync"
)

// DeviceInfo describes a candidate port found by a detector
type DeviceInfo struct {
	// Path is the device path suitable for a transport constructor.
	Path string
	// Name is a human-readable port name.
	Name string
	// Transport names the detector that found the device.
	Transport string
	// VIDPID is the USB vendor:product pair, if known.
	VIDPID string
	// Serial is the USB serial number, if known.
	Serial string
}

// Options controls a detection pass
type Options struct {
	// Blocklist lists VID:PID pairs that must never be reported.
	// Nil means DefaultBlocklist.
	Blocklist []string
	// IgnorePaths lists device paths to skip.
	IgnorePaths []string
}

// Detector finds candidate ports for one transport kind
type Detector interface {
	// Transport returns the detector's transport name.
	Transport() string
	// Detect searches for candidate ports.
	Detect(ctx context.Context, opts *Options) ([]DeviceInfo, error)
}

var (
	registryMu sync.RWMutex
	registry   []Detector
)

// RegisterDetector adds a detector to the global registry. Called from
// detector packages' init functions.
func RegisterDetector(d Detector) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = append(registry, d)
}

// Detectors returns the registered detectors
func Detectors() []Detector {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]Detector, len(registry))
	copy(out, registry)
	return out
}

// Detect runs every registered detector and merges the results, applying
// the blocklist and ignore paths. A nil opts uses defaults.
func Detect(ctx context.Context, opts *Options) ([]DeviceInfo, error) {
	if opts == nil {
		opts = &Options{}
	}
	blocklist := opts.Blocklist
	if blocklist == nil {
		blocklist = DefaultBlocklist()
	}

	var devices []DeviceInfo
	for _, d := range Detectors() {
		found, err := d.Detect(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("%s detection failed: %w", d.Transport(), err)
		}
		for _, dev := range found {
			if dev.VIDPID != "" && IsBlocked(dev.VIDPID, blocklist) {
				continue
			}
			if IsPathIgnored(dev.Path, opts.IgnorePaths) {
				continue
			}
			devices = append(devices, dev)
		}
	}
	return devices, nil
}
