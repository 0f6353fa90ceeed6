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

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gapframe/go-gapframe/detection"

	// Register the built-in detectors.
	_ "github.com/gapframe/go-gapframe/detection/i2c"
	_ "github.com/gapframe/go-gapframe/detection/uart"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List candidate serial and I2C devices",
	RunE:  runPorts,
}

func init() {
	rootCmd.AddCommand(portsCmd)
}

func runPorts(cmd *cobra.Command, args []string) error {
	devices, err := detection.Detect(cmd.Context(), nil)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	if len(devices) == 0 {
		fmt.Println("No candidate devices found")
		return nil
	}

	for _, dev := range devices {
		line := fmt.Sprintf("%-16s %s", dev.Transport, dev.Path)
		if dev.Name != "" && dev.Name != dev.Path {
			line += fmt.Sprintf("  (%s)", dev.Name)
		}
		if dev.VIDPID != "" {
			line += "  " + dev.VIDPID
		}
		if dev.Serial != "" {
			line += "  sn=" + dev.Serial
		}
		fmt.Println(line)
	}
	fmt.Printf("%d device(s) found\n", len(devices))
	return nil
}
