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
	"time"

	"github.com/spf13/cobra"

	gapframe "github.com/gapframe/go-gapframe"
)

var (
	// Link flags
	debugPort    string
	terminalPort string
	modulePort   string
	baudRate     int
	capacity     int
	debounce     time.Duration

	// Monitor flags
	monitorAddr string

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "gapframe",
	Short: "Serial frame acquisition demo",
	Long: `gapframe - A demo harness for gap-delimited serial frame acquisition.

Opens up to three independent serial links (debug, terminal, module), prints
a periodic heartbeat over the debug link, and echoes every completed frame.
Frames are delimited by line idle: a pause on the wire longer than the
debounce interval finalizes whatever has accumulated.

Connection:
  gapframe run --debug-port /dev/ttyUSB0 [--baud 921600]

Use 'gapframe ports' to list candidate devices.`,
	Version: "1.0.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		gapframe.SetDebugEnabled(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&debugPort, "debug-port", "", "Serial device for the debug link")
	rootCmd.PersistentFlags().StringVar(&terminalPort, "terminal-port", "", "Serial device for the terminal link")
	rootCmd.PersistentFlags().StringVar(&modulePort, "module-port", "", "Serial device for the module link")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 921600, "Baud rate")
	rootCmd.PersistentFlags().IntVar(&capacity, "capacity", 1024, "Receive buffer capacity per link")
	rootCmd.PersistentFlags().DurationVar(&debounce, "debounce", time.Millisecond, "Idle confirmation window")
	rootCmd.PersistentFlags().StringVar(&monitorAddr, "monitor", "", "Serve a websocket frame tap on this address (e.g. :8080)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
