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
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	gapframe "github.com/gapframe/go-gapframe"
	"github.com/gapframe/go-gapframe/monitor"
	"github.com/gapframe/go-gapframe/transport/serial"
)

const (
	heartbeatInterval = 5 * time.Second
	pollInterval      = 2 * time.Millisecond

	// The poll loop feeds the watchdog every pass. A loop that stalls
	// longer than this is considered wedged.
	watchdogTimeout = 10 * time.Second
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the heartbeat and frame echo loop",
	Long: `Open the configured links and run until interrupted.

Every 5 seconds a heartbeat line is written to the debug link. Every
completed frame on any link is echoed to stdout as "<payload>,<length>"
and, when --monitor is set, broadcast to websocket clients.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

type namedLink struct {
	name string
	port string
	link *gapframe.Link
}

// watchdog is fed by the poll loop and trips if the loop stalls.
type watchdog struct {
	lastFed atomic.Int64
}

func newWatchdog(ctx context.Context, timeout time.Duration, onTrip func()) *watchdog {
	w := &watchdog{}
	w.Feed()
	go func() {
		ticker := time.NewTicker(timeout / 4)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fed := time.Unix(0, w.lastFed.Load())
				if time.Since(fed) > timeout {
					onTrip()
					return
				}
			}
		}
	}()
	return w
}

func (w *watchdog) Feed() {
	w.lastFed.Store(time.Now().UnixNano())
}

func openLink(name, port string) (*namedLink, error) {
	cfg := serial.DefaultConfig()
	cfg.BaudRate = baudRate
	transport, err := serial.New(port, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s link on %s: %w", name, port, err)
	}

	link, err := gapframe.New(transport,
		gapframe.WithCapacity(capacity),
		gapframe.WithDebounce(debounce))
	if err != nil {
		_ = transport.Close()
		return nil, fmt.Errorf("failed to start %s link: %w", name, err)
	}
	return &namedLink{name: name, port: port, link: link}, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	ports := []struct{ name, port string }{
		{"debug", debugPort},
		{"terminal", terminalPort},
		{"module", modulePort},
	}

	var links []*namedLink
	for _, p := range ports {
		if p.port == "" {
			continue
		}
		nl, err := openLink(p.name, p.port)
		if err != nil {
			for _, open := range links {
				_ = open.link.Close()
			}
			return err
		}
		links = append(links, nl)
	}
	if len(links) == 0 {
		return fmt.Errorf("no links configured; set at least --debug-port")
	}
	defer func() {
		for _, nl := range links {
			_ = nl.link.Close()
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var tap *monitor.Server
	if monitorAddr != "" {
		tap = monitor.NewServer()
		defer func() { _ = tap.Close() }()
		httpSrv := &http.Server{Addr: monitorAddr, Handler: tap.Handler()}
		go func() {
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				fmt.Fprintf(os.Stderr, "monitor server error: %v\n", err)
			}
		}()
		go func() {
			<-ctx.Done()
			_ = httpSrv.Close()
		}()
		fmt.Printf("Monitor: ws://%s\n", monitorAddr)
	}

	wd := newWatchdog(ctx, watchdogTimeout, func() {
		fmt.Fprintf(os.Stderr, "watchdog tripped, poll loop stalled for %v\n", watchdogTimeout)
		cancel()
	})

	for _, nl := range links {
		fmt.Printf("Link %s: %s @ %d baud, capacity %d, debounce %v\n",
			nl.name, nl.port, baudRate, capacity, debounce)
	}
	fmt.Println("Press Ctrl+C to exit")

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()
	poll := time.NewTicker(pollInterval)
	defer poll.Stop()

	debugLink := links[0].link

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nShutting down")
			return nil

		case <-heartbeat.C:
			if _, err := debugLink.Transport().Write([]byte("Hello World!\r\n")); err != nil {
				if !gapframe.IsRetryable(err) {
					return fmt.Errorf("heartbeat write failed: %w", err)
				}
				gapframe.Debugf("heartbeat write error: %v", err)
			}

		case <-poll.C:
			wd.Feed()
			for _, nl := range links {
				if !nl.link.Complete() {
					continue
				}
				frame := append([]byte(nil), nl.link.Data()...)
				fmt.Printf("[%s] %s,%d\n", nl.name, frame, len(frame))
				if tap != nil {
					tap.Broadcast(frame)
				}
				if err := nl.link.ConsumeAndRearm(); err != nil {
					return fmt.Errorf("failed to re-arm %s link: %w", nl.name, err)
				}
			}
		}
	}
}
