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

package monitor

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gapframe "github.com/gapframe/go-gapframe"
)

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestServerClientLifecycle(t *testing.T) {
	t.Parallel()

	server := NewServer()
	httpSrv := httptest.NewServer(server.Handler())
	defer httpSrv.Close()

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(httpSrv), nil)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Eventually(t, func() bool {
		return server.ClientCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool {
		return server.ClientCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestServerBroadcast(t *testing.T) {
	t.Parallel()

	server := NewServer()
	httpSrv := httptest.NewServer(server.Handler())
	defer httpSrv.Close()

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(httpSrv), nil)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	defer func() { _ = conn.Close() }()

	require.Eventually(t, func() bool {
		return server.ClientCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	server.Broadcast([]byte("ping"))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	msgType, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.BinaryMessage, msgType)
	assert.Equal(t, []byte("ping"), payload)
}

func TestServerCloseRefusesClients(t *testing.T) {
	t.Parallel()

	server := NewServer()
	httpSrv := httptest.NewServer(server.Handler())
	defer httpSrv.Close()

	require.NoError(t, server.Close())

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(httpSrv), nil)
	if err == nil {
		defer func() { _ = conn.Close() }()
	}
	if resp != nil {
		defer func() { _ = resp.Body.Close() }()
	}

	assert.Equal(t, 0, server.ClientCount())
}

func TestWatchBroadcastsFrames(t *testing.T) {
	t.Parallel()

	mock := gapframe.NewMockTransport()
	link, err := gapframe.New(mock,
		gapframe.WithCapacity(64),
		gapframe.WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	defer func() { _ = link.Close() }()

	server := NewServer()
	defer func() { _ = server.Close() }()
	httpSrv := httptest.NewServer(server.Handler())
	defer httpSrv.Close()

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(httpSrv), nil)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	defer func() { _ = conn.Close() }()

	require.Eventually(t, func() bool {
		return server.ClientCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	watchDone := make(chan error, 1)
	go func() { watchDone <- Watch(ctx, link, server, 5*time.Millisecond) }()

	mock.Feed([]byte("hello"))
	mock.Idle()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), payload)

	// The watcher re-armed the link after broadcasting.
	require.Eventually(t, func() bool {
		return link.State() == gapframe.StateIdle
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-watchDone:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
