// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package events

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()

	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = hub.Serve(ctx)
		close(done)
	}()

	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		NewClient(hub, conn).Start()
	}))

	t.Cleanup(func() {
		srv.Close()
		cancel()
		<-done
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg map[string]any
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestHubBroadcast(t *testing.T) {
	hub, srv := startHub(t)
	a := dial(t, srv)
	b := dial(t, srv)

	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, 2*time.Second, 10*time.Millisecond)

	hub.Publish(PollUpdated, map[string]any{"pollId": "p1"})

	for _, conn := range []*websocket.Conn{a, b} {
		msg := readMessage(t, conn)
		assert.Equal(t, PollUpdated, msg["type"])
		data, ok := msg["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "p1", data["pollId"])
	}
}

func TestHubPingPong(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteJSON(Message{Type: "ping"}))
	msg := readMessage(t, conn)
	assert.Equal(t, "pong", msg["type"])
}

func TestHubUnregisterOnDisconnect(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHubStopped(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, hub.Serve(ctx), context.Canceled)

	assert.False(t, hub.Register(&Client{send: make(chan []byte, 1)}))
	// Publishing into a stopped hub must not block
	for i := 0; i < 300; i++ {
		hub.Publish(PollCreated, nil)
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Publish(PollCreated, "a")
	r.Publish(PollUpdated, "b")
	r.Publish(PollCreated, "c")

	assert.Len(t, r.Events(), 3)
	last, ok := r.Last(PollCreated)
	require.True(t, ok)
	assert.Equal(t, "c", last.Data)
	_, ok = r.Last(PollDeleted)
	assert.False(t, ok)

	Nop{}.Publish(PollCreated, nil)
}

func TestRedisBridgeFallsBackToLocalHub(t *testing.T) {
	hub := NewHub()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	bridge := NewRedisBridge(client, "portfolio-events", hub)
	bridge.Publish(PollDeleted, map[string]string{"pollId": "p1"})

	select {
	case data := <-hub.broadcast:
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, PollDeleted, msg.Type)
	case <-time.After(3 * time.Second):
		t.Fatal("event was not delivered locally after redis failure")
	}
}

func TestRedisBridgeServeFailsWithoutRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := NewRedisBridge(client, "portfolio-events", NewHub()).Serve(ctx)
	assert.Error(t, err)
}
