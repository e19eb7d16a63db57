package host

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easeltools/easel/pkg/bus"
	"github.com/easeltools/easel/pkg/models"
)

func TestEventListenerRepublishes(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		require.NoError(t, conn.WriteJSON(models.HostEvent{
			Type: "execution_success",
			Data: map[string]interface{}{"prompt_id": "p1"},
		}))
		// Keep the connection open until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	b := bus.New()
	sub := b.Subscribe()
	defer b.Unsubscribe(sub)

	l, err := NewEventListener(srv.URL, "/ws", b)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	var got []bus.Event
	deadline := time.After(2 * time.Second)
	for len(got) < 2 {
		select {
		case ev := <-sub:
			got = append(got, ev)
		case <-deadline:
			t.Fatalf("timed out, events so far: %v", got)
		}
	}

	// Connected status first, then the republished host event.
	assert.Equal(t, bus.EventHostStatus, got[0].Type)
	assert.Equal(t, true, got[0].Data["connected"])
	assert.Equal(t, "execution_success", got[1].Type)
	assert.Equal(t, "p1", got[1].Data["prompt_id"])
}

func TestEventListenerURLDerivation(t *testing.T) {
	b := bus.New()

	l, err := NewEventListener("http://127.0.0.1:8188", "/ws", b)
	require.NoError(t, err)
	assert.Equal(t, "ws://127.0.0.1:8188/ws", l.wsURL)

	l, err = NewEventListener("https://host.example/", "/events", b)
	require.NoError(t, err)
	assert.Equal(t, "wss://host.example/events", l.wsURL)
}

func TestEventListenerStopsOnCancel(t *testing.T) {
	b := bus.New()
	l, err := NewEventListener("http://127.0.0.1:1", "/ws", b)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("listener did not stop on cancel")
	}
}
