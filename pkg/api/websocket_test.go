package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestClientSubscriptions(t *testing.T) {
	client := NewClient(NewHub(), nil)

	client.Subscribe(ChannelStats, ChannelActivity)
	if !client.IsSubscribed(ChannelStats) {
		t.Error("expected stats subscription")
	}
	if !client.IsSubscribed(ChannelActivity) {
		t.Error("expected activity subscription")
	}
	if client.IsSubscribed(ChannelNotifications) {
		t.Error("did not subscribe to notifications")
	}

	client.Unsubscribe(ChannelStats)
	if client.IsSubscribed(ChannelStats) {
		t.Error("unsubscribe did not remove the channel")
	}
	if got := client.Subscriptions(); len(got) != 1 || got[0] != ChannelActivity {
		t.Errorf("unexpected subscriptions: %v", got)
	}
}

func TestHandleSubscribeValidatesChannels(t *testing.T) {
	client := NewClient(NewHub(), nil)

	client.handleSubscribe(WSMessage{
		Type:     EventTypeSubscribe,
		Channels: []string{ChannelStats, "bogus", ChannelNotifications},
	})

	if !client.IsSubscribed(ChannelStats) || !client.IsSubscribed(ChannelNotifications) {
		t.Error("valid channels should be subscribed")
	}
	if client.IsSubscribed("bogus") {
		t.Error("unknown channels must be rejected")
	}
}

func TestHubBroadcastToChannel(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	subscribed := NewClient(hub, nil)
	subscribed.Subscribe(ChannelStats)
	other := NewClient(hub, nil)
	other.Subscribe(ChannelActivity)

	hub.register <- subscribed
	hub.register <- other

	snapshot := StatsSnapshot{Generated: 4, Pages: 9}
	if err := hub.BroadcastStats(&snapshot); err != nil {
		t.Fatalf("broadcast failed: %v", err)
	}

	select {
	case raw := <-subscribed.send:
		var msg WSMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("invalid message: %v", err)
		}
		if msg.Type != EventTypeStatsUpdated {
			t.Errorf("expected %s, got %s", EventTypeStatsUpdated, msg.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("subscribed client did not receive the event")
	}

	select {
	case raw := <-other.send:
		t.Errorf("unsubscribed client received message: %s", raw)
	default:
	}
}

func TestHubClientCount(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	a := NewClient(hub, nil)
	b := NewClient(hub, nil)
	hub.register <- a
	hub.register <- b

	waitFor(t, func() bool { return hub.ClientCount() == 2 })

	hub.unregister <- a
	waitFor(t, func() bool { return hub.ClientCount() == 1 })
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}

func TestWebSocketEndToEnd(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	handler := NewWebSocketHandler(hub)
	srv := httptest.NewServer(http.HandlerFunc(handler.ServeHTTP))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	// Subscribe to notifications, then trigger a broadcast.
	sub := WSMessage{Type: EventTypeSubscribe, Channels: []string{ChannelNotifications}}
	if err := conn.WriteJSON(sub); err != nil {
		t.Fatalf("subscribe write failed: %v", err)
	}

	waitFor(t, func() bool { return hub.ClientCount() == 1 })
	// Allow the read pump to process the subscribe message.
	time.Sleep(50 * time.Millisecond)

	hub.BroadcastNotification(&NotificationData{Kind: "error", Message: "layout failed"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg WSMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if msg.Type != EventTypeNotification {
		t.Errorf("expected %s, got %s", EventTypeNotification, msg.Type)
	}
}

func TestWebSocketPingPong(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	handler := NewWebSocketHandler(hub)
	srv := httptest.NewServer(http.HandlerFunc(handler.ServeHTTP))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(WSMessage{Type: EventTypePing}); err != nil {
		t.Fatalf("ping write failed: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg WSMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if msg.Type != EventTypePong {
		t.Errorf("expected pong, got %s", msg.Type)
	}
}
