package realtime

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medicocare/hospital-portal/internal/core/domain"
)

func TestHub_BroadcastsChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(zerolog.Nop())
	go hub.Run(ctx)

	e := echo.New()
	e.GET("/ws/changes", hub.ServeWS)
	srv := httptest.NewServer(e)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/changes"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() != 1 {
		if time.Now().After(deadline) {
			t.Fatalf("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	hub.Publish(domain.StorageChange{Key: domain.KeyUsers, At: at})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got domain.StorageChange
	if err := json.Unmarshal(msg, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Key != domain.KeyUsers || !got.At.Equal(at) {
		t.Fatalf("unexpected change: %+v", got)
	}
}

func TestHub_ServeWSRejectsPlainHTTP(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	e := echo.New()
	req := httptest.NewRequest("GET", "/ws/changes", nil)
	rec := httptest.NewRecorder()

	err := hub.ServeWS(e.NewContext(req, rec))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != 400 {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}
