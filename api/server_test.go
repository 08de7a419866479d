package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/brianchirls/popcorn-boilerplate/stream"
)

func TestFrameEndpoint(t *testing.T) {
	s := NewServer("")
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/frame")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("Expected 204 before any frame, got %d", resp.StatusCode)
	}

	if err := s.Publish(&stream.Frame{Time: 1.5}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	resp, err = http.Get(ts.URL + "/frame")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Content-Type") != "application/json" {
		t.Errorf("Expected JSON, got %s", resp.Header.Get("Content-Type"))
	}
	if !strings.Contains(string(body), `"time":1.5`) {
		t.Errorf("Unexpected body %s", body)
	}
}

func TestLiveFeed(t *testing.T) {
	s := NewServer("")
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	s.Publish(&stream.Frame{Time: 1})

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/live"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	_, b, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !strings.Contains(string(b), `"time":1`) {
		t.Errorf("Expected the latest frame first, got %s", b)
	}

	s.Publish(&stream.Frame{Time: 2})
	_, b, err = conn.ReadMessage()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !strings.Contains(string(b), `"time":2`) {
		t.Errorf("Expected the next frame, got %s", b)
	}
}
