// Package api serves published frames over HTTP to browser clients.
package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/brianchirls/popcorn-boilerplate/stream"
)

const writeWait = 5 * time.Second

// Server is a stream.Publisher that keeps the latest frame for polling
// clients and pushes every frame to websocket clients.
type Server struct {
	static   string
	upgrader websocket.Upgrader

	mu      sync.Mutex
	latest  []byte
	clients map[chan []byte]struct{}
}

// NewServer creates a Server. static, when set, is a directory served at /.
func NewServer(static string) *Server {
	s := new(Server)
	s.static = static
	s.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	s.clients = make(map[chan []byte]struct{})
	return s
}

// Publish records f and sends it to every live client. Clients that have
// fallen behind miss the frame.
func (s *Server) Publish(f *stream.Frame) error {
	b, err := f.MarshalBinary()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = b
	for ch := range s.clients {
		select {
		case ch <- b:
		default:
		}
	}
	return nil
}

func (s *Server) subscribe() chan []byte {
	ch := make(chan []byte, 8)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[ch] = struct{}{}
	if s.latest != nil {
		ch <- s.latest
	}
	return ch
}

func (s *Server) unsubscribe(ch chan []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, ch)
}

// Handler routes /frame, /live and, if configured, static files.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/frame", s.handleFrame)
	mux.HandleFunc("/live", s.handleLive)
	if s.static != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.static)))
	}
	return mux
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	b := s.latest
	s.mu.Unlock()

	if b == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(b)
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	ch := s.subscribe()
	defer s.unsubscribe(ch)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// Clients only listen; reading notices when they go away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case b := <-ch:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
				return
			}
		case <-gone:
			return
		case <-r.Context().Done():
			return
		}
	}
}

// Serve listens on addr until ctx is done.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), writeWait)
		defer cancel()
		srv.Shutdown(shutdown)
	}()

	log.Printf("Listening on %s...", addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
