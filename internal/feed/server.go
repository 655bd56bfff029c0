// ABOUTME: Meter feed server
// ABOUTME: Broadcasts level snapshots and cue changes to websocket viewers
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/shampuan/Jingle-Box/internal/version"
)

const (
	handshakeTimeout = 5 * time.Second
	writeDeadline    = 10 * time.Second
	pingInterval     = 30 * time.Second
	sendBuffer       = 32
)

// Config holds feed server configuration
type Config struct {
	// Port to listen on; 0 picks a free port
	Port int
	Name string
}

// Server broadcasts meter state to connected viewers
type Server struct {
	config   Config
	serverID string
	upgrader websocket.Upgrader
	mux      *http.ServeMux

	httpServer *http.Server
	listener   net.Listener

	clients   map[string]*viewer
	clientsMu sync.RWMutex

	lastMu     sync.Mutex
	lastLevels *Levels
	lastCue    *Cue

	dropped atomic.Int64

	stopOnce sync.Once
	wg       sync.WaitGroup
}

type viewer struct {
	id       string
	name     string
	conn     *websocket.Conn
	sendChan chan Message
}

// NewServer creates a feed server
func NewServer(config Config) *Server {
	s := &Server{
		config:   config,
		serverID: uuid.New().String(),
		mux:      http.NewServeMux(),
		upgrader: websocket.Upgrader{
			// Viewers run on the local network, any origin may watch
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[string]*viewer),
	}
	s.mux.HandleFunc(Path, s.handleWebSocket)
	return s
}

// Handler returns the HTTP handler serving the feed
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start listens on the configured port and serves in the background
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.config.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	s.listener = ln
	s.httpServer = &http.Server{Handler: s.mux}

	log.Printf("Meter feed listening on %s%s", ln.Addr(), Path)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Meter feed server error: %v", err)
		}
	}()
	return nil
}

// Port returns the port the feed is listening on
func (s *Server) Port() int {
	if s.listener == nil {
		return s.config.Port
	}
	return s.listener.Addr().(*net.TCPAddr).Port
}

// Stop disconnects viewers and shuts the HTTP server down
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		if s.httpServer != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.httpServer.Shutdown(ctx); err != nil {
				log.Printf("Meter feed shutdown error: %v", err)
			}
		}

		// Hijacked websocket connections are not closed by Shutdown
		s.clientsMu.RLock()
		for _, v := range s.clients {
			v.conn.Close()
		}
		s.clientsMu.RUnlock()

		s.wg.Wait()
		log.Printf("Meter feed stopped")
	})
}

// Clients returns the number of connected viewers
func (s *Server) Clients() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// Dropped returns how many messages slow viewers missed
func (s *Server) Dropped() int64 {
	return s.dropped.Load()
}

// PublishLevels sends a snapshot to every viewer
func (s *Server) PublishLevels(levels Levels) {
	s.lastMu.Lock()
	s.lastLevels = &levels
	s.lastMu.Unlock()

	s.broadcast(Message{Type: TypeLevels, Payload: levels})
}

// PublishCue sends a cue change to every viewer
func (s *Server) PublishCue(cue Cue) {
	s.lastMu.Lock()
	s.lastCue = &cue
	s.lastMu.Unlock()

	s.broadcast(Message{Type: TypeCue, Payload: cue})
}

// broadcast queues msg for every viewer, dropping it for viewers that are behind
func (s *Server) broadcast(msg Message) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	for _, v := range s.clients {
		select {
		case v.sendChan <- msg:
		default:
			s.dropped.Add(1)
		}
	}
}

// handleWebSocket handles WebSocket connections
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	log.Printf("New meter viewer connection from %s", r.RemoteAddr)
	s.handleConnection(conn)
}

// handleConnection runs one viewer session
func (s *Server) handleConnection(conn *websocket.Conn) {
	defer conn.Close()

	hello, err := readHello(conn)
	if err != nil {
		log.Printf("Meter viewer handshake failed: %v", err)
		return
	}

	v := &viewer{
		id:       hello.ClientID,
		name:     hello.Name,
		conn:     conn,
		sendChan: make(chan Message, sendBuffer),
	}

	s.clientsMu.Lock()
	if _, exists := s.clients[v.id]; exists {
		s.clientsMu.Unlock()
		log.Printf("Viewer ID %s already connected, rejecting duplicate", v.id)
		conn.WriteJSON(Message{
			Type:    TypeServerError,
			Payload: ServerError{Error: "duplicate_client_id", Message: "Client ID already connected"},
		})
		return
	}
	s.clients[v.id] = v

	// Queue the greeting and current state before any broadcast can reach v
	v.sendChan <- Message{Type: TypeServerHello, Payload: s.hello()}
	s.lastMu.Lock()
	if s.lastCue != nil {
		v.sendChan <- Message{Type: TypeCue, Payload: *s.lastCue}
	}
	if s.lastLevels != nil {
		v.sendChan <- Message{Type: TypeLevels, Payload: *s.lastLevels}
	}
	s.lastMu.Unlock()
	s.clientsMu.Unlock()

	log.Printf("Meter viewer connected: %s (ID: %s)", v.name, v.id)

	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, v.id)
		s.clientsMu.Unlock()
		close(v.sendChan)
		log.Printf("Meter viewer disconnected: %s", v.name)
	}()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.viewerWriter(v)
	}()

	// Viewers send nothing after hello; reading surfaces close frames
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			return
		}
	}
}

func (s *Server) hello() ServerHello {
	return ServerHello{
		ServerID: s.serverID,
		Name:     s.config.Name,
		Version:  ProtocolVersion,
		DeviceInfo: DeviceInfo{
			ProductName:     version.Product,
			Manufacturer:    version.Manufacturer,
			SoftwareVersion: version.Version,
		},
	}
}

// readHello waits for and validates client/hello
func readHello(conn *websocket.Conn) (ClientHello, error) {
	var hello ClientHello

	conn.SetReadDeadline(time.Now().Add(handshakeTimeout))
	defer conn.SetReadDeadline(time.Time{})

	_, data, err := conn.ReadMessage()
	if err != nil {
		return hello, fmt.Errorf("error reading hello: %w", err)
	}

	typ, payload, err := decodeEnvelope(data)
	if err != nil {
		return hello, err
	}
	if typ != TypeClientHello {
		return hello, fmt.Errorf("expected %s, got %s", TypeClientHello, typ)
	}
	if err := json.Unmarshal(payload, &hello); err != nil {
		return hello, fmt.Errorf("error unmarshaling client hello: %w", err)
	}
	if hello.ClientID == "" {
		return hello, errors.New("client hello missing client_id")
	}
	if hello.Name == "" {
		return hello, errors.New("client hello missing name")
	}
	return hello, nil
}

// viewerWriter sends queued messages and keepalive pings
func (s *Server) viewerWriter(v *viewer) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-v.sendChan:
			if !ok {
				return
			}
			v.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := v.conn.WriteJSON(msg); err != nil {
				log.Printf("Error writing to viewer %s: %v", v.name, err)
				v.conn.Close()
				return
			}

		case <-ticker.C:
			if err := v.conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(writeDeadline)); err != nil {
				v.conn.Close()
				return
			}
		}
	}
}
