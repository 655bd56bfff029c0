// ABOUTME: WebSocket client for the meter feed
// ABOUTME: Handles connection, handshake and delivery of levels and cues
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ErrRejected is returned when the server refuses the session
var ErrRejected = errors.New("feed rejected connection")

// ClientConfig holds client configuration
type ClientConfig struct {
	ServerAddr string
	Name       string

	// ClientID defaults to a fresh uuid
	ClientID string
}

// Client receives a meter feed
type Client struct {
	config ClientConfig
	conn   *websocket.Conn
	mu     sync.RWMutex
	server ServerHello

	// Message channels
	Levels chan Levels
	Cues   chan Cue

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewClient creates a feed client
func NewClient(config ClientConfig) *Client {
	if config.ClientID == "" {
		config.ClientID = uuid.New().String()
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		config: config,
		Levels: make(chan Levels, 16),
		Cues:   make(chan Cue, 16),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Connect dials the feed and performs the handshake
func (c *Client) Connect() error {
	u := url.URL{Scheme: "ws", Host: c.config.ServerAddr, Path: Path}
	log.Printf("Connecting to %s", u.String())

	conn, _, err := websocket.DefaultDialer.DialContext(c.ctx, u.String(), nil)
	if err != nil {
		return fmt.Errorf("dial failed: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	if err := c.handshake(); err != nil {
		conn.Close()
		return fmt.Errorf("handshake failed: %w", err)
	}

	go c.readMessages()
	return nil
}

// Server returns the server's hello
func (c *Client) Server() ServerHello {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.server
}

// Done is closed when the connection ends
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close closes the connection
func (c *Client) Close() error {
	c.cancel()

	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return nil
	}
	conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return conn.Close()
}

// handshake sends client/hello and waits for server/hello
func (c *Client) handshake() error {
	hello := Message{
		Type: TypeClientHello,
		Payload: ClientHello{
			ClientID: c.config.ClientID,
			Name:     c.config.Name,
			Version:  ProtocolVersion,
		},
	}
	if err := c.conn.WriteJSON(hello); err != nil {
		return fmt.Errorf("failed to send %s: %w", TypeClientHello, err)
	}

	c.conn.SetReadDeadline(time.Now().Add(handshakeTimeout))
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", TypeServerHello, err)
	}
	c.conn.SetReadDeadline(time.Time{})

	typ, payload, err := decodeEnvelope(data)
	if err != nil {
		return err
	}

	switch typ {
	case TypeServerHello:
		var server ServerHello
		if err := json.Unmarshal(payload, &server); err != nil {
			return fmt.Errorf("failed to parse %s: %w", TypeServerHello, err)
		}
		c.mu.Lock()
		c.server = server
		c.mu.Unlock()
		log.Printf("Handshake complete with %s (%s %s)",
			server.Name, server.DeviceInfo.ProductName, server.DeviceInfo.SoftwareVersion)
		return nil
	case TypeServerError:
		var serr ServerError
		json.Unmarshal(payload, &serr)
		return fmt.Errorf("%w: %s", ErrRejected, serr.Message)
	}
	return fmt.Errorf("expected %s, got %s", TypeServerHello, typ)
}

// readMessages reads and routes incoming messages
func (c *Client) readMessages() {
	defer close(c.done)
	defer c.conn.Close()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if c.ctx.Err() == nil {
				log.Printf("Read error: %v", err)
			}
			return
		}
		c.handleMessage(data)
	}
}

// handleMessage routes one JSON message
func (c *Client) handleMessage(data []byte) {
	typ, payload, err := decodeEnvelope(data)
	if err != nil {
		log.Printf("Failed to parse JSON message: %v", err)
		return
	}

	switch typ {
	case TypeLevels:
		var levels Levels
		if err := json.Unmarshal(payload, &levels); err != nil {
			log.Printf("Invalid %s payload: %v", typ, err)
			return
		}
		// Levels are superseded quickly, drop when the reader is behind
		select {
		case c.Levels <- levels:
		default:
		}

	case TypeCue:
		var cue Cue
		if err := json.Unmarshal(payload, &cue); err != nil {
			log.Printf("Invalid %s payload: %v", typ, err)
			return
		}
		select {
		case c.Cues <- cue:
		case <-c.ctx.Done():
		}

	default:
		log.Printf("Unknown message type: %s", typ)
	}
}

func decodeEnvelope(data []byte) (string, json.RawMessage, error) {
	var msg struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		return "", nil, fmt.Errorf("failed to parse message: %w", err)
	}
	return msg.Type, msg.Payload, nil
}
