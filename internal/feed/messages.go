// ABOUTME: Meter feed message type definitions
// ABOUTME: JSON envelopes exchanged over the /meter websocket
package feed

import "github.com/shampuan/Jingle-Box/pkg/meter"

const (
	// Path is the websocket endpoint of the feed
	Path = "/meter"

	// ProtocolVersion is bumped on incompatible message changes
	ProtocolVersion = 1
)

// Message types
const (
	TypeClientHello = "client/hello"
	TypeServerHello = "server/hello"
	TypeServerError = "server/error"
	TypeLevels      = "meter/levels"
	TypeCue         = "meter/cue"
)

// Message is the top-level wrapper for all feed messages
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// ClientHello is sent by viewers to start a session
type ClientHello struct {
	ClientID string `json:"client_id"`
	Name     string `json:"name"`
	Version  int    `json:"version"`
}

// DeviceInfo identifies the soundboard
type DeviceInfo struct {
	ProductName     string `json:"product_name"`
	Manufacturer    string `json:"manufacturer"`
	SoftwareVersion string `json:"software_version"`
}

// ServerHello is the soundboard's response to client/hello
type ServerHello struct {
	ServerID   string     `json:"server_id"`
	Name       string     `json:"name"`
	Version    int        `json:"version"`
	DeviceInfo DeviceInfo `json:"device_info"`
}

// ServerError rejects a session
type ServerError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Levels is the payload of meter/levels
type Levels = meter.Snapshot

// Cue is the payload of meter/cue
type Cue struct {
	Active bool   `json:"active"`
	ID     string `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	Path   string `json:"path,omitempty"`
	Slot   string `json:"slot,omitempty"`
}
