package network

import (
	"encoding/json"

	"github.com/gravitas-games/hexpath/hex"
)

// Message types - Client → Server
const (
	MsgTypePing       = "ping"
	MsgTypeFindPath   = "find_path"
	MsgTypeDistance   = "distance"
	MsgTypeNeighbors  = "neighbors"
	MsgTypeSetTerrain = "set_terrain"
	MsgTypeMapInfo    = "map_info"
)

// Message types - Server → Client
const (
	MsgTypeWelcome         = "welcome"
	MsgTypePong            = "pong"
	MsgTypePathResult      = "path_result"
	MsgTypeDistanceResult  = "distance_result"
	MsgTypeNeighborsResult = "neighbors_result"
	MsgTypeTileUpdated     = "tile_updated"
	MsgTypeMapInfoResult   = "map_info"
	MsgTypeError           = "error"
)

// Error codes carried by ErrorPayload
const (
	ErrCodeInvalidMessage = "invalid_message"
	ErrCodeUnknownType    = "unknown_message_type"
	ErrCodeInvalidPayload = "invalid_payload"
	ErrCodeRadiusTooLarge = "radius_too_large"
	ErrCodeUnknownTerrain = "unknown_terrain"
	ErrCodeOutOfBounds    = "out_of_bounds"
	ErrCodeNotAuthorized  = "not_authorized"
)

// ClientMessage represents any message from client to server
type ClientMessage struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"` // echoed back on the reply
	Payload json.RawMessage `json:"payload"`
}

// ServerMessage represents any message from server to client
type ServerMessage struct {
	Type    string      `json:"type"`
	ID      string      `json:"id,omitempty"`
	Payload interface{} `json:"payload"`
}

// --- Client Message Payloads ---

// FindPathPayload asks for the cheapest path between two tiles
type FindPathPayload struct {
	Start hex.Axial `json:"start"`
	Goal  hex.Axial `json:"goal"`
}

// DistancePayload asks for the hex distance between two coordinates
type DistancePayload struct {
	A hex.Axial `json:"a"`
	B hex.Axial `json:"b"`
}

// NeighborsPayload asks for every coordinate within Radius of Center
type NeighborsPayload struct {
	Center hex.Axial `json:"center"`
	Radius int       `json:"radius"`
}

// SetTerrainPayload edits one tile of the shared map
type SetTerrainPayload struct {
	Coord   hex.Axial `json:"coord"`
	Terrain string    `json:"terrain"`
}

// --- Server Message Payloads ---

// WelcomePayload is sent to client after successful connection
type WelcomePayload struct {
	ClientID  string  `json:"client_id"`
	Username  string  `json:"username"`
	SessionID string  `json:"session_id"`
	Map       MapInfo `json:"map"`
}

// PathResultPayload is the answer to find_path. Path is empty when Found
// is false.
type PathResultPayload struct {
	Start    hex.Axial   `json:"start"`
	Goal     hex.Axial   `json:"goal"`
	Path     []hex.Axial `json:"path"`
	Cost     int         `json:"cost"`
	Expanded int         `json:"expanded"`
	Found    bool        `json:"found"`
}

// DistanceResultPayload is the answer to distance
type DistanceResultPayload struct {
	A        hex.Axial `json:"a"`
	B        hex.Axial `json:"b"`
	Distance int       `json:"distance"`
}

// NeighborsResultPayload is the answer to neighbors
type NeighborsResultPayload struct {
	Center hex.Axial   `json:"center"`
	Radius int         `json:"radius"`
	Cells  []hex.Axial `json:"cells"`
}

// TileUpdatedPayload is broadcast after a tile edit
type TileUpdatedPayload struct {
	Coord     hex.Axial `json:"coord"`
	Terrain   string    `json:"terrain"`
	UpdatedBy string    `json:"updated_by"`
}

// MapInfo describes the shared map
type MapInfo struct {
	Radius   int            `json:"radius"`
	Seed     int64          `json:"seed"`
	HexCount int            `json:"hex_count"`
	Terrain  map[string]int `json:"terrain"` // tile count per terrain
}

// ErrorPayload contains error information
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
