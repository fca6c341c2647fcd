package server

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gravitas-games/hexpath/internal/config"
	"github.com/gravitas-games/hexpath/internal/gamemap"
	"github.com/gravitas-games/hexpath/internal/network"
	"github.com/gravitas-games/hexpath/pkg/models"
)

// ErrSessionFull is returned when the session has no room for a client
var ErrSessionFull = errors.New("session is full")

// Session is the shared map and the clients querying it
type Session struct {
	ID        string
	CreatedAt time.Time

	// Client management
	clients     map[string]*models.Client // clientID -> Client
	connections map[string]*Connection    // clientID -> Connection
	mu          sync.RWMutex

	gameMap *gamemap.GameMap
	limits  config.SessionConfig
}

// NewSession creates a session with a freshly generated map
func NewSession(id string, cfg *config.Config) (*Session, error) {
	log.Printf("Creating session: %s", id)

	costs, err := gamemap.CostsFromConfig(cfg.Terrain)
	if err != nil {
		return nil, err
	}
	gm := gamemap.Generate(cfg.Session.MapRadius, cfg.Session.Seed, costs)
	gm.LogSummary()

	return newSessionWithMap(id, gm, cfg.Session), nil
}

func newSessionWithMap(id string, gm *gamemap.GameMap, limits config.SessionConfig) *Session {
	return &Session{
		ID:          id,
		CreatedAt:   time.Now(),
		clients:     make(map[string]*models.Client),
		connections: make(map[string]*Connection),
		gameMap:     gm,
		limits:      limits,
	}
}

// Map returns the shared game map
func (s *Session) Map() *gamemap.GameMap { return s.gameMap }

// AddClient registers a connected client. A second connection for the same
// client replaces the first.
func (s *Session) AddClient(client *models.Client, conn *Connection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.clients[client.ID]; !exists && len(s.clients) >= s.limits.MaxClients {
		return ErrSessionFull
	}
	s.clients[client.ID] = client
	s.connections[client.ID] = conn

	log.Printf("Client %s (%s) joined session %s", client.Username, client.ID, s.ID)
	return nil
}

// RemoveClient unregisters conn if it is still the client's current connection
func (s *Session) RemoveClient(clientID string, conn *Connection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.connections[clientID]; !ok || current != conn {
		return
	}
	if client, exists := s.clients[clientID]; exists {
		log.Printf("Client %s (%s) left session %s", client.Username, clientID, s.ID)
	}
	delete(s.clients, clientID)
	delete(s.connections, clientID)
}

// ClientCount returns the number of clients in the session
func (s *Session) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// CanJoin reports whether clientID may connect: either it is already
// registered (the new connection replaces the old) or there is room left
func (s *Session) CanJoin(clientID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, exists := s.clients[clientID]; exists {
		return true
	}
	return len(s.clients) < s.limits.MaxClients
}

// Broadcast sends a message to every connected client
func (s *Session) Broadcast(msg *network.ServerMessage) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, conn := range s.connections {
		conn.SendMessage(msg)
	}
}

// MapInfo describes the shared map
func (s *Session) MapInfo() network.MapInfo {
	counts := s.gameMap.TerrainCounts()
	byName := make(map[string]int, len(counts))
	for t, n := range counts {
		byName[t.String()] = n
	}
	return network.MapInfo{
		Radius:   s.gameMap.Radius,
		Seed:     s.gameMap.Seed,
		HexCount: s.gameMap.HexCount(),
		Terrain:  byName,
	}
}
