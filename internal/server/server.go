package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"github.com/gravitas-games/hexpath/internal/config"
	"github.com/gravitas-games/hexpath/internal/metrics"
	"github.com/gravitas-games/hexpath/internal/network"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the websocket path query service
type Server struct {
	config    *config.Config
	session   *Session
	upgrader  websocket.Upgrader
	httpSrv   *http.Server
	validator *JWTValidator
	redis     *redis.Client

	// Connection tracking
	connections map[*Connection]bool
	connMu      sync.RWMutex

	// Shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a server: connects to Redis, fetches the JWT key and
// generates the session map
func New(cfg *config.Config) (*Server, error) {
	log.Println("Initializing server...")

	ctx, cancel := context.WithCancel(context.Background())

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Println("Connected to Redis")

	validator, err := NewJWTValidator(ctx, cfg, NewRedisBlacklist(redisClient, cfg.Redis.BlacklistPrefix))
	if err != nil {
		cancel()
		redisClient.Close()
		return nil, fmt.Errorf("failed to initialize JWT validator: %w", err)
	}

	session, err := NewSession("main", cfg)
	if err != nil {
		cancel()
		redisClient.Close()
		return nil, err
	}

	srv := newServer(ctx, cancel, cfg, session, validator)
	srv.redis = redisClient

	log.Println("Server initialized successfully")
	return srv, nil
}

func newServer(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, session *Session, validator *JWTValidator) *Server {
	return &Server{
		config:      cfg,
		session:     session,
		validator:   validator,
		connections: make(map[*Connection]bool),
		ctx:         ctx,
		cancel:      cancel,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			Subprotocols:    []string{"access_token"},
			CheckOrigin: func(r *http.Request) bool {
				// Clients authenticate with a bearer token, not cookies
				return true
			},
		},
	}
}

// MapInfo describes the map the server answers queries against
func (s *Server) MapInfo() network.MapInfo {
	return s.session.MapInfo()
}

// Handler returns the HTTP routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// Start begins listening for connections
func (s *Server) Start(addr string) error {
	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("WebSocket endpoint: ws://%s/ws", addr)
	log.Printf("Health endpoint: http://%s/health", addr)
	log.Printf("Metrics endpoint: http://%s/metrics", addr)

	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown() error {
	log.Println("Shutting down server...")

	s.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.httpSrv != nil {
		if err := s.httpSrv.Shutdown(ctx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}
	}

	s.connMu.RLock()
	for conn := range s.connections {
		conn.Close()
	}
	s.connMu.RUnlock()

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Printf("Redis close error: %v", err)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}

// handleWebSocket authenticates and upgrades a client connection
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	tokenString := extractTokenFromHeader(r)
	if tokenString == "" {
		log.Printf("Missing JWT token from %s", r.RemoteAddr)
		http.Error(w, "Missing authentication token", http.StatusUnauthorized)
		return
	}

	client, err := s.validator.ValidateToken(r.Context(), tokenString)
	if err != nil {
		log.Printf("Invalid JWT token from %s: %v", r.RemoteAddr, err)
		http.Error(w, fmt.Sprintf("Invalid token: %v", err), http.StatusUnauthorized)
		return
	}

	if !s.session.CanJoin(client.ID) {
		http.Error(w, "Session is full", http.StatusServiceUnavailable)
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn := NewConnection(ws, s, client)
	client.Connected = true
	client.ConnectedAt = time.Now()
	client.SessionID = s.session.ID

	if err := s.session.AddClient(client, conn); err != nil {
		log.Printf("Rejecting %s: %v", client.Username, err)
		ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseTryAgainLater, err.Error()))
		ws.Close()
		return
	}

	s.connMu.Lock()
	s.connections[conn] = true
	s.connMu.Unlock()
	metrics.ConnectedClients.Inc()

	log.Printf("WebSocket connection established: %s (%s)", client.Username, r.RemoteAddr)

	conn.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeWelcome,
		Payload: network.WelcomePayload{
			ClientID:  client.ID,
			Username:  client.Username,
			SessionID: s.session.ID,
			Map:       s.session.MapInfo(),
		},
	})

	conn.Handle()

	s.connMu.Lock()
	delete(s.connections, conn)
	s.connMu.Unlock()
	metrics.ConnectedClients.Dec()

	log.Printf("WebSocket connection closed: %s (%s)", client.Username, r.RemoteAddr)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
