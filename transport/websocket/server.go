package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/rocketscienceinc/quantum-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/quantum-tictactoe-backend/internal/entity"
)

const (
	writeTimeout    = 3 * time.Second
	shutdownTimeout = 5 * time.Second
)

type gameUseCase interface {
	JoinGame(ctx context.Context, areaID, playerID string) (*entity.QuantumState, error)
	MakeTurn(ctx context.Context, areaID, gameID, playerID string, move entity.QuantumMove) (*entity.QuantumState, error)
	LeaveGame(ctx context.Context, areaID, gameID, playerID string) (*entity.QuantumState, error)
	GetState(ctx context.Context, areaID string) (*entity.QuantumState, error)
}

// client - a single socket. areaID is fixed at accept time, playerID is set by the reader goroutine.
type client struct {
	conn     *websocket.Conn
	areaID   string
	playerID string
}

type disconnectedPlayer struct {
	areaID string
	at     time.Time
}

type Server struct {
	logger           *slog.Logger
	gameUseCase      gameUseCase
	reconnectTimeout time.Duration

	handlers map[string]func(ctx context.Context, client *client, payload *Payload) error

	connectionsMutex sync.RWMutex
	connections      map[string]*client

	disconnectedMutex   sync.Mutex
	disconnectedPlayers map[string]disconnectedPlayer
}

func New(logger *slog.Logger, gameUseCase gameUseCase, reconnectTimeout time.Duration) *Server {
	server := &Server{
		logger:           logger.With("component", "websocket"),
		gameUseCase:      gameUseCase,
		reconnectTimeout: reconnectTimeout,

		handlers: make(map[string]func(context.Context, *client, *Payload) error),

		connections:         make(map[string]*client),
		disconnectedPlayers: make(map[string]disconnectedPlayer),
	}

	server.handlers[actionConnect] = server.handleConnect
	server.handlers[actionGameJoin] = server.handleJoinGame
	server.handlers[actionGameTurn] = server.handleGameTurn
	server.handlers[actionGameLeave] = server.handleGameLeave
	server.handlers[actionGameState] = server.handleGameState

	return server
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", that)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go that.watchDisconnected(ctx)

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx) //nolint: contextcheck // the parent is already canceled
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// ServeHTTP - upgrades the request to a websocket bound to the area in the query.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	areaID := r.URL.Query().Get("area")
	if areaID == "" {
		http.Error(w, "area is required", http.StatusBadRequest)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Error("failed to accept connection", "error", err)
		return
	}
	defer conn.CloseNow()

	c := &client{conn: conn, areaID: areaID}

	log.Info("WebSocket connection established", "areaID", areaID)

	that.handleMessages(r.Context(), c)
	that.handleDisconnect(c)

	conn.Close(websocket.StatusNormalClosure, "")
}

// handleMessages - processes messages from the client until the socket closes.
func (that *Server) handleMessages(ctx context.Context, c *client) {
	log := that.logger.With("method", "handleMessages", "areaID", c.areaID)

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			default:
				log.Info("connection closed", "error", err)
			}

			return
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			that.sendError(ctx, c, actionError, apperror.ErrInvalidCommand)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			that.sendError(ctx, c, message.Action, fmt.Errorf("%w: %q", apperror.ErrInvalidCommand, message.Action))
			continue
		}

		var payload Payload
		if len(message.Payload) > 0 {
			if err = json.Unmarshal(message.Payload, &payload); err != nil {
				that.sendError(ctx, c, message.Action, apperror.ErrInvalidCommand)
				continue
			}
		}

		if err = handler(ctx, c, &payload); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) register(c *client, playerID string) {
	that.connectionsMutex.Lock()
	if previous, ok := that.connections[c.playerID]; ok && previous == c {
		delete(that.connections, c.playerID)
	}
	that.connections[playerID] = c
	that.connectionsMutex.Unlock()

	c.playerID = playerID

	that.disconnectedMutex.Lock()
	delete(that.disconnectedPlayers, playerID)
	that.disconnectedMutex.Unlock()
}

func (that *Server) handleDisconnect(c *client) {
	log := that.logger.With("method", "handleDisconnect")

	if c.playerID == "" {
		return
	}

	that.connectionsMutex.Lock()
	current, ok := that.connections[c.playerID]
	if ok && current == c {
		delete(that.connections, c.playerID)
	}
	that.connectionsMutex.Unlock()

	if !ok || current != c {
		return
	}

	that.disconnectedMutex.Lock()
	that.disconnectedPlayers[c.playerID] = disconnectedPlayer{areaID: c.areaID, at: time.Now()}
	that.disconnectedMutex.Unlock()

	log.Info("player disconnected", "playerID", c.playerID, "areaID", c.areaID)
}

// watchDisconnected - makes players who did not come back in time leave their match.
func (that *Server) watchDisconnected(ctx context.Context) {
	interval := min(that.reconnectTimeout, time.Second)
	if interval <= 0 {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			for playerID, areaID := range that.expiredPlayers(now) {
				that.handleOpponentOut(ctx, areaID, playerID)
			}
		}
	}
}

func (that *Server) expiredPlayers(now time.Time) map[string]string {
	that.disconnectedMutex.Lock()
	defer that.disconnectedMutex.Unlock()

	expired := make(map[string]string)
	for playerID, disconnected := range that.disconnectedPlayers {
		if now.Sub(disconnected.at) >= that.reconnectTimeout {
			expired[playerID] = disconnected.areaID
			delete(that.disconnectedPlayers, playerID)
		}
	}

	return expired
}

func (that *Server) broadcast(ctx context.Context, action string, state *entity.QuantumState) {
	log := that.logger.With("method", "broadcast", "areaID", state.AreaID, "gameID", state.GameID)

	that.connectionsMutex.RLock()
	recipients := make(map[string]*client)
	for playerID, c := range that.connections {
		if c.areaID == state.AreaID {
			recipients[playerID] = c
		}
	}
	that.connectionsMutex.RUnlock()

	for playerID, c := range recipients {
		if err := that.sendMessage(ctx, c, action, payloadFor(playerID, state)); err != nil {
			log.Error("failed to send game update", "playerID", playerID, "error", err)
		}
	}
}

func (that *Server) sendMessage(ctx context.Context, c *client, action string, payload Payload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err = wsjson.Write(writeCtx, c.conn, Message{Action: action, Payload: raw}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendError(ctx context.Context, c *client, action string, cause error) {
	if err := that.sendMessage(ctx, c, action, Payload{Error: cause.Error()}); err != nil {
		that.logger.Error("failed to send error response", "action", action, "error", err)
	}
}

// payloadFor - builds the reply for playerID with the state masked for that player.
func payloadFor(playerID string, state *entity.QuantumState) Payload {
	return Payload{
		Player: &entity.Player{
			ID:     playerID,
			Mark:   state.MarkOf(playerID),
			AreaID: state.AreaID,
			GameID: state.GameID,
		},
		Game: state.ViewFor(playerID),
	}
}
