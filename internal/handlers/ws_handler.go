package handlers

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/hako/durafmt"

	"ecommerce-api/internal/middleware"
	"ecommerce-api/internal/realtime"
)

var errClientClosed = errors.New("websocket client closed")

// wsClient implements realtime.Conn by wrapping a websocket connection.
// Gorilla allows one concurrent writer, so every write holds mu.
type wsClient struct {
	conn         *websocket.Conn
	writeTimeout time.Duration

	mu        sync.Mutex
	closed    bool
	closeOnce sync.Once
}

func newWSClient(conn *websocket.Conn, writeTimeout time.Duration) *wsClient {
	return &wsClient{conn: conn, writeTimeout: writeTimeout}
}

func (c *wsClient) Send(message []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errClientClosed
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, message)
}

func (c *wsClient) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errClientClosed
	}
	return c.conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(c.writeTimeout))
}

func (c *wsClient) Close() error {
	var err error
	c.closeOnce.Do(func() {
		// Closing the socket first unblocks a writer stuck on a slow peer.
		err = c.conn.Close()
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()
	})
	return err
}

var _ realtime.Conn = (*wsClient)(nil)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS is already handled at Gin level; allow upgrade from any origin here
		return true
	},
}

// authorizeSocket enforces realtime.require_token: the caller must present
// a valid JWT for the same user id as the path.
func (h *Handler) authorizeSocket(c *gin.Context, userID uint) bool {
	if !h.cfg.Realtime.RequireToken {
		return true
	}
	token := middleware.BearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
		return false
	}
	claims, err := h.tokens.Validate(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return false
	}
	if claims.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Token does not match user"})
		return false
	}
	return true
}

// WebSocket handles GET /ws/:user_id. It upgrades the connection, registers
// it for the user and holds it open until the client goes away. Inbound
// frames are read only to process control messages and are discarded.
func (h *Handler) WebSocket(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}
	if !h.authorizeSocket(c, userID) {
		return
	}

	// Upgrade HTTP connection to WebSocket
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "user_id", userID, "error", err)
		return
	}

	rt := h.cfg.Realtime
	client := newWSClient(conn, rt.WriteTimeout)
	h.registry.Connect(userID, client)
	connectedAt := time.Now()
	h.logger.Info("websocket connected", "user_id", userID, "remote", c.ClientIP())

	done := make(chan struct{})
	defer func() {
		close(done)
		h.registry.Release(userID, client)
		_ = client.Close()
		h.logger.Info("websocket disconnected",
			"user_id", userID,
			"duration", durafmt.Parse(time.Since(connectedAt)).LimitFirstN(2).String(),
		)
	}()

	conn.SetReadLimit(rt.ReadLimit)
	if rt.PingInterval > 0 {
		// Heartbeat: send periodic pings; the read deadline trips if pongs stop
		pongWait := rt.PingInterval * 2
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		go keepAlive(client, rt.PingInterval, done)
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			// Normal close or error; exit loop
			return
		}
	}
}

func keepAlive(client *wsClient, interval time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := client.ping(); err != nil {
				// ping failed; reader loop will exit on next error
				return
			}
		}
	}
}
