package realtime

import (
	"log/slog"
	"slices"
	"sync"
)

// Conn is a live push channel to one client.
// The websocket transport wraps its connection in this; Send must be safe
// for concurrent use.
type Conn interface {
	Send(message []byte) error
	Close() error
}

// Manager maps a user id to at most one live connection and delivers
// best-effort text notifications to it.
type Manager struct {
	mu    sync.RWMutex
	conns map[uint]Conn

	logger *slog.Logger
}

// NewManager returns an empty registry.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		conns:  make(map[uint]Conn),
		logger: logger.With("component", "realtime"),
	}
}

// Connect registers conn for userID. A different connection already
// registered for the same user is replaced and closed.
func (m *Manager) Connect(userID uint, conn Conn) {
	m.mu.Lock()
	old, replaced := m.conns[userID]
	m.conns[userID] = conn
	m.mu.Unlock()

	if replaced && old != conn {
		_ = old.Close()
		m.logger.Info("replaced existing connection", "user_id", userID)
		return
	}
	m.logger.Debug("user connected", "user_id", userID)
}

// Disconnect removes whatever connection is registered for userID.
// Unknown ids are ignored.
func (m *Manager) Disconnect(userID uint) {
	m.mu.Lock()
	_, ok := m.conns[userID]
	delete(m.conns, userID)
	m.mu.Unlock()

	if ok {
		m.logger.Debug("user disconnected", "user_id", userID)
	}
}

// Release removes the entry for userID only if conn is still the
// registered connection. A superseded socket closing late must not evict
// its replacement.
func (m *Manager) Release(userID uint, conn Conn) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if current, ok := m.conns[userID]; ok && current == conn {
		delete(m.conns, userID)
		return true
	}
	return false
}

// SendToUser pushes message to userID if connected. Absent users are a
// no-op. A failed write drops and closes the stale connection; the error
// never reaches the caller.
func (m *Manager) SendToUser(userID uint, message string) {
	m.mu.RLock()
	conn, ok := m.conns[userID]
	m.mu.RUnlock()
	if !ok {
		return
	}

	if err := conn.Send([]byte(message)); err != nil {
		m.logger.Debug("dropping stale connection after send failure", "user_id", userID, "error", err)
		if m.Release(userID, conn) {
			_ = conn.Close()
		}
	}
}

// IsConnected reports whether userID has a registered connection.
func (m *Manager) IsConnected(userID uint) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.conns[userID]
	return ok
}

// Count returns the number of connected users.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.conns)
}

// ConnectedUsers returns the connected user ids in ascending order.
func (m *Manager) ConnectedUsers() []uint {
	m.mu.RLock()
	ids := make([]uint, 0, len(m.conns))
	for id := range m.conns {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	slices.Sort(ids)
	return ids
}

// CloseAll closes every connection and empties the registry.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	conns := m.conns
	m.conns = make(map[uint]Conn)
	m.mu.Unlock()

	for _, c := range conns {
		_ = c.Close()
	}
	if len(conns) > 0 {
		m.logger.Info("closed realtime connections", "count", len(conns))
	}
}
