package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ecommerce-api/internal/auth"
	"ecommerce-api/internal/config"
	"ecommerce-api/internal/handlers"
	"ecommerce-api/internal/models"
	"ecommerce-api/internal/payments"
	"ecommerce-api/internal/realtime"
	"ecommerce-api/internal/routes"
	"ecommerce-api/internal/testutil"
)

type sentNotification struct {
	userID  uint
	message string
}

// recordingNotifier captures pushes synchronously so tests can assert on
// them without a dispatcher.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (n *recordingNotifier) Notify(userID uint, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNotification{userID: userID, message: message})
}

func (n *recordingNotifier) messagesFor(userID uint) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, s := range n.sent {
		if s.userID == userID {
			out = append(out, s.message)
		}
	}
	return out
}

type stubConn struct{}

func (stubConn) Send([]byte) error { return nil }
func (stubConn) Close() error      { return nil }

type testEnv struct {
	cfg      *config.Config
	db       *gorm.DB
	tokens   *auth.TokenManager
	registry *realtime.Manager
	notifier *recordingNotifier
	h        *handlers.Handler
	router   *gin.Engine
}

type envOption func(*handlers.Deps)

func withConfig(cfg *config.Config) envOption {
	return func(d *handlers.Deps) { d.Config = cfg }
}

func withPayments(p payments.Provider) envOption {
	return func(d *handlers.Deps) { d.Payments = p }
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestEnv wires a Handler over a fresh in-memory database and serves it
// through the production route table.
func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	logger := quietLogger()
	deps := handlers.Deps{
		DB:       db,
		Registry: realtime.NewManager(logger),
		Notifier: &recordingNotifier{},
		Config:   config.Default(),
		Logger:   logger,
	}
	for _, opt := range opts {
		opt(&deps)
	}
	deps.Tokens = auth.NewTokenManager(deps.Config.Auth)

	env := &testEnv{
		cfg:      deps.Config,
		db:       db,
		tokens:   deps.Tokens,
		registry: deps.Registry,
		notifier: deps.Notifier.(*recordingNotifier),
		h:        handlers.New(deps),
	}
	env.router = routes.SetupRoutes(env.h, env.tokens, logger)
	return env
}

// do sends a JSON request through the router. body may be nil.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) createUser(t *testing.T, fullName, email, password, role string) models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	u := models.User{FullName: fullName, Email: email, Password: hash, Role: role}
	require.NoError(t, e.db.Create(&u).Error)
	return u
}

func (e *testEnv) tokenFor(t *testing.T, u models.User) string {
	t.Helper()
	token, err := e.tokens.Generate(auth.Subject{ID: u.ID, FullName: u.FullName, Email: u.Email, Role: u.Role})
	require.NoError(t, err)
	return token
}

// seedProduct creates a category (if needed) and a product with stock.
func (e *testEnv) seedProduct(t *testing.T, name string, price float64, stock int) models.Product {
	t.Helper()
	var category models.Category
	require.NoError(t, e.db.Where(models.Category{Name: "General"}).FirstOrCreate(&category).Error)
	p := models.Product{
		Name:       name,
		Price:      price,
		CategoryID: category.ID,
		Inventory:  &models.Inventory{StockQuantity: stock},
	}
	require.NoError(t, e.db.Create(&p).Error)
	return p
}

func (e *testEnv) stockOf(t *testing.T, productID uint) int {
	t.Helper()
	var inv models.Inventory
	require.NoError(t, e.db.Where("product_id = ?", productID).First(&inv).Error)
	return inv.StockQuantity
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type errorBody struct {
	Error string `json:"error"`
}

func requireError(t *testing.T, w *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	require.Equal(t, msg, decode[errorBody](t, w).Error)
}

