package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"salesnote/internal/config"
	"salesnote/internal/domain/model"
	"salesnote/internal/handler"
	"salesnote/internal/metrics"
	"salesnote/internal/usecase"

	"github.com/stretchr/testify/assert"
)

type stubOrders struct{}

func (stubOrders) CreateOrder(ctx context.Context, in usecase.CreateOrderInput) (usecase.CreateOrderOutput, error) {
	return usecase.CreateOrderOutput{ID: "o-1"}, nil
}

func (stubOrders) ListOrders(ctx context.Context, clientID string) ([]model.Order, error) {
	return []model.Order{}, nil
}

func (stubOrders) FetchDocument(ctx context.Context, orderID string) (usecase.DocumentOutput, error) {
	return usecase.DocumentOutput{}, usecase.NewHTTPError(http.StatusNotFound, "Nota de venta no encontrada")
}

type stubStager struct{}

func (stubStager) Stage(ctx context.Context, in usecase.StageLineItemInput) (usecase.StageLineItemOutput, error) {
	return usecase.StageLineItemOutput{ID: "li-1"}, nil
}

type stubAddresses struct{}

func (stubAddresses) Register(ctx context.Context, in usecase.RegisterAddressInput) (model.Address, error) {
	return model.Address{ID: 1}, nil
}

func (stubAddresses) List(ctx context.Context, clientID string) ([]model.Address, error) {
	return []model.Address{}, nil
}

func newTestServer(secret string) (*Server, *metrics.Collector) {
	col := metrics.NewCollector()
	cfg := config.Config{
		Server: config.ServerConfig{Port: "0"},
		Auth:   config.AuthConfig{JWTSecret: secret},
	}
	s := New(cfg, Handlers{
		LineItems: handler.NewLineItemHandler(stubStager{}),
		Orders:    handler.NewOrderHandler(stubOrders{}),
		Addresses: handler.NewAddressHandler(stubAddresses{}),
		Metrics:   handler.NewMetricsHandler(col),
	}, col)
	return s, col
}

func TestServer_RoutesAndMetrics(t *testing.T) {
	s, col := newTestServer("")

	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders?clientId=c1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	snap := col.Snapshot()
	assert.Equal(t, int64(1), snap.StatusClasses["2xx"])
	assert.Equal(t, int64(1), snap.StatusClasses["4xx"])
	assert.Equal(t, int64(1), snap.Routes["GET /orders"].Count)
	assert.Equal(t, int64(1), snap.Routes["GET /orders/:id"].Count)
}

func TestServer_JWTGuard(t *testing.T) {
	s, _ := newTestServer("secret")

	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	//health は認証なし
	rec = httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
