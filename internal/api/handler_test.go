package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"water-dashboard/internal/catalog"
	"water-dashboard/internal/ledger"
	"water-dashboard/internal/service"
	"water-dashboard/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	storage := store.NewMemoryStore()
	l := ledger.Open(context.Background(), storage, catalog.New(), ledger.WithLogger(zap.NewNop()))
	svc := service.NewOrderService(catalog.New(), l, service.NewInbox(10), nil)

	router := gin.New()
	NewHandler(svc).SetupRoutes(router)
	return router, storage
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthAndReady(t *testing.T) {
	router, _ := newTestRouter(t)

	assert.Equal(t, http.StatusOK, doJSON(t, router, http.MethodGet, "/health", nil).Code)
	w := doJSON(t, router, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ready", decode(t, w)["status"])
}

func TestOrderFlow(t *testing.T) {
	router, storage := newTestRouter(t)

	w := doJSON(t, router, http.MethodPut, "/api/v1/draft/client", SelectionRequest{Name: "Daniela Ayala"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["can_submit"])

	w = doJSON(t, router, http.MethodPut, "/api/v1/draft/product", SelectionRequest{Name: "Botellón de 20 Lts"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["can_submit"])

	for i := 0; i < 2; i++ {
		w = doJSON(t, router, http.MethodPost, "/api/v1/draft/quantity", QuantityRequest{Delta: 1})
		require.Equal(t, http.StatusOK, w.Code)
	}
	draft := decode(t, w)
	assert.Equal(t, float64(3), draft["quantity"])
	assert.Equal(t, float64(45), draft["total"])

	w = doJSON(t, router, http.MethodPost, "/api/v1/orders", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	order := body["order"].(map[string]interface{})
	assert.Equal(t, "Daniela Ayala", order["clientName"])
	assert.Equal(t, "Botellón de 20 Lts", order["productName"])
	assert.Equal(t, float64(3), order["quantity"])
	assert.Equal(t, float64(45), order["totalPrice"])
	reset := body["draft"].(map[string]interface{})
	assert.Equal(t, "", reset["client_name"])
	assert.Equal(t, float64(1), reset["quantity"])

	w = doJSON(t, router, http.MethodGet, "/api/v1/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["orders"], 1)

	_, found, err := storage.Get(context.Background(), ledger.StorageKey)
	require.NoError(t, err)
	assert.True(t, found)

	w = doJSON(t, router, http.MethodGet, "/api/v1/notifications", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["unread"])

	w = doJSON(t, router, http.MethodPost, "/api/v1/notifications/read", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["marked"])
}

func TestPlaceOrderIncompleteDraft(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/orders", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAdjustQuantityValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, body := range []interface{}{
		map[string]int{"delta": 2},
		map[string]int{"delta": 0},
		map[string]string{"delta": "up"},
	} {
		w := doJSON(t, router, http.MethodPost, "/api/v1/draft/quantity", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "%v", body)
	}

	w := doJSON(t, router, http.MethodPost, "/api/v1/draft/quantity", QuantityRequest{Delta: -1})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["quantity"])
}

func TestSelectionRequiresBody(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPut, "/api/v1/draft/client", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboardEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Len(t, body["stats"], 4)
	assert.Len(t, body["chart"], 5)

	w = doJSON(t, router, http.MethodGet, "/api/v1/clients", nil)
	require.Equal(t, http.StatusOK, w.Code)
	clients := decode(t, w)["clients"].([]interface{})
	require.Len(t, clients, 4)
	assert.Equal(t, "Daniela", clients[0].(map[string]interface{})["first_name"])

	w = doJSON(t, router, http.MethodGet, "/api/v1/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	products := decode(t, w)["products"].([]interface{})
	assert.Equal(t, float64(15), products[0].(map[string]interface{})["unit_price"])
}

func TestExportOrders(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/orders/export", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.Equal(t, "PK", w.Body.String()[:2], "xlsx is a zip archive")
}
