package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"shopease/internal/cart"
	"shopease/internal/catalog"
	"shopease/internal/currency"
	"shopease/internal/handler"
	"shopease/internal/middleware"
	"shopease/internal/model"
	"shopease/internal/repository"
	"shopease/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const remoteProducts = `[
	{"id":1,"title":"Fjallraven Backpack","price":109.95,"description":"Fits 15 inch laptops","category":"men's clothing","image":"https://fakestoreapi.com/img/1.jpg","rating":{"rate":3.9,"count":120}},
	{"id":2,"title":"Slim Fit T-Shirt","price":22.3,"description":"Slim-fitting style","category":"men's clothing","image":"https://fakestoreapi.com/img/2.jpg","rating":{"rate":4.1,"count":259}},
	{"id":5,"title":"Gold Bracelet","price":695,"description":"Dragon bracelet","category":"jewelery","image":"https://fakestoreapi.com/img/5.jpg","rating":4.6}
]`

// newTestAPI wires the full stack against a fake remote catalogue and waits
// for the seed to complete.
func newTestAPI(t *testing.T) http.Handler {
	t.Helper()
	return newTestAPIWith(t, remoteProducts)
}

func newTestAPIWith(t *testing.T, catalogue string) http.Handler {
	t.Helper()
	logger := zerolog.Nop()

	remote := http.NewServeMux()
	remote.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(catalogue))
	})
	remote.HandleFunc("/products/20", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":20,"title":"Cotton Jacket","price":7.95,"category":"women's clothing","rating":{"rate":3.6,"count":145}}`))
	})
	remote.HandleFunc("/products/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	server := httptest.NewServer(remote)
	t.Cleanup(server.Close)

	repo := repository.NewHTTPRepository(server.URL, 5*time.Second, logger)

	ids, err := catalog.NewSnowflakeGenerator(1)
	require.NoError(t, err)

	catalogStore := catalog.NewStore(repo, ids, logger)
	lookup := catalog.NewLookup(catalogStore, repo, logger)
	catalogStore.LoadInitial(context.Background())
	require.True(t, catalogStore.Seeded())

	catalogService := service.NewCatalogService(catalogStore, lookup, logger)
	cartService := service.NewCartService(cart.NewStore(logger), lookup, currency.NewConverter(80, "₹"), logger)

	return New(
		handler.NewCatalogHandler(catalogService, logger),
		handler.NewCartHandler(cartService, logger),
		logger,
	)
}

func do(t *testing.T, api http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	api.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	api := newTestAPI(t)

	w := do(t, api, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","catalogSeeded":true}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.CorrelationIDHeader))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_CatalogueFlow(t *testing.T) {
	api := newTestAPI(t)

	// Author a product; it must be listed first.
	w := do(t, api, http.MethodPost, "/api/products",
		`{"title":"Smart Watch","price":199.99,"description":"A watch that is smarter than you","category":"Watch","image":"https://example.com/watch.png","rating":4.5}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var authored model.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &authored))
	assert.NotEmpty(t, authored.ID)

	w = do(t, api, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, w.Code)
	var products []model.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 4)
	assert.Equal(t, authored.ID, products[0].ID)

	w = do(t, api, http.MethodGet, "/api/products?sort=price-asc&category=men%27s+clothing", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 2)
	assert.Equal(t, model.ProductID("2"), products[0].ID)
	assert.Equal(t, model.ProductID("1"), products[1].ID)

	w = do(t, api, http.MethodGet, "/api/categories", "")
	assert.JSONEq(t, `["Watch","men's clothing","jewelery"]`, w.Body.String())

	w = do(t, api, http.MethodGet, "/api/stats", "")
	assert.JSONEq(t, `{"count":4,"categoryCount":3,"averagePrice":256.81}`, w.Body.String())
}

func TestRouter_InvalidDraft(t *testing.T) {
	api := newTestAPI(t)

	w := do(t, api, http.MethodPost, "/api/products", `{"title":"ab","price":-1,"category":"Weapons"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.ErrCodeInvalidDraft, resp.Error)
	assert.Equal(t, w.Header().Get(middleware.CorrelationIDHeader), resp.CorrelationID)
	assert.Len(t, resp.Fields, 6)

	w = do(t, api, http.MethodGet, "/api/stats", "")
	assert.JSONEq(t, `{"count":3,"categoryCount":2,"averagePrice":275.75}`, w.Body.String())
}

func TestRouter_ProductDetail(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedTitle  string
	}{
		{name: "Seeded product", path: "/api/products/5", expectedStatus: http.StatusOK, expectedTitle: "Gold Bracelet"},
		{name: "Remote-only product", path: "/api/products/20", expectedStatus: http.StatusOK, expectedTitle: "Cotton Jacket"},
		{name: "Unknown product", path: "/api/products/404", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, api, http.MethodGet, tt.path, "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedTitle != "" {
				var p model.Product
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
				assert.Equal(t, tt.expectedTitle, p.Title)
			}
		})
	}

	// The remote-only product is not cached into the catalogue.
	w := do(t, api, http.MethodGet, "/api/stats", "")
	assert.JSONEq(t, `{"count":3,"categoryCount":2,"averagePrice":275.75}`, w.Body.String())
}

func TestRouter_CartFlow(t *testing.T) {
	api := newTestAPI(t)

	w := do(t, api, http.MethodPost, "/api/cart/items", `{"productId":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, api, http.MethodPost, "/api/cart/items", `{"productId":"1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, api, http.MethodPost, "/api/cart/items", `{"productId":20}`)
	require.Equal(t, http.StatusOK, w.Code)

	var summary model.CartSummary
	w = do(t, api, http.MethodGet, "/api/cart", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	require.Len(t, summary.Items, 2)
	assert.Equal(t, 2, summary.Items[0].Quantity)
	assert.Equal(t, 2, summary.ItemCount)
	assert.Equal(t, 227.85, summary.Subtotal)
	assert.Equal(t, int64(18228), summary.DisplaySubtotal)

	w = do(t, api, http.MethodPut, "/api/cart/items/1", `{"quantity":0}`)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.Items[0].Quantity)

	w = do(t, api, http.MethodDelete, "/api/cart/items/1", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	require.Len(t, summary.Items, 1)
	assert.Equal(t, model.ProductID("20"), summary.Items[0].ID)

	w = do(t, api, http.MethodPost, "/api/cart/items", `{"productId":404}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, api, http.MethodDelete, "/api/cart", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Empty(t, summary.Items)
	assert.Equal(t, 0.0, summary.Subtotal)
}

func TestRouter_UnknownRoute(t *testing.T) {
	api := newTestAPI(t)

	w := do(t, api, http.MethodGet, "/api/orders", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.ErrCodeNotFound, resp.Error)
}

func TestRouter_NonFiniteRatingsAreZeroed(t *testing.T) {
	api := newTestAPIWith(t, `[
		{"id":1,"title":"Backpack","price":109.95,"category":"bags","rating":{"rate":4.1,"count":3}},
		{"id":2,"title":"Broken Rating","price":10,"category":"bags","rating":"NaN"},
		{"id":3,"title":"Infinite Rating","price":12,"category":"bags","rating":{"rate":"Inf","count":9}},
		{"id":4,"title":"Boolean Rating","price":14,"category":"bags","rating":true}
	]`)

	for _, path := range []string{"/api/products", "/api/products?sort=rating-desc"} {
		t.Run(path, func(t *testing.T) {
			w := do(t, api, http.MethodGet, path, "")
			require.Equal(t, http.StatusOK, w.Code)

			var products []model.Product
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
			require.Len(t, products, 4)

			byID := make(map[model.ProductID]model.Rating, len(products))
			for _, p := range products {
				byID[p.ID] = p.Rating
			}
			assert.Equal(t, model.Rating{Rate: 4.1, Count: 3}, byID["1"])
			assert.Equal(t, model.Rating{}, byID["2"])
			assert.Equal(t, model.Rating{}, byID["3"])
			assert.Equal(t, model.Rating{}, byID["4"])
		})
	}

	w := do(t, api, http.MethodGet, "/api/products?sort=rating-desc", "")
	var sorted []model.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sorted))
	assert.Equal(t, model.ProductID("1"), sorted[0].ID)
}
