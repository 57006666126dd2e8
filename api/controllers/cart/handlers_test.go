package cart

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/mymessage/storefront-gateway/api/middleware"
	cartsvc "github.com/mymessage/storefront-gateway/internal/cart"
)

const testSession = "11111111-1111-1111-1111-111111111111"

func newTestRouter(registry *cartsvc.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithCartSession(req.Context(), testSession)))
		})
	})
	r.Get("/cart", Fetch(registry, nil))
	r.Post("/cart/items", AddItem(registry, nil))
	r.Delete("/cart/items/{productId}", RemoveItem(registry, nil))
	r.Patch("/cart/items/{productId}", SetQuantity(registry, nil))
	r.Post("/cart/open", OpenPanel(registry, nil))
	r.Post("/cart/close", ClosePanel(registry, nil))
	return r
}

func decodeCartView(t *testing.T, rec *httptest.ResponseRecorder) CartView {
	t.Helper()
	var envelope struct {
		Data CartView `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode cart view: %v; body=%s", err, rec.Body.String())
	}
	return envelope.Data
}

func TestFetchEmptyCart(t *testing.T) {
	t.Parallel()

	router := newTestRouter(cartsvc.NewRegistry())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	view := decodeCartView(t, rec)
	if view.ItemCount != 0 || view.Total != "0.00" || view.IsOpen {
		t.Fatalf("unexpected empty cart view %+v", view)
	}
}

func TestAddItemTwiceMergesLine(t *testing.T) {
	t.Parallel()

	router := newTestRouter(cartsvc.NewRegistry())
	body := `{"productId": "prod-1", "variantId": "v1", "name": "Logo Tee", "price": "10.00"}`

	var rec *httptest.ResponseRecorder
	for i := 0; i < 2; i++ {
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body)))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	}

	view := decodeCartView(t, rec)
	if len(view.Items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(view.Items))
	}
	if view.Items[0].Quantity != 2 || view.ItemCount != 2 {
		t.Fatalf("expected quantity 2, got %+v", view)
	}
	if view.Total != "20.00" {
		t.Fatalf("expected total 20.00, got %q", view.Total)
	}
}

func TestAddItemRejectsMissingFields(t *testing.T) {
	t.Parallel()

	router := newTestRouter(cartsvc.NewRegistry())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"variantId": "v1"}`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRemoveItemClearsProduct(t *testing.T) {
	t.Parallel()

	registry := cartsvc.NewRegistry()
	registry.Session(testSession).AddItem(cartsvc.LineItem{ProductID: "prod-1", VariantID: "v1"})
	registry.Session(testSession).AddItem(cartsvc.LineItem{ProductID: "prod-2", VariantID: "v2"})
	router := newTestRouter(registry)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/cart/items/prod-1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	view := decodeCartView(t, rec)
	if len(view.Items) != 1 || view.Items[0].ProductID != "prod-2" {
		t.Fatalf("unexpected items after remove: %+v", view.Items)
	}
}

func TestSetQuantityReplacesLineQuantity(t *testing.T) {
	t.Parallel()

	registry := cartsvc.NewRegistry()
	registry.Session(testSession).AddItem(cartsvc.LineItem{ProductID: "prod-1", VariantID: "v1"})
	router := newTestRouter(registry)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/cart/items/prod-1", strings.NewReader(`{"quantity": 5}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	view := decodeCartView(t, rec)
	if view.ItemCount != 5 {
		t.Fatalf("expected item count 5, got %d", view.ItemCount)
	}
}

func TestOpenAndClosePanel(t *testing.T) {
	t.Parallel()

	router := newTestRouter(cartsvc.NewRegistry())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/open", nil))
	if view := decodeCartView(t, rec); !view.IsOpen {
		t.Fatalf("expected panel open")
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/close", nil))
	if view := decodeCartView(t, rec); view.IsOpen {
		t.Fatalf("expected panel closed")
	}
}

func TestMissingSessionIsInternal(t *testing.T) {
	t.Parallel()

	// No session middleware on this router.
	r := chi.NewRouter()
	r.Get("/cart", Fetch(cartsvc.NewRegistry(), nil))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 without a session, got %d", rec.Code)
	}
}
