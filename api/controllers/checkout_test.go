package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mymessage/storefront-gateway/api/middleware"
	cartsvc "github.com/mymessage/storefront-gateway/internal/cart"
	pkgerrors "github.com/mymessage/storefront-gateway/pkg/errors"
)

const testSession = "22222222-2222-2222-2222-222222222222"

type stubCheckoutService struct {
	url string
	err error

	gotItems []cartsvc.LineItem
}

func (s *stubCheckoutService) CreateCheckout(_ context.Context, items []cartsvc.LineItem) (string, error) {
	s.gotItems = items
	return s.url, s.err
}

func sessionRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return req.WithContext(middleware.WithCartSession(req.Context(), testSession))
}

func TestCheckoutCreateReturnsURL(t *testing.T) {
	t.Parallel()

	registry := cartsvc.NewRegistry()
	registry.Session(testSession).AddItem(cartsvc.LineItem{ProductID: "prod-1", VariantID: "v1"})
	stub := &stubCheckoutService{url: "https://shop.example/checkouts/abc"}

	rec := httptest.NewRecorder()
	CheckoutCreate(stub, registry, nil)(rec, sessionRequest(http.MethodPost, "/checkout"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(stub.gotItems) != 1 {
		t.Fatalf("session items not forwarded, got %+v", stub.gotItems)
	}

	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data["checkoutUrl"] != "https://shop.example/checkouts/abc" {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestCheckoutCreateEmptyCartIs400(t *testing.T) {
	t.Parallel()

	stub := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")}

	rec := httptest.NewRecorder()
	CheckoutCreate(stub, cartsvc.NewRegistry(), nil)(rec, sessionRequest(http.MethodPost, "/checkout"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCheckoutCreateWithoutSessionIs500(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	CheckoutCreate(&stubCheckoutService{}, cartsvc.NewRegistry(), nil)(rec, httptest.NewRequest(http.MethodPost, "/checkout", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 without a session, got %d", rec.Code)
	}
}
