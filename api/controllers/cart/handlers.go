package cart

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mymessage/storefront-gateway/api/middleware"
	"github.com/mymessage/storefront-gateway/api/responses"
	"github.com/mymessage/storefront-gateway/api/validators"
	cartsvc "github.com/mymessage/storefront-gateway/internal/cart"
	pkgerrors "github.com/mymessage/storefront-gateway/pkg/errors"
	"github.com/mymessage/storefront-gateway/pkg/logger"
)

// Fetch returns the session's cart snapshot.
func Fetch(registry *cartsvc.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := sessionStore(registry, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(store))
	}
}

// AddItem merges a candidate line into the session cart. Adding never
// fails; a matching identity just bumps the quantity.
func AddItem(registry *cartsvc.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := sessionStore(registry, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.AddItem(payload.toLineItem())
		responses.WriteSuccess(w, newCartView(store))
	}
}

// RemoveItem deletes every line matching the product id; removing a missing
// id is a no-op, not an error.
func RemoveItem(registry *cartsvc.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := sessionStore(registry, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID := chi.URLParam(r, "productId")
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		store.RemoveItem(productID)
		responses.WriteSuccess(w, newCartView(store))
	}
}

// SetQuantity replaces the quantity on matching lines. Quantities below 1
// leave the cart untouched, mirroring the store's silent-ignore rule.
func SetQuantity(registry *cartsvc.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := sessionStore(registry, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID := chi.URLParam(r, "productId")
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		var payload SetQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.SetQuantity(productID, payload.Quantity)
		responses.WriteSuccess(w, newCartView(store))
	}
}

// OpenPanel flips the cart panel visible.
func OpenPanel(registry *cartsvc.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := sessionStore(registry, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store.Open()
		responses.WriteSuccess(w, newCartView(store))
	}
}

// ClosePanel flips the cart panel hidden.
func ClosePanel(registry *cartsvc.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := sessionStore(registry, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store.Close()
		responses.WriteSuccess(w, newCartView(store))
	}
}

func sessionStore(registry *cartsvc.Registry, r *http.Request) (*cartsvc.Store, error) {
	if registry == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart registry unavailable")
	}
	sessionID := middleware.CartSessionFromContext(r.Context())
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart session missing")
	}
	return registry.Session(sessionID), nil
}
