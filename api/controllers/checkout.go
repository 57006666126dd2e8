package controllers

import (
	"net/http"

	"github.com/mymessage/storefront-gateway/api/middleware"
	"github.com/mymessage/storefront-gateway/api/responses"
	cartsvc "github.com/mymessage/storefront-gateway/internal/cart"
	checkoutsvc "github.com/mymessage/storefront-gateway/internal/checkout"
	pkgerrors "github.com/mymessage/storefront-gateway/pkg/errors"
	"github.com/mymessage/storefront-gateway/pkg/logger"
)

// CheckoutCreate hands the session cart to the platform's hosted checkout
// and returns the redirect URL.
func CheckoutCreate(svc checkoutsvc.Service, registry *cartsvc.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || registry == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID := middleware.CartSessionFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart session missing"))
			return
		}

		checkoutURL, err := svc.CreateCheckout(r.Context(), registry.Session(sessionID).Items())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"checkoutUrl": checkoutURL})
	}
}
