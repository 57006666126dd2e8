package controllers

import (
	"net/http"

	"github.com/mymessage/storefront-gateway/api/responses"
	"github.com/mymessage/storefront-gateway/api/validators"
	waitlistsvc "github.com/mymessage/storefront-gateway/internal/waitlist"
	pkgerrors "github.com/mymessage/storefront-gateway/pkg/errors"
	"github.com/mymessage/storefront-gateway/pkg/logger"
)

// WaitlistSubscribeRequest carries a signup for the next collection drop.
type WaitlistSubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// WaitlistSubscribe records a collection-launch signup.
func WaitlistSubscribe(svc waitlistsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "waitlist service unavailable"))
			return
		}

		var payload WaitlistSubscribeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Subscribe(r.Context(), payload.Email); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"message": "subscribed"})
	}
}
