package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mymessage/storefront-gateway/api/responses"
	"github.com/mymessage/storefront-gateway/api/validators"
	pkgerrors "github.com/mymessage/storefront-gateway/pkg/errors"
	"github.com/mymessage/storefront-gateway/pkg/logger"
)

type graphqlDoer interface {
	Do(ctx context.Context, query string, variables map[string]any, out any) error
}

// StorefrontQueryRequest is a raw GraphQL document forwarded to the public
// storefront API. The access token never leaves the gateway.
type StorefrontQueryRequest struct {
	Query     string         `json:"query" validate:"required"`
	Variables map[string]any `json:"variables"`
}

// StorefrontQuery proxies a GraphQL document to the storefront API and
// returns the data payload unchanged.
func StorefrontQuery(storefront graphqlDoer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if storefront == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "storefront client unavailable"))
			return
		}

		var payload StorefrontQueryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var data json.RawMessage
		if err := storefront.Do(r.Context(), payload.Query, payload.Variables, &data); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, data)
	}
}
