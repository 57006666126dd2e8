package aggregate

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mymessage/storefront-gateway/api/responses"
	"github.com/mymessage/storefront-gateway/internal/catalog"
	pkgerrors "github.com/mymessage/storefront-gateway/pkg/errors"
	"github.com/mymessage/storefront-gateway/pkg/logger"
)

// CollectionsWithMedia serves the fan-out aggregation: every collection with
// its representative video, gaps included.
func CollectionsWithMedia(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		collections, err := svc.CollectionsWithMedia(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteNoStore(w, map[string]any{"collections": collections})
	}
}

// ProductMedia serves the full video listing for one product handle.
func ProductMedia(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		handle := chi.URLParam(r, "handle")
		if handle == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product handle is required"))
			return
		}

		media, err := svc.ProductMedia(r.Context(), handle)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteNoStore(w, media)
	}
}
