package controllers

import (
	"io"
	"net/http"
	"net/url"

	"github.com/mymessage/storefront-gateway/api/responses"
	"github.com/mymessage/storefront-gateway/pkg/config"
	pkgerrors "github.com/mymessage/storefront-gateway/pkg/errors"
	"github.com/mymessage/storefront-gateway/pkg/logger"
)

const fallbackMediaContentType = "video/mp4"

// MediaStream re-streams a remote media file through the gateway so the
// browser can play assets the media host will not serve cross-origin. The
// remote body and content type pipe through unchanged.
func MediaStream(httpClient *http.Client, cfg config.MediaConfig, logg *logger.Logger) http.HandlerFunc {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return func(w http.ResponseWriter, r *http.Request) {
		rawURL := r.URL.Query().Get("url")
		if rawURL == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "url parameter is required"))
			return
		}
		parsed, err := url.Parse(rawURL)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "url must be absolute http(s)"))
			return
		}

		req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, parsed.String(), nil)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build media request"))
			return
		}
		req.Header.Set("User-Agent", cfg.ProxyUserAgent)
		req.Header.Set("Accept", "video/mp4,video/*,*/*")

		resp, err := httpClient.Do(req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "media unreachable"))
			return
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			responses.WriteError(r.Context(), logg, w, pkgerrors.
				New(pkgerrors.CodeNotFound, "media not found").
				WithStatus(resp.StatusCode))
			return
		}

		contentType := resp.Header.Get("Content-Type")
		if contentType == "" {
			contentType = fallbackMediaContentType
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=3600")
		if length := resp.Header.Get("Content-Length"); length != "" {
			w.Header().Set("Content-Length", length)
		}
		w.WriteHeader(http.StatusOK)

		if _, err := io.Copy(w, resp.Body); err != nil && logg != nil {
			logg.Warn(logg.WithField(r.Context(), "media_url", parsed.String()), "media.stream_interrupted")
		}
	}
}
