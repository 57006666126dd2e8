package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mymessage/storefront-gateway/pkg/config"
)

func mediaConfig() config.MediaConfig {
	return config.MediaConfig{ProxyUserAgent: "test-agent/1.0"}
}

func TestMediaStreamPipesRemoteBody(t *testing.T) {
	t.Parallel()

	var gotUserAgent string
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "video/mp4")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("fake-mp4-bytes"))
	}))
	defer remote.Close()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/media/stream?url="+remote.URL+"/video.mp4", nil)
	MediaStream(remote.Client(), mediaConfig(), nil)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotUserAgent != "test-agent/1.0" {
		t.Fatalf("proxy user agent not forwarded, got %q", gotUserAgent)
	}
	if got := rec.Header().Get("Content-Type"); got != "video/mp4" {
		t.Fatalf("content type not piped, got %q", got)
	}
	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=3600" {
		t.Fatalf("media should be cacheable, got %q", got)
	}
	if rec.Body.String() != "fake-mp4-bytes" {
		t.Fatalf("body not piped: %q", rec.Body.String())
	}
}

func TestMediaStreamDefaultsContentType(t *testing.T) {
	t.Parallel()

	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No explicit content type from the remote host.
		w.Header()["Content-Type"] = nil
		w.WriteHeader(http.StatusOK)
	}))
	defer remote.Close()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/media/stream?url="+remote.URL, nil)
	MediaStream(remote.Client(), mediaConfig(), nil)(rec, req)

	if got := rec.Header().Get("Content-Type"); got != "video/mp4" {
		t.Fatalf("expected video/mp4 fallback, got %q", got)
	}
}

func TestMediaStreamMissingURLIs400(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	MediaStream(&http.Client{}, mediaConfig(), nil)(rec, httptest.NewRequest(http.MethodGet, "/media/stream", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestMediaStreamRejectsRelativeURL(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/media/stream?url=/etc/passwd", nil)
	MediaStream(&http.Client{}, mediaConfig(), nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestMediaStreamRemote404(t *testing.T) {
	t.Parallel()

	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer remote.Close()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/media/stream?url="+remote.URL+"/missing.mp4", nil)
	MediaStream(remote.Client(), mediaConfig(), nil)(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected remote status piped through, got %d", rec.Code)
	}
}
