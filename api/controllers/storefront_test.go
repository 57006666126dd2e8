package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/mymessage/storefront-gateway/pkg/errors"
)

type stubGraphqlDoer struct {
	dataJSON string
	err      error

	gotQuery     string
	gotVariables map[string]any
}

func (s *stubGraphqlDoer) Do(_ context.Context, query string, variables map[string]any, out any) error {
	s.gotQuery = query
	s.gotVariables = variables
	if s.err != nil {
		return s.err
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = json.RawMessage(s.dataJSON)
	}
	return nil
}

func TestStorefrontQueryForwardsDocument(t *testing.T) {
	t.Parallel()

	stub := &stubGraphqlDoer{dataJSON: `{"products": {"edges": []}}`}
	body := `{"query": "query { products(first: 5) { edges { node { id } } } }", "variables": {"first": 5}}`

	rec := httptest.NewRecorder()
	StorefrontQuery(stub, nil)(rec, httptest.NewRequest(http.MethodPost, "/storefront/graphql", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(stub.gotQuery, "products(first: 5)") {
		t.Fatalf("query not forwarded, got %q", stub.gotQuery)
	}
	if stub.gotVariables["first"] != float64(5) {
		t.Fatalf("variables not forwarded, got %+v", stub.gotVariables)
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(envelope.Data) != `{"products": {"edges": []}}` {
		t.Fatalf("data payload altered: %s", envelope.Data)
	}
}

func TestStorefrontQueryRequiresDocument(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	StorefrontQuery(&stubGraphqlDoer{}, nil)(rec, httptest.NewRequest(http.MethodPost, "/storefront/graphql", strings.NewReader(`{}`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestStorefrontQueryUpstreamFailure(t *testing.T) {
	t.Parallel()

	stub := &stubGraphqlDoer{err: pkgerrors.New(pkgerrors.CodeUpstream, "shopify storefront graphql errors")}

	rec := httptest.NewRecorder()
	StorefrontQuery(stub, nil)(rec, httptest.NewRequest(http.MethodPost, "/storefront/graphql", strings.NewReader(`{"query": "query { shop { name } }"}`)))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestStorefrontQueryNilClient(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	StorefrontQuery(nil, nil)(rec, httptest.NewRequest(http.MethodPost, "/storefront/graphql", strings.NewReader(`{"query": "query { shop { name } }"}`)))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
