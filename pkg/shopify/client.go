package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mymessage/storefront-gateway/pkg/config"
	pkgerrors "github.com/mymessage/storefront-gateway/pkg/errors"
)

const (
	storefrontTokenHeader = "X-Shopify-Storefront-Access-Token"
	adminTokenHeader      = "X-Shopify-Access-Token"

	responseBodyReadLimit int64 = 1 << 20
)

var (
	errEndpointRequired = errors.New("shopify endpoint is required")
	errTokenRequired    = errors.New("shopify access token is required")
)

// GraphQLError is one entry of the error list an upstream GraphQL response
// may carry alongside (or instead of) data.
type GraphQLError struct {
	Message string `json:"message"`
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors"`
}

// Client posts GraphQL documents to one Shopify API surface. Build one per
// surface: NewStorefrontClient for the public API, NewAdminClient for the
// privileged one.
type Client struct {
	httpClient  *http.Client
	endpoint    string
	token       string
	tokenHeader string
	surface     string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithEndpoint overrides the configured GraphQL endpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(endpoint)
		if trimmed != "" {
			c.endpoint = trimmed
		}
	}
}

// NewStorefrontClient builds a client for the public storefront API.
func NewStorefrontClient(cfg config.ShopifyConfig, opts ...Option) (*Client, error) {
	return newClient(cfg.StorefrontEndpoint, cfg.StorefrontToken, storefrontTokenHeader, "storefront", opts...)
}

// NewAdminClient builds a client for the privileged admin API.
func NewAdminClient(cfg config.ShopifyConfig, opts ...Option) (*Client, error) {
	return newClient(cfg.AdminEndpoint, cfg.AdminToken, adminTokenHeader, "admin", opts...)
}

func newClient(endpoint, token, tokenHeader, surface string, opts ...Option) (*Client, error) {
	trimmedEndpoint := strings.TrimSpace(endpoint)
	if trimmedEndpoint == "" {
		return nil, errEndpointRequired
	}
	trimmedToken := strings.TrimSpace(token)
	if trimmedToken == "" {
		return nil, errTokenRequired
	}

	client := &Client{
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		endpoint:    trimmedEndpoint,
		token:       trimmedToken,
		tokenHeader: tokenHeader,
		surface:     surface,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return client, nil
}

// Surface reports which API surface this client talks to.
func (c *Client) Surface() string {
	if c == nil {
		return ""
	}
	return c.surface
}

// Do posts a GraphQL document and decodes the data payload into out (out may
// be nil when the caller ignores the response).
//
// Error mapping: transport failures and non-2xx statuses become
// DEPENDENCY_ERROR with the upstream status pinned; a 2xx body carrying a
// GraphQL error list, or one that cannot be decoded, becomes UPSTREAM_ERROR.
func (c *Client) Do(ctx context.Context, query string, variables map[string]any, out any) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "shopify client not configured")
	}
	if strings.TrimSpace(query) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "graphql query is required")
	}

	payload, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal graphql request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build graphql request")
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(c.tokenHeader, c.token)
	// The consumers of these surfaces require always-fresh data.
	httpReq.Header.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	httpReq.Header.Set("Pragma", "no-cache")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("execute shopify %s request", c.surface))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("read shopify %s response", c.surface))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return pkgerrors.
			New(pkgerrors.CodeDependency, fmt.Sprintf("shopify %s responded %d", c.surface, resp.StatusCode)).
			WithStatus(resp.StatusCode).
			WithDetails(map[string]any{"status": resp.StatusCode})
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, fmt.Sprintf("malformed shopify %s response", c.surface))
	}

	if len(env.Errors) > 0 {
		messages := make([]string, 0, len(env.Errors))
		for _, gqlErr := range env.Errors {
			messages = append(messages, gqlErr.Message)
		}
		return pkgerrors.
			New(pkgerrors.CodeUpstream, fmt.Sprintf("shopify %s graphql errors", c.surface)).
			WithDetails(map[string]any{"errors": messages})
	}

	if env.Data == nil {
		return pkgerrors.New(pkgerrors.CodeUpstream, fmt.Sprintf("shopify %s returned no data", c.surface))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, fmt.Sprintf("decode shopify %s data", c.surface))
	}
	return nil
}
