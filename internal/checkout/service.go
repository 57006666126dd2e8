package checkout

import (
	"context"
	"fmt"

	"github.com/mymessage/storefront-gateway/internal/cart"
	pkgerrors "github.com/mymessage/storefront-gateway/pkg/errors"
	"github.com/mymessage/storefront-gateway/pkg/logger"
)

const cartCreateMutation = `
mutation cartCreate($lines: [CartLineInput!]!) {
  cartCreate(input: { lines: $lines }) {
    cart {
      id
      checkoutUrl
    }
    userErrors {
      field
      message
    }
  }
}`

type cartCreateData struct {
	CartCreate struct {
		Cart *struct {
			ID          string `json:"id"`
			CheckoutURL string `json:"checkoutUrl"`
		} `json:"cart"`
		UserErrors []struct {
			Field   []string `json:"field"`
			Message string   `json:"message"`
		} `json:"userErrors"`
	} `json:"cartCreate"`
}

type graphqlDoer interface {
	Do(ctx context.Context, query string, variables map[string]any, out any) error
}

// Service hands a session cart off to the platform's hosted checkout.
type Service interface {
	CreateCheckout(ctx context.Context, items []cart.LineItem) (string, error)
}

type service struct {
	storefront graphqlDoer
	logg       *logger.Logger
}

// NewService builds a checkout service on the storefront GraphQL client.
func NewService(storefront graphqlDoer, logg *logger.Logger) (Service, error) {
	if storefront == nil {
		return nil, fmt.Errorf("storefront graphql client required")
	}
	return &service{storefront: storefront, logg: logg}, nil
}

// CreateCheckout creates a platform cart from the session's line items and
// returns the hosted checkout URL. Platform userErrors map to validation
// failures since they describe bad line input (unknown variant, zero
// quantity).
func (s *service) CreateCheckout(ctx context.Context, items []cart.LineItem) (string, error) {
	if len(items) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	lines := make([]map[string]any, 0, len(items))
	for _, item := range items {
		merchandiseID := item.VariantID
		if merchandiseID == "" {
			merchandiseID = item.ProductID
		}
		lines = append(lines, map[string]any{
			"merchandiseId": merchandiseID,
			"quantity":      item.Quantity,
		})
	}

	var data cartCreateData
	if err := s.storefront.Do(ctx, cartCreateMutation, map[string]any{"lines": lines}, &data); err != nil {
		return "", err
	}

	if len(data.CartCreate.UserErrors) > 0 {
		messages := make([]string, 0, len(data.CartCreate.UserErrors))
		for _, userErr := range data.CartCreate.UserErrors {
			messages = append(messages, userErr.Message)
		}
		return "", pkgerrors.
			New(pkgerrors.CodeValidation, messages[0]).
			WithDetails(map[string]any{"userErrors": messages})
	}

	if data.CartCreate.Cart == nil || data.CartCreate.Cart.CheckoutURL == "" {
		return "", pkgerrors.New(pkgerrors.CodeUpstream, "cart created without checkout url")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{
			"cart_id": data.CartCreate.Cart.ID,
			"lines":   len(lines),
		}), "checkout.cart_created")
	}

	return data.CartCreate.Cart.CheckoutURL, nil
}
