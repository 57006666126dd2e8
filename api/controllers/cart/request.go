package cart

import (
	"github.com/shopspring/decimal"

	cartsvc "github.com/mymessage/storefront-gateway/internal/cart"
)

// AddItemRequest carries a candidate line item; quantity is implied (always
// a single unit per add).
type AddItemRequest struct {
	ProductID       string                `json:"productId" validate:"required"`
	VariantID       string                `json:"variantId"`
	Name            string                `json:"name" validate:"required"`
	Price           decimal.Decimal       `json:"price"`
	ImageURL        string                `json:"imageUrl"`
	Href            string                `json:"href"`
	SelectedOptions []SelectedOptionInput `json:"selectedOptions" validate:"dive"`
}

type SelectedOptionInput struct {
	Name  string `json:"name" validate:"required"`
	Value string `json:"value" validate:"required"`
}

// SetQuantityRequest replaces the quantity on matching lines.
type SetQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

func (req AddItemRequest) toLineItem() cartsvc.LineItem {
	options := make([]cartsvc.SelectedOption, 0, len(req.SelectedOptions))
	for _, opt := range req.SelectedOptions {
		options = append(options, cartsvc.SelectedOption{Name: opt.Name, Value: opt.Value})
	}
	return cartsvc.LineItem{
		ProductID:       req.ProductID,
		VariantID:       req.VariantID,
		Name:            req.Name,
		UnitPrice:       req.Price,
		ImageURL:        req.ImageURL,
		Href:            req.Href,
		SelectedOptions: options,
	}
}
