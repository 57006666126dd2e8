package cart

import (
	cartsvc "github.com/mymessage/storefront-gateway/internal/cart"
)

// CartView is the full cart snapshot returned after every read or mutation.
type CartView struct {
	Items     []cartsvc.LineItem `json:"items"`
	ItemCount int                `json:"itemCount"`
	Total     string             `json:"total"`
	IsOpen    bool               `json:"isOpen"`
}

func newCartView(store *cartsvc.Store) CartView {
	return CartView{
		Items:     store.Items(),
		ItemCount: store.ItemCount(),
		Total:     store.Total().StringFixed(2),
		IsOpen:    store.IsOpen(),
	}
}
