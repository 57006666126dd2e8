package cart

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

// SelectedOption is one (name, value) pair chosen on a product, e.g.
// ("Size", "M").
type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Identity is the merge key deciding whether two additions refer to the same
// purchasable thing. When both sides carry a variant id the variant ids
// decide; otherwise the product id plus the canonically ordered option set
// decides.
type Identity struct {
	variantID string
	productID string
	options   []SelectedOption
}

// ByVariant keys an identity on the platform variant id alone.
func ByVariant(variantID string) Identity {
	return Identity{variantID: variantID}
}

// ByProductOptions keys an identity on the product id and its selected
// options. The options are copied and sorted so structurally equal sets
// compare equal regardless of input order.
func ByProductOptions(productID string, options []SelectedOption) Identity {
	sorted := make([]SelectedOption, len(options))
	copy(sorted, options)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].Value < sorted[j].Value
	})
	return Identity{productID: productID, options: sorted}
}

// Equal implements the single merge-equality rule for cart lines: equal
// non-empty variant ids, or equal product ids with structurally equal option
// sets. The empty-variant guard keeps two variantless lines from matching on
// "" == "".
func (id Identity) Equal(other Identity) bool {
	if id.variantID != "" && id.variantID == other.variantID {
		return true
	}
	if id.productID == "" || id.productID != other.productID {
		return false
	}
	if len(id.options) != len(other.options) {
		return false
	}
	for i := range id.options {
		if id.options[i] != other.options[i] {
			return false
		}
	}
	return true
}

// LineItem is one entry in the cart: a purchasable variant and its quantity.
type LineItem struct {
	ProductID       string           `json:"productId"`
	VariantID       string           `json:"variantId,omitempty"`
	Name            string           `json:"name"`
	UnitPrice       decimal.Decimal  `json:"price"`
	Quantity        int              `json:"quantity"`
	ImageURL        string           `json:"imageUrl,omitempty"`
	Href            string           `json:"href,omitempty"`
	SelectedOptions []SelectedOption `json:"selectedOptions,omitempty"`
}

// Identity derives the full merge key for this line, carrying both the
// variant id and the product/options shape so either equality clause can
// apply.
func (li LineItem) Identity() Identity {
	id := ByProductOptions(li.ProductID, li.SelectedOptions)
	id.variantID = li.VariantID
	return id
}

// Store holds the line items a shopper intends to purchase, insertion
// ordered for display, plus the cart panel visibility flag. Every quantity
// is at least 1; deletion is removal, never a zero quantity. A mutex guards
// the store because HTTP handlers mutate it concurrently.
type Store struct {
	mu    sync.Mutex
	lines []LineItem
	open  bool
}

// NewStore returns an empty cart.
func NewStore() *Store {
	return &Store{}
}

// AddItem merges the candidate into the cart: if a line with the same
// identity exists its quantity is incremented by 1, otherwise the candidate
// is appended with quantity 1. The candidate's own Quantity field is
// ignored. AddItem never fails.
func (s *Store) AddItem(candidate LineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	identity := candidate.Identity()
	for i := range s.lines {
		if s.lines[i].Identity().Equal(identity) {
			s.lines[i].Quantity++
			return
		}
	}

	candidate.Quantity = 1
	s.lines = append(s.lines, candidate)
}

// RemoveItem deletes every line whose product id matches. This keys on the
// coarse product id, not the full identity, so all option-variants of the
// product go at once. No-op when nothing matches.
func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.lines[:0]
	for _, line := range s.lines {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	s.lines = kept
}

// SetQuantity replaces the quantity on every line matching the product id.
// Quantities below 1 are ignored rather than treated as deletion.
func (s *Store) SetQuantity(productID string, quantity int) {
	if quantity < 1 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity = quantity
		}
	}
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]LineItem, len(s.lines))
	copy(items, s.lines)
	return items
}

// ItemCount is the sum of all line quantities, recomputed on every call.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

// Total is the sum of unit price times quantity across lines, recomputed on
// every call.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// Open marks the cart panel visible.
func (s *Store) Open() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = true
}

// Close marks the cart panel hidden.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
}

// IsOpen reports the panel visibility flag.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}
