package engine

import (
	"fmt"
	"strings"

	catalog "panelbom_backend/internal/catalog/domain"
	"panelbom_backend/internal/catalog/index"
	"panelbom_backend/platform/apperr"
)

// AccessoryMatch is a resolved accessory plus the strategy that matched it.
type AccessoryMatch struct {
	Accessory catalog.Accessory `json:"accessory"`
	Strategy  string            `json:"strategy"`
}

// AccessoryResolver matches a free-form query to a catalog accessory through
// ordered strategies: exact name, then SKU, then normalized keyword plus
// family compatibility. Each strategy is a prebuilt index lookup; a miss is a
// typed not-found result, never a fabricated price.
type AccessoryResolver struct {
	index *index.AccessoryIndex
}

// NewAccessoryResolver creates a resolver over the snapshot's accessory index.
func NewAccessoryResolver(ix *index.AccessoryIndex) *AccessoryResolver {
	return &AccessoryResolver{index: ix}
}

// Resolve returns the first strategy hit for the query, or KindNotFound
// naming the attempted query so callers can report "not available in catalog".
func (r *AccessoryResolver) Resolve(query string, family catalog.Family) (AccessoryMatch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return AccessoryMatch{}, apperr.Validation("accessory query is empty")
	}

	if accessory, ok := r.index.FindByName(query); ok {
		return AccessoryMatch{Accessory: accessory, Strategy: "name"}, nil
	}
	if accessory, ok := r.index.FindBySKU(query); ok {
		return AccessoryMatch{Accessory: accessory, Strategy: "sku"}, nil
	}
	if accessory, ok := r.index.FindByKeyword(query, family); ok {
		return AccessoryMatch{Accessory: accessory, Strategy: "keyword"}, nil
	}

	return AccessoryMatch{}, apperr.NotFound(
		fmt.Sprintf("accessory %q not available in catalog", query)).
		WithDetails(map[string]string{"query": query, "family": string(family)})
}
