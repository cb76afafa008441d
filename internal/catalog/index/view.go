package index

import "panelbom_backend/internal/catalog/domain"

// View bundles a snapshot with its prebuilt indices. One View is built per
// catalog load and shared read-only across concurrent quotation requests.
type View struct {
	Snapshot    *domain.CatalogSnapshot
	Products    *ProductIndex
	Accessories *AccessoryIndex
}

// NewView builds both indices over the snapshot.
func NewView(snap *domain.CatalogSnapshot) *View {
	return &View{
		Snapshot:    snap,
		Products:    BuildProductIndex(snap),
		Accessories: BuildAccessoryIndex(snap),
	}
}
