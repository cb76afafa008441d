// Package index provides constant-time lookup structures over a catalog
// snapshot. Indices are built once per snapshot with all text keys folded at
// build time; per-query work never re-scans or re-normalizes the catalog.
package index

import (
	"fmt"
	"strings"

	"panelbom_backend/internal/catalog/domain"
	"panelbom_backend/platform/apperr"
	"panelbom_backend/platform/textnorm"
)

type familyThickness struct {
	family      domain.Family
	thicknessMM float64
}

// ProductIndex resolves products by key, SKU, display name, and
// (family, thickness). All text lookups are case- and accent-insensitive.
type ProductIndex struct {
	products          []domain.Product
	byKey             map[string]int
	bySKU             map[string]int
	byName            map[string]int
	byFamilyThickness map[familyThickness]int
}

// BuildProductIndex constructs the index in a single pass over the snapshot.
func BuildProductIndex(snap *domain.CatalogSnapshot) *ProductIndex {
	ix := &ProductIndex{
		products:          snap.Products,
		byKey:             make(map[string]int, len(snap.Products)),
		bySKU:             make(map[string]int, len(snap.Products)),
		byName:            make(map[string]int, len(snap.Products)),
		byFamilyThickness: make(map[familyThickness]int, len(snap.Products)),
	}

	for i, p := range snap.Products {
		ix.byKey[textnorm.Fold(p.Key)] = i
		if p.SKU != "" {
			ix.bySKU[textnorm.Fold(p.SKU)] = i
		}
		ix.byName[textnorm.Fold(p.Name)] = i
		ix.byFamilyThickness[familyThickness{p.Family, p.ThicknessMM}] = i
	}

	return ix
}

// FindByKey resolves a product by its catalog key.
func (ix *ProductIndex) FindByKey(key string) (domain.Product, bool) {
	return ix.lookup(ix.byKey, key)
}

// FindBySKU resolves a product by SKU.
func (ix *ProductIndex) FindBySKU(sku string) (domain.Product, bool) {
	return ix.lookup(ix.bySKU, sku)
}

// FindByName resolves a product by its full display name.
func (ix *ProductIndex) FindByName(name string) (domain.Product, bool) {
	return ix.lookup(ix.byName, name)
}

// FindByFamilyAndThickness resolves a product by panel family and thickness.
// A negative or zero thickness is malformed input, not an ordinary miss.
func (ix *ProductIndex) FindByFamilyAndThickness(family domain.Family, thicknessMM float64) (domain.Product, bool, error) {
	if thicknessMM <= 0 {
		return domain.Product{}, false, apperr.Validation(
			fmt.Sprintf("thickness must be positive, got %g", thicknessMM))
	}

	i, ok := ix.byFamilyThickness[familyThickness{family, thicknessMM}]
	if !ok {
		return domain.Product{}, false, nil
	}
	return ix.products[i], true, nil
}

func (ix *ProductIndex) lookup(m map[string]int, raw string) (domain.Product, bool) {
	i, ok := m[textnorm.Fold(raw)]
	if !ok {
		return domain.Product{}, false
	}
	return ix.products[i], true
}

// AccessoryIndex resolves accessories by SKU, exact folded name, and keyword.
type AccessoryIndex struct {
	accessories []domain.Accessory
	bySKU       map[string]int
	byName      map[string]int
	foldedNames []string // parallel to accessories, computed once at build
}

// BuildAccessoryIndex constructs the index in a single pass over the snapshot.
func BuildAccessoryIndex(snap *domain.CatalogSnapshot) *AccessoryIndex {
	ix := &AccessoryIndex{
		accessories: snap.Accessories,
		bySKU:       make(map[string]int, len(snap.Accessories)),
		byName:      make(map[string]int, len(snap.Accessories)),
		foldedNames: make([]string, len(snap.Accessories)),
	}

	for i, a := range snap.Accessories {
		ix.bySKU[textnorm.Fold(a.SKU)] = i
		ix.byName[textnorm.Fold(a.Name)] = i
		ix.foldedNames[i] = textnorm.Fold(a.Name)
	}

	return ix
}

// FindBySKU resolves an accessory by SKU.
func (ix *AccessoryIndex) FindBySKU(sku string) (domain.Accessory, bool) {
	i, ok := ix.bySKU[textnorm.Fold(sku)]
	if !ok {
		return domain.Accessory{}, false
	}
	return ix.accessories[i], true
}

// FindByName resolves an accessory by its full display name.
func (ix *AccessoryIndex) FindByName(name string) (domain.Accessory, bool) {
	i, ok := ix.byName[textnorm.Fold(name)]
	if !ok {
		return domain.Accessory{}, false
	}
	return ix.accessories[i], true
}

// FindByKeyword returns the first accessory whose folded name contains the
// folded keyword and which is compatible with the given family. The scan
// runs over names folded at build time, in catalog order.
func (ix *AccessoryIndex) FindByKeyword(keyword string, family domain.Family) (domain.Accessory, bool) {
	folded := textnorm.Fold(keyword)
	if folded == "" {
		return domain.Accessory{}, false
	}

	for i, name := range ix.foldedNames {
		if !strings.Contains(name, folded) {
			continue
		}
		if ix.accessories[i].CompatibleWith(family) {
			return ix.accessories[i], true
		}
	}
	return domain.Accessory{}, false
}
