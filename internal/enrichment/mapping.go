package enrichment

import (
	"salescli/pkg/contracts/domain"
)

// BuildProductMapping indexes catalog products by their numeric ID.
// Later duplicates overwrite earlier ones; the mapping is read-only after
// this call.
func BuildProductMapping(products []domain.CatalogProduct) domain.ProductMapping {
	mapping := make(domain.ProductMapping, len(products))
	for _, p := range products {
		mapping[p.ID] = domain.ProductInfo{
			Title:    p.Title,
			Category: p.Category,
			Brand:    p.Brand,
			Rating:   p.Rating,
		}
	}
	return mapping
}
