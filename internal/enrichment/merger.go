package enrichment

import (
	"strconv"
	"strings"

	"salescli/pkg/contracts/domain"
)

// Merge joins valid transactions with catalog metadata. The numeric join key
// is the ProductID with its single leading "P" stripped; a malformed ID or a
// key absent from the mapping marks that record unmatched rather than failing
// the merge. The input is never mutated and output order follows input order.
func Merge(transactions []domain.ValidatedTransaction, mapping domain.ProductMapping) []domain.EnrichedTransaction {
	enriched := make([]domain.EnrichedTransaction, 0, len(transactions))

	for _, tx := range transactions {
		e := domain.EnrichedTransaction{ValidatedTransaction: tx}

		if key, ok := productKey(tx.ProductID); ok {
			if info, found := mapping[key]; found {
				category := info.Category
				brand := info.Brand
				rating := info.Rating
				e.APICategory = &category
				e.APIBrand = &brand
				e.APIRating = &rating
				e.APIMatch = true
			}
		}

		enriched = append(enriched, e)
	}

	return enriched
}

// MatchedCount reports how many enriched records carry catalog metadata.
func MatchedCount(enriched []domain.EnrichedTransaction) int {
	count := 0
	for _, e := range enriched {
		if e.APIMatch {
			count++
		}
	}
	return count
}

// productKey extracts the numeric catalog key from a formatted product ID.
func productKey(productID string) (int, bool) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(productID), "P")
	key, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, false
	}
	return key, true
}
