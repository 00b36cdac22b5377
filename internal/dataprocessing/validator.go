package dataprocessing

import (
	"log/slog"
	"sort"

	"github.com/go-playground/validator/v10"

	"salescli/pkg/contracts/domain"
)

// validate applies the business predicates declared as struct tags on
// domain.Transaction: ID prefixes, non-empty region, positive quantity and
// unit price.
var validate = validator.New()

// FilterOptions narrows the valid set after validation. The zero value means
// "no filters": that is the preview mode used to surface available regions and
// the amount range before filters are chosen.
type FilterOptions struct {
	Region    string
	MinAmount *float64
	MaxAmount *float64
}

// ValidateAndFilter validates parsed transactions and applies the optional
// filters in fixed order: region, then minimum amount, then maximum amount.
// It returns the surviving transactions with their derived Amount, the number
// of records that failed validation, and a summary of the whole pass.
//
// Min- and max-amount removals are merged into a single FilteredByAmount
// counter; region removals are tracked on their own.
func ValidateAndFilter(transactions []domain.Transaction, opts FilterOptions) ([]domain.ValidatedTransaction, int, domain.FilterSummary) {
	valid := make([]domain.ValidatedTransaction, 0, len(transactions))
	invalid := 0

	regionSet := make(map[string]struct{})
	var minAmount, maxAmount float64

	for _, tx := range transactions {
		if err := validate.Struct(tx); err != nil {
			invalid++
			continue
		}

		amount := tx.Amount()
		if len(valid) == 0 {
			minAmount, maxAmount = amount, amount
		} else {
			if amount < minAmount {
				minAmount = amount
			}
			if amount > maxAmount {
				maxAmount = amount
			}
		}
		regionSet[tx.Region] = struct{}{}

		valid = append(valid, domain.ValidatedTransaction{
			Transaction: tx,
			Amount:      amount,
		})
	}

	regions := make([]string, 0, len(regionSet))
	for region := range regionSet {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	// Filters narrow the valid set sequentially; each stage only sees what
	// the previous one kept.
	filtered := valid
	filteredByRegion := 0
	filteredByAmount := 0

	if opts.Region != "" {
		before := len(filtered)
		filtered = keep(filtered, func(t domain.ValidatedTransaction) bool {
			return t.Region == opts.Region
		})
		filteredByRegion = before - len(filtered)
	}
	if opts.MinAmount != nil {
		before := len(filtered)
		filtered = keep(filtered, func(t domain.ValidatedTransaction) bool {
			return t.Amount >= *opts.MinAmount
		})
		filteredByAmount += before - len(filtered)
	}
	if opts.MaxAmount != nil {
		before := len(filtered)
		filtered = keep(filtered, func(t domain.ValidatedTransaction) bool {
			return t.Amount <= *opts.MaxAmount
		})
		filteredByAmount += before - len(filtered)
	}

	summary := domain.FilterSummary{
		TotalInput:       len(transactions),
		Invalid:          invalid,
		FilteredByRegion: filteredByRegion,
		FilteredByAmount: filteredByAmount,
		FinalCount:       len(filtered),
		AvailableRegions: regions,
		MinAmount:        minAmount,
		MaxAmount:        maxAmount,
	}

	slog.Debug("validation pass complete",
		slog.Int("total_input", summary.TotalInput),
		slog.Int("invalid", summary.Invalid),
		slog.Int("filtered_by_region", summary.FilteredByRegion),
		slog.Int("filtered_by_amount", summary.FilteredByAmount),
		slog.Int("final_count", summary.FinalCount))

	return filtered, invalid, summary
}

// keep filters a slice into a fresh one so the pre-filter valid set is never
// mutated in place.
func keep(txs []domain.ValidatedTransaction, pred func(domain.ValidatedTransaction) bool) []domain.ValidatedTransaction {
	out := make([]domain.ValidatedTransaction, 0, len(txs))
	for _, tx := range txs {
		if pred(tx) {
			out = append(out, tx)
		}
	}
	return out
}
