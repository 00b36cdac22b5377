package dataprocessing

import (
	"sort"

	"github.com/shopspring/decimal"

	"salescli/pkg/contracts/domain"
)

// Default thresholds for the ranked product views.
const (
	DefaultTopN         = 5
	DefaultLowThreshold = 10
)

// round2 rounds a monetary aggregate to 2 decimal places. Rounding happens
// only at finalization; running sums stay unrounded.
func round2(f float64) float64 {
	v, _ := decimal.NewFromFloat(f).Round(2).Float64()
	return v
}

// CalculateTotalRevenue sums Quantity × UnitPrice over all transactions.
// No rounding is applied inside the sum; this is the same arithmetic that
// produced each transaction's Amount.
func CalculateTotalRevenue(transactions []domain.ValidatedTransaction) float64 {
	total := 0.0
	for _, tx := range transactions {
		total += float64(tx.Quantity) * tx.UnitPrice
	}
	return total
}

// RegionWiseSales aggregates sales per region, ordered by total sales
// descending. Ties keep the order in which regions first appear in the input.
// Percentage is each region's share of total revenue rounded to 2 decimals,
// or 0 when there is no revenue.
func RegionWiseSales(transactions []domain.ValidatedTransaction) []domain.RegionStats {
	grandTotal := CalculateTotalRevenue(transactions)

	byRegion := make(map[string]*domain.RegionStats)
	order := make([]string, 0)

	for _, tx := range transactions {
		stats, ok := byRegion[tx.Region]
		if !ok {
			stats = &domain.RegionStats{Region: tx.Region}
			byRegion[tx.Region] = stats
			order = append(order, tx.Region)
		}
		stats.TotalSales += float64(tx.Quantity) * tx.UnitPrice
		stats.TransactionCount++
	}

	result := make([]domain.RegionStats, 0, len(order))
	for _, region := range order {
		stats := *byRegion[region]
		if grandTotal > 0 {
			stats.Percentage = round2(stats.TotalSales / grandTotal * 100)
		}
		result = append(result, stats)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalSales > result[j].TotalSales
	})
	return result
}

// aggregateProducts rolls up quantity and revenue per product name in
// first-appearance order. Shared by the top-seller and low-performer views.
func aggregateProducts(transactions []domain.ValidatedTransaction) []domain.ProductStats {
	byName := make(map[string]*domain.ProductStats)
	order := make([]string, 0)

	for _, tx := range transactions {
		stats, ok := byName[tx.ProductName]
		if !ok {
			stats = &domain.ProductStats{Name: tx.ProductName}
			byName[tx.ProductName] = stats
			order = append(order, tx.ProductName)
		}
		stats.Quantity += tx.Quantity
		stats.Revenue += float64(tx.Quantity) * tx.UnitPrice
	}

	result := make([]domain.ProductStats, 0, len(order))
	for _, name := range order {
		stats := *byName[name]
		stats.Revenue = round2(stats.Revenue)
		result = append(result, stats)
	}
	return result
}

// TopSellingProducts returns the top n products by aggregate quantity sold,
// descending. Equal quantities keep first-appearance order.
func TopSellingProducts(transactions []domain.ValidatedTransaction, n int) []domain.ProductStats {
	products := aggregateProducts(transactions)

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Quantity > products[j].Quantity
	})

	if n < len(products) {
		products = products[:n]
	}
	return products
}

// LowPerformingProducts returns products whose aggregate quantity across all
// transactions is below threshold, ordered by quantity ascending.
func LowPerformingProducts(transactions []domain.ValidatedTransaction, threshold int) []domain.ProductStats {
	low := make([]domain.ProductStats, 0)
	for _, stats := range aggregateProducts(transactions) {
		if stats.Quantity < threshold {
			low = append(low, stats)
		}
	}

	sort.SliceStable(low, func(i, j int) bool {
		return low[i].Quantity < low[j].Quantity
	})
	return low
}

// CustomerAnalysis aggregates spending per customer, ordered by total spent
// descending. Products bought is the sorted set of distinct product names;
// spent and average order value are rounded to 2 decimals.
func CustomerAnalysis(transactions []domain.ValidatedTransaction) []domain.CustomerStats {
	type accumulator struct {
		totalSpent    float64
		purchaseCount int
		products      map[string]struct{}
	}

	byCustomer := make(map[string]*accumulator)
	order := make([]string, 0)

	for _, tx := range transactions {
		acc, ok := byCustomer[tx.CustomerID]
		if !ok {
			acc = &accumulator{products: make(map[string]struct{})}
			byCustomer[tx.CustomerID] = acc
			order = append(order, tx.CustomerID)
		}
		acc.totalSpent += float64(tx.Quantity) * tx.UnitPrice
		acc.purchaseCount++
		acc.products[tx.ProductName] = struct{}{}
	}

	result := make([]domain.CustomerStats, 0, len(order))
	for _, customerID := range order {
		acc := byCustomer[customerID]

		products := make([]string, 0, len(acc.products))
		for name := range acc.products {
			products = append(products, name)
		}
		sort.Strings(products)

		avg := 0.0
		if acc.purchaseCount > 0 {
			avg = round2(acc.totalSpent / float64(acc.purchaseCount))
		}

		result = append(result, domain.CustomerStats{
			CustomerID:     customerID,
			TotalSpent:     round2(acc.totalSpent),
			PurchaseCount:  acc.purchaseCount,
			AvgOrderValue:  avg,
			ProductsBought: products,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalSpent > result[j].TotalSpent
	})
	return result
}

// DailySalesTrend aggregates revenue, transaction count and distinct customer
// count per date, ordered by the date string ascending.
func DailySalesTrend(transactions []domain.ValidatedTransaction) []domain.DailyStats {
	type accumulator struct {
		revenue   float64
		count     int
		customers map[string]struct{}
	}

	byDate := make(map[string]*accumulator)

	for _, tx := range transactions {
		acc, ok := byDate[tx.Date]
		if !ok {
			acc = &accumulator{customers: make(map[string]struct{})}
			byDate[tx.Date] = acc
		}
		acc.revenue += float64(tx.Quantity) * tx.UnitPrice
		acc.count++
		acc.customers[tx.CustomerID] = struct{}{}
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	result := make([]domain.DailyStats, 0, len(dates))
	for _, date := range dates {
		acc := byDate[date]
		result = append(result, domain.DailyStats{
			Date:             date,
			Revenue:          round2(acc.revenue),
			TransactionCount: acc.count,
			UniqueCustomers:  len(acc.customers),
		})
	}
	return result
}

// FindPeakSalesDay returns the date with the maximum daily revenue. The
// earliest such date wins on a tie. For an empty input the sentinel
// {Date: "", Revenue: -1} is returned, which stays distinguishable from a
// legitimate zero-revenue day.
func FindPeakSalesDay(transactions []domain.ValidatedTransaction) domain.PeakDay {
	peak := domain.PeakDay{Revenue: -1}

	for _, day := range DailySalesTrend(transactions) {
		if day.Revenue > peak.Revenue {
			peak = domain.PeakDay{
				Date:             day.Date,
				Revenue:          day.Revenue,
				TransactionCount: day.TransactionCount,
			}
		}
	}
	return peak
}
