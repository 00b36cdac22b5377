package domain

// RegionStats holds per-region aggregates. Percentage is the region's share of
// total revenue, rounded to 2 decimals (0 when total revenue is 0).
type RegionStats struct {
	Region           string  `json:"region"`
	TotalSales       float64 `json:"total_sales"`
	TransactionCount int     `json:"transaction_count"`
	Percentage       float64 `json:"percentage"`
}

// ProductStats holds per-product aggregates used for the top-seller and
// low-performer views. Revenue is rounded to 2 decimals at finalization.
type ProductStats struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// CustomerStats holds per-customer aggregates. ProductsBought is the sorted
// set of distinct product names; monetary fields are rounded to 2 decimals.
type CustomerStats struct {
	CustomerID     string   `json:"customer_id"`
	TotalSpent     float64  `json:"total_spent"`
	PurchaseCount  int      `json:"purchase_count"`
	AvgOrderValue  float64  `json:"avg_order_value"`
	ProductsBought []string `json:"products_bought"`
}

// DailyStats holds per-date aggregates, revenue rounded to 2 decimals.
type DailyStats struct {
	Date             string  `json:"date"`
	Revenue          float64 `json:"revenue"`
	TransactionCount int     `json:"transaction_count"`
	UniqueCustomers  int     `json:"unique_customers"`
}

// PeakDay identifies the date with the highest daily revenue. For an empty
// input the sentinel {Date: "", Revenue: -1, TransactionCount: 0} is returned
// so that an empty set is distinguishable from a zero-revenue day.
type PeakDay struct {
	Date             string  `json:"date"`
	Revenue          float64 `json:"revenue"`
	TransactionCount int     `json:"transaction_count"`
}

// FilterSummary reports the outcome of a validate-and-filter pass.
// AvailableRegions and the amount bounds describe the valid set before any
// filter is applied, so a caller can present filter choices from a preview
// pass without re-deriving them.
type FilterSummary struct {
	TotalInput       int `json:"total_input"`
	Invalid          int `json:"invalid"`
	FilteredByRegion int `json:"filtered_by_region"`
	FilteredByAmount int `json:"filtered_by_amount"`
	FinalCount       int `json:"final_count"`

	AvailableRegions []string `json:"available_regions"`
	MinAmount        float64  `json:"min_amount"`
	MaxAmount        float64  `json:"max_amount"`
}
