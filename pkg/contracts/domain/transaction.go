package domain

// Transaction represents a single parsed ledger row.
// Rows that fail field-count or numeric coercion never become Transactions;
// they are dropped by the parser before validation sees them.
//
// The validate tags carry the business predicates applied by
// dataprocessing.ValidateAndFilter: ID prefixes, non-empty region and
// strictly positive quantity and unit price.
type Transaction struct {
	TransactionID string  `json:"transaction_id" validate:"required,startswith=T"`
	Date          string  `json:"date"`
	ProductID     string  `json:"product_id" validate:"required,startswith=P"`
	ProductName   string  `json:"product_name"`
	Quantity      int     `json:"quantity" validate:"gt=0"`
	UnitPrice     float64 `json:"unit_price" validate:"gt=0"`
	CustomerID    string  `json:"customer_id" validate:"required,startswith=C"`
	Region        string  `json:"region" validate:"required"`
}

// Amount is the transaction value derived at validation time.
func (t Transaction) Amount() float64 {
	return float64(t.Quantity) * t.UnitPrice
}

// ValidatedTransaction is a Transaction that passed every validation predicate,
// with the derived Amount attached. It is immutable once created; downstream
// consumers (analytics, enrichment, report) read it but never modify it.
type ValidatedTransaction struct {
	Transaction
	Amount float64 `json:"amount"`
}

// EnrichedTransaction is a copy of a ValidatedTransaction augmented with
// catalog metadata. API fields are nil when the product could not be matched.
type EnrichedTransaction struct {
	ValidatedTransaction
	APICategory *string  `json:"api_category"`
	APIBrand    *string  `json:"api_brand"`
	APIRating   *float64 `json:"api_rating"`
	APIMatch    bool     `json:"api_match"`
}

// LedgerFieldCount is the exact number of pipe-delimited fields per ledger row.
const LedgerFieldCount = 8

// LedgerHeader lists the ledger columns in wire order.
var LedgerHeader = []string{
	"TransactionID", "Date", "ProductID", "ProductName",
	"Quantity", "UnitPrice", "CustomerID", "Region",
}

// EnrichedHeader lists the enriched export columns in wire order.
var EnrichedHeader = []string{
	"TransactionID", "Date", "ProductID", "ProductName",
	"Quantity", "UnitPrice", "CustomerID", "Region",
	"API_Category", "API_Brand", "API_Rating", "API_Match",
}
