package domain

// CatalogProduct is a single product entry as returned by the remote catalog.
type CatalogProduct struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	Rating   float64 `json:"rating"`
}

// CatalogResponse is the envelope the remote catalog wraps its products in.
type CatalogResponse struct {
	Products []CatalogProduct `json:"products"`
	Total    int              `json:"total"`
	Skip     int              `json:"skip"`
	Limit    int              `json:"limit"`
}

// ProductInfo holds the catalog attributes carried into enriched transactions.
type ProductInfo struct {
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	Rating   float64 `json:"rating"`
}

// ProductMapping maps a numeric product key (the ProductID with its leading
// "P" stripped) to its catalog attributes. Built once per run, read-only after.
type ProductMapping map[int]ProductInfo
