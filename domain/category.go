package domain

// CategorySummary is a read-only projection over the products table:
// categories are an open set of strings owned by the catalog, there is no
// separate category entity.
type CategorySummary struct {
	Category     string `json:"category"`
	ProductCount int64  `json:"product_count"`
}
