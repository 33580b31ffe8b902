package domain

// UserInsights is the read-only projection of a user profile consumed by
// the explanation generator and the UI. An all-empty value means "no
// interaction history", not "preference for nothing".
type UserInsights struct {
	TotalInteractions  int                `json:"total_interactions"`
	FavoriteCategories []CategoryAffinity `json:"favorite_categories"`
	FavoriteBrands     []BrandAffinity    `json:"favorite_brands"`
	AvgPrice           float64            `json:"avg_price"`
	PriceSpread        float64            `json:"price_spread"`
	RecentPurchases    []PurchaseSummary  `json:"recent_purchases"`
}

type CategoryAffinity struct {
	Category string  `json:"category"`
	Weight   float64 `json:"weight"`
}

type BrandAffinity struct {
	Brand  string  `json:"brand"`
	Weight float64 `json:"weight"`
}

type PurchaseSummary struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}
