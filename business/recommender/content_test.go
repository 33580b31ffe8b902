//go:build !integration

package recommender

import (
	"testing"
	"time"

	"mySmartShop/domain"
	"gorm.io/datatypes"
)

func TestContentScoreEmptyProfile(t *testing.T) {
	product := testCatalog()[1]

	if got := contentScore(product, nil); got != 0 {
		t.Errorf("score with nil profile = %v, want 0", got)
	}
	if got := contentScore(product, &profile{}); got != 0 {
		t.Errorf("score with zero profile = %v, want 0", got)
	}
}

func TestContentScorePerfectMatch(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Now()

	catalog := map[uint64]domain.Product{
		1: {ID: 1, Category: "shoes", Brand: "Apex", Price: 100,
			Attributes: datatypes.JSONMap{"color": "black"}},
	}
	interactions := []domain.Interaction{
		{ID: 1, UserID: 1, ProductID: 1, Kind: domain.InteractionPurchase, Timestamp: now},
	}

	prof, err := buildProfile(interactions, catalog, now, cfg)
	if err != nil {
		t.Fatal(err)
	}

	// candidate identical to the entire history scores the full 1.0
	if got := contentScore(catalog[1], prof); !almostEqual(got, 1.0) {
		t.Errorf("perfect match score = %v, want 1.0", got)
	}
}

func TestContentScoreSubWeights(t *testing.T) {
	prof := &profile{
		categoryWeight:      map[string]float64{"shoes": 6, "hats": 4},
		totalCategoryWeight: 10,
		brandWeight:         map[string]float64{"Apex": 5},
		totalBrandWeight:    5,
		priceMean:           100,
		attributes:          map[string]string{"color": "black", "waterproof": "true"},
		interactions:        3,
	}

	// category share 0.6, full brand share, price at mean, 1 of 2 attributes
	product := domain.Product{
		Category: "shoes", Brand: "Apex", Price: 100,
		Attributes: datatypes.JSONMap{"color": "black", "waterproof": false},
	}

	want := 0.4*0.6 + 0.2*1.0 + 0.2*1.0 + 0.2*0.5
	if got := contentScore(product, prof); !almostEqual(got, want) {
		t.Errorf("score = %v, want %v", got, want)
	}

	// unknown category and brand contribute nothing
	other := domain.Product{Category: "books", Brand: "Elsewhere", Price: 100}
	want = 0.2 * 1.0 // only the price term
	if got := contentScore(other, prof); !almostEqual(got, want) {
		t.Errorf("mismatched score = %v, want %v", got, want)
	}
}

func TestPriceSimilarity(t *testing.T) {
	cases := []struct {
		price, mean, want float64
	}{
		{100, 100, 1.0},
		{80, 100, 0.8},
		{120, 100, 0.8},
		{250, 100, 0},  // clipped at zero
		{50, 0, 0},     // no price history
		{100, -10, 0},  // degenerate mean
	}

	for _, c := range cases {
		if got := priceSimilarity(c.price, c.mean); !almostEqual(got, c.want) {
			t.Errorf("priceSimilarity(%v, %v) = %v, want %v", c.price, c.mean, got, c.want)
		}
	}
}

func TestAttributeMatch(t *testing.T) {
	preferred := map[string]string{"color": "black", "waterproof": "true"}

	full := datatypes.JSONMap{"color": "black", "waterproof": true}
	if got := attributeMatch(full, preferred); !almostEqual(got, 1.0) {
		t.Errorf("full match = %v, want 1.0", got)
	}

	half := datatypes.JSONMap{"color": "black"}
	if got := attributeMatch(half, preferred); !almostEqual(got, 0.5) {
		t.Errorf("half match = %v, want 0.5", got)
	}

	if got := attributeMatch(full, nil); got != 0 {
		t.Errorf("no preference = %v, want 0", got)
	}
}
