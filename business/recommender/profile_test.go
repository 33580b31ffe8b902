//go:build !integration

package recommender

import (
	"testing"
	"time"

	"mySmartShop/domain"
	"gorm.io/datatypes"
)

func testCatalog() map[uint64]domain.Product {
	return map[uint64]domain.Product{
		1: {ID: 1, Name: "Trail Runner", Category: "shoes", Brand: "Apex", Price: 100, Rating: 4.6,
			Attributes: datatypes.JSONMap{"color": "black", "waterproof": true}},
		2: {ID: 2, Name: "Road Racer", Category: "shoes", Brand: "Apex", Price: 120, Rating: 4.2,
			Attributes: datatypes.JSONMap{"color": "black", "waterproof": false}},
		3: {ID: 3, Name: "Wool Beanie", Category: "hats", Brand: "North", Price: 30, Rating: 4.8,
			Attributes: datatypes.JSONMap{"color": "red"}},
	}
}

func TestBuildProfileEmpty(t *testing.T) {
	cfg := DefaultConfig()

	prof, err := buildProfile(nil, testCatalog(), time.Now(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !prof.empty() {
		t.Error("no interactions must yield an empty profile")
	}
}

func TestBuildProfileUnknownProductsOnly(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Now()

	interactions := []domain.Interaction{
		{ID: 1, UserID: 1, ProductID: 999, Kind: domain.InteractionView, Timestamp: now},
	}

	prof, err := buildProfile(interactions, testCatalog(), now, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !prof.empty() {
		t.Error("interactions on unknown products must not build a profile")
	}
}

func TestBuildProfileAffinities(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Now()

	// shoes: purchase(5) + view(1) = 6, hats: cart(3)
	interactions := []domain.Interaction{
		{ID: 1, UserID: 1, ProductID: 1, Kind: domain.InteractionPurchase, Timestamp: now},
		{ID: 2, UserID: 1, ProductID: 2, Kind: domain.InteractionView, Timestamp: now},
		{ID: 3, UserID: 1, ProductID: 3, Kind: domain.InteractionCart, Timestamp: now},
	}

	prof, err := buildProfile(interactions, testCatalog(), now, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if prof.empty() {
		t.Fatal("profile should not be empty")
	}

	if prof.interactions != 3 {
		t.Errorf("interactions = %d, want 3", prof.interactions)
	}
	if prof.categories[0].key != "shoes" || !almostEqual(prof.categories[0].weight, 6.0) {
		t.Errorf("top category = %+v, want shoes/6.0", prof.categories[0])
	}
	if prof.categories[1].key != "hats" || !almostEqual(prof.categories[1].weight, 3.0) {
		t.Errorf("second category = %+v, want hats/3.0", prof.categories[1])
	}
	if prof.brands[0].key != "Apex" {
		t.Errorf("top brand = %q, want Apex", prof.brands[0].key)
	}

	// weighted price mean: (5*100 + 1*120 + 3*30) / 9
	wantMean := (5.0*100 + 1.0*120 + 3.0*30) / 9.0
	if !almostEqual(prof.priceMean, wantMean) {
		t.Errorf("price mean = %v, want %v", prof.priceMean, wantMean)
	}
	if prof.priceStd <= 0 {
		t.Errorf("price std = %v, want > 0 for spread prices", prof.priceStd)
	}
}

func TestBuildProfileAttributeMode(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Now()

	// black wins color by weight (5+1 vs 3); waterproof true wins (5 vs 1)
	interactions := []domain.Interaction{
		{ID: 1, UserID: 1, ProductID: 1, Kind: domain.InteractionPurchase, Timestamp: now},
		{ID: 2, UserID: 1, ProductID: 2, Kind: domain.InteractionView, Timestamp: now},
		{ID: 3, UserID: 1, ProductID: 3, Kind: domain.InteractionCart, Timestamp: now},
	}

	prof, err := buildProfile(interactions, testCatalog(), now, cfg)
	if err != nil {
		t.Fatal(err)
	}

	if got := prof.attributes["color"]; got != "black" {
		t.Errorf("preferred color = %q, want black", got)
	}
	if got := prof.attributes["waterproof"]; got != "true" {
		t.Errorf("preferred waterproof = %q, want true", got)
	}
}

func TestTopVoteTieBreaksLexicographically(t *testing.T) {
	votes := map[string]float64{"red": 2.0, "blue": 2.0, "green": 1.0}
	if got := topVote(votes); got != "blue" {
		t.Errorf("topVote = %q, want blue", got)
	}
}

func TestAttributeValueKey(t *testing.T) {
	cases := []struct {
		in   any
		want string
		ok   bool
	}{
		{"black", "black", true},
		{true, "true", true},
		{float64(64), "64", true}, // JSON numbers decode as float64
		{42, "42", true},
		{int64(7), "7", true},
		{[]string{"x"}, "", false},
		{nil, "", false},
	}

	for _, c := range cases {
		got, ok := attributeValueKey(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("attributeValueKey(%v) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}
