//go:build !integration

package recommender

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"mySmartShop/domain"
)

// ---- fakes ----

type fakeProductRepo struct {
	products []domain.Product
	err      error
}

func (f *fakeProductRepo) FindAll(_ context.Context) ([]domain.Product, error) {
	return f.products, f.err
}

type fakeInteractionRepo struct {
	interactions []domain.Interaction
}

func (f *fakeInteractionRepo) FindAllSince(_ context.Context, since time.Time) ([]domain.Interaction, error) {
	out := make([]domain.Interaction, 0, len(f.interactions))
	for _, it := range f.interactions {
		if !it.Timestamp.Before(since) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeInteractionRepo) FindByUserSince(ctx context.Context, userID uint, since time.Time) ([]domain.Interaction, error) {
	all, _ := f.FindAllSince(ctx, since)
	out := make([]domain.Interaction, 0, len(all))
	for _, it := range all {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[uint]domain.User
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, errors.New("record not found")
	}
	return u, nil
}

type fakeRecommendationRepo struct {
	saved   []domain.Recommendation
	saveErr error
}

func (f *fakeRecommendationRepo) SaveBatch(_ context.Context, recs []domain.Recommendation) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, recs...)
	return nil
}

func (f *fakeRecommendationRepo) DeleteOlderThanBatches(_ context.Context, _ uint, _ int) error {
	return nil
}

func (f *fakeRecommendationRepo) FindLatestByUser(_ context.Context, userID uint, limit int) ([]domain.Recommendation, error) {
	out := make([]domain.Recommendation, 0, limit)
	for _, r := range f.saved {
		if r.UserID == userID && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeExplainRepo struct {
	err   error
	calls int
}

func (f *fakeExplainRepo) Explain(_ context.Context, _ domain.UserInsights, product domain.Product, _ float64, _ int) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "Generated text for " + product.Name, nil
}

// ---- fixtures ----

func fixtureProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Trail Runner", Category: "shoes", Brand: "Apex", Price: 100, Rating: 4.6},
		{ID: 2, Name: "Road Racer", Category: "shoes", Brand: "Apex", Price: 120, Rating: 4.2},
		{ID: 3, Name: "Wool Beanie", Category: "hats", Brand: "North", Price: 30, Rating: 4.8},
		{ID: 4, Name: "Rain Shell", Category: "jackets", Brand: "North", Price: 150, Rating: 4.4},
	}
}

func newTestService(products []domain.Product, interactions []domain.Interaction, explain ExplanationRepository) (*Service, *fakeRecommendationRepo) {
	recRepo := &fakeRecommendationRepo{}
	svc := NewService(
		&fakeProductRepo{products: products},
		&fakeInteractionRepo{interactions: interactions},
		&fakeUserRepo{users: map[uint]domain.User{1: {ID: 1}, 2: {ID: 2}, 3: {ID: 3}}},
		recRepo,
		explain,
		nil,
		DefaultConfig(),
		time.Second,
	)
	return svc, recRepo
}

// ---- tests ----

func TestRecommendUnknownUser(t *testing.T) {
	svc, _ := newTestService(fixtureProducts(), nil, nil)

	_, err := svc.Recommend(context.Background(), 999, RecommendOptions{})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRecommendEmptyCatalog(t *testing.T) {
	svc, _ := newTestService(nil, nil, nil)

	items, err := svc.Recommend(context.Background(), 1, RecommendOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Errorf("empty catalog must yield an empty list, got %d items", len(items))
	}
}

func TestRecommendColdStart(t *testing.T) {
	now := time.Now()

	// user 1 has no history; users 2 and 3 drive popularity
	interactions := []domain.Interaction{
		{ID: 1, UserID: 2, ProductID: 3, Kind: domain.InteractionView, Timestamp: now},
		{ID: 2, UserID: 3, ProductID: 3, Kind: domain.InteractionView, Timestamp: now},
		{ID: 3, UserID: 2, ProductID: 1, Kind: domain.InteractionView, Timestamp: now},
	}

	svc, _ := newTestService(fixtureProducts(), interactions, nil)

	items, err := svc.Recommend(context.Background(), 1, RecommendOptions{Limit: 3})
	if err != nil {
		t.Fatal(err)
	}

	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	if items[0].Algorithm != AlgorithmPopularity {
		t.Errorf("algorithm = %q, want %q", items[0].Algorithm, AlgorithmPopularity)
	}
	if items[0].ProductID != 3 {
		t.Errorf("top product = %d, want the most viewed (3)", items[0].ProductID)
	}
	for i, item := range items {
		if item.Rank != i+1 {
			t.Errorf("item %d rank = %d, want %d", i, item.Rank, i+1)
		}
	}
}

func TestRecommendHybridExcludesPurchased(t *testing.T) {
	now := time.Now()

	interactions := []domain.Interaction{
		{ID: 1, UserID: 1, ProductID: 1, Kind: domain.InteractionPurchase, Timestamp: now},
		{ID: 2, UserID: 1, ProductID: 2, Kind: domain.InteractionView, Timestamp: now},
		{ID: 3, UserID: 2, ProductID: 1, Kind: domain.InteractionPurchase, Timestamp: now},
		{ID: 4, UserID: 2, ProductID: 4, Kind: domain.InteractionCart, Timestamp: now},
	}

	svc, recRepo := newTestService(fixtureProducts(), interactions, nil)

	items, err := svc.Recommend(context.Background(), 1, RecommendOptions{Limit: 10})
	if err != nil {
		t.Fatal(err)
	}

	if len(items) == 0 {
		t.Fatal("expected hybrid recommendations")
	}
	if items[0].Algorithm != AlgorithmHybrid {
		t.Errorf("algorithm = %q, want %q", items[0].Algorithm, AlgorithmHybrid)
	}

	seenViewed := false
	for _, item := range items {
		if item.ProductID == 1 {
			t.Error("purchased product must never be recommended")
		}
		if item.ProductID == 2 {
			seenViewed = true
		}
		if item.Confidence < 0 || item.Confidence > 1 {
			t.Errorf("confidence %v outside [0,1]", item.Confidence)
		}
	}
	// viewed-only items stay eligible through their content score
	if !seenViewed {
		t.Error("viewed product should remain a candidate")
	}

	// the batch was persisted with a shared batch id
	if len(recRepo.saved) != len(items) {
		t.Fatalf("persisted %d rows, want %d", len(recRepo.saved), len(items))
	}
	for _, row := range recRepo.saved[1:] {
		if row.BatchID != recRepo.saved[0].BatchID {
			t.Error("all rows of one generation must share a batch id")
		}
	}
}

func TestRecommendDeterministic(t *testing.T) {
	now := time.Now()

	interactions := []domain.Interaction{
		{ID: 1, UserID: 1, ProductID: 1, Kind: domain.InteractionView, Timestamp: now},
		{ID: 2, UserID: 2, ProductID: 1, Kind: domain.InteractionView, Timestamp: now},
		{ID: 3, UserID: 2, ProductID: 3, Kind: domain.InteractionPurchase, Timestamp: now},
		{ID: 4, UserID: 3, ProductID: 1, Kind: domain.InteractionClick, Timestamp: now},
		{ID: 5, UserID: 3, ProductID: 4, Kind: domain.InteractionCart, Timestamp: now},
	}

	svc, _ := newTestService(fixtureProducts(), interactions, nil)

	first, err := svc.Recommend(context.Background(), 1, RecommendOptions{Limit: 10})
	if err != nil {
		t.Fatal(err)
	}

	for run := 0; run < 5; run++ {
		again, err := svc.Recommend(context.Background(), 1, RecommendOptions{Limit: 10})
		if err != nil {
			t.Fatal(err)
		}
		if len(again) != len(first) {
			t.Fatalf("run %d: length %d, want %d", run, len(again), len(first))
		}
		for i := range first {
			if again[i].ProductID != first[i].ProductID {
				t.Fatalf("run %d: rank %d product %d, want %d", run, i+1, again[i].ProductID, first[i].ProductID)
			}
		}
	}
}

func TestRecommendWeightOverrides(t *testing.T) {
	now := time.Now()

	// neighbor pushes product 3; the user's own taste is all shoes
	interactions := []domain.Interaction{
		{ID: 1, UserID: 1, ProductID: 1, Kind: domain.InteractionPurchase, Timestamp: now},
		{ID: 2, UserID: 2, ProductID: 1, Kind: domain.InteractionPurchase, Timestamp: now},
		{ID: 3, UserID: 2, ProductID: 3, Kind: domain.InteractionPurchase, Timestamp: now},
	}

	svc, _ := newTestService(fixtureProducts(), interactions, nil)

	collab, content := 1.0, 0.0
	items, err := svc.Recommend(context.Background(), 1, RecommendOptions{
		Limit:         10,
		CollabWeight:  &collab,
		ContentWeight: &content,
	})
	if err != nil {
		t.Fatal(err)
	}
	if items[0].ProductID != 3 {
		t.Errorf("pure collaborative top = %d, want the neighbor's pick (3)", items[0].ProductID)
	}

	collab, content = 0.0, 1.0
	items, err = svc.Recommend(context.Background(), 1, RecommendOptions{
		Limit:         10,
		CollabWeight:  &collab,
		ContentWeight: &content,
	})
	if err != nil {
		t.Fatal(err)
	}
	if items[0].Product.Category != "shoes" {
		t.Errorf("pure content top category = %q, want shoes", items[0].Product.Category)
	}
}

func TestRecommendExplanationFallback(t *testing.T) {
	now := time.Now()

	interactions := []domain.Interaction{
		{ID: 1, UserID: 1, ProductID: 1, Kind: domain.InteractionPurchase, Timestamp: now},
		{ID: 2, UserID: 2, ProductID: 1, Kind: domain.InteractionView, Timestamp: now},
		{ID: 3, UserID: 2, ProductID: 2, Kind: domain.InteractionView, Timestamp: now},
	}

	explain := &fakeExplainRepo{err: errors.New("upstream timeout")}
	svc, _ := newTestService(fixtureProducts(), interactions, explain)

	items, err := svc.Recommend(context.Background(), 1, RecommendOptions{Limit: 5, IncludeExplanation: true})
	if err != nil {
		t.Fatalf("generator failure must not fail the request: %v", err)
	}
	if explain.calls == 0 {
		t.Fatal("generator was never called")
	}
	for _, item := range items {
		if item.Explanation == "" {
			t.Errorf("product %d has no fallback explanation", item.ProductID)
		}
		if strings.HasPrefix(item.Explanation, "Generated text") {
			t.Errorf("product %d kept generated text despite the error", item.ProductID)
		}
	}
}

func TestRecommendExplanationSuccess(t *testing.T) {
	now := time.Now()

	interactions := []domain.Interaction{
		{ID: 1, UserID: 1, ProductID: 1, Kind: domain.InteractionPurchase, Timestamp: now},
		{ID: 2, UserID: 2, ProductID: 1, Kind: domain.InteractionView, Timestamp: now},
		{ID: 3, UserID: 2, ProductID: 2, Kind: domain.InteractionView, Timestamp: now},
	}

	explain := &fakeExplainRepo{}
	svc, _ := newTestService(fixtureProducts(), interactions, explain)

	items, err := svc.Recommend(context.Background(), 1, RecommendOptions{Limit: 5, IncludeExplanation: true})
	if err != nil {
		t.Fatal(err)
	}
	for _, item := range items {
		if !strings.HasPrefix(item.Explanation, "Generated text for ") {
			t.Errorf("product %d explanation = %q", item.ProductID, item.Explanation)
		}
	}
}

func TestRecommendNoExplanationByDefault(t *testing.T) {
	now := time.Now()

	interactions := []domain.Interaction{
		{ID: 1, UserID: 1, ProductID: 1, Kind: domain.InteractionView, Timestamp: now},
	}

	explain := &fakeExplainRepo{}
	svc, _ := newTestService(fixtureProducts(), interactions, explain)

	items, err := svc.Recommend(context.Background(), 1, RecommendOptions{Limit: 5})
	if err != nil {
		t.Fatal(err)
	}
	if explain.calls != 0 {
		t.Errorf("generator called %d times without the flag", explain.calls)
	}
	for _, item := range items {
		if item.Explanation != "" {
			t.Error("explanation attached without the flag")
		}
	}
}

func TestRecommendPersistFailureIsNonFatal(t *testing.T) {
	now := time.Now()

	interactions := []domain.Interaction{
		{ID: 1, UserID: 1, ProductID: 1, Kind: domain.InteractionView, Timestamp: now},
	}

	svc, recRepo := newTestService(fixtureProducts(), interactions, nil)
	recRepo.saveErr = errors.New("connection refused")

	items, err := svc.Recommend(context.Background(), 1, RecommendOptions{Limit: 5})
	if err != nil {
		t.Fatalf("persistence failure must not fail the request: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("expected recommendations despite the persistence failure")
	}
}

func TestRecommendCancelledContext(t *testing.T) {
	svc, _ := newTestService(fixtureProducts(), nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Recommend(ctx, 1, RecommendOptions{})
	if err == nil {
		t.Fatal("expected an error on a cancelled context")
	}
}

func TestInsights(t *testing.T) {
	now := time.Now()

	interactions := []domain.Interaction{
		{ID: 1, UserID: 1, ProductID: 1, Kind: domain.InteractionPurchase, Timestamp: now.Add(-2 * time.Hour)},
		{ID: 2, UserID: 1, ProductID: 3, Kind: domain.InteractionPurchase, Timestamp: now.Add(-time.Hour)},
		{ID: 3, UserID: 1, ProductID: 2, Kind: domain.InteractionView, Timestamp: now},
	}

	svc, _ := newTestService(fixtureProducts(), interactions, nil)

	insights, err := svc.Insights(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}

	if insights.TotalInteractions != 3 {
		t.Errorf("total interactions = %d, want 3", insights.TotalInteractions)
	}
	if len(insights.FavoriteCategories) == 0 || insights.FavoriteCategories[0].Category != "shoes" {
		t.Errorf("favorite categories = %+v, want shoes first", insights.FavoriteCategories)
	}
	if len(insights.RecentPurchases) != 2 {
		t.Fatalf("recent purchases = %d, want 2", len(insights.RecentPurchases))
	}
	// most recent purchase first
	if insights.RecentPurchases[0].Name != "Wool Beanie" {
		t.Errorf("latest purchase = %q, want Wool Beanie", insights.RecentPurchases[0].Name)
	}
}

func TestInsightsEmptyHistory(t *testing.T) {
	svc, _ := newTestService(fixtureProducts(), nil, nil)

	insights, err := svc.Insights(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if insights.TotalInteractions != 0 || len(insights.FavoriteCategories) != 0 {
		t.Errorf("expected empty insights, got %+v", insights)
	}
}

func TestStoredRecommendations(t *testing.T) {
	now := time.Now()

	interactions := []domain.Interaction{
		{ID: 1, UserID: 1, ProductID: 1, Kind: domain.InteractionView, Timestamp: now},
	}

	svc, _ := newTestService(fixtureProducts(), interactions, nil)

	generated, err := svc.Recommend(context.Background(), 1, RecommendOptions{Limit: 3})
	if err != nil {
		t.Fatal(err)
	}

	stored, err := svc.StoredRecommendations(context.Background(), 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != len(generated) {
		t.Fatalf("stored %d rows, want %d", len(stored), len(generated))
	}
}

func TestFallbackExplanationReasons(t *testing.T) {
	insights := domain.UserInsights{
		FavoriteCategories: []domain.CategoryAffinity{{Category: "shoes", Weight: 6}},
		FavoriteBrands:     []domain.BrandAffinity{{Brand: "Apex", Weight: 5}},
		AvgPrice:           100,
	}

	product := domain.Product{Name: "Trail Runner", Category: "shoes", Brand: "Apex", Price: 95, Rating: 4.6}

	text := fallbackExplanation(product, insights)
	if !strings.Contains(text, "Trail Runner") {
		t.Errorf("explanation missing product name: %q", text)
	}
	if !strings.Contains(text, "shoes") {
		t.Errorf("explanation missing category reason: %q", text)
	}

	// no profile at all still yields a sentence
	generic := fallbackExplanation(domain.Product{Name: "Rain Shell", Category: "jackets"}, domain.UserInsights{})
	if generic == "" || !strings.Contains(generic, "Rain Shell") {
		t.Errorf("generic fallback = %q", generic)
	}
}
