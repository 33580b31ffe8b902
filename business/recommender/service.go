package recommender

import (
	"context"
	"fmt"
	"math"
	"mySmartShop/domain"
	"mySmartShop/pkg/logger"
	"time"

	"github.com/google/uuid"
)

const (
	defaultLimit = 10

	// batches kept per user before old generations are pruned
	keepBatches = 5

	AlgorithmHybrid     = "hybrid"
	AlgorithmPopularity = "popularity"
)

// ---- Repository interfaces ----

type ProductRepository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
}

type InteractionRepository interface {
	FindAllSince(ctx context.Context, since time.Time) ([]domain.Interaction, error)
	FindByUserSince(ctx context.Context, userID uint, since time.Time) ([]domain.Interaction, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type RecommendationRepository interface {
	SaveBatch(ctx context.Context, recs []domain.Recommendation) error
	FindLatestByUser(ctx context.Context, userID uint, limit int) ([]domain.Recommendation, error)
	DeleteOlderThanBatches(ctx context.Context, userID uint, keep int) error
}

// ExplanationRepository is the narrow interface over the external
// text-generation service. It is strictly best-effort: a failure degrades
// the item to a rule-based explanation, never the request.
type ExplanationRepository interface {
	Explain(ctx context.Context, insights domain.UserInsights, product domain.Product, score float64, rank int) (string, error)
}

// RecommendationCache is the fast-read store for the latest generated
// list per user. All cache operations are best-effort.
type RecommendationCache interface {
	SetLatest(ctx context.Context, userID uint, items []domain.RecommendedItem) error
	GetLatest(ctx context.Context, userID uint) ([]domain.RecommendedItem, error)
}

// ---- Usecase / Service ----

// Service is the hybrid recommendation engine. It is stateless per
// invocation: every call recomputes all signals from the current
// interaction snapshot, so concurrent calls need no locking.
type Service struct {
	productRepo        ProductRepository
	interactionRepo    InteractionRepository
	userRepo           UserRepository
	recommendationRepo RecommendationRepository
	explainRepo        ExplanationRepository
	cache              RecommendationCache
	cfg                Config
	explainTimeout     time.Duration
}

func NewService(
	productRepo ProductRepository,
	interactionRepo InteractionRepository,
	userRepo UserRepository,
	recommendationRepo RecommendationRepository,
	explainRepo ExplanationRepository,
	cache RecommendationCache,
	cfg Config,
	explainTimeout time.Duration,
) *Service {
	if explainTimeout <= 0 {
		explainTimeout = 2 * time.Second
	}

	return &Service{
		productRepo:        productRepo,
		interactionRepo:    interactionRepo,
		userRepo:           userRepo,
		recommendationRepo: recommendationRepo,
		explainRepo:        explainRepo,
		cache:              cache,
		cfg:                cfg,
		explainTimeout:     explainTimeout,
	}
}

// RecommendOptions carries the per-request overrides of the engine
// defaults. Nil pointers mean "use the configured default".
type RecommendOptions struct {
	Limit              int
	IncludeExplanation bool
	CollabWeight       *float64
	ContentWeight      *float64
	DiversityCap       *int
}

func (s *Service) requestConfig(opts RecommendOptions) Config {
	cfg := s.cfg

	if opts.CollabWeight != nil {
		cfg.CollabWeight = *opts.CollabWeight
	}
	if opts.ContentWeight != nil {
		cfg.ContentWeight = *opts.ContentWeight
	}
	if opts.DiversityCap != nil {
		cfg.DiversityCap = *opts.DiversityCap
	}

	return cfg
}

// Recommend produces the ranked, diversified recommendation list for one
// user. An empty catalog or an empty candidate set yields an empty list,
// not an error; only an unknown user or corrupt input fails the request.
func (s *Service) Recommend(ctx context.Context, userID uint, opts RecommendOptions) ([]domain.RecommendedItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("%w: id %d", ErrUserNotFound, userID)
	}

	cfg := s.requestConfig(opts)
	now := time.Now()
	since := now.AddDate(0, 0, -cfg.RecencyWindowDays)

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if len(products) == 0 {
		logger.Warn("recommend on empty catalog", "user_id", userID)
		return []domain.RecommendedItem{}, nil
	}
	catalog := indexProducts(products)

	snapshot, err := s.interactionRepo.FindAllSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("load interactions: %w", err)
	}

	userInteractions := make([]domain.Interaction, 0)
	for _, it := range snapshot {
		if it.UserID == userID {
			userInteractions = append(userInteractions, it)
		}
	}

	var (
		selected  []scoredCandidate
		insights  domain.UserInsights
		algorithm string
	)

	if len(userInteractions) == 0 {
		// cold start: no signal for this user, rank by popularity
		selected = popularityRanking(snapshot, catalog, limit)
		insights = buildInsights(nil, nil, catalog)
		algorithm = AlgorithmPopularity

		logger.Debug("cold start fallback",
			"user_id", userID,
			"candidate_count", len(selected),
		)
	} else {
		selected, insights, err = s.scoreCandidates(userID, userInteractions, snapshot, products, catalog, now, cfg, limit)
		if err != nil {
			return nil, err
		}
		algorithm = AlgorithmHybrid
	}

	items := make([]domain.RecommendedItem, 0, len(selected))
	for i, c := range selected {
		items = append(items, domain.RecommendedItem{
			ProductID:    c.productID,
			Product:      catalog[c.productID],
			Score:        round4(c.hybrid),
			CollabScore:  round4(c.collab),
			ContentScore: round4(c.content),
			Rank:         i + 1,
			Confidence:   round4(confidence(c.supporters, c.hybrid)),
			Algorithm:    algorithm,
		})
	}

	if opts.IncludeExplanation {
		s.attachExplanations(ctx, items, insights)
	}

	RecommendationsGeneratedTotal.WithLabelValues(algorithm).Inc()

	s.persistBatch(ctx, userID, items)

	if s.cache != nil {
		if err := s.cache.SetLatest(ctx, userID, items); err != nil {
			logger.Warn("failed to cache recommendations", "user_id", userID, "error", err)
		}
	}

	return items, nil
}

// CachedRecommendations returns the user's most recent generated list if
// it is still cached. The second return reports a hit; on a miss callers
// fall back to StoredRecommendations.
func (s *Service) CachedRecommendations(ctx context.Context, userID uint) ([]domain.RecommendedItem, bool) {
	if s.cache == nil {
		return nil, false
	}

	items, err := s.cache.GetLatest(ctx, userID)
	if err != nil {
		return nil, false
	}

	return items, true
}

// scoreCandidates runs the full hybrid pass: matrix build, collaborative
// neighbors, profile, content scoring, fusion and the diversity walk.
func (s *Service) scoreCandidates(
	userID uint,
	userInteractions []domain.Interaction,
	snapshot []domain.Interaction,
	products []domain.Product,
	catalog map[uint64]domain.Product,
	now time.Time,
	cfg Config,
	limit int,
) ([]scoredCandidate, domain.UserInsights, error) {

	vectors, err := buildUserVectors(snapshot, now, cfg)
	if err != nil {
		return nil, domain.UserInsights{}, fmt.Errorf("build interaction matrix: %w", err)
	}

	collab, supporters := collaborativeScores(userID, vectors, cfg.NeighborCount)

	prof, err := buildProfile(userInteractions, catalog, now, cfg)
	if err != nil {
		return nil, domain.UserInsights{}, fmt.Errorf("build user profile: %w", err)
	}
	insights := buildInsights(prof, userInteractions, catalog)

	purchased := make(map[uint64]bool)
	for _, it := range userInteractions {
		if it.Kind == domain.InteractionPurchase {
			purchased[it.ProductID] = true
		}
	}

	cands := make([]scoredCandidate, 0, len(products))
	for _, p := range products {
		// purchased products are never re-recommended; viewed-only items
		// may resurface through their content score
		if purchased[p.ID] {
			continue
		}

		cands = append(cands, scoredCandidate{
			productID:  p.ID,
			collab:     collab[p.ID],
			content:    contentScore(p, prof),
			rating:     p.Rating,
			category:   p.Category,
			supporters: supporters[p.ID],
		})
	}

	if len(cands) == 0 {
		logger.Warn("empty candidate set", "user_id", userID)
		return nil, insights, nil
	}

	ranked := fuseAndRank(cands, cfg.CollabWeight, cfg.ContentWeight)

	return selectDiverse(ranked, cfg.DiversityCap, limit), insights, nil
}

// persistBatch stores the generated batch for later retrieval. Persistence
// is best-effort: the scored result is already computed and is returned
// even when the write fails.
func (s *Service) persistBatch(ctx context.Context, userID uint, items []domain.RecommendedItem) {
	if s.recommendationRepo == nil || len(items) == 0 {
		return
	}

	batchID := uuid.NewString()
	rows := make([]domain.Recommendation, 0, len(items))
	for _, item := range items {
		row := domain.Recommendation{
			BatchID:      batchID,
			UserID:       userID,
			ProductID:    item.ProductID,
			Score:        item.Score,
			CollabScore:  item.CollabScore,
			ContentScore: item.ContentScore,
			Rank:         item.Rank,
			Confidence:   item.Confidence,
			Algorithm:    item.Algorithm,
		}
		if item.Explanation != "" {
			explanation := item.Explanation
			row.Explanation = &explanation
		}
		rows = append(rows, row)
	}

	if err := s.recommendationRepo.SaveBatch(ctx, rows); err != nil {
		logger.Warn("failed to persist recommendation batch",
			"user_id", userID,
			"batch_id", batchID,
			"error", err,
		)
		return
	}

	if err := s.recommendationRepo.DeleteOlderThanBatches(ctx, userID, keepBatches); err != nil {
		logger.Warn("failed to prune old recommendation batches",
			"user_id", userID,
			"error", err,
		)
	}
}

// StoredRecommendations reads back the most recently generated rows for a
// user.
func (s *Service) StoredRecommendations(ctx context.Context, userID uint, limit int) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("%w: id %d", ErrUserNotFound, userID)
	}

	return s.recommendationRepo.FindLatestByUser(ctx, userID, limit)
}

// Insights exposes the profile projection for the UI and the explanation
// generator.
func (s *Service) Insights(ctx context.Context, userID uint) (domain.UserInsights, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserInsights{}, fmt.Errorf("context error: %w", err)
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return domain.UserInsights{}, fmt.Errorf("%w: id %d", ErrUserNotFound, userID)
	}

	now := time.Now()
	since := now.AddDate(0, 0, -s.cfg.RecencyWindowDays)

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return domain.UserInsights{}, fmt.Errorf("load catalog: %w", err)
	}
	catalog := indexProducts(products)

	interactions, err := s.interactionRepo.FindByUserSince(ctx, userID, since)
	if err != nil {
		return domain.UserInsights{}, fmt.Errorf("load interactions: %w", err)
	}

	prof, err := buildProfile(interactions, catalog, now, s.cfg)
	if err != nil {
		return domain.UserInsights{}, fmt.Errorf("build user profile: %w", err)
	}

	return buildInsights(prof, interactions, catalog), nil
}

func indexProducts(products []domain.Product) map[uint64]domain.Product {
	catalog := make(map[uint64]domain.Product, len(products))
	for _, p := range products {
		catalog[p.ID] = p
	}

	return catalog
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
