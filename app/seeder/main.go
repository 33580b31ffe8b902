package main

import (
	"fmt"
	"log"
	"math/rand"
	"mySmartShop/domain"
	"mySmartShop/pkg/config"
	"mySmartShop/pkg/database"
	"mySmartShop/pkg/logger"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	seedPassword       = "password123"
	seedInteractions   = 200
	interactionWindowD = 30
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Product{},
		&domain.Interaction{},
		&domain.Recommendation{},
	); err != nil {
		logger.Fatal("Auto migration failed", "error", err)
	}

	logger.Info("Tables migrated")

	users, err := seedUsers(db)
	if err != nil {
		logger.Fatal("Seeding users failed", "error", err)
	}
	logger.Info("Users seeded", "count", len(users))

	products, err := seedProducts(db)
	if err != nil {
		logger.Fatal("Seeding products failed", "error", err)
	}
	logger.Info("Products seeded", "count", len(products))

	count, err := seedInteractionHistory(db, users, products)
	if err != nil {
		logger.Fatal("Seeding interactions failed", "error", err)
	}
	logger.Info("Interactions seeded", "count", count)

	logger.Info("Seeding complete")
}

func seedUsers(db *gorm.DB) ([]domain.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	users := []domain.User{
		{
			FullName: "Alex Chen", Email: "alex.chen@email.com", Password: string(hashed), IsVerified: true, Role: "customer",
			Preferences: datatypes.JSONMap{"budget": "high", "interests": []string{"electronics", "tech"}, "favorite_brands": []string{"Apple", "Sony", "Dell"}},
		},
		{
			FullName: "Sarah Johnson", Email: "sarah.j@email.com", Password: string(hashed), IsVerified: true, Role: "customer",
			Preferences: datatypes.JSONMap{"budget": "medium", "interests": []string{"fashion", "lifestyle"}, "favorite_brands": []string{"Nike", "Levi's", "Patagonia"}},
		},
		{
			FullName: "Michael Park", Email: "m.park@email.com", Password: string(hashed), IsVerified: true, Role: "customer",
			Preferences: datatypes.JSONMap{"budget": "high", "interests": []string{"home", "cooking"}, "favorite_brands": []string{"KitchenAid", "Dyson"}},
		},
		{
			FullName: "Emma Davis", Email: "emma.davis@email.com", Password: string(hashed), IsVerified: true, Role: "customer",
			Preferences: datatypes.JSONMap{"budget": "low", "interests": []string{"books", "learning"}, "favorite_brands": []string{"Avery"}},
		},
		{
			FullName: "James Wilson", Email: "james.w@email.com", Password: string(hashed), IsVerified: true, Role: "customer",
			Preferences: datatypes.JSONMap{"budget": "medium", "interests": []string{"sports", "outdoors"}, "favorite_brands": []string{"YETI", "Black Diamond"}},
		},
		{
			FullName: "Olivia Martinez", Email: "olivia.m@email.com", Password: string(hashed), IsVerified: true, Role: "customer",
			Preferences: datatypes.JSONMap{"budget": "high", "interests": []string{"fashion", "tech"}, "favorite_brands": []string{"Apple", "Ray-Ban"}},
		},
		{
			FullName: "Shop Admin", Email: "admin@mysmartshop.dev", Password: string(hashed), IsVerified: true, Role: "admin",
			Preferences: datatypes.JSONMap{},
		},
	}

	for i := range users {
		if err := db.Where("email = ?", users[i].Email).FirstOrCreate(&users[i]).Error; err != nil {
			return nil, err
		}
	}
	return users, nil
}

func seedProducts(db *gorm.DB) ([]domain.Product, error) {
	products := []domain.Product{
		{
			Name: "Sony WH-1000XM5 Wireless Headphones", Category: "Electronics", Brand: "Sony", Price: 399.99, Rating: 4.8, Stock: 120,
			Description: "Industry-leading noise canceling with premium sound quality and 30-hour battery life.",
			Attributes:  datatypes.JSONMap{"color": "Black", "wireless": true, "noise_canceling": true},
		},
		{
			Name: "Apple AirPods Pro (2nd Gen)", Category: "Electronics", Brand: "Apple", Price: 249.99, Rating: 4.7, Stock: 200,
			Description: "Active Noise Cancellation and Adaptive Transparency with Personalized Spatial Audio.",
			Attributes:  datatypes.JSONMap{"color": "White", "wireless": true, "noise_canceling": true},
		},
		{
			Name: "Samsung Galaxy S24 Ultra", Category: "Electronics", Brand: "Samsung", Price: 1299.99, Rating: 4.6, Stock: 80,
			Description: "Flagship smartphone with S Pen, 200MP camera and AI-powered features.",
			Attributes:  datatypes.JSONMap{"color": "Titanium Gray", "storage": "256GB", "5g": true},
		},
		{
			Name: "Apple iPhone 15 Pro", Category: "Electronics", Brand: "Apple", Price: 999.99, Rating: 4.7, Stock: 150,
			Description: "Titanium design with A17 Pro chip and 5x telephoto camera.",
			Attributes:  datatypes.JSONMap{"color": "Natural Titanium", "storage": "256GB", "5g": true},
		},
		{
			Name: "MacBook Air M3", Category: "Electronics", Brand: "Apple", Price: 1299.99, Rating: 4.8, Stock: 90,
			Description: "Supercharged by the M3 chip with up to 18 hours of battery life.",
			Attributes:  datatypes.JSONMap{"color": "Midnight", "ram": "16GB", "storage": "512GB SSD"},
		},
		{
			Name: "Logitech MX Master 3S Mouse", Category: "Electronics", Brand: "Logitech", Price: 99.99, Rating: 4.7, Stock: 300,
			Description: "Wireless performance mouse with ultra-precise scrolling.",
			Attributes:  datatypes.JSONMap{"color": "Graphite", "wireless": true},
		},
		{
			Name: "Levi's 501 Original Jeans", Category: "Fashion", Brand: "Levi's", Price: 89.99, Rating: 4.5, Stock: 250,
			Description: "The original jean since 1873, classic straight fit with button fly.",
			Attributes:  datatypes.JSONMap{"color": "Dark Wash", "fit": "Straight", "material": "100% Cotton"},
		},
		{
			Name: "Nike Air Max 270", Category: "Fashion", Brand: "Nike", Price: 150.00, Rating: 4.6, Stock: 180,
			Description: "Lifestyle sneakers with a large Max Air unit and breathable mesh upper.",
			Attributes:  datatypes.JSONMap{"color": "Triple Black", "type": "Sneakers"},
		},
		{
			Name: "Ray-Ban Aviator Classic", Category: "Fashion", Brand: "Ray-Ban", Price: 179.99, Rating: 4.8, Stock: 140,
			Description: "Iconic teardrop-shaped sunglasses with metal frame and full UV protection.",
			Attributes:  datatypes.JSONMap{"color": "Gold/Green", "uv_protection": true},
		},
		{
			Name: "The North Face Nuptse Jacket", Category: "Fashion", Brand: "The North Face", Price: 329.99, Rating: 4.6, Stock: 70,
			Description: "Iconic insulated jacket with 700-fill down and water-repellent finish.",
			Attributes:  datatypes.JSONMap{"color": "Black", "water_resistant": true},
		},
		{
			Name: "KitchenAid Stand Mixer", Category: "Home & Kitchen", Brand: "KitchenAid", Price: 449.99, Rating: 4.8, Stock: 60,
			Description: "5-quart tilt-head stand mixer with 10 speeds and multiple attachments.",
			Attributes:  datatypes.JSONMap{"color": "Empire Red", "capacity": "5 quart"},
		},
		{
			Name: "Instant Pot Duo Plus", Category: "Home & Kitchen", Brand: "Instant Pot", Price: 119.99, Rating: 4.7, Stock: 160,
			Description: "9-in-1 electric pressure cooker with 6-quart capacity.",
			Attributes:  datatypes.JSONMap{"color": "Stainless Steel", "capacity": "6 quart"},
		},
		{
			Name: "Dyson V15 Detect Vacuum", Category: "Home & Kitchen", Brand: "Dyson", Price: 749.99, Rating: 4.7, Stock: 45,
			Description: "Cordless vacuum with laser detection and 60-minute runtime.",
			Attributes:  datatypes.JSONMap{"color": "Yellow/Nickel", "cordless": true},
		},
		{
			Name: "Atomic Habits by James Clear", Category: "Books", Brand: "Avery", Price: 16.99, Rating: 4.8, Stock: 400,
			Description: "A proven framework for improving every day.",
			Attributes:  datatypes.JSONMap{"format": "Hardcover", "genre": "Self-Help"},
		},
		{
			Name: "Project Hail Mary by Andy Weir", Category: "Books", Brand: "Ballantine Books", Price: 19.99, Rating: 4.9, Stock: 320,
			Description: "A lone astronaut must save the earth in this interstellar thriller.",
			Attributes:  datatypes.JSONMap{"format": "Hardcover", "genre": "Science Fiction"},
		},
		{
			Name: "YETI Rambler 30 oz Tumbler", Category: "Sports & Outdoors", Brand: "YETI", Price: 39.99, Rating: 4.8, Stock: 500,
			Description: "Stainless steel insulated tumbler that keeps drinks cold for 24 hours.",
			Attributes:  datatypes.JSONMap{"color": "Navy", "insulated": true},
		},
		{
			Name: "Black Diamond Headlamp", Category: "Sports & Outdoors", Brand: "Black Diamond", Price: 49.95, Rating: 4.6, Stock: 220,
			Description: "Rechargeable LED headlamp with 500 lumens and waterproof housing.",
			Attributes:  datatypes.JSONMap{"color": "Black", "rechargeable": true, "waterproof": true},
		},
		{
			Name: "Manduka Pro Yoga Mat", Category: "Sports & Outdoors", Brand: "Manduka", Price: 138.00, Rating: 4.8, Stock: 110,
			Description: "Professional-grade yoga mat with superior cushioning.",
			Attributes:  datatypes.JSONMap{"color": "Black", "thickness": "6mm"},
		},
	}

	for i := range products {
		if err := db.Where("name = ?", products[i].Name).FirstOrCreate(&products[i]).Error; err != nil {
			return nil, err
		}
	}
	return products, nil
}

func seedInteractionHistory(db *gorm.DB, users []domain.User, products []domain.Product) (int, error) {
	var existing int64
	if err := db.Model(&domain.Interaction{}).Count(&existing).Error; err != nil {
		return 0, err
	}
	if existing > 0 {
		logger.Info("Interactions already present, skipping", "count", existing)
		return 0, nil
	}

	// Fixed seed keeps reruns reproducible
	rng := rand.New(rand.NewSource(42))
	kinds := []string{domain.InteractionView, domain.InteractionClick, domain.InteractionCart, domain.InteractionPurchase, domain.InteractionRating}
	kindWeights := []float64{0.5, 0.25, 0.15, 0.08, 0.02}
	sources := []string{"search", "recommendation", "category_browse", "direct"}

	interactions := make([]domain.Interaction, 0, seedInteractions)
	now := time.Now()

	for i := 0; i < seedInteractions; i++ {
		user := users[rng.Intn(len(users))]
		if user.Role == "admin" {
			continue
		}
		product := products[rng.Intn(len(products))]
		kind := weightedKind(rng, kinds, kindWeights)

		ageHours := rng.Intn(interactionWindowD * 24)
		interaction := domain.Interaction{
			UserID:    user.ID,
			ProductID: product.ID,
			Kind:      kind,
			Timestamp: now.Add(-time.Duration(ageHours) * time.Hour),
		}

		switch kind {
		case domain.InteractionView:
			duration := 5 + rng.Intn(295)
			interaction.Duration = &duration
			interaction.Context = datatypes.JSONMap{"source": sources[rng.Intn(len(sources))]}
		case domain.InteractionClick:
			interaction.Context = datatypes.JSONMap{"source": sources[rng.Intn(len(sources))]}
		case domain.InteractionRating:
			rating := 3.0 + rng.Float64()*2.0
			interaction.Rating = &rating
		}

		interactions = append(interactions, interaction)
	}

	if err := db.CreateInBatches(interactions, 100).Error; err != nil {
		return 0, err
	}
	return len(interactions), nil
}

func weightedKind(rng *rand.Rand, kinds []string, weights []float64) string {
	r := rng.Float64()
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r < acc {
			return kinds[i]
		}
	}
	return kinds[len(kinds)-1]
}
