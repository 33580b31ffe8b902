package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Interaction kinds, ordered by how strong a purchase intent they signal.
const (
	InteractionView     = "view"
	InteractionClick    = "click"
	InteractionCart     = "cart"
	InteractionPurchase = "purchase"
	InteractionRating   = "rating"
)

var ValidInteractionKinds = map[string]bool{
	InteractionView:     true,
	InteractionClick:    true,
	InteractionCart:     true,
	InteractionPurchase: true,
	InteractionRating:   true,
}

// CREATE TABLE public.interactions (
//     id         BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     user_id    BIGINT NOT NULL,
//     product_id BIGINT NOT NULL,
//     kind       TEXT NOT NULL,
//     rating     NUMERIC,
//     duration   INTEGER,
//     context    JSONB,
//     timestamp  TIMESTAMPTZ DEFAULT NOW()
// );

// Interaction rows are append-only: they are inserted once and never
// updated or deleted. Rating is required when Kind is "rating".
type Interaction struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	UserID    uint              `gorm:"column:user_id;not null;index" json:"user_id"`
	ProductID uint64            `gorm:"column:product_id;not null;index" json:"product_id"`
	Kind      string            `gorm:"column:kind;not null" json:"kind"`
	Rating    *float64          `gorm:"column:rating;type:numeric" json:"rating,omitempty"`
	Duration  *int              `gorm:"column:duration" json:"duration,omitempty"`
	Context   datatypes.JSONMap `gorm:"column:context;type:jsonb" json:"context,omitempty"`
	Timestamp time.Time         `gorm:"column:timestamp;autoCreateTime;index" json:"timestamp"`
}

func (Interaction) TableName() string {
	return "interactions"
}
