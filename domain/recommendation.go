package domain

import "time"

// Recommendation is one persisted row of a generated batch. A batch shares
// one BatchID so the latest generation for a user can be read back as a
// unit.
type Recommendation struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	BatchID      string    `gorm:"column:batch_id;index" json:"batch_id"`
	UserID       uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	ProductID    uint64    `gorm:"column:product_id;not null" json:"product_id"`
	Score        float64   `gorm:"column:score;type:numeric" json:"score"`
	CollabScore  float64   `gorm:"column:collab_score;type:numeric" json:"collab_score"`
	ContentScore float64   `gorm:"column:content_score;type:numeric" json:"content_score"`
	Rank         int       `gorm:"column:rank" json:"rank"`
	Confidence   float64   `gorm:"column:confidence;type:numeric" json:"confidence"`
	Algorithm    string    `gorm:"column:algorithm_used" json:"algorithm_used"`
	Explanation  *string   `gorm:"column:explanation;type:text" json:"explanation,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Recommendation) TableName() string {
	return "recommendations"
}

// RecommendedItem is the per-request view of one scored candidate. It lives
// only for the duration of a recommendation request.
type RecommendedItem struct {
	ProductID    uint64  `json:"product_id"`
	Product      Product `json:"product"`
	Score        float64 `json:"score"`
	CollabScore  float64 `json:"collab_score"`
	ContentScore float64 `json:"content_score"`
	Rank         int     `json:"rank"`
	Confidence   float64 `json:"confidence"`
	Algorithm    string  `json:"algorithm_used"`
	Explanation  string  `json:"explanation,omitempty"`
}
