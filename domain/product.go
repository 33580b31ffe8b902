package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.products (
//     id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name        TEXT NOT NULL,
//     description TEXT,
//     category    TEXT NOT NULL,
//     brand       TEXT,
//     price       NUMERIC NOT NULL,
//     stock       INTEGER DEFAULT 100,
//     rating      NUMERIC DEFAULT 0,
//     image_url   TEXT,
//     attributes  JSONB,
//     created_at  TIMESTAMPTZ DEFAULT NOW()
// );

// Attribute values are an open union of string | number | boolean. The
// scoring engine compares them loosely: a type mismatch is a non-match,
// never an error.
type Product struct {
	ID          uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string            `gorm:"column:name;type:text;not null" json:"name"`
	Description string            `gorm:"column:description;type:text" json:"description"`
	Category    string            `gorm:"column:category;type:text;not null" json:"category"`
	Brand       string            `gorm:"column:brand;type:text" json:"brand"`
	Price       float64           `gorm:"column:price;type:numeric;not null" json:"price"`
	Stock       int               `gorm:"column:stock;default:100" json:"stock"`
	Rating      float64           `gorm:"column:rating;type:numeric;default:0" json:"rating"`
	ImageURL    string            `gorm:"column:image_url;type:text" json:"image_url"`
	Attributes  datatypes.JSONMap `gorm:"column:attributes;type:jsonb" json:"attributes"`
	CreatedAt   time.Time         `gorm:"column:created_at" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}
