package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Slug          string             `bson:"slug" json:"slug"`
	Description   string             `bson:"description" json:"description"`
	Price         float64            `bson:"price" json:"price"`
	Stock         int                `bson:"stock" json:"stock"`
	CategoryID    string             `bson:"category_id" json:"category_id"`
	BrandID       string             `bson:"brand_id,omitempty" json:"brand_id,omitempty"`
	SubCategoryID string             `bson:"subcategory_id,omitempty" json:"subcategory_id,omitempty"`
	ImageURLs     []string           `bson:"image_urls,omitempty" json:"image_urls,omitempty"`
	Tags          []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	IsActive      bool               `bson:"is_active" json:"is_active"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}
