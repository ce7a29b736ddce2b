package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tables de référence du catalogue (catégories, marques, sous-catégories).
// Même forme pour les trois : nom + slug unique.

type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

type Brand struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Slug      string             `bson:"slug" json:"slug"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

type SubCategory struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Slug       string             `bson:"slug" json:"slug"`
	CategoryID string             `bson:"category_id" json:"category_id"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}
