package pagination

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Filtres explicites par ressource : chaque clé valide et son mode de
// correspondance (exact vs sous-chaîne) sont déclarés ici une fois pour
// toutes, au lieu de recopier des clés de query arbitraires dans le filtre
// Mongo. Les valeurs absentes sont simplement omises du prédicat.

type ProductFilter struct {
	Category    string // exact, id hexadécimal
	Brand       string // exact
	SubCategory string // exact
	Name        string // sous-chaîne, insensible à la casse
	ActiveOnly  bool
}

func (f ProductFilter) Bson() bson.M {
	filter := bson.M{}
	if f.Category != "" {
		filter["category_id"] = f.Category
	}
	if f.Brand != "" {
		filter["brand_id"] = f.Brand
	}
	if f.SubCategory != "" {
		filter["subcategory_id"] = f.SubCategory
	}
	if f.Name != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Name), Options: "i"}
	}
	if f.ActiveOnly {
		filter["is_active"] = true
	}
	return filter
}

type OrderFilter struct {
	PaymentStatus string // exact (PENDING/SUCCESS/FAILED)
	UserID        string // exact
}

func (f OrderFilter) Bson() bson.M {
	filter := bson.M{}
	if f.PaymentStatus != "" {
		filter["payment_status"] = f.PaymentStatus
	}
	if f.UserID != "" {
		filter["user_id"] = f.UserID
	}
	return filter
}

type UserFilter struct {
	Role   string // exact (customer/admin)
	Search string // sous-chaîne sur nom ou email
}

func (f UserFilter) Bson() bson.M {
	filter := bson.M{}
	if f.Role != "" {
		filter["role"] = f.Role
	}
	if f.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"email": re},
		}
	}
	return filter
}
