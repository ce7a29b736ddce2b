package database

import (
	"context"
	"log"
	"time"

	"lacave_back_end/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var seedCategories = []string{
	"Vins", "Spiritueux", "Bières", "Champagnes", "Sans alcool",
}

var seedBrands = []string{
	"Château Margaux", "Moët & Chandon", "Glenfiddich", "Hendrick's", "Leffe",
}

var seedSubCategories = []string{
	"Vin rouge", "Vin blanc", "Vin rosé", "Whisky", "Gin", "Rhum", "Vodka",
}

// SeedReferenceData insère les tables de référence si elles n'existent pas
// encore. Les upserts portent sur le slug, un redémarrage ne duplique rien.
func SeedReferenceData() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	seedNamed(ctx, Categories(), seedCategories)
	seedNamed(ctx, Brands(), seedBrands)
	seedNamed(ctx, SubCategories(), seedSubCategories)

	log.Println("✅ Données de référence vérifiées")
}

func seedNamed(ctx context.Context, coll *mongo.Collection, names []string) {
	for _, name := range names {
		slug := utils.Slugify(name)
		_, err := coll.UpdateOne(ctx,
			bson.M{"slug": slug},
			bson.M{"$setOnInsert": bson.M{
				"name":       name,
				"slug":       slug,
				"created_at": time.Now(),
			}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			log.Printf("⚠️ Seed %s (%s): %v", coll.Name(), slug, err)
		}
	}
}
