package product

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"lacave_back_end/internal/database"
	"lacave_back_end/internal/models"
	"lacave_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SearchProducts recherche plein-texte : Elasticsearch en priorité,
// repli sur une regex Mongo si l'index est indisponible
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paramètre 'q' manquant"})
		return
	}

	// 🔎 1️⃣ Recherche dans Elasticsearch (prioritaire)
	results, err := services.SearchProducts(query)
	if err == nil && len(results) > 0 {
		c.JSON(http.StatusOK, results)
		return
	}

	// 🔁 2️⃣ Fallback MongoDB si ES vide ou indisponible
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	re := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	cursor, err := database.Products().Find(ctx, bson.M{
		"$or": bson.A{
			bson.M{"name": re},
			bson.M{"description": re},
			bson.M{"tags": re},
		},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche"})
		return
	}

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage résultats"})
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	c.JSON(http.StatusOK, products)
}
