package payement

import (
	"context"
	"log"
	"net/http"
	"time"

	"lacave_back_end/internal/database"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetDashboardStats retourne les statistiques du dashboard admin :
// commandes et chiffre d'affaires par statut de paiement, stocks, utilisateurs
func GetDashboardStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Agrégation des commandes par statut de paiement
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$payment_status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$total"}}},
		}}},
	}

	cursor, err := database.Orders().Aggregate(ctx, pipeline)
	if err != nil {
		log.Printf("❌ Erreur agrégation commandes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture statistiques"})
		return
	}

	var groups []struct {
		Status  string  `bson:"_id"`
		Count   int64   `bson:"count"`
		Revenue float64 `bson:"revenue"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage statistiques"})
		return
	}

	var totalOrders int64
	var totalRevenue float64
	byStatus := gin.H{}
	for _, g := range groups {
		totalOrders += g.Count
		byStatus[g.Status] = gin.H{"count": g.Count, "revenue": g.Revenue}
		// Seul le chiffre d'affaires encaissé compte
		if g.Status == "SUCCESS" {
			totalRevenue = g.Revenue
		}
	}

	// Statistiques des produits
	totalProducts, _ := database.Products().CountDocuments(ctx, bson.M{})
	outOfStock, _ := database.Products().CountDocuments(ctx, bson.M{"stock": 0})
	lowStock, _ := database.Products().CountDocuments(ctx, bson.M{"stock": bson.M{"$gt": 0, "$lt": 10}})

	// Statistiques des utilisateurs
	totalUsers, _ := database.Users().CountDocuments(ctx, bson.M{})

	var averageOrderValue float64
	if totalOrders > 0 {
		averageOrderValue = totalRevenue / float64(totalOrders)
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": gin.H{
			"total":               totalOrders,
			"total_revenue":       totalRevenue,
			"average_order_value": averageOrderValue,
			"by_payment_status":   byStatus,
		},
		"products": gin.H{
			"total":        totalProducts,
			"low_stock":    lowStock,
			"out_of_stock": outOfStock,
		},
		"users": gin.H{
			"total": totalUsers,
		},
	})
}
