package user

import (
	"context"
	"net/http"
	"time"

	"lacave_back_end/internal/database"
	"lacave_back_end/internal/models"
	"lacave_back_end/internal/pagination"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// ✅ Récupère les commandes de l'utilisateur connecté (paginées)
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := pagination.OrderFilter{
		UserID:        userID,
		PaymentStatus: c.Query("payment_status"),
	}

	var orders []models.Order
	meta, err := pagination.Find(ctx, database.Orders(), filter.Bson(), pagination.FromQuery(c), nil, &orders)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       orders,
		"pagination": meta,
	})
}

// ✅ Récupère une commande par son numéro
func GetOrderByNumber(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var order models.Order
	err := database.Orders().FindOne(ctx, bson.M{
		"order_number": c.Param("number"),
		"user_id":      userID, // ✅ Sécurité : la commande doit appartenir à l'utilisateur
	}).Decode(&order)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	c.JSON(http.StatusOK, order)
}
