package payement

import (
	"context"
	"log"
	"net/http"
	"time"

	"lacave_back_end/internal/database"
	"lacave_back_end/internal/models"
	"lacave_back_end/internal/pagination"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// GetAllOrders permet à un admin de lister les commandes (paginées, filtrables
// par statut de paiement et par utilisateur)
func GetAllOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := pagination.OrderFilter{
		PaymentStatus: c.Query("payment_status"),
		UserID:        c.Query("user_id"),
	}

	var orders []models.Order
	meta, err := pagination.Find(ctx, database.Orders(), filter.Bson(), pagination.FromQuery(c), nil, &orders)
	if err != nil {
		log.Printf("❌ Erreur lecture commandes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commandes"})
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

// OverridePaymentStatus : seul chemin autorisé à sortir une commande d'un
// état terminal (correction manuelle après litige ou erreur fournisseur)
func OverridePaymentStatus(c *gin.Context) {
	orderNumber := c.Param("number")

	var req struct {
		PaymentStatus string `json:"payment_status" binding:"required"`
		Reason        string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	target := models.PaymentStatus(req.PaymentStatus)
	switch target {
	case models.PaymentPending, models.PaymentSuccess, models.PaymentFailed:
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"error":          "Statut invalide",
			"valid_statuses": []models.PaymentStatus{models.PaymentPending, models.PaymentSuccess, models.PaymentFailed},
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	order, err := findOrderByNumber(ctx, orderNumber)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	now := time.Now()
	_, err = database.Orders().UpdateOne(ctx, bson.M{"_id": order.ID}, bson.M{"$set": bson.M{
		"payment_status": target,
		"updated_at":     now,
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour commande"})
		return
	}

	log.Printf("🔁 Override admin : commande %s %s → %s (%s) par %s",
		orderNumber, order.PaymentStatus, target, req.Reason, c.GetString("user_id"))

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"order_number":   orderNumber,
		"payment_status": target,
		"updated_at":     now,
	})
}
