package payement

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"lacave_back_end/internal/database"
	"lacave_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateOrder crée une commande en statut PENDING depuis le checkout.
// Les lignes figent nom et prix unitaire : les éditions futures du produit
// ne modifient jamais les commandes passées.
func CreateOrder(c *gin.Context) {
	var req struct {
		Items         []models.OrderItem `json:"items"`
		Subtotal      float64            `json:"subtotal"`
		DeliveryFee   float64            `json:"delivery_fee"`
		Total         float64            `json:"total"`
		PaymentMethod string             `json:"payment_method"`
		FullName      string             `json:"full_name"`
		Email         string             `json:"email"`
		Phone         string             `json:"phone"`
		Street        string             `json:"street"`
		City          string             `json:"city"`
		Note          string             `json:"note"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// L'utilisateur doit exister en base, pas seulement dans le token
	var user models.User
	if err := database.Users().FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	now := time.Now()
	order := models.Order{
		ID:            primitive.NewObjectID(),
		OrderNumber:   models.NewOrderNumber(now),
		UserID:        userID,
		Items:         req.Items,
		Subtotal:      req.Subtotal,
		DeliveryFee:   req.DeliveryFee,
		Total:         req.Total,
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		PaymentStatus: models.PaymentPending,
		DeliveryAddress: models.DeliveryAddress{
			FullName: req.FullName,
			Email:    req.Email,
			Phone:    req.Phone,
			Street:   req.Street,
			City:     req.City,
			Note:     req.Note,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := order.Validate(); err != nil {
		switch {
		case errors.Is(err, models.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide"})
		case errors.Is(err, models.ErrTotalMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Total incohérent : total doit valoir subtotal + delivery_fee"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	if _, err := database.Orders().InsertOne(ctx, order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création commande"})
		return
	}

	log.Printf("🛒 Commande %s créée (%.2f) pour user %s", order.OrderNumber, order.Total, userID)

	c.JSON(http.StatusCreated, order)
}
