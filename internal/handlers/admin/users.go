package admin

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

// GetUsers liste les utilisateurs (paginés, filtrables par rôle et recherche)
func GetUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := pagination.UserFilter{
		Role:   c.Query("role"),
		Search: c.Query("search"),
	}

	var users []models.User
	meta, err := pagination.Find(ctx, database.Users(), filter.Bson(), pagination.FromQuery(c), nil, &users)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture utilisateurs"})
		return
	}
	if users == nil {
		users = []models.User{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       users,
		"pagination": meta,
	})
}

// SetUserDisabled active/désactive un compte (drapeau, jamais de suppression)
func SetUserDisabled(c *gin.Context) {
	userID := c.Param("id")

	var req struct {
		Disabled *bool `json:"disabled" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	// Un admin ne peut pas se désactiver lui-même
	if userID == c.GetString("user_id") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Impossible de désactiver son propre compte"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := database.Users().UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"disabled": *req.Disabled}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour utilisateur"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	log.Printf("✅ Utilisateur %s disabled=%v (admin %s)", userID, *req.Disabled, c.GetString("user_id"))
	c.JSON(http.StatusOK, gin.H{"success": true, "disabled": *req.Disabled})
}
