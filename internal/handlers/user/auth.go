package user

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"lacave_back_end/internal/database"
	"lacave_back_end/internal/middleware"
	"lacave_back_end/internal/models"
	"lacave_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const verifyTokenTTL = 24 * time.Hour

func baseURL() string {
	if u := os.Getenv("BASE_URL"); u != "" {
		return u
	}
	return "http://localhost:8080"
}

// ================== INSCRIPTION ==================

func CreateUser(c *gin.Context) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// email déjà pris ?
	var existing models.User
	err := database.Users().FindOne(ctx, bson.M{"email": input.Email}).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	user := models.User{
		ID:        primitive.NewObjectID().Hex(),
		Name:      input.Name,
		Email:     input.Email,
		Password:  hashedPassword,
		Role:      "customer",
		Verified:  false,
		Disabled:  false,
		CreatedAt: time.Now(),
	}

	if _, err := database.Users().InsertOne(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	// Jeton de vérification à usage unique, stocké dans Redis avec TTL
	token := uuid.NewString()
	if err := database.Redis.Set(ctx, "verify:"+token, user.ID, verifyTokenTTL).Err(); err != nil {
		log.Println("⚠️ Erreur stockage jeton de vérification:", err)
	}

	verifyURL := baseURL() + "/auth/verify?token=" + token
	go func() {
		if err := utils.SendVerificationEmail(user.Email, verifyURL); err != nil {
			log.Println("❌ Erreur envoi e-mail de vérification:", err)
		}
	}()

	c.JSON(http.StatusCreated, gin.H{
		"userId":  user.ID,
		"email":   user.Email,
		"message": "Compte créé. Vérifiez votre boîte mail pour activer votre compte.",
	})
}

// ================== VÉRIFICATION E-MAIL ==================

func VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Jeton manquant"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	userID, err := database.Redis.Get(ctx, "verify:"+token).Result()
	if err != nil || userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Jeton invalide ou expiré"})
		return
	}

	res, err := database.Users().UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"verified": true}},
	)
	if err != nil || res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	database.Redis.Del(ctx, "verify:"+token)
	log.Printf("✅ Compte vérifié pour user %s", userID)

	c.JSON(http.StatusOK, gin.H{"message": "Compte vérifié, vous pouvez vous connecter"})
}

// ================== CONNEXION ==================

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err := database.Users().FindOne(ctx, bson.M{"email": input.Email}).Decode(&user)
	if err != nil || !utils.VerifyPassword(input.Password, user.Password) {
		middleware.RecordFailedLogin(input.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	if !user.Verified {
		c.JSON(http.StatusForbidden, gin.H{"error": "E-mail non vérifié. Consultez votre boîte mail."})
		return
	}
	if user.Disabled {
		c.JSON(http.StatusForbidden, gin.H{"error": "Compte désactivé"})
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	middleware.ClearLoginAttempts(input.Email)

	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"userId": user.ID,
		"email":  user.Email,
		"name":   user.Name,
		"role":   user.Role,
	})
}

// ================== PROFIL ==================

func Me(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := database.Users().FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	c.JSON(http.StatusOK, user)
}
