package product

import (
	"context"
	"net/http"
	"time"

	"lacave_back_end/internal/cache"
	"lacave_back_end/internal/database"
	"lacave_back_end/internal/models"
	"lacave_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tables de référence du catalogue : catégories, marques, sous-catégories.
// Lectures cachées dans Redis (TTL 1h), invalidées à chaque écriture.

// 🟢 Créer une catégorie
func CreateCategory(c *gin.Context) {
	var cat models.Category
	if err := c.ShouldBindJSON(&cat); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if cat.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'name' est obligatoire"})
		return
	}

	cat.ID = primitive.NewObjectID()
	cat.Slug = utils.Slugify(cat.Name)
	cat.CreatedAt = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := database.Categories().InsertOne(ctx, cat); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création catégorie"})
		return
	}

	cache.Invalidate(ctx, "categories:all")
	c.JSON(http.StatusOK, cat)
}

// 🔵 Lister les catégories
func GetAllCategories(c *gin.Context) {
	ctx := context.Background()
	cacheKey := "categories:all"

	var cached []models.Category
	if cache.GetJSON(ctx, cacheKey, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	cursor, err := database.Categories().Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catégories"})
		return
	}

	var cats []models.Category
	if err := cursor.All(ctx, &cats); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage catégories"})
		return
	}
	if cats == nil {
		cats = []models.Category{}
	}

	cache.SetJSON(ctx, cacheKey, cats, cache.ReferenceTTL)
	c.JSON(http.StatusOK, cats)
}

// 🔴 Supprimer une catégorie
func DeleteCategory(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID catégorie invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Refuse la suppression si des produits y sont rattachés
	count, err := database.Products().CountDocuments(ctx, bson.M{"category_id": oid.Hex()})
	if err == nil && count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Des produits utilisent encore cette catégorie"})
		return
	}

	res, err := database.Categories().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression catégorie"})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie introuvable"})
		return
	}

	cache.Invalidate(ctx, "categories:all")
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// 🟢 Créer une marque
func CreateBrand(c *gin.Context) {
	var brand models.Brand
	if err := c.ShouldBindJSON(&brand); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if brand.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'name' est obligatoire"})
		return
	}

	brand.ID = primitive.NewObjectID()
	brand.Slug = utils.Slugify(brand.Name)
	brand.CreatedAt = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := database.Brands().InsertOne(ctx, brand); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création marque"})
		return
	}

	cache.Invalidate(ctx, "brands:all")
	c.JSON(http.StatusOK, brand)
}

// 🔵 Lister les marques
func GetAllBrands(c *gin.Context) {
	ctx := context.Background()
	cacheKey := "brands:all"

	var cached []models.Brand
	if cache.GetJSON(ctx, cacheKey, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	cursor, err := database.Brands().Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture marques"})
		return
	}

	var brands []models.Brand
	if err := cursor.All(ctx, &brands); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage marques"})
		return
	}
	if brands == nil {
		brands = []models.Brand{}
	}

	cache.SetJSON(ctx, cacheKey, brands, cache.ReferenceTTL)
	c.JSON(http.StatusOK, brands)
}

// 🟢 Créer une sous-catégorie (rattachée à une catégorie)
func CreateSubCategory(c *gin.Context) {
	var sub models.SubCategory
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if sub.Name == "" || sub.CategoryID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Les champs 'name' et 'category_id' sont obligatoires"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if !referenceExists(ctx, "categories", sub.CategoryID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Catégorie introuvable"})
		return
	}

	sub.ID = primitive.NewObjectID()
	sub.Slug = utils.Slugify(sub.Name)
	sub.CreatedAt = time.Now()

	if _, err := database.SubCategories().InsertOne(ctx, sub); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création sous-catégorie"})
		return
	}

	cache.Invalidate(ctx, "subcategories:all")
	c.JSON(http.StatusOK, sub)
}

// 🔵 Lister les sous-catégories (optionnellement par catégorie)
func GetAllSubCategories(c *gin.Context) {
	ctx := context.Background()

	filter := bson.M{}
	if categoryID := c.Query("category"); categoryID != "" {
		filter["category_id"] = categoryID
	}

	cacheKey := "subcategories:all"
	if len(filter) == 0 {
		var cached []models.SubCategory
		if cache.GetJSON(ctx, cacheKey, &cached) {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	cursor, err := database.SubCategories().Find(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture sous-catégories"})
		return
	}

	var subs []models.SubCategory
	if err := cursor.All(ctx, &subs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage sous-catégories"})
		return
	}
	if subs == nil {
		subs = []models.SubCategory{}
	}

	if len(filter) == 0 {
		cache.SetJSON(ctx, cacheKey, subs, cache.ReferenceTTL)
	}
	c.JSON(http.StatusOK, subs)
}
