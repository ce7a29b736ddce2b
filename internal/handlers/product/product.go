package product

import (
	"context"
	"net/http"
	"time"

	"lacave_back_end/internal/database"
	"lacave_back_end/internal/models"
	"lacave_back_end/internal/pagination"
	"lacave_back_end/internal/services"
	"lacave_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// referenceExists vérifie qu'un id hexadécimal pointe vers un document existant
func referenceExists(ctx context.Context, coll string, hexID string) bool {
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return false
	}
	count, err := database.MongoDB.Collection(coll).CountDocuments(ctx, bson.M{"_id": oid})
	return err == nil && count > 0
}

// 🟢 Créer un produit
func CreateProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if p.Name == "" || p.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Les champs 'name' et 'price' sont obligatoires"})
		return
	}
	if p.CategoryID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'category_id' est obligatoire"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if !referenceExists(ctx, "categories", p.CategoryID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Catégorie introuvable"})
		return
	}
	if p.BrandID != "" && !referenceExists(ctx, "brands", p.BrandID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Marque introuvable"})
		return
	}
	if p.SubCategoryID != "" && !referenceExists(ctx, "subcategories", p.SubCategoryID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Sous-catégorie introuvable"})
		return
	}

	p.ID = primitive.NewObjectID()
	p.Slug = utils.Slugify(p.Name)
	p.IsActive = true
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := database.Products().InsertOne(ctx, p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit"})
		return
	}

	// 🔄 Indexation Elasticsearch
	go services.IndexProduct(p)

	c.JSON(http.StatusOK, p)
}

// 🔵 Lister les produits actifs avec filtres et pagination
// GET /products?page=&limit=&category=&brand=&subcategory=&name=
func GetProducts(c *gin.Context) {
	listProducts(c, true)
}

// 🔵 Vue admin : inclut aussi les produits désactivés
func GetAllProductsAdmin(c *gin.Context) {
	listProducts(c, false)
}

func listProducts(c *gin.Context, activeOnly bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := pagination.ProductFilter{
		Category:    c.Query("category"),
		Brand:       c.Query("brand"),
		SubCategory: c.Query("subcategory"),
		Name:        c.Query("name"),
		ActiveOnly:  activeOnly,
	}

	var products []models.Product
	meta, err := pagination.Find(ctx, database.Products(), filter.Bson(), pagination.FromQuery(c), nil, &products)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}

	if products == nil {
		products = []models.Product{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       products,
		"pagination": meta,
	})
}

// 🔵 Récupérer un produit par id
func GetProductByID(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var p models.Product
	if err := database.Products().FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// 🟠 Mettre à jour un produit
func UpdateProduct(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var input struct {
		Name        *string   `json:"name"`
		Description *string   `json:"description"`
		Price       *float64  `json:"price"`
		Stock       *int      `json:"stock"`
		CategoryID  *string   `json:"category_id"`
		BrandID     *string   `json:"brand_id"`
		ImageURLs   *[]string `json:"image_urls"`
		IsActive    *bool     `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{"updated_at": time.Now()}
	if input.Name != nil {
		update["name"] = *input.Name
		update["slug"] = utils.Slugify(*input.Name)
	}
	if input.Description != nil {
		update["description"] = *input.Description
	}
	if input.Price != nil {
		update["price"] = *input.Price
	}
	if input.Stock != nil {
		update["stock"] = *input.Stock
	}
	if input.CategoryID != nil {
		if !referenceExists(ctx, "categories", *input.CategoryID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Catégorie introuvable"})
			return
		}
		update["category_id"] = *input.CategoryID
	}
	if input.BrandID != nil {
		if !referenceExists(ctx, "brands", *input.BrandID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Marque introuvable"})
			return
		}
		update["brand_id"] = *input.BrandID
	}
	if input.ImageURLs != nil {
		update["image_urls"] = *input.ImageURLs
	}
	if input.IsActive != nil {
		update["is_active"] = *input.IsActive
	}

	res, err := database.Products().UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": update})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	// Réindexer la version à jour
	var p models.Product
	if err := database.Products().FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err == nil {
		go services.IndexProduct(p)
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// 🔴 Supprimer un produit
func DeleteProduct(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := database.Products().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit"})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	go services.RemoveProductFromIndex(oid.Hex())

	c.JSON(http.StatusOK, gin.H{"success": true})
}
