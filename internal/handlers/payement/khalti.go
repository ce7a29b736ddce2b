package payement

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"lacave_back_end/internal/database"
	"lacave_back_end/internal/models"
	"lacave_back_end/internal/services"
	"lacave_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// InitiateKhaltiPayment démarre un paiement Khalti pour une commande PENDING.
// POST /payment/khalti/initiate {"order_number": "..."}
func InitiateKhaltiPayment(c *gin.Context) {
	var req struct {
		OrderNumber string `json:"order_number" binding:"required"`
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

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	order, err := findOrderByNumber(ctx, req.OrderNumber)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}
	if order.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Commande non autorisée"})
		return
	}
	if order.PaymentMethod != models.MethodKhalti {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cette commande n'est pas payable via Khalti"})
		return
	}
	// Une commande déjà résolue ne repart jamais en paiement : rejouer
	// l'initiation écraserait le pidx enregistré ou, en cas d'échec de
	// l'appel, basculerait une commande payée en FAILED
	if order.PaymentResolved() {
		c.JSON(http.StatusConflict, gin.H{
			"error":          "Statut de paiement déjà résolu",
			"payment_status": order.PaymentStatus,
		})
		return
	}

	details := make([]services.KhaltiProductDetail, 0, len(order.Items))
	for _, item := range order.Items {
		details = append(details, services.KhaltiProductDetail{
			Identity:   item.ProductID,
			Name:       item.Name,
			TotalPrice: amountPaisa(item.UnitPrice * float64(item.Quantity)),
			Quantity:   item.Quantity,
			UnitPrice:  amountPaisa(item.UnitPrice),
		})
	}

	initReq := services.KhaltiInitiateRequest{
		ReturnURL:         frontendURL() + "/payment/return",
		WebsiteURL:        frontendURL(),
		Amount:            amountPaisa(order.Total),
		PurchaseOrderID:   order.OrderNumber,
		PurchaseOrderName: "Commande " + order.OrderNumber,
		CustomerInfo: services.KhaltiCustomer{
			Name:  order.DeliveryAddress.FullName,
			Email: order.DeliveryAddress.Email,
			Phone: order.DeliveryAddress.Phone,
		},
		ProductDetails: details,
	}

	raw, err := services.KhaltiInitiate(ctx, initReq)
	if err != nil {
		// Échec d'initiation : la commande passe FAILED (best-effort, sans
		// retry). Le filtre sur PENDING protège une commande qu'un lookup
		// concurrent aurait résolue entre-temps
		database.Orders().UpdateOne(ctx, bson.M{"_id": order.ID, "payment_status": models.PaymentPending}, bson.M{"$set": bson.M{
			"payment_status": models.PaymentFailed,
			"khalti.status":  models.KhaltiInitiated,
			"updated_at":     time.Now(),
		}})

		var khaltiErr *services.KhaltiError
		if errors.As(err, &khaltiErr) && khaltiErr.Body != nil {
			log.Printf("❌ Initiation Khalti refusée pour %s: %v", order.OrderNumber, khaltiErr.Body)
			c.JSON(http.StatusBadRequest, gin.H{"error": khaltiErr.Body})
			return
		}

		log.Printf("❌ Erreur appel Khalti initiate: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	pidx := services.KhaltiString(raw, "pidx")

	// Référence fournisseur attachée à la commande, statut interne inchangé
	_, err = database.Orders().UpdateOne(ctx, bson.M{"_id": order.ID, "payment_status": models.PaymentPending}, bson.M{"$set": bson.M{
		"khalti.pidx":   pidx,
		"khalti.status": models.KhaltiInitiated,
		"updated_at":    time.Now(),
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement référence paiement"})
		return
	}

	log.Printf("💳 Paiement Khalti initié pour %s (pidx=%s)", order.OrderNumber, pidx)

	response := gin.H{}
	for k, v := range raw {
		response[k] = v
	}

	// QR scan-to-pay pour le front
	if paymentURL := services.KhaltiString(raw, "payment_url"); paymentURL != "" {
		if qr, err := utils.GeneratePaymentQR(paymentURL); err == nil {
			response["qr_code"] = qr
		}
	}

	c.JSON(http.StatusOK, response)
}

// LookupKhaltiPayment interroge le statut Khalti d'un pidx et applique la
// transition de statut sur la commande correspondante.
// POST /payment/khalti/lookup {"pidx": "..."} — aussi appelé par le
// return-URL GET avec ?pidx=
func LookupKhaltiPayment(c *gin.Context) {
	pidx := c.Query("pidx")
	if pidx == "" {
		var req struct {
			Pidx string `json:"pidx"`
		}
		if err := c.ShouldBindJSON(&req); err == nil {
			pidx = req.Pidx
		}
	}
	if pidx == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pidx manquant"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	raw, err := services.KhaltiLookup(ctx, pidx)
	if err != nil {
		var khaltiErr *services.KhaltiError
		if errors.As(err, &khaltiErr) && khaltiErr.Body != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": khaltiErr.Body})
			return
		}
		log.Printf("❌ Erreur appel Khalti lookup: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur de communication avec Khalti"})
		return
	}

	providerStatus := services.KhaltiString(raw, "status")

	// La commande est retrouvée par sa référence fournisseur, pas par son
	// numéro : un pidx jamais enregistré (lookup arrivé avant initiate, ou
	// rejoué) ne matche aucune commande.
	var order models.Order
	err = database.Orders().FindOne(ctx, bson.M{"khalti.pidx": pidx}).Decode(&order)
	if err != nil {
		log.Printf("⚠️ Lookup Khalti sans commande associée (pidx=%s, statut=%s)", pidx, providerStatus)
		response := gin.H{"order_matched": false}
		for k, v := range raw {
			response[k] = v
		}
		c.JSON(http.StatusOK, response)
		return
	}

	sub := models.KhaltiInfo{
		Pidx:          pidx,
		Status:        providerStatus,
		TransactionID: services.KhaltiString(raw, "transaction_id"),
		Amount:        services.KhaltiAmount(raw),
		RawResponse:   bson.M(raw),
	}

	if err := resolveOrderPayment(ctx, &order, providerStatus, &sub); err != nil {
		if errors.Is(err, models.ErrPaymentResolved) {
			// Garde d'état terminal : un lookup tardif ou rejoué ne peut pas
			// écraser une commande déjà résolue
			log.Printf("🔁 Lookup ignoré pour %s : statut déjà %s", order.OrderNumber, order.PaymentStatus)
			c.JSON(http.StatusConflict, gin.H{
				"error":          "Statut de paiement déjà résolu",
				"payment_status": order.PaymentStatus,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour commande"})
		return
	}

	log.Printf("💳 Lookup Khalti %s → %s (commande %s)", providerStatus, order.PaymentStatus, order.OrderNumber)

	response := gin.H{
		"order_matched":  true,
		"order_number":   order.OrderNumber,
		"payment_status": order.PaymentStatus,
	}
	for k, v := range raw {
		response[k] = v
	}

	c.JSON(http.StatusOK, response)
}
