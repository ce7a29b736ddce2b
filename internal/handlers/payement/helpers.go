package payement

import (
	"context"
	"errors"
	"log"
	"math"
	"os"
	"time"

	"lacave_back_end/internal/database"
	"lacave_back_end/internal/models"
	"lacave_back_end/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
)

func frontendURL() string {
	if u := os.Getenv("FRONTEND_URL"); u != "" {
		return u
	}
	return "http://localhost:3000"
}

// amountPaisa convertit un montant en unités mineures (paisa)
func amountPaisa(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// resolveOrderPayment applique la table de transition et persiste le résultat.
// Le sous-enregistrement fournisseur est remplacé en bloc dans un seul
// UpdateOne : deux lookups concurrents pour le même pidx ne peuvent produire
// qu'un des états valides, jamais un hybride.
func resolveOrderPayment(ctx context.Context, order *models.Order, providerStatus string, sub *models.KhaltiInfo) error {
	next, err := models.NextPaymentStatus(order.PaymentStatus, providerStatus)
	if err != nil {
		return err
	}

	update := bson.M{
		"payment_status": next,
		"updated_at":     time.Now(),
	}
	if sub != nil {
		update["khalti"] = *sub
	}

	// Le filtre sur le statut courant départage deux lookups concurrents :
	// un seul matche, donc un seul déclenche la confirmation
	res, err := database.Orders().UpdateOne(ctx,
		bson.M{"_id": order.ID, "payment_status": order.PaymentStatus},
		bson.M{"$set": update},
	)
	if err != nil {
		return err
	}

	if shouldConfirmOrder(res.MatchedCount > 0, order.PaymentStatus, next) {
		go confirmOrder(*order)
	}

	order.PaymentStatus = next
	if sub != nil {
		order.Khalti = *sub
	}
	return nil
}

// shouldConfirmOrder décide si la résolution déclenche la confirmation :
// uniquement la première transition effective vers SUCCESS, jamais un rejeu
// ni une écriture perdue face à un écrivain concurrent
func shouldConfirmOrder(won bool, prev, next models.PaymentStatus) bool {
	return won && next == models.PaymentSuccess && prev != models.PaymentSuccess
}

// confirmOrder : effets de bord d'un paiement réussi — purge du panier,
// e-mail de confirmation avec facture PDF en pièce jointe
func confirmOrder(order models.Order) {
	ctx := context.Background()

	if err := database.RedisClient.Del(ctx, "cart:"+order.UserID).Err(); err == nil {
		log.Printf("🧹 Panier supprimé Redis pour %s", order.UserID)
	}

	email := order.DeliveryAddress.Email
	if email == "" {
		var user models.User
		if err := database.Users().FindOne(ctx, bson.M{"_id": order.UserID}).Decode(&user); err == nil {
			email = user.Email
		}
	}
	if email == "" {
		log.Printf("⚠️ Pas d'adresse e-mail pour la commande %s, confirmation non envoyée", order.OrderNumber)
		return
	}

	html := utils.GenerateOrderConfirmationHTML(order)

	pdf, err := utils.RenderInvoicePDF(utils.GetFrontendInvoiceBaseURL(), order.OrderNumber)
	if err != nil {
		log.Println("❌ Erreur génération PDF :", err)
		pdf = nil
	}

	if err := utils.SendConfirmationEmail(email, "Confirmation de votre commande La Cave", html, pdf); err != nil {
		log.Println("❌ Erreur envoi e-mail confirmation :", err)
	} else {
		log.Println("📧 E-mail de confirmation envoyé à", email)
	}
}

// findOrderByNumber charge une commande par son numéro lisible
func findOrderByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := database.Orders().FindOne(ctx, bson.M{"order_number": orderNumber}).Decode(&order)
	if err != nil {
		return nil, errors.New("commande introuvable")
	}
	return &order, nil
}
