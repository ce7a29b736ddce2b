package models

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Statut de paiement interne (tri-état), distinct du vocabulaire Khalti
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentFailed  PaymentStatus = "FAILED"
)

// Moyens de paiement acceptés au checkout
type PaymentMethod string

const (
	MethodKhalti         PaymentMethod = "khalti"
	MethodCashOnDelivery PaymentMethod = "cod"
	MethodCard           PaymentMethod = "card"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodKhalti, MethodCashOnDelivery, MethodCard:
		return true
	}
	return false
}

// Statuts renvoyés par Khalti sur /epayment/lookup/
const (
	KhaltiCompleted    = "Completed"
	KhaltiExpired      = "Expired"
	KhaltiUserCanceled = "User canceled"
	KhaltiInitiated    = "Initiated"
)

var (
	// ErrPaymentResolved : une commande SUCCESS/FAILED ne peut plus changer de
	// statut via un lookup — seul l'override admin y est autorisé.
	ErrPaymentResolved = errors.New("statut de paiement déjà résolu")

	ErrEmptyCart     = errors.New("panier vide")
	ErrTotalMismatch = errors.New("total incohérent : total != subtotal + delivery_fee")
)

// Table de transition (statut courant × statut Khalti → statut suivant).
// Les statuts Khalti absents de la table laissent le statut interne inchangé
// (paiement encore en cours côté fournisseur).
var khaltiTransitions = map[string]PaymentStatus{
	KhaltiCompleted:    PaymentSuccess,
	KhaltiExpired:      PaymentFailed,
	KhaltiUserCanceled: PaymentFailed,
}

// NextPaymentStatus applique la table de transition.
// Rejoue le même événement sur un état terminal → convergent (pas d'erreur) ;
// tout autre événement sur un état terminal → ErrPaymentResolved.
func NextPaymentStatus(current PaymentStatus, khaltiStatus string) (PaymentStatus, error) {
	next, known := khaltiTransitions[khaltiStatus]

	if current == PaymentSuccess || current == PaymentFailed {
		if known && next == current {
			return current, nil
		}
		return current, ErrPaymentResolved
	}

	if !known {
		return current, nil
	}
	return next, nil
}

// PaymentResolved indique si le paiement est dans un état terminal : une
// commande résolue n'est plus modifiable que par l'override admin.
func (o *Order) PaymentResolved() bool {
	return o.PaymentStatus == PaymentSuccess || o.PaymentStatus == PaymentFailed
}

// Sous-enregistrement Khalti, remplacé en bloc à chaque lookup
type KhaltiInfo struct {
	Pidx          string `bson:"pidx,omitempty" json:"pidx,omitempty"`
	Status        string `bson:"status,omitempty" json:"status,omitempty"`
	TransactionID string `bson:"transaction_id,omitempty" json:"transaction_id,omitempty"`
	Amount        int64  `bson:"amount,omitempty" json:"amount,omitempty"`
	RawResponse   bson.M `bson:"raw_response,omitempty" json:"raw_response,omitempty"`
}

type OrderItem struct {
	ProductID string  `bson:"product_id" json:"product_id"`
	Name      string  `bson:"name" json:"name"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	UnitPrice float64 `bson:"unit_price" json:"unit_price"`
}

// Adresse de livraison figée à la création de la commande
type DeliveryAddress struct {
	FullName string `bson:"full_name" json:"full_name"`
	Email    string `bson:"email" json:"email"`
	Phone    string `bson:"phone" json:"phone"`
	Street   string `bson:"street" json:"street"`
	City     string `bson:"city" json:"city"`
	Note     string `bson:"note,omitempty" json:"note,omitempty"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber     string             `bson:"order_number" json:"order_number"`
	UserID          string             `bson:"user_id" json:"user_id"`
	Items           []OrderItem        `bson:"items" json:"items"`
	Subtotal        float64            `bson:"subtotal" json:"subtotal"`
	DeliveryFee     float64            `bson:"delivery_fee" json:"delivery_fee"`
	Total           float64            `bson:"total" json:"total"`
	PaymentMethod   PaymentMethod      `bson:"payment_method" json:"payment_method"`
	PaymentStatus   PaymentStatus      `bson:"payment_status" json:"payment_status"`
	Khalti          KhaltiInfo         `bson:"khalti,omitempty" json:"khalti,omitempty"`
	DeliveryAddress DeliveryAddress    `bson:"delivery_address" json:"delivery_address"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// Subtotal recalculé côté serveur depuis les lignes
func ItemsSubtotal(items []OrderItem) float64 {
	var subtotal float64
	for _, item := range items {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}
	return subtotal
}

// Validate vérifie les invariants de création : lignes non vides, quantités
// positives et total == subtotal + delivery_fee (à 1 centime près).
func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return ErrEmptyCart
	}
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("quantité invalide pour %q", item.Name)
		}
		if item.UnitPrice < 0 {
			return fmt.Errorf("prix invalide pour %q", item.Name)
		}
	}
	if !o.PaymentMethod.IsValid() {
		return fmt.Errorf("moyen de paiement inconnu : %q", o.PaymentMethod)
	}
	if math.Abs(o.Total-(o.Subtotal+o.DeliveryFee)) > 0.01 {
		return ErrTotalMismatch
	}
	return nil
}

// NewOrderNumber génère un identifiant de commande lisible, basé sur l'heure
// (ex: LC-20260830153045-9f3a), distinct de l'ObjectID Mongo.
func NewOrderNumber(now time.Time) string {
	suffix := make([]byte, 2)
	rand.Read(suffix)
	return fmt.Sprintf("LC-%s-%s", now.Format("20060102150405"), hex.EncodeToString(suffix))
}
