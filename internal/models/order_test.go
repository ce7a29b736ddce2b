package models

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextPaymentStatus_Pending(t *testing.T) {
	cases := []struct {
		khaltiStatus string
		want         PaymentStatus
	}{
		{KhaltiCompleted, PaymentSuccess},
		{KhaltiExpired, PaymentFailed},
		{KhaltiUserCanceled, PaymentFailed},
		{KhaltiInitiated, PaymentPending},
		{"Refunded", PaymentPending},
		{"", PaymentPending},
	}

	for _, tc := range cases {
		got, err := NextPaymentStatus(PaymentPending, tc.khaltiStatus)
		require.NoError(t, err, "statut %q", tc.khaltiStatus)
		assert.Equal(t, tc.want, got, "statut %q", tc.khaltiStatus)
	}
}

func TestNextPaymentStatus_TerminalRejette(t *testing.T) {
	// Un événement contradictoire sur un état terminal est refusé
	got, err := NextPaymentStatus(PaymentSuccess, KhaltiExpired)
	assert.ErrorIs(t, err, ErrPaymentResolved)
	assert.Equal(t, PaymentSuccess, got)

	got, err = NextPaymentStatus(PaymentFailed, KhaltiCompleted)
	assert.ErrorIs(t, err, ErrPaymentResolved)
	assert.Equal(t, PaymentFailed, got)

	// Un statut inconnu ne débloque pas un état terminal non plus
	_, err = NextPaymentStatus(PaymentSuccess, "Pending")
	assert.ErrorIs(t, err, ErrPaymentResolved)
}

func TestNextPaymentStatus_RejeuConvergent(t *testing.T) {
	// Rejouer le même événement qu'à la résolution ne produit pas d'erreur
	got, err := NextPaymentStatus(PaymentSuccess, KhaltiCompleted)
	require.NoError(t, err)
	assert.Equal(t, PaymentSuccess, got)

	got, err = NextPaymentStatus(PaymentFailed, KhaltiExpired)
	require.NoError(t, err)
	assert.Equal(t, PaymentFailed, got)

	got, err = NextPaymentStatus(PaymentFailed, KhaltiUserCanceled)
	require.NoError(t, err)
	assert.Equal(t, PaymentFailed, got)
}

func TestPaymentResolved(t *testing.T) {
	// Seuls SUCCESS et FAILED verrouillent la commande : une initiation
	// rejouée sur une commande résolue doit être refusée, pas réécrite
	o := validOrder()
	assert.False(t, o.PaymentResolved())

	o.PaymentStatus = PaymentSuccess
	assert.True(t, o.PaymentResolved())

	o.PaymentStatus = PaymentFailed
	assert.True(t, o.PaymentResolved())
}

func validOrder() Order {
	return Order{
		Items: []OrderItem{
			{ProductID: "p1", Name: "Château Margaux 2015", Quantity: 1, UnitPrice: 1500},
			{ProductID: "p2", Name: "Glenfiddich 12 ans", Quantity: 2, UnitPrice: 250},
		},
		Subtotal:      2000,
		DeliveryFee:   150,
		Total:         2150,
		PaymentMethod: MethodKhalti,
		PaymentStatus: PaymentPending,
	}
}

func TestOrderValidate(t *testing.T) {
	o := validOrder()
	assert.NoError(t, o.Validate())
	assert.Equal(t, 2000.0, ItemsSubtotal(o.Items))
}

func TestOrderValidate_PanierVide(t *testing.T) {
	o := validOrder()
	o.Items = nil
	assert.ErrorIs(t, o.Validate(), ErrEmptyCart)
}

func TestOrderValidate_TotalIncoherent(t *testing.T) {
	o := validOrder()
	o.Total = 2000 // frais de livraison oubliés
	assert.ErrorIs(t, o.Validate(), ErrTotalMismatch)

	// un écart d'arrondi d'un centime reste accepté
	o.Total = 2150.01
	assert.NoError(t, o.Validate())
}

func TestOrderValidate_LignesInvalides(t *testing.T) {
	o := validOrder()
	o.Items[0].Quantity = 0
	assert.Error(t, o.Validate())

	o = validOrder()
	o.Items[1].UnitPrice = -5
	assert.Error(t, o.Validate())

	o = validOrder()
	o.PaymentMethod = "virement"
	assert.Error(t, o.Validate())
}

func TestNewOrderNumber(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 30, 45, 0, time.UTC)
	n := NewOrderNumber(now)

	assert.Regexp(t, regexp.MustCompile(`^LC-20260830153045-[0-9a-f]{4}$`), n)
	assert.NotEqual(t, n, NewOrderNumber(now), "deux appels ne doivent pas entrer en collision")
}

func TestPaymentMethodIsValid(t *testing.T) {
	assert.True(t, MethodKhalti.IsValid())
	assert.True(t, MethodCashOnDelivery.IsValid())
	assert.True(t, MethodCard.IsValid())
	assert.False(t, PaymentMethod("paypal").IsValid())
	assert.False(t, PaymentMethod("").IsValid())
}
