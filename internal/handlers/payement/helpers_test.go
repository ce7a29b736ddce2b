package payement

import (
	"testing"

	"lacave_back_end/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestShouldConfirmOrder(t *testing.T) {
	// Première transition effective PENDING → SUCCESS : confirmation envoyée
	assert.True(t, shouldConfirmOrder(true, models.PaymentPending, models.PaymentSuccess))

	// Rejeu convergent SUCCESS → SUCCESS : pas de second e-mail
	assert.False(t, shouldConfirmOrder(true, models.PaymentSuccess, models.PaymentSuccess))

	// Course perdue : un lookup concurrent a déjà écrit la transition
	assert.False(t, shouldConfirmOrder(false, models.PaymentPending, models.PaymentSuccess))

	// Un échec ne déclenche jamais de confirmation
	assert.False(t, shouldConfirmOrder(true, models.PaymentPending, models.PaymentFailed))
	assert.False(t, shouldConfirmOrder(true, models.PaymentFailed, models.PaymentFailed))
}

func TestAmountPaisa(t *testing.T) {
	assert.Equal(t, int64(215000), amountPaisa(2150))
	assert.Equal(t, int64(150), amountPaisa(1.5))
	// arrondi au paisa le plus proche, pas de troncature flottante
	assert.Equal(t, int64(1010), amountPaisa(10.099999))
}
