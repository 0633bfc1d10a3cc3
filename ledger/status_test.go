package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveStatus(t *testing.T) {
	assert.Equal(t, PaymentCompleted, DeriveStatus(0))
	assert.Equal(t, PaymentCompleted, DeriveStatus(-1))
	assert.Equal(t, PaymentPending, DeriveStatus(0.01))

	// same input, same answer
	assert.Equal(t, DeriveStatus(30000), DeriveStatus(30000))
}

func TestReconcileStatusKeepsPartialWhileOwed(t *testing.T) {
	assert.Equal(t, PaymentPartial, ReconcileStatus(100, PaymentPartial))
	assert.Equal(t, PaymentCompleted, ReconcileStatus(0, PaymentPartial))
	assert.Equal(t, PaymentPending, ReconcileStatus(100, PaymentCompleted))
	assert.Equal(t, PaymentPending, ReconcileStatus(100, ""))

	first := ReconcileStatus(500, PaymentPartial)
	assert.Equal(t, first, ReconcileStatus(500, first))
}

func TestParsePaymentStatus(t *testing.T) {
	st, err := ParsePaymentStatus(" Partial ")
	require.NoError(t, err)
	assert.Equal(t, PaymentPartial, st)

	st, err = ParsePaymentStatus("")
	require.NoError(t, err)
	assert.Equal(t, PaymentPending, st)

	_, err = ParsePaymentStatus("paid")
	assert.Error(t, err)
}
