package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nhtransport/ledger"
	"nhtransport/service"
	"nhtransport/utils"
)

func TestFlexTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{`null`, time.Time{}},
		{`""`, time.Time{}},
		{`"2025-03-14"`, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)},
		{`"14-03-2025"`, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)},
		{`"2025-03-14T10:30"`, time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)},
		{`"2025-03-14T10:30:00Z"`, time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		var ft flexTime
		require.NoError(t, json.Unmarshal([]byte(tt.in), &ft), tt.in)
		assert.True(t, tt.want.Equal(time.Time(ft)), tt.in)
	}

	var ft flexTime
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ft))
	assert.Error(t, json.Unmarshal([]byte(`20250314`), &ft))
}

func TestBookingRequestToModel(t *testing.T) {
	raw := `{
		"bookingNo": "NH0007",
		"bookingDate": "2025-03-14",
		"charges": {"dealAmount": "12,500.50"},
		"vehiclePayment": {
			"vehicleAdvance": 100,
			"paymentHistory": [{"amount": 100, "mode": "cash", "paymentDate": "2025-03-15"}]
		}
	}`
	var req bookingRequest
	require.NoError(t, json.Unmarshal([]byte(raw), &req))

	b := req.toModel()
	assert.Equal(t, "NH0007", b.BookingNo)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), b.BookingDate)
	assert.Equal(t, 12500.5, b.Charges.DealAmount.Float())
	assert.Equal(t, 100.0, b.VehiclePayment.VehicleAdvance.Float())
	require.Len(t, b.VehiclePayment.PaymentHistory, 1)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), b.VehiclePayment.PaymentHistory[0].PaymentDate)
}

func TestListFilterFromQuery(t *testing.T) {
	q := url.Values{
		"search":             {"pune"},
		"deliveryStatus":     {"in_transit"},
		"partyPaymentStatus": {"partial"},
		"from":               {"2025-03-01"},
		"to":                 {"2025-03-31T18:00"},
		"limit":              {"20"},
		"offset":             {"40"},
	}
	f, err := listFilterFromQuery(q)
	require.NoError(t, err)
	assert.Equal(t, "pune", f.Search)
	assert.Equal(t, ledger.DeliveryInTransit, f.DeliveryStatus)
	assert.Equal(t, ledger.PaymentPartial, f.PartyPaymentStatus)
	require.NotNil(t, f.From)
	require.NotNil(t, f.To)
	assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), *f.To)
	assert.Equal(t, 20, f.Limit)
	assert.Equal(t, 40, f.Offset)

	_, err = listFilterFromQuery(url.Values{"offset": {"x"}})
	assert.ErrorIs(t, err, service.ErrValidation)
	_, err = listFilterFromQuery(url.Values{"vehiclePaymentStatus": {"paid"}})
	assert.ErrorIs(t, err, service.ErrValidation)
	_, err = listFilterFromQuery(url.Values{"to": {"soon"}})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestMapError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("booking %w", service.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: NH0001", service.ErrConflict), http.StatusConflict},
		{fmt.Errorf("%w: party name is required", service.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: %q", ledger.ErrUnknownDeliveryStatus, "lost"), http.StatusBadRequest},
		{fmt.Errorf("%w: empty file", utils.ErrInvalidUpload), http.StatusBadRequest},
		{ledger.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{ledger.ErrProofRequired, http.StatusUnprocessableEntity},
		{service.ErrStorageDisabled, http.StatusServiceUnavailable},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, mapError(tt.err), tt.err.Error())
	}
}
