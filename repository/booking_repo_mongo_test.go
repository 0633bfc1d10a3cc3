package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"nhtransport/ledger"
)

func TestBookingFilterBSON(t *testing.T) {
	assert.Empty(t, bookingFilterBSON(BookingFilter{}))

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	f := bookingFilterBSON(BookingFilter{
		Search:         " NH.00 ",
		DeliveryStatus: ledger.DeliveryInTransit,
		From:           &from,
	})

	assert.Equal(t, "in-transit", f["delivery.status"])
	assert.Equal(t, bson.M{"$gte": from}, f["booking_date"])

	or, ok := f["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 5)
	assert.Equal(t, bson.M{"booking_no": primitive.Regex{Pattern: `NH\.00`, Options: "i"}}, or[0])
}
