package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"nhtransport/ledger"
	"nhtransport/models"
	"nhtransport/repository"
	"nhtransport/service"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04", // datetime-local inputs
	"2006-01-02",
	"02-01-2006",
}

// flexTime accepts the date formats browser forms send. Null and "" are zero.
type flexTime time.Time

func (t *flexTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = flexTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string")
	}
	parsed, err := parseDate(s)
	if err != nil {
		return err
	}
	*t = flexTime(parsed)
	return nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

type paymentRequest struct {
	models.PaymentEntry
	PaymentDate flexTime `json:"paymentDate"`
}

func (p paymentRequest) toModel() models.PaymentEntry {
	e := p.PaymentEntry
	e.PaymentDate = time.Time(p.PaymentDate)
	return e
}

type vehiclePaymentRequest struct {
	models.VehiclePayment
	PaymentHistory []paymentRequest `json:"paymentHistory"`
}

// bookingRequest is a booking as posted by the admin forms.
type bookingRequest struct {
	models.Booking
	BookingDate    flexTime              `json:"bookingDate"`
	VehiclePayment vehiclePaymentRequest `json:"vehiclePayment"`
}

func (r bookingRequest) toModel() *models.Booking {
	b := r.Booking
	b.BookingDate = time.Time(r.BookingDate)
	b.VehiclePayment = r.VehiclePayment.VehiclePayment
	if r.VehiclePayment.PaymentHistory != nil {
		b.VehiclePayment.PaymentHistory = make([]models.PaymentEntry, len(r.VehiclePayment.PaymentHistory))
		for i, p := range r.VehiclePayment.PaymentHistory {
			b.VehiclePayment.PaymentHistory[i] = p.toModel()
		}
	}
	return &b
}

type calculateRequest struct {
	Charges        map[string]any `json:"charges"`
	VehiclePayment map[string]any `json:"vehiclePayment"`
}

type deliveryRequest struct {
	Status  string `json:"status"`
	Remarks string `json:"remarks"`
}

type paymentStatusRequest struct {
	PartyPaymentStatus   string `json:"partyPaymentStatus"`
	VehiclePaymentStatus string `json:"vehiclePaymentStatus"`
}

// listFilterFromQuery reads search, deliveryStatus, partyPaymentStatus,
// vehiclePaymentStatus, from, to, limit and offset.
func listFilterFromQuery(q url.Values) (service.ListFilter, error) {
	var f service.ListFilter
	f.Search = q.Get("search")

	if s := q.Get("deliveryStatus"); s != "" {
		st, err := ledger.ParseDeliveryStatus(s)
		if err != nil {
			return f, err
		}
		f.DeliveryStatus = st
	}
	for key, dst := range map[string]*ledger.PaymentStatus{
		"partyPaymentStatus":   &f.PartyPaymentStatus,
		"vehiclePaymentStatus": &f.VehiclePaymentStatus,
	} {
		if s := q.Get(key); s != "" {
			st, err := ledger.ParsePaymentStatus(s)
			if err != nil {
				return f, fmt.Errorf("%w: %v", service.ErrValidation, err)
			}
			*dst = st
		}
	}

	for key, dst := range map[string]**time.Time{"from": &f.From, "to": &f.To} {
		if s := q.Get(key); s != "" {
			t, err := parseDate(s)
			if err != nil {
				return f, fmt.Errorf("%w: %v", service.ErrValidation, err)
			}
			t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			*dst = &t
		}
	}

	for key, dst := range map[string]*int{"limit": &f.Limit, "offset": &f.Offset} {
		if s := q.Get(key); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				return f, fmt.Errorf("%w: %s must be a non-negative integer", service.ErrValidation, key)
			}
			*dst = n
		}
	}
	return f, nil
}

func bookingFilterFromQuery(q url.Values) (repository.BookingFilter, error) {
	f, err := listFilterFromQuery(q)
	return f.BookingFilter, err
}
