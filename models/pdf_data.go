package models

import (
	"time"

	"nhtransport/ledger"
)

// InvoiceData is everything the invoice template renders.
type InvoiceData struct {
	Company        *CompanyProfile
	Booking        *Booking
	Ledger         ledger.Result
	Contacts       string // formatted mobile numbers
	Date           string // formatted booking date
	AmountDue      float64
	AmountDueWords string
	GeneratedAt    time.Time
}
