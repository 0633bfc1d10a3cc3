package models

import "time"

type MobileEntry struct {
	Number string `json:"number" bson:"number"`
	Label  string `json:"label" bson:"label"`
}

// CompanyProfile is the letterhead printed on invoices.
type CompanyProfile struct {
	ID          string        `json:"id" bson:"_id"`
	CompanyName string        `json:"companyName" bson:"name" validate:"required"`
	Address     string        `json:"address" bson:"address"`
	City        string        `json:"city" bson:"city"`
	State       string        `json:"state" bson:"state"`
	Pincode     string        `json:"pincode" bson:"pincode" validate:"omitempty,numeric,len=6"`
	GSTIN       string        `json:"gstin" bson:"gstin" validate:"omitempty,len=15,alphanum"`
	Footnote    string        `json:"footnote" bson:"footnote"`
	Mobile      []MobileEntry `json:"mobile" bson:"mobile"`
	CreatedAt   time.Time     `json:"createdAt" bson:"created_at"`
}
