package models

import "time"

// Party is a customer billed for bookings.
type Party struct {
	ID        string     `json:"id" bson:"_id"`
	Name      string     `json:"name" bson:"name" validate:"required,max=200"`
	Address   string     `json:"address" bson:"address"`
	Contact   string     `json:"contact" bson:"contact" validate:"omitempty,max=20"`
	GSTNo     string     `json:"gstNo" bson:"gst_no" validate:"omitempty,len=15,alphanum"`
	CreatedAt time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" bson:"updated_at,omitempty"`
}

func (p *Party) Snapshot() PartySnapshot {
	return PartySnapshot{
		Name:    p.Name,
		Address: p.Address,
		Contact: p.Contact,
		GSTNo:   p.GSTNo,
	}
}
