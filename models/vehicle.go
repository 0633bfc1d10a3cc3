package models

import "time"

type Vehicle struct {
	ID            string     `json:"id" bson:"_id"`
	VehicleNumber string     `json:"vehicleNumber" bson:"vehicle_number" validate:"required,max=20"`
	OwnerName     string     `json:"ownerName" bson:"owner_name"`
	ContactNumber string     `json:"contactNumber" bson:"contact_number" validate:"omitempty,max=20"`
	VehicleType   string     `json:"vehicleType" bson:"vehicle_type"`
	CreatedAt     time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty" bson:"updated_at,omitempty"`
}

func (v *Vehicle) Snapshot() VehicleSnapshot {
	return VehicleSnapshot{
		VehicleNumber: v.VehicleNumber,
		OwnerName:     v.OwnerName,
		ContactNumber: v.ContactNumber,
		VehicleType:   v.VehicleType,
	}
}
