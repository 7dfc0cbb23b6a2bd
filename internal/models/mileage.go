package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mileage is one odometer reading for a vehicle. IsSetupEntry marks the
// reading recorded when the vehicle was first added.
type Mileage struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VehicleID    primitive.ObjectID `bson:"vehicle_id" json:"-"`
	Mileage      int                `bson:"mileage" json:"mileage"`
	Date         time.Time          `bson:"date" json:"date"`
	IsSetupEntry bool               `bson:"is_setup_entry" json:"isSetupEntry"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

// MileageInput carries the client-supplied mileage fields.
type MileageInput struct {
	Mileage      *int       `json:"mileage"`
	Date         *time.Time `json:"date"`
	IsSetupEntry *bool      `json:"isSetupEntry"`
}

// ValidateCreate checks that required fields are present and well formed.
func (in MileageInput) ValidateCreate() map[string]string {
	fields := in.validate()
	if in.Mileage == nil {
		fields["mileage"] = "mileage is required"
	}
	if in.Date == nil {
		fields["date"] = "date is required"
	}
	return fields
}

// ValidateUpdate checks only the fields that were provided.
func (in MileageInput) ValidateUpdate() map[string]string {
	return in.validate()
}

func (in MileageInput) validate() map[string]string {
	fields := make(map[string]string)
	if in.Mileage != nil && *in.Mileage < 0 {
		fields["mileage"] = "mileage must not be negative"
	}
	return fields
}

// ApplyTo merges the provided fields onto an existing mileage entry.
func (in MileageInput) ApplyTo(m *Mileage) {
	if in.Mileage != nil {
		m.Mileage = *in.Mileage
	}
	if in.Date != nil {
		m.Date = *in.Date
	}
	if in.IsSetupEntry != nil {
		m.IsSetupEntry = *in.IsSetupEntry
	}
}
