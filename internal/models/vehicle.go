package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Motorization classifies a vehicle's drivetrain.
type Motorization string

const (
	MotorizationThermal  Motorization = "thermal"
	MotorizationHybrid   Motorization = "hybrid"
	MotorizationElectric Motorization = "electric"
)

// IsValidMotorization checks if a motorization value is known.
func IsValidMotorization(m Motorization) bool {
	switch m {
	case MotorizationThermal, MotorizationHybrid, MotorizationElectric:
		return true
	default:
		return false
	}
}

// Vehicle is owned by exactly one user. Deleting it removes all of its
// mileage and spending records.
type Vehicle struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"user_id" json:"-"`
	Brand        string             `bson:"brand" json:"brand"`
	Model        string             `bson:"model" json:"model"`
	CustomName   string             `bson:"custom_name" json:"customName"`
	Motorization Motorization       `bson:"motorization" json:"motorization"`
	ImageURL     string             `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	Year         *int               `bson:"year,omitempty" json:"year,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

// VehicleInput carries the client-supplied vehicle fields. Pointers
// distinguish "absent" from "zero" so updates can merge only what was sent.
type VehicleInput struct {
	Brand        *string       `json:"brand"`
	Model        *string       `json:"model"`
	CustomName   *string       `json:"customName"`
	Motorization *Motorization `json:"motorization"`
	ImageURL     *string       `json:"imageUrl"`
	Year         *int          `json:"year"`
}

// ValidateCreate checks that required fields are present and all provided
// fields are well formed.
func (in VehicleInput) ValidateCreate() map[string]string {
	fields := in.validate()
	if in.Brand == nil || *in.Brand == "" {
		fields["brand"] = "brand is required"
	}
	if in.Model == nil || *in.Model == "" {
		fields["model"] = "model is required"
	}
	if in.CustomName == nil || *in.CustomName == "" {
		fields["customName"] = "customName is required"
	}
	if in.Motorization == nil {
		fields["motorization"] = "motorization is required"
	}
	return fields
}

// ValidateUpdate checks only the fields that were provided.
func (in VehicleInput) ValidateUpdate() map[string]string {
	fields := in.validate()
	if in.Brand != nil && *in.Brand == "" {
		fields["brand"] = "brand must not be empty"
	}
	if in.Model != nil && *in.Model == "" {
		fields["model"] = "model must not be empty"
	}
	if in.CustomName != nil && *in.CustomName == "" {
		fields["customName"] = "customName must not be empty"
	}
	return fields
}

func (in VehicleInput) validate() map[string]string {
	fields := make(map[string]string)
	if in.Motorization != nil && !IsValidMotorization(*in.Motorization) {
		fields["motorization"] = "motorization must be thermal, hybrid or electric"
	}
	if in.Year != nil {
		max := time.Now().Year() + 1
		if *in.Year < 1900 || *in.Year > max {
			fields["year"] = "year is out of range"
		}
	}
	return fields
}

// ApplyTo merges the provided fields onto an existing vehicle. Absent fields
// are left unchanged.
func (in VehicleInput) ApplyTo(v *Vehicle) {
	if in.Brand != nil {
		v.Brand = *in.Brand
	}
	if in.Model != nil {
		v.Model = *in.Model
	}
	if in.CustomName != nil {
		v.CustomName = *in.CustomName
	}
	if in.Motorization != nil {
		v.Motorization = *in.Motorization
	}
	if in.ImageURL != nil {
		v.ImageURL = *in.ImageURL
	}
	if in.Year != nil {
		v.Year = in.Year
	}
}
