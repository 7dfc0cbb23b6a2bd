package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecurrenceType classifies how often a spending repeats.
type RecurrenceType string

const (
	RecurrenceNone    RecurrenceType = "none"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
	RecurrenceYearly  RecurrenceType = "yearly"
)

// IsValidRecurrence checks if a recurrence value is known.
func IsValidRecurrence(r RecurrenceType) bool {
	switch r {
	case RecurrenceNone, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	default:
		return false
	}
}

// SpendingType classifies what the money was spent on.
type SpendingType string

const (
	SpendingVehiclePart  SpendingType = "vehiclePart"
	SpendingService      SpendingType = "service"
	SpendingFuel         SpendingType = "fuel"
	SpendingInsurance    SpendingType = "insurance"
	SpendingSubscription SpendingType = "subscription"
	SpendingAccessories  SpendingType = "accessories"
	SpendingSparePart    SpendingType = "sparePart"
	SpendingOther        SpendingType = "other"
)

// IsValidSpendingType checks if a spending type is known.
func IsValidSpendingType(t SpendingType) bool {
	switch t {
	case SpendingVehiclePart, SpendingService, SpendingFuel, SpendingInsurance,
		SpendingSubscription, SpendingAccessories, SpendingSparePart, SpendingOther:
		return true
	default:
		return false
	}
}

// ServiceType refines spendings of type "service".
type ServiceType string

const (
	ServiceMaintenance ServiceType = "maintenance"
	ServiceRepair      ServiceType = "repair"
	ServiceInspection  ServiceType = "inspection"
)

// IsValidServiceType checks if a service subtype is known.
func IsValidServiceType(s ServiceType) bool {
	switch s {
	case ServiceMaintenance, ServiceRepair, ServiceInspection:
		return true
	default:
		return false
	}
}

// Spending is one expense attached to a vehicle. Fuel spendings may carry a
// liquid quantity, electric charges an energy quantity.
type Spending struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VehicleID     primitive.ObjectID `bson:"vehicle_id" json:"-"`
	Amount        *float64           `bson:"amount,omitempty" json:"amount,omitempty"`
	Date          time.Time          `bson:"date" json:"date"`
	Recurrence    RecurrenceType     `bson:"recurrence" json:"recurrence"`
	Type          SpendingType       `bson:"type" json:"type"`
	CurrencyCode  string             `bson:"currency_code" json:"currencyCode"`
	Name          string             `bson:"name,omitempty" json:"name,omitempty"`
	Service       *ServiceType       `bson:"service,omitempty" json:"service,omitempty"`
	LiterQuantity *float64           `bson:"liter_quantity,omitempty" json:"literQuantity,omitempty"`
	ElecQuantity  *float64           `bson:"elec_quantity,omitempty" json:"elecQuantity,omitempty"`
	LiterUnit     string             `bson:"liter_unit,omitempty" json:"literUnit,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}

// SpendingInput carries the client-supplied spending fields.
type SpendingInput struct {
	Amount        *float64        `json:"amount"`
	Date          *time.Time      `json:"date"`
	Recurrence    *RecurrenceType `json:"recurrence"`
	Type          *SpendingType   `json:"type"`
	CurrencyCode  *string         `json:"currencyCode"`
	Name          *string         `json:"name"`
	Service       *ServiceType    `json:"service"`
	LiterQuantity *float64        `json:"literQuantity"`
	ElecQuantity  *float64        `json:"elecQuantity"`
	LiterUnit     *string         `json:"literUnit"`
}

// ValidateCreate checks that required fields are present and all provided
// fields are well formed.
func (in SpendingInput) ValidateCreate() map[string]string {
	fields := in.validate()
	if in.Date == nil {
		fields["date"] = "date is required"
	}
	if in.Recurrence == nil {
		fields["recurrence"] = "recurrence is required"
	}
	if in.Type == nil {
		fields["type"] = "type is required"
	}
	if in.CurrencyCode == nil {
		fields["currencyCode"] = "currencyCode is required"
	}
	return fields
}

// ValidateUpdate checks only the fields that were provided.
func (in SpendingInput) ValidateUpdate() map[string]string {
	return in.validate()
}

func (in SpendingInput) validate() map[string]string {
	fields := make(map[string]string)
	if in.Amount != nil {
		if *in.Amount < 0 {
			fields["amount"] = "amount must not be negative"
		} else if scaled := *in.Amount * 100; math.Abs(scaled-math.Round(scaled)) > 1e-9 {
			// compare with a tolerance: cent amounts like 19.99 have no exact
			// float64 representation
			fields["amount"] = "amount must have at most two decimal places"
		}
	}
	if in.Recurrence != nil && !IsValidRecurrence(*in.Recurrence) {
		fields["recurrence"] = "recurrence must be none, weekly, monthly or yearly"
	}
	if in.Type != nil && !IsValidSpendingType(*in.Type) {
		fields["type"] = "unknown spending type"
	}
	if in.CurrencyCode != nil && len(*in.CurrencyCode) != 3 {
		fields["currencyCode"] = "currencyCode must be a 3-letter code"
	}
	if in.Service != nil && !IsValidServiceType(*in.Service) {
		fields["service"] = "service must be maintenance, repair or inspection"
	}
	if in.LiterQuantity != nil && *in.LiterQuantity < 0 {
		fields["literQuantity"] = "literQuantity must not be negative"
	}
	if in.ElecQuantity != nil && *in.ElecQuantity < 0 {
		fields["elecQuantity"] = "elecQuantity must not be negative"
	}
	return fields
}

// ApplyTo merges the provided fields onto an existing spending.
func (in SpendingInput) ApplyTo(s *Spending) {
	if in.Amount != nil {
		s.Amount = in.Amount
	}
	if in.Date != nil {
		s.Date = *in.Date
	}
	if in.Recurrence != nil {
		s.Recurrence = *in.Recurrence
	}
	if in.Type != nil {
		s.Type = *in.Type
	}
	if in.CurrencyCode != nil {
		s.CurrencyCode = *in.CurrencyCode
	}
	if in.Name != nil {
		s.Name = *in.Name
	}
	if in.Service != nil {
		s.Service = in.Service
	}
	if in.LiterQuantity != nil {
		s.LiterQuantity = in.LiterQuantity
	}
	if in.ElecQuantity != nil {
		s.ElecQuantity = in.ElecQuantity
	}
	if in.LiterUnit != nil {
		s.LiterUnit = *in.LiterUnit
	}
}
