package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string        { return &s }
func intPtr(i int) *int              { return &i }
func motPtr(m Motorization) *Motorization { return &m }

func TestVehicleInput_ValidateCreate(t *testing.T) {
	t.Run("complete input passes", func(t *testing.T) {
		in := VehicleInput{
			Brand:        strPtr("Toyota"),
			Model:        strPtr("Corolla"),
			CustomName:   strPtr("Daily"),
			Motorization: motPtr(MotorizationHybrid),
			Year:         intPtr(2020),
		}
		assert.Empty(t, in.ValidateCreate())
	})

	t.Run("missing required fields reported", func(t *testing.T) {
		fields := VehicleInput{}.ValidateCreate()
		assert.Contains(t, fields, "brand")
		assert.Contains(t, fields, "model")
		assert.Contains(t, fields, "customName")
		assert.Contains(t, fields, "motorization")
	})

	t.Run("unknown motorization rejected", func(t *testing.T) {
		in := VehicleInput{
			Brand:        strPtr("Toyota"),
			Model:        strPtr("Corolla"),
			CustomName:   strPtr("Daily"),
			Motorization: motPtr(Motorization("diesel")),
		}
		assert.Contains(t, in.ValidateCreate(), "motorization")
	})

	t.Run("year bounds", func(t *testing.T) {
		in := VehicleInput{
			Brand:        strPtr("Toyota"),
			Model:        strPtr("Corolla"),
			CustomName:   strPtr("Daily"),
			Motorization: motPtr(MotorizationThermal),
			Year:         intPtr(1899),
		}
		assert.Contains(t, in.ValidateCreate(), "year")

		in.Year = intPtr(time.Now().Year() + 2)
		assert.Contains(t, in.ValidateCreate(), "year")

		in.Year = intPtr(time.Now().Year() + 1)
		assert.Empty(t, in.ValidateCreate())
	})
}

func TestVehicleInput_ValidateUpdate(t *testing.T) {
	t.Run("empty input passes", func(t *testing.T) {
		assert.Empty(t, VehicleInput{}.ValidateUpdate())
	})

	t.Run("provided fields still checked", func(t *testing.T) {
		in := VehicleInput{Brand: strPtr(""), Year: intPtr(1800)}
		fields := in.ValidateUpdate()
		assert.Contains(t, fields, "brand")
		assert.Contains(t, fields, "year")
	})
}

func TestVehicleInput_ApplyTo(t *testing.T) {
	vehicle := Vehicle{
		Brand:        "Toyota",
		Model:        "Corolla",
		CustomName:   "Daily",
		Motorization: MotorizationHybrid,
		Year:         intPtr(2020),
	}

	// Only brand provided; everything else must survive the merge.
	VehicleInput{Brand: strPtr("Honda")}.ApplyTo(&vehicle)

	assert.Equal(t, "Honda", vehicle.Brand)
	assert.Equal(t, "Corolla", vehicle.Model)
	assert.Equal(t, "Daily", vehicle.CustomName)
	assert.Equal(t, MotorizationHybrid, vehicle.Motorization)
	assert.Equal(t, 2020, *vehicle.Year)
}
