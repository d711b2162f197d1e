package Models

import (
	"errors"

	"gorm.io/gorm"
)

type Vaccine struct {
	gorm.Model
	Name          string         `gorm:"size:255;not null;unique" json:"name"`
	Description   string         `json:"description"`
	Price         float64        `json:"price"`
	Stock         uint           `json:"stock"`
	Manufacturer  string         `json:"manufacturer"`
	DosesRequired int            `gorm:"default:1" json:"doses_required"`
	DoseIntervals []int          `gorm:"serializer:json" json:"dose_intervals"`
	CreatedByID   uint           `json:"created_by_id"`
	Images        []VaccineImage `gorm:"foreignKey:VaccineID;constraint:OnDelete:CASCADE" json:"images"`
}

type VaccineImage struct {
	gorm.Model
	VaccineID uint   `json:"vaccine_id"`
	URL       string `json:"url"`
}

// ValidateDoseIntervals enforces the dosing arity: a vaccine taken N times
// has exactly N-1 waiting periods between doses.
func (vaccine *Vaccine) ValidateDoseIntervals() error {
	if vaccine.DosesRequired < 1 {
		return errors.New("doses_required must be at least 1")
	}
	if len(vaccine.DoseIntervals) != vaccine.DosesRequired-1 {
		return errors.New("dose_intervals must have exactly doses_required - 1 entries")
	}
	for _, interval := range vaccine.DoseIntervals {
		if interval <= 0 {
			return errors.New("dose intervals must be positive day counts")
		}
	}
	return nil
}

func GetVaccineByID(tx *gorm.DB, id uint) (Vaccine, error) {
	var vaccine Vaccine
	err := tx.Preload("Images").First(&vaccine, id).Error
	return vaccine, err
}
