package Models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ScheduleStatusPending   = "pending"
	ScheduleStatusConfirmed = "confirmed"
	ScheduleStatusCompleted = "completed"
	ScheduleStatusCancelled = "cancelled"
)

const (
	PaymentMethodOnline = "online"
	PaymentMethodCOD    = "cod"
)

const doseDateLayout = "2006-01-02T15:04:05"

// VaccinationSchedule is a patient's booking of one vaccine, optionally under
// a campaign. The composite unique index keeps "one booking per patient per
// campaign" true even under concurrent requests; NULL campaigns never
// collide, so ad-hoc bookings are unlimited.
type VaccinationSchedule struct {
	gorm.Model
	PatientID     uint     `gorm:"uniqueIndex:idx_patient_campaign" json:"patient_id"`
	PatientName   string   `json:"patient_name"`
	VaccineID     uint     `json:"vaccine_id"`
	VaccineName   string   `json:"vaccine_name"`
	CampaignID    *uint    `gorm:"uniqueIndex:idx_patient_campaign;default:null" json:"campaign_id"`
	DoseDates     []string `gorm:"serializer:json" json:"dose_dates"`
	PaymentMethod string   `gorm:"size:10;default:cod" json:"payment_method"`
	Status        string   `gorm:"size:10;default:pending" json:"status"`
	ReminderSent  bool     `json:"reminder_sent"`
}

func (schedule *VaccinationSchedule) IsTerminal() bool {
	return schedule.Status == ScheduleStatusCompleted || schedule.Status == ScheduleStatusCancelled
}

// ComputeDoseDates derives the full dosing calendar from the vaccine's
// intervals, starting at firstDose.
func ComputeDoseDates(vaccine Vaccine, firstDose time.Time) []string {
	dates := []string{firstDose.Format(doseDateLayout)}
	current := firstDose
	for _, interval := range vaccine.DoseIntervals {
		current = current.AddDate(0, 0, interval)
		dates = append(dates, current.Format(doseDateLayout))
	}
	return dates
}

func ParseDoseDate(value string) (time.Time, error) {
	return time.Parse(doseDateLayout, value)
}

// HasCampaignBooking reports whether a patient already booked into a
// campaign. Callers run it inside the same transaction as the insert; the
// unique index is the real guarantee.
func HasCampaignBooking(tx *gorm.DB, patientID uint, campaignID uint) (bool, error) {
	var count int64
	err := tx.Model(&VaccinationSchedule{}).
		Where("patient_id = ? AND campaign_id = ?", patientID, campaignID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
