package Models

import (
	"gorm.io/gorm"
)

type VaccineCampaign struct {
	gorm.Model
	Name        string    `gorm:"size:255;not null;unique" json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Vaccines    []Vaccine `gorm:"many2many:campaign_vaccines" json:"vaccines"`
}

// CampaignScheduleCount reports how many bookings reference a campaign.
// Campaign deletion is blocked while this is non-zero.
func CampaignScheduleCount(tx *gorm.DB, campaignID uint) (int64, error) {
	var count int64
	err := tx.Model(&VaccinationSchedule{}).Where("campaign_id = ?", campaignID).Count(&count).Error
	return count, err
}
