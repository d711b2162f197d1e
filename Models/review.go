package Models

import (
	"gorm.io/gorm"
)

// VaccineReview carries a 1-5 rating against a campaign. One review per
// patient per campaign, enforced by the composite unique index.
type VaccineReview struct {
	gorm.Model
	PatientID   uint   `gorm:"uniqueIndex:idx_review_patient_campaign" json:"patient_id"`
	PatientName string `json:"patient_name"`
	CampaignID  uint   `gorm:"uniqueIndex:idx_review_patient_campaign" json:"campaign_id"`
	Rating      uint   `json:"rating"`
	Comment     string `json:"comment"`
}

func HasReview(tx *gorm.DB, patientID uint, campaignID uint) (bool, error) {
	var count int64
	err := tx.Model(&VaccineReview{}).
		Where("patient_id = ? AND campaign_id = ?", patientID, campaignID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
