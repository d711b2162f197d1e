package Controllers

import (
	"errors"
	"net/http"

	"NirapodTika/Models"

	"github.com/gin-gonic/gin"
)

var errVaccineMissing = errors.New("one or more vaccines not found")

func FetchCampaigns(c *gin.Context) {
	var campaigns []Models.VaccineCampaign
	if err := Models.DB.Model(&Models.VaccineCampaign{}).Preload("Vaccines").Find(&campaigns).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, campaigns)
}

type campaignInput struct {
	ID          uint   `json:"id"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	VaccineIDs  []uint `json:"vaccine_ids"`
}

func AddCampaign(c *gin.Context) {
	var input campaignInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vaccines, err := loadCampaignVaccines(input.VaccineIDs)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	campaign := Models.VaccineCampaign{
		Name:        input.Name,
		Description: input.Description,
		Location:    input.Location,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Vaccines:    vaccines,
	}

	if err := Models.DB.Create(&campaign).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":     "Campaign Created Successfully",
		"campaign_id": campaign.ID,
	})
}

func EditCampaign(c *gin.Context) {
	var input campaignInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var campaign Models.VaccineCampaign
	if err := Models.DB.First(&campaign, input.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return
	}

	vaccines, err := loadCampaignVaccines(input.VaccineIDs)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	campaign.Name = input.Name
	campaign.Description = input.Description
	campaign.Location = input.Location
	campaign.StartDate = input.StartDate
	campaign.EndDate = input.EndDate

	if err := Models.DB.Save(&campaign).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := Models.DB.Model(&campaign).Association("Vaccines").Replace(vaccines); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Campaign Edited Successfully",
	})
}

// DeleteCampaign refuses to delete a campaign that bookings still reference.
func DeleteCampaign(c *gin.Context) {
	var input struct {
		CampaignID uint `json:"campaign_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var campaign Models.VaccineCampaign
	if err := Models.DB.First(&campaign, input.CampaignID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return
	}

	count, err := Models.CampaignScheduleCount(Models.DB, input.CampaignID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Campaign has active bookings and cannot be deleted"})
		return
	}

	if err := Models.DB.Model(&campaign).Association("Vaccines").Clear(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Hard delete so the unique name index frees up for a future campaign.
	if err := Models.DB.Unscoped().Delete(&campaign).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Campaign Deleted Successfully",
	})
}

func loadCampaignVaccines(ids []uint) ([]Models.Vaccine, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var vaccines []Models.Vaccine
	if err := Models.DB.Find(&vaccines, ids).Error; err != nil {
		return nil, err
	}
	if len(vaccines) != len(ids) {
		return nil, errVaccineMissing
	}
	return vaccines, nil
}
