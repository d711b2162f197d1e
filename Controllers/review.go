package Controllers

import (
	"net/http"

	"NirapodTika/Models"

	"github.com/gin-gonic/gin"
)

type AddReviewInput struct {
	CampaignID uint   `json:"campaign_id" binding:"required"`
	Rating     uint   `json:"rating" binding:"required,min=1,max=5"`
	Comment    string `json:"comment" binding:"required"`
}

// AddReview: a patient may review a campaign only after booking into it,
// and only once.
func AddReview(c *gin.Context) {
	var input AddReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patient, err := currentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var campaign Models.VaccineCampaign
	if err := Models.DB.First(&campaign, input.CampaignID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return
	}

	booked, err := Models.HasCampaignBooking(Models.DB, patient.ID, input.CampaignID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !booked {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot review this campaign because you have not booked any vaccine from it"})
		return
	}

	reviewed, err := Models.HasReview(Models.DB, patient.ID, input.CampaignID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if reviewed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You already reviewed this campaign"})
		return
	}

	review := Models.VaccineReview{
		PatientID:   patient.ID,
		PatientName: patient.FirstName,
		CampaignID:  input.CampaignID,
		Rating:      input.Rating,
		Comment:     input.Comment,
	}

	if err := Models.DB.Create(&review).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":   "Review Created Successfully",
		"review_id": review.ID,
	})
}

// EditReview is restricted to the review's own author.
func EditReview(c *gin.Context) {
	var input struct {
		ReviewID uint   `json:"review_id" binding:"required"`
		Rating   uint   `json:"rating" binding:"required,min=1,max=5"`
		Comment  string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := currentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var review Models.VaccineReview
	if err := Models.DB.First(&review, input.ReviewID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}

	if review.PatientID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only update your own review"})
		return
	}

	review.Rating = input.Rating
	if input.Comment != "" {
		review.Comment = input.Comment
	}
	if err := Models.DB.Save(&review).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review Updated Successfully"})
}

func FetchCampaignReviews(c *gin.Context) {
	var input struct {
		CampaignID uint `json:"campaign_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var reviews []Models.VaccineReview
	if err := Models.DB.Model(&Models.VaccineReview{}).Where("campaign_id = ?", input.CampaignID).Find(&reviews).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reviews)
}
