package Controllers

import (
	"net/http"

	"NirapodTika/Models"

	"github.com/gin-gonic/gin"
)

// GetProfile returns the caller's account plus their vaccination history.
func GetProfile(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var history []Models.VaccinationSchedule
	if err := Models.DB.Model(&Models.VaccinationSchedule{}).Where("patient_id = ?", user.ID).Find(&history).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user.PrepareGive()
	c.JSON(http.StatusOK, gin.H{
		"user_info":           user,
		"medical_details":     user.MedicalDetails,
		"vaccination_history": history,
	})
}

// UpdateProfile is a partial update: empty strings mean "leave unchanged".
// Role is never writable here.
func UpdateProfile(c *gin.Context) {
	var input struct {
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		Address        string `json:"address"`
		MedicalDetails string `json:"medical_details"`
		Specialization string `json:"specialization"`
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

	updates := map[string]interface{}{}
	if input.FirstName != "" {
		updates["first_name"] = input.FirstName
	}
	if input.LastName != "" {
		updates["last_name"] = input.LastName
	}
	if input.Address != "" {
		updates["address"] = input.Address
	}
	if input.MedicalDetails != "" {
		updates["medical_details"] = input.MedicalDetails
	}
	if input.Specialization != "" && user.Role == Models.RoleDoctor {
		updates["specialization"] = input.Specialization
	}

	if len(updates) > 0 {
		if err := Models.DB.Model(&Models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	updated, _ := Models.GetUserByID(user.ID)
	c.JSON(http.StatusOK, updated)
}

func FetchPatients(c *gin.Context) {
	var patients []Models.User
	if err := Models.DB.Model(&Models.User{}).Where("role = ?", Models.RolePatient).Find(&patients).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for index := range patients {
		patients[index].PrepareGive()
	}
	c.JSON(http.StatusOK, patients)
}

func FetchDoctors(c *gin.Context) {
	var doctors []Models.User
	if err := Models.DB.Model(&Models.User{}).Where("role = ?", Models.RoleDoctor).Find(&doctors).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for index := range doctors {
		doctors[index].PrepareGive()
	}
	c.JSON(http.StatusOK, doctors)
}
