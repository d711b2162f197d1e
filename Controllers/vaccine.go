package Controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"NirapodTika/Models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func FetchVaccines(c *gin.Context) {
	var vaccines []Models.Vaccine
	if err := Models.DB.Model(&Models.Vaccine{}).Preload("Images").Find(&vaccines).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, vaccines)
}

// AddVaccine takes a multipart form so catalog rows and their images arrive
// together. Row and image records commit in one transaction.
func AddVaccine(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	if err := c.Request.ParseMultipartForm(10 << 20); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to parse form"})
		return
	}

	vaccine, err := bindVaccineForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vaccine.CreatedByID = user.ID

	if err := vaccine.ValidateDoseIntervals(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx := Models.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&vaccine).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form, _ := c.MultipartForm()
	if form != nil {
		if err := os.MkdirAll("./VaccineImages/", os.ModePerm); err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to create image directory"})
			return
		}
		for _, file := range form.File["images"] {
			storedName := uuid.NewString() + filepath.Ext(file.Filename)
			path := fmt.Sprintf("./VaccineImages/%s", storedName)
			if err := c.SaveUploadedFile(file, path); err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to save image"})
				return
			}
			image := Models.VaccineImage{VaccineID: vaccine.ID, URL: "/VaccineImages/" + storedName}
			if err := tx.Create(&image).Error; err != nil {
				tx.Rollback()
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Vaccine Created Successfully",
		"vaccine_id": vaccine.ID,
	})
}

func EditVaccine(c *gin.Context) {
	var input Models.Vaccine
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing Models.Vaccine
	if err := Models.DB.First(&existing, input.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vaccine not found"})
		return
	}

	if err := input.ValidateDoseIntervals(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input.CreatedByID = existing.CreatedByID
	if err := Models.DB.Save(&input).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Vaccine Edited Successfully",
	})
}

func DeleteVaccine(c *gin.Context) {
	var input struct {
		VaccineID uint `json:"vaccine_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var vaccine Models.Vaccine
	if err := Models.DB.First(&vaccine, input.VaccineID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vaccine not found"})
		return
	}

	// Hard delete: a soft-deleted row would keep holding the unique name
	// index and the vaccine could never be recreated.
	tx := Models.DB.Begin()
	if err := tx.Unscoped().Delete(&Models.VaccineImage{}, "vaccine_id = ?", input.VaccineID).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := tx.Unscoped().Delete(&vaccine).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Vaccine Deleted Successfully",
	})
}

func bindVaccineForm(c *gin.Context) (Models.Vaccine, error) {
	var vaccine Models.Vaccine

	vaccine.Name = c.PostForm("name")
	vaccine.Description = c.PostForm("description")
	vaccine.Manufacturer = c.PostForm("manufacturer")
	if vaccine.Name == "" {
		return vaccine, fmt.Errorf("name is required")
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		return vaccine, fmt.Errorf("invalid price")
	}
	vaccine.Price = price

	stock, err := strconv.ParseUint(c.DefaultPostForm("stock", "0"), 10, 32)
	if err != nil {
		return vaccine, fmt.Errorf("invalid stock")
	}
	vaccine.Stock = uint(stock)

	doses, err := strconv.Atoi(c.DefaultPostForm("doses_required", "1"))
	if err != nil {
		return vaccine, fmt.Errorf("invalid doses_required")
	}
	vaccine.DosesRequired = doses

	intervalsRaw := c.DefaultPostForm("dose_intervals", "[]")
	if err := json.Unmarshal([]byte(intervalsRaw), &vaccine.DoseIntervals); err != nil {
		return vaccine, fmt.Errorf("dose_intervals must be a JSON array of day counts")
	}

	return vaccine, nil
}
