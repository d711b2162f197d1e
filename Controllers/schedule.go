package Controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"NirapodTika/FirebaseMessaging"
	"NirapodTika/Models"
	"NirapodTika/SSE"
	"NirapodTika/SSLCommerz"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BookVaccinationInput struct {
	VaccineID     uint     `json:"vaccine_id" binding:"required"`
	CampaignID    *uint    `json:"campaign_id"`
	DoseDates     []string `json:"dose_dates"`
	PaymentMethod string   `json:"payment_method" binding:"required,oneof=online cod"`
}

// BookVaccination creates the schedule and its payment row in one
// transaction. COD settles immediately with a synthetic transaction id;
// online stays pending until the gateway callback lands.
func BookVaccination(c *gin.Context) {
	var input BookVaccinationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patient, err := currentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	tx := Models.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var vaccine Models.Vaccine
	if err := tx.First(&vaccine, input.VaccineID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vaccine not found"})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	if input.CampaignID != nil {
		var campaign Models.VaccineCampaign
		if err := tx.First(&campaign, *input.CampaignID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			}
			return
		}

		booked, err := Models.HasCampaignBooking(tx, patient.ID, *input.CampaignID)
		if err != nil {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if booked {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"error": "You already have a booking for this campaign"})
			return
		}
	}

	doseDates := input.DoseDates
	if len(doseDates) == 0 {
		doseDates = Models.ComputeDoseDates(vaccine, time.Now())
	}

	scheduleStatus := Models.ScheduleStatusConfirmed
	paymentStatus := Models.PaymentStatusCompleted
	if input.PaymentMethod == Models.PaymentMethodOnline {
		scheduleStatus = Models.ScheduleStatusPending
		paymentStatus = Models.PaymentStatusPending
	}

	schedule := Models.VaccinationSchedule{
		PatientID:     patient.ID,
		PatientName:   patient.FirstName + " " + patient.LastName,
		VaccineID:     vaccine.ID,
		VaccineName:   vaccine.Name,
		CampaignID:    input.CampaignID,
		DoseDates:     doseDates,
		PaymentMethod: input.PaymentMethod,
		Status:        scheduleStatus,
	}

	// The unique (patient, campaign) index backs the pre-check above, so a
	// concurrent duplicate fails here instead of slipping through.
	if err := tx.Create(&schedule).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Couldn't Create Booking"})
		return
	}

	payment := Models.Payment{
		ScheduleID:    schedule.ID,
		Amount:        vaccine.Price,
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: paymentStatus,
	}
	if input.PaymentMethod == Models.PaymentMethodCOD {
		payment.TransactionID = Models.DummyTransactionID(schedule.ID)
	}

	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Couldn't Create Payment"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	SSE.Broadcaster.Broadcast("refresh")
	notifyStaff("New Vaccination Booking", fmt.Sprintf("%s booked %s", schedule.PatientName, schedule.VaccineName))

	nextStep := "Booking confirmed"
	if input.PaymentMethod == Models.PaymentMethodOnline {
		nextStep = "Initiate payment to confirm the booking"
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Schedule created successfully",
		"schedule_id":    schedule.ID,
		"payment_status": payment.PaymentStatus,
		"next_step":      nextStep,
	})
}

func FetchSchedules(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var schedules []Models.VaccinationSchedule
	query := Models.DB.Model(&Models.VaccinationSchedule{})
	if !Models.CanViewAllSchedules(user.Role) {
		query = query.Where("patient_id = ?", user.ID)
	}
	if err := query.Find(&schedules).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, schedules)
}

// UpdateScheduleDoseDates: doctors only. The role gate lives here rather
// than in the router so a patient gets a clean 403, not a missing route.
func UpdateScheduleDoseDates(c *gin.Context) {
	var input struct {
		ScheduleID uint     `json:"schedule_id" binding:"required"`
		DoseDates  []string `json:"dose_dates" binding:"required"`
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

	if !Models.CanModifySchedules(user.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only doctors can modify schedules"})
		return
	}

	var schedule Models.VaccinationSchedule
	if err := Models.DB.First(&schedule, input.ScheduleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		return
	}

	schedule.DoseDates = input.DoseDates
	if err := Models.DB.Save(&schedule).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule Updated Successfully"})
}

func UpdateScheduleStatus(c *gin.Context) {
	var input struct {
		ScheduleID uint   `json:"schedule_id" binding:"required"`
		Status     string `json:"status" binding:"required,oneof=pending confirmed completed cancelled"`
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
	if !Models.CanViewAllSchedules(user.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Permission Denied"})
		return
	}

	var schedule Models.VaccinationSchedule
	if err := Models.DB.First(&schedule, input.ScheduleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		return
	}

	if schedule.IsTerminal() {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Schedule is already %s", schedule.Status)})
		return
	}

	if err := Models.DB.Model(&schedule).Update("status", input.Status).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status Updated Successfully"})
}

// InitiateSchedulePayment opens an SSLCommerz hosted-checkout session for a
// pending online booking and returns the gateway page URL. The redirect
// lands on the success/fail callbacks below.
func InitiateSchedulePayment(c *gin.Context) {
	var input struct {
		ScheduleID uint `json:"schedule_id" binding:"required"`
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

	var schedule Models.VaccinationSchedule
	if err := Models.DB.First(&schedule, input.ScheduleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		return
	}
	if schedule.PatientID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Permission Denied"})
		return
	}
	if schedule.PaymentMethod != Models.PaymentMethodOnline {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Booking is not an online payment"})
		return
	}

	var payment Models.Payment
	if err := Models.DB.Where("schedule_id = ?", schedule.ID).First(&payment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}
	if payment.PaymentStatus == Models.PaymentStatusCompleted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment already completed"})
		return
	}

	tranID := fmt.Sprintf("txn_schedule_%d", schedule.ID)
	session := SSLCommerz.SessionRequest{
		TotalAmount:     payment.Amount,
		Currency:        appConfig.Currency,
		TranID:          tranID,
		SuccessURL:      appConfig.BackendURL + "/api/payment/success",
		FailURL:         appConfig.BackendURL + "/api/payment/fail",
		CancelURL:       appConfig.FrontendURL + "/payment/cancel/",
		CustomerName:    user.FirstName + " " + user.LastName,
		CustomerEmail:   user.Email,
		CustomerPhone:   user.Phone,
		CustomerAddress: user.Address,
		NumItems:        1,
		ProductName:     schedule.VaccineName,
		ProductCategory: "Vaccine",
	}

	gatewayURL, err := gateway.CreateSession(session)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := Models.DB.Model(&payment).Update("transaction_id", tranID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment_url": gatewayURL})
}

// PaymentSuccess is the gateway's success IPN: marks the payment completed
// and confirms the schedule in the same transaction.
func PaymentSuccess(c *gin.Context) {
	tranID := c.PostForm("tran_id")
	if tranID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tran_id is required"})
		return
	}

	tx := Models.DB.Begin()

	payment, err := Models.GetPaymentByTransactionID(tx, tranID)
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}

	if err := tx.Model(&Models.Payment{}).Where("id = ?", payment.ID).
		Update("payment_status", Models.PaymentStatusCompleted).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := tx.Model(&Models.VaccinationSchedule{}).Where("id = ?", payment.ScheduleID).
		Update("status", Models.ScheduleStatusConfirmed).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	SSE.Broadcaster.Broadcast("refresh")
	c.JSON(http.StatusOK, gin.H{"message": "Payment Completed"})
}

// PaymentFail marks the payment failed; the schedule stays pending so the
// patient can retry.
func PaymentFail(c *gin.Context) {
	tranID := c.PostForm("tran_id")
	if tranID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tran_id is required"})
		return
	}

	payment, err := Models.GetPaymentByTransactionID(Models.DB, tranID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}

	if err := Models.DB.Model(&Models.Payment{}).Where("id = ?", payment.ID).
		Update("payment_status", Models.PaymentStatusFailed).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment Failed"})
}

func notifyStaff(title, body string) {
	tokens, err := Models.GetStaffFCMs()
	if err != nil || len(tokens) == 0 {
		return
	}
	if err := FirebaseMessaging.SendMessage(Models.NotificationRequest{Title: title, Body: body, Tokens: tokens}); err != nil {
		log.Println(err)
	}
}
