package Controllers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"NirapodTika/Models"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gin-gonic/gin"
)

// ExportSchedulesExcel dumps every booking with its payment state for the
// admin dashboard.
func ExportSchedulesExcel(c *gin.Context) {
	var input struct {
		DateFrom string `json:"date_from"`
		DateTo   string `json:"date_to"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var schedules []Models.VaccinationSchedule

	if input.DateFrom != "" && input.DateTo != "" {
		if err := Models.DB.Model(&Models.VaccinationSchedule{}).
			Where("created_at BETWEEN ? AND ?", input.DateFrom, input.DateTo).
			Find(&schedules).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	} else {
		if err := Models.DB.Model(&Models.VaccinationSchedule{}).Find(&schedules).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	payments := map[uint]Models.Payment{}
	for _, schedule := range schedules {
		var payment Models.Payment
		if err := Models.DB.Where("schedule_id = ?", schedule.ID).First(&payment).Error; err == nil {
			payments[schedule.ID] = payment
		}
	}

	headers := map[string]string{
		"A1": "Booked At",
		"B1": "Patient",
		"C1": "Vaccine",
		"D1": "Doses",
		"E1": "Status",
		"F1": "Payment Method",
		"G1": "Payment Status",
		"H1": "Amount",
	}
	file := excelize.NewFile()
	sheet := "Schedules"
	file.NewSheet(sheet)
	file.DeleteSheet("Sheet1")
	for k, v := range headers {
		file.SetCellValue(sheet, k, v)
	}

	for i := 0; i < len(schedules); i++ {
		appendRowSchedule(sheet, file, i, schedules, payments)
	}
	var filename string = "./Schedules.xlsx"
	if err := file.SaveAs(filename); err != nil {
		log.Println(err)
	}
	c.File(filename)
}

func appendRowSchedule(sheet string, file *excelize.File, index int, rows []Models.VaccinationSchedule, payments map[uint]Models.Payment) (fileWriter *excelize.File) {
	rowCount := index + 2
	payment := payments[rows[index].ID]
	file.SetCellValue(sheet, fmt.Sprintf("A%v", rowCount), rows[index].CreatedAt.Format("2006-01-02"))
	file.SetCellValue(sheet, fmt.Sprintf("B%v", rowCount), rows[index].PatientName)
	file.SetCellValue(sheet, fmt.Sprintf("C%v", rowCount), rows[index].VaccineName)
	file.SetCellValue(sheet, fmt.Sprintf("D%v", rowCount), strings.Join(rows[index].DoseDates, ", "))
	file.SetCellValue(sheet, fmt.Sprintf("E%v", rowCount), rows[index].Status)
	file.SetCellValue(sheet, fmt.Sprintf("F%v", rowCount), payment.PaymentMethod)
	file.SetCellValue(sheet, fmt.Sprintf("G%v", rowCount), payment.PaymentStatus)
	file.SetCellValue(sheet, fmt.Sprintf("H%v", rowCount), payment.Amount)
	return file
}
