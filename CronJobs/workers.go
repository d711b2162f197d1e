package CronJobs

import (
	"fmt"
	"log"
	"time"

	"NirapodTika/FirebaseMessaging"
	"NirapodTika/Models"

	"github.com/go-co-op/gocron"
	"gorm.io/gorm"
)

// DoseReminder pushes a notification to patients who have a vaccination dose
// due within the next day.
type DoseReminder struct {
	DB *gorm.DB
}

func NewDoseReminder(db *gorm.DB) *DoseReminder {
	return &DoseReminder{
		DB: db,
	}
}

func (dr *DoseReminder) StartReminderCron() *gocron.Scheduler {
	scheduler := gocron.NewScheduler(time.Local)

	scheduler.Every(1).Hours().Do(func() {
		log.Println("Running dose reminder check...")
		if err := dr.SendDoseReminders(); err != nil {
			log.Printf("Error sending dose reminders: %v", err)
		}
	})

	scheduler.StartAsync()
	log.Println("Dose reminder cron job started")

	return scheduler
}

func (dr *DoseReminder) SendDoseReminders() error {
	now := time.Now()
	windowEnd := now.Add(24 * time.Hour)

	var schedules []Models.VaccinationSchedule
	if err := dr.DB.Model(&Models.VaccinationSchedule{}).
		Where("status = ? AND reminder_sent = ?", Models.ScheduleStatusConfirmed, false).
		Find(&schedules).Error; err != nil {
		return fmt.Errorf("failed to query confirmed schedules: %w", err)
	}

	for _, schedule := range schedules {
		dueDate, ok := nextDoseWithin(schedule.DoseDates, now, windowEnd)
		if !ok {
			continue
		}

		tokens, err := Models.GetFCMsByUserID(schedule.PatientID)
		if err != nil || len(tokens) == 0 {
			continue
		}

		message := fmt.Sprintf(
			"Reminder: your %s dose is due on %s. Please visit the vaccination center on time.",
			schedule.VaccineName,
			dueDate.Format("Jan 2, 3:04 PM"),
		)

		if err := FirebaseMessaging.SendMessage(Models.NotificationRequest{
			Title:  "Vaccination Dose Reminder",
			Body:   message,
			Tokens: tokens,
		}); err != nil {
			log.Printf("Failed to send reminder for schedule %d: %v", schedule.ID, err)
			continue
		}

		if err := dr.DB.Model(&Models.VaccinationSchedule{}).Where("id = ?", schedule.ID).
			Update("reminder_sent", true).Error; err != nil {
			log.Printf("Failed to mark reminder sent for schedule %d: %v", schedule.ID, err)
			continue
		}

		log.Printf("Reminder sent to patient %d for schedule %d", schedule.PatientID, schedule.ID)
	}

	return nil
}

// nextDoseWithin finds the earliest dose date inside the window, skipping
// dates that fail to parse.
func nextDoseWithin(doseDates []string, from, to time.Time) (time.Time, bool) {
	for _, raw := range doseDates {
		doseTime, err := Models.ParseDoseDate(raw)
		if err != nil {
			continue
		}
		if doseTime.After(from) && doseTime.Before(to) {
			return doseTime, true
		}
	}
	return time.Time{}, false
}
