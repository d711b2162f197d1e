package Models

import (
	"fmt"

	"gorm.io/gorm"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Payment is created in the same transaction as its schedule so an orphaned
// row cannot survive a partial failure.
type Payment struct {
	gorm.Model
	ScheduleID    uint    `gorm:"uniqueIndex" json:"schedule_id"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `gorm:"size:10" json:"payment_method"`
	PaymentStatus string  `gorm:"size:10;default:pending" json:"payment_status"`
	TransactionID string  `gorm:"size:255" json:"transaction_id"`
}

// DummyTransactionID is the synthetic handle assigned to cash-on-delivery
// payments, which never touch the gateway.
func DummyTransactionID(scheduleID uint) string {
	return fmt.Sprintf("dummy_%d", scheduleID)
}

func GetPaymentByTransactionID(tx *gorm.DB, tranID string) (Payment, error) {
	var payment Payment
	err := tx.Where("transaction_id = ?", tranID).First(&payment).Error
	return payment, err
}
