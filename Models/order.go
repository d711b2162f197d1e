package Models

import (
	"gorm.io/gorm"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Cart: exactly one per user, backed by the unique index. Creation is
// idempotent at the handler level, the index closes the race.
type Cart struct {
	gorm.Model
	UserID uint       `gorm:"not null;uniqueIndex" json:"user_id"`
	Items  []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
}

type CartItem struct {
	gorm.Model
	CartID    uint   `gorm:"uniqueIndex:idx_cart_vaccine" json:"cart_id"`
	VaccineID uint   `gorm:"uniqueIndex:idx_cart_vaccine" json:"vaccine_id"`
	Quantity  uint   `json:"quantity"`
	Vaccine   Vaccine `json:"vaccine"`
}

type Order struct {
	gorm.Model
	UserID     uint        `json:"user_id"`
	Status     string      `gorm:"size:12;default:pending" json:"status"`
	TotalPrice float64     `json:"total_price"`
	Items      []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

type OrderItem struct {
	gorm.Model
	OrderID     uint    `json:"order_id"`
	VaccineID   uint    `json:"vaccine_id"`
	VaccineName string  `json:"vaccine_name"`
	Quantity    uint    `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// ValidOrderTransition is the order state machine. completed and cancelled
// are terminal; completed is reachable only through the admin status update.
func ValidOrderTransition(from, to string) bool {
	switch from {
	case OrderStatusPending:
		return to == OrderStatusProcessing || to == OrderStatusCancelled
	case OrderStatusProcessing:
		return to == OrderStatusCompleted || to == OrderStatusCancelled
	default:
		return false
	}
}

// CanCancel gates the explicit cancel action for owners and admins.
func (order *Order) CanCancel() bool {
	return order.Status == OrderStatusPending || order.Status == OrderStatusProcessing
}

func GetCartByUserID(tx *gorm.DB, userID uint) (Cart, error) {
	var cart Cart
	err := tx.Preload("Items").Preload("Items.Vaccine").Where("user_id = ?", userID).First(&cart).Error
	return cart, err
}
