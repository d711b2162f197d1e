package Controllers

import (
	"fmt"
	"net/http"

	"NirapodTika/Models"
	"NirapodTika/SSE"
	"NirapodTika/SSLCommerz"

	"github.com/gin-gonic/gin"
)

// CreateOrder converts the caller's cart into an order in one transaction:
// items are copied with their current unit price, the total is computed, and
// the cart is emptied.
func CreateOrder(c *gin.Context) {
	user, err := currentUser(c)
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

	cart, err := Models.GetCartByUserID(tx, user.ID)
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
		return
	}
	if len(cart.Items) == 0 {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}

	order := Models.Order{UserID: user.ID, Status: Models.OrderStatusPending}
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var total float64
	for _, cartItem := range cart.Items {
		orderItem := Models.OrderItem{
			OrderID:     order.ID,
			VaccineID:   cartItem.VaccineID,
			VaccineName: cartItem.Vaccine.Name,
			Quantity:    cartItem.Quantity,
			UnitPrice:   cartItem.Vaccine.Price,
		}
		if err := tx.Create(&orderItem).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		total += orderItem.UnitPrice * float64(orderItem.Quantity)
	}

	if err := tx.Model(&order).Update("total_price", total).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Hard delete so the emptied rows release the (cart_id, vaccine_id)
	// unique index and the vaccines can be re-added later.
	if err := tx.Unscoped().Where("cart_id = ?", cart.ID).Delete(&Models.CartItem{}).Error; err != nil {
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
	c.JSON(http.StatusCreated, gin.H{
		"message":     "Order Created Successfully",
		"order_id":    order.ID,
		"total_price": total,
	})
}

func FetchOrders(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var orders []Models.Order
	query := Models.DB.Model(&Models.Order{}).Preload("Items")
	if !Models.CanManageOrders(user.Role) {
		query = query.Where("user_id = ?", user.ID)
	}
	if err := query.Find(&orders).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// CancelOrder: owner or admin, and only while the order is still
// pending/processing. Cancelling a completed order is a validation error.
func CancelOrder(c *gin.Context) {
	var input struct {
		OrderID uint `json:"order_id" binding:"required"`
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

	var order Models.Order
	if err := Models.DB.First(&order, input.OrderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if order.UserID != user.ID && !Models.CanManageOrders(user.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Permission Denied"})
		return
	}

	if !order.CanCancel() {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Cannot cancel a %s order", order.Status)})
		return
	}

	if err := Models.DB.Model(&order).Update("status", Models.OrderStatusCancelled).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Order cancelled"})
}

// UpdateOrderStatus walks the order state machine; completed is reachable
// only here, and only for admins (gated in the router).
func UpdateOrderStatus(c *gin.Context) {
	var input struct {
		OrderID uint   `json:"order_id" binding:"required"`
		Status  string `json:"status" binding:"required,oneof=pending processing completed cancelled"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order Models.Order
	if err := Models.DB.First(&order, input.OrderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if !Models.ValidOrderTransition(order.Status, input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Cannot move order from %s to %s", order.Status, input.Status)})
		return
	}

	if err := Models.DB.Model(&order).Update("status", input.Status).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": fmt.Sprintf("Order status updated to %s", input.Status)})
}

// InitiateOrderPayment opens a hosted-checkout session for a pending order.
func InitiateOrderPayment(c *gin.Context) {
	var input struct {
		OrderID uint `json:"order_id" binding:"required"`
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

	var order Models.Order
	if err := Models.DB.Preload("Items").First(&order, input.OrderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Permission Denied"})
		return
	}
	if order.Status != Models.OrderStatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Cannot pay for a %s order", order.Status)})
		return
	}

	numItems := 0
	for _, item := range order.Items {
		numItems += int(item.Quantity)
	}

	session := SSLCommerz.SessionRequest{
		TotalAmount:     order.TotalPrice,
		Currency:        appConfig.Currency,
		TranID:          fmt.Sprintf("txn_%d", order.ID),
		SuccessURL:      appConfig.BackendURL + "/api/payment/success",
		FailURL:         appConfig.BackendURL + "/api/payment/fail",
		CancelURL:       appConfig.FrontendURL + "/payment/cancel/",
		CustomerName:    user.FirstName + " " + user.LastName,
		CustomerEmail:   user.Email,
		CustomerPhone:   user.Phone,
		CustomerAddress: user.Address,
		NumItems:        numItems,
		ProductName:     "Tika",
		ProductCategory: "Medicine",
	}

	gatewayURL, err := gateway.CreateSession(session)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment_url": gatewayURL})
}
