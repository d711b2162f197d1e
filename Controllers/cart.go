package Controllers

import (
	"errors"
	"net/http"

	"NirapodTika/Models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// EnsureCart is strictly idempotent: an existing cart comes back with 200,
// only a fresh one gets 201. The unique index on user_id closes the race
// between the lookup and the insert.
func EnsureCart(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	cart, err := Models.GetCartByUserID(Models.DB, user.ID)
	if err == nil {
		c.JSON(http.StatusOK, cart)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart = Models.Cart{UserID: user.ID}
	if err := Models.DB.Create(&cart).Error; err != nil {
		// Lost the race: someone created the cart between lookup and insert.
		if existing, lookupErr := Models.GetCartByUserID(Models.DB, user.ID); lookupErr == nil {
			c.JSON(http.StatusOK, existing)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, cart)
}

func FetchCart(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	cart, err := Models.GetCartByUserID(Models.DB, user.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
		return
	}
	c.JSON(http.StatusOK, cart)
}

// AddCartItem upserts: adding a vaccine already in the cart bumps its
// quantity instead of creating a second row.
func AddCartItem(c *gin.Context) {
	var input struct {
		VaccineID uint `json:"vaccine_id" binding:"required"`
		Quantity  uint `json:"quantity" binding:"required,min=1"`
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

	var vaccine Models.Vaccine
	if err := Models.DB.First(&vaccine, input.VaccineID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vaccine not found"})
		return
	}

	cart, err := Models.GetCartByUserID(Models.DB, user.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
		return
	}

	var item Models.CartItem
	err = Models.DB.Where("cart_id = ? AND vaccine_id = ?", cart.ID, input.VaccineID).First(&item).Error
	if err == nil {
		item.Quantity += input.Quantity
		if err := Models.DB.Save(&item).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, item)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item = Models.CartItem{CartID: cart.ID, VaccineID: input.VaccineID, Quantity: input.Quantity}
	if err := Models.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

func UpdateCartItem(c *gin.Context) {
	var input struct {
		ItemID   uint `json:"item_id" binding:"required"`
		Quantity uint `json:"quantity" binding:"required,min=1"`
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

	item, err := ownedCartItem(user.ID, input.ItemID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	item.Quantity = input.Quantity
	if err := Models.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}

func RemoveCartItem(c *gin.Context) {
	var input struct {
		ItemID uint `json:"item_id" binding:"required"`
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

	item, err := ownedCartItem(user.ID, input.ItemID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}

	// Hard delete: a soft-deleted row would keep holding the
	// (cart_id, vaccine_id) unique index and block re-adding the vaccine.
	if err := Models.DB.Unscoped().Delete(&item).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item Removed"})
}

// ownedCartItem resolves a cart item through the caller's cart so one user
// can never touch another's items.
func ownedCartItem(userID uint, itemID uint) (Models.CartItem, error) {
	var item Models.CartItem
	err := Models.DB.Model(&Models.CartItem{}).
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", itemID, userID).
		First(&item).Error
	return item, err
}
