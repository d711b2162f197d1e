package Controllers_test

import (
	"net/http"
	"testing"

	"NirapodTika/Models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureCartIdempotent(t *testing.T) {
	router := setupRouter(t)
	user, token := createUser(t, Models.RolePatient)

	resp := doJSON(t, router, http.MethodPost, "/api/protected/EnsureCart", token, nil)
	assert.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	resp = doJSON(t, router, http.MethodPost, "/api/protected/EnsureCart", token, nil)
	assert.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var count int64
	require.NoError(t, Models.DB.Model(&Models.Cart{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAddCartItemUpserts(t *testing.T) {
	router := setupRouter(t)
	user, token := createUser(t, Models.RolePatient)
	vaccine := createVaccine(t, "Hepatitis A", 950, 1, nil)

	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/api/protected/EnsureCart", token, nil).Code)

	payload := map[string]interface{}{"vaccine_id": vaccine.ID, "quantity": 2}
	resp := doJSON(t, router, http.MethodPost, "/api/protected/AddCartItem", token, payload)
	assert.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	// Same vaccine again bumps the quantity instead of adding a row
	resp = doJSON(t, router, http.MethodPost, "/api/protected/AddCartItem", token, payload)
	assert.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	cart, err := Models.GetCartByUserID(Models.DB, user.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.EqualValues(t, 4, cart.Items[0].Quantity)
}

func TestAddCartItemUnknownVaccine(t *testing.T) {
	router := setupRouter(t)
	_, token := createUser(t, Models.RolePatient)

	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/api/protected/EnsureCart", token, nil).Code)

	resp := doJSON(t, router, http.MethodPost, "/api/protected/AddCartItem", token, map[string]interface{}{
		"vaccine_id": 9999,
		"quantity":   1,
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestRemoveCartItemThenReAdd(t *testing.T) {
	router := setupRouter(t)
	user, token := createUser(t, Models.RolePatient)
	vaccine := createVaccine(t, "Hib", 850, 1, nil)

	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/api/protected/EnsureCart", token, nil).Code)

	payload := map[string]interface{}{"vaccine_id": vaccine.ID, "quantity": 1}
	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/api/protected/AddCartItem", token, payload).Code)

	cart, err := Models.GetCartByUserID(Models.DB, user.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	resp := doJSON(t, router, http.MethodPost, "/api/protected/RemoveCartItem", token, map[string]interface{}{
		"item_id": cart.Items[0].ID,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	// The removed row must not keep holding the (cart, vaccine) index
	resp = doJSON(t, router, http.MethodPost, "/api/protected/AddCartItem", token, payload)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	cart, err = Models.GetCartByUserID(Models.DB, user.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.EqualValues(t, 1, cart.Items[0].Quantity)
}

func TestCartItemOwnership(t *testing.T) {
	router := setupRouter(t)
	owner, ownerToken := createUser(t, Models.RolePatient)
	_, otherToken := createUser(t, Models.RolePatient)
	vaccine := createVaccine(t, "Meningitis", 1100, 1, nil)

	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/api/protected/EnsureCart", ownerToken, nil).Code)
	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/api/protected/AddCartItem", ownerToken, map[string]interface{}{
		"vaccine_id": vaccine.ID,
		"quantity":   1,
	}).Code)

	cart, err := Models.GetCartByUserID(Models.DB, owner.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	itemID := cart.Items[0].ID

	// Another user cannot touch the item
	resp := doJSON(t, router, http.MethodPost, "/api/protected/UpdateCartItem", otherToken, map[string]interface{}{
		"item_id":  itemID,
		"quantity": 5,
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = doJSON(t, router, http.MethodPost, "/api/protected/RemoveCartItem", otherToken, map[string]interface{}{
		"item_id": itemID,
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)

	// The owner can
	resp = doJSON(t, router, http.MethodPost, "/api/protected/UpdateCartItem", ownerToken, map[string]interface{}{
		"item_id":  itemID,
		"quantity": 5,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = doJSON(t, router, http.MethodPost, "/api/protected/RemoveCartItem", ownerToken, map[string]interface{}{
		"item_id": itemID,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	cart, err = Models.GetCartByUserID(Models.DB, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}
