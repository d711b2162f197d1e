package Controllers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"NirapodTika/Models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postVaccineForm(t *testing.T, router *gin.Engine, token string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/protected/AddVaccine", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestAddVaccine(t *testing.T) {
	router := setupRouter(t)
	doctor, token := createUser(t, Models.RoleDoctor)

	resp := postVaccineForm(t, router, token, map[string]string{
		"name":           "Covaxin",
		"price":          "1250.50",
		"stock":          "40",
		"manufacturer":   "Bharat Biotech",
		"doses_required": "2",
		"dose_intervals": "[28]",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var vaccine Models.Vaccine
	require.NoError(t, Models.DB.Where("name = ?", "Covaxin").First(&vaccine).Error)
	assert.Equal(t, 1250.50, vaccine.Price)
	assert.EqualValues(t, 40, vaccine.Stock)
	assert.Equal(t, 2, vaccine.DosesRequired)
	assert.Equal(t, []int{28}, []int(vaccine.DoseIntervals))
	assert.Equal(t, doctor.ID, vaccine.CreatedByID)
}

func TestAddVaccineIntervalArity(t *testing.T) {
	router := setupRouter(t)
	_, token := createUser(t, Models.RoleDoctor)

	// Three doses need exactly two intervals
	resp := postVaccineForm(t, router, token, map[string]string{
		"name":           "Broken",
		"price":          "100",
		"doses_required": "3",
		"dose_intervals": "[30]",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var count int64
	require.NoError(t, Models.DB.Model(&Models.Vaccine{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestAddVaccinePatientForbidden(t *testing.T) {
	router := setupRouter(t)
	_, token := createUser(t, Models.RolePatient)

	resp := postVaccineForm(t, router, token, map[string]string{
		"name":  "Forbidden",
		"price": "100",
	})
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestEditVaccinePreservesCreator(t *testing.T) {
	router := setupRouter(t)
	doctor, token := createUser(t, Models.RoleDoctor)

	vaccine := createVaccine(t, "OPV", 150, 1, nil)
	require.NoError(t, Models.DB.Model(&vaccine).Update("created_by_id", doctor.ID).Error)

	resp := doJSON(t, router, http.MethodPost, "/api/protected/EditVaccine", token, map[string]interface{}{
		"ID":             vaccine.ID,
		"name":           "OPV",
		"price":          175,
		"stock":          90,
		"doses_required": 1,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var updated Models.Vaccine
	require.NoError(t, Models.DB.First(&updated, vaccine.ID).Error)
	assert.Equal(t, 175.0, updated.Price)
	assert.Equal(t, doctor.ID, updated.CreatedByID)
}

func TestEditVaccineNotFound(t *testing.T) {
	router := setupRouter(t)
	_, token := createUser(t, Models.RoleDoctor)

	resp := doJSON(t, router, http.MethodPost, "/api/protected/EditVaccine", token, map[string]interface{}{
		"ID":             9999,
		"name":           "Ghost",
		"price":          100,
		"doses_required": 1,
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteVaccine(t *testing.T) {
	router := setupRouter(t)
	_, token := createUser(t, Models.RoleAdmin)
	vaccine := createVaccine(t, "Smallpox", 999, 1, nil)

	resp := doJSON(t, router, http.MethodPost, "/api/protected/DeleteVaccine", token, map[string]interface{}{"vaccine_id": vaccine.ID})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var count int64
	require.NoError(t, Models.DB.Model(&Models.Vaccine{}).Where("id = ?", vaccine.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestDeleteVaccineFreesName(t *testing.T) {
	router := setupRouter(t)
	_, token := createUser(t, Models.RoleAdmin)
	vaccine := createVaccine(t, "Flu Shot", 350, 1, nil)

	resp := doJSON(t, router, http.MethodPost, "/api/protected/DeleteVaccine", token, map[string]interface{}{"vaccine_id": vaccine.ID})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	// The deleted row must not keep holding the unique name index
	resp = postVaccineForm(t, router, token, map[string]string{
		"name":  "Flu Shot",
		"price": "375",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
}

func TestFetchVaccinesPublic(t *testing.T) {
	router := setupRouter(t)
	createVaccine(t, "Anthrax", 5000, 1, nil)

	var vaccines []Models.Vaccine
	resp := doJSON(t, router, http.MethodGet, "/api/FetchVaccines", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	decodeInto(t, resp, &vaccines)
	require.Len(t, vaccines, 1)
	assert.Equal(t, "Anthrax", vaccines[0].Name)
}
