package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"NirapodTika/Config"
	"NirapodTika/Controllers"
	"NirapodTika/Models"
	"NirapodTika/Routes"
	"NirapodTika/Utils/Token"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var userCounter uint64

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	os.Setenv("API_SECRET", "test-secret")
	os.Setenv("TOKEN_HOUR_LIFESPAN", "1")

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	Models.DB = db
	require.NoError(t, Models.Migrate(db))

	Controllers.Configure(Config.App{
		FrontendURL: "http://localhost:5173",
		BackendURL:  "http://localhost:3005",
		Currency:    "BDT",
	})

	router := gin.New()
	Routes.ConfigRoutes(router)
	return router
}

// createUser registers an active account directly against the store and
// hands back a usable JWT.
func createUser(t *testing.T, role string) (Models.User, string) {
	t.Helper()
	n := atomic.AddUint64(&userCounter, 1)

	user := Models.User{
		Phone:     fmt.Sprintf("+88017000%05d", n),
		NID:       fmt.Sprintf("nid-%05d", n),
		Email:     fmt.Sprintf("user%05d@example.com", n),
		Password:  "secret123",
		FirstName: "Test",
		LastName:  fmt.Sprintf("User%d", n),
		Role:      role,
		IsActive:  true,
	}
	_, err := user.SaveUser()
	require.NoError(t, err)

	token, err := Token.GenerateToken(user.ID)
	require.NoError(t, err)
	return user, token
}

func createVaccine(t *testing.T, name string, price float64, dosesRequired int, intervals []int) Models.Vaccine {
	t.Helper()
	vaccine := Models.Vaccine{
		Name:          name,
		Price:         price,
		Stock:         100,
		Manufacturer:  "Incepta",
		DosesRequired: dosesRequired,
		DoseIntervals: intervals,
	}
	require.NoError(t, Models.DB.Create(&vaccine).Error)
	return vaccine
}

func createCampaign(t *testing.T, name string) Models.VaccineCampaign {
	t.Helper()
	campaign := Models.VaccineCampaign{
		Name:      name,
		Location:  "Dhaka",
		StartDate: "2026-01-01",
		EndDate:   "2026-12-31",
	}
	require.NoError(t, Models.DB.Create(&campaign).Error)
	return campaign
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeInto(t *testing.T, recorder *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), target))
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func bookVaccination(t *testing.T, router *gin.Engine, token string, vaccineID uint, campaignID *uint, method string) *httptest.ResponseRecorder {
	t.Helper()
	payload := map[string]interface{}{
		"vaccine_id":     vaccineID,
		"payment_method": method,
	}
	if campaignID != nil {
		payload["campaign_id"] = *campaignID
	}
	return doJSON(t, router, http.MethodPost, "/api/protected/BookVaccination", token, payload)
}
