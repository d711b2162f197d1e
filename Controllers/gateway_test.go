package Controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"NirapodTika/Config"
	"NirapodTika/Models"
	"NirapodTika/SSLCommerz"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type gatewayStub struct {
	lastForm url.Values
}

func (g *gatewayStub) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := req.ParseForm(); err != nil {
		return nil, err
	}
	g.lastForm = req.PostForm
	return &http.Response{
		StatusCode: http.StatusOK,
		Body: io.NopCloser(strings.NewReader(
			`{"status":"SUCCESS","sessionkey":"s1","GatewayPageURL":"https://sandbox.sslcommerz.com/gw/pay/s1"}`)),
		Header: make(http.Header),
	}, nil
}

func setupGatewayTest(t *testing.T) (*gatewayStub, Models.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	Models.DB = db
	require.NoError(t, Models.Migrate(db))

	appConfig = Config.App{
		FrontendURL: "http://localhost:5173",
		BackendURL:  "https://api.nirapodtika.example",
		Currency:    "BDT",
	}
	stub := &gatewayStub{}
	gateway = SSLCommerz.NewClient("store", "pass", true, 5*time.Second)
	gateway.HTTPClient.Transport = stub

	patient := Models.User{
		Phone:    "+8801700990001",
		NID:      "nid-gw-1",
		Email:    "gw@example.com",
		Password: "secret123",
		Role:     Models.RolePatient,
		IsActive: true,
	}
	require.NoError(t, Models.DB.Create(&patient).Error)
	return stub, patient
}

func callAs(t *testing.T, user Models.User, handler gin.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.POST("/call", func(c *gin.Context) {
		c.Set("currentUser", user)
		handler(c)
	})

	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/call", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

// The gateway POSTs tran_id to success_url/fail_url, so both must point at
// the API's IPN handlers, not the frontend.
func TestSchedulePaymentCallbacksTargetAPI(t *testing.T) {
	stub, patient := setupGatewayTest(t)

	schedule := Models.VaccinationSchedule{
		PatientID:     patient.ID,
		VaccineName:   "BCG",
		PaymentMethod: Models.PaymentMethodOnline,
		Status:        Models.ScheduleStatusPending,
	}
	require.NoError(t, Models.DB.Create(&schedule).Error)
	payment := Models.Payment{
		ScheduleID:    schedule.ID,
		Amount:        500,
		PaymentMethod: Models.PaymentMethodOnline,
		PaymentStatus: Models.PaymentStatusPending,
	}
	require.NoError(t, Models.DB.Create(&payment).Error)

	resp := callAs(t, patient, InitiateSchedulePayment, map[string]interface{}{"schedule_id": schedule.ID})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	assert.Equal(t, "https://api.nirapodtika.example/api/payment/success", stub.lastForm.Get("success_url"))
	assert.Equal(t, "https://api.nirapodtika.example/api/payment/fail", stub.lastForm.Get("fail_url"))
	assert.Equal(t, "http://localhost:5173/payment/cancel/", stub.lastForm.Get("cancel_url"))
}

func TestOrderPaymentCallbacksTargetAPI(t *testing.T) {
	stub, patient := setupGatewayTest(t)

	order := Models.Order{UserID: patient.ID, Status: Models.OrderStatusPending, TotalPrice: 1200}
	require.NoError(t, Models.DB.Create(&order).Error)

	resp := callAs(t, patient, InitiateOrderPayment, map[string]interface{}{"order_id": order.ID})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	assert.Equal(t, "https://api.nirapodtika.example/api/payment/success", stub.lastForm.Get("success_url"))
	assert.Equal(t, "https://api.nirapodtika.example/api/payment/fail", stub.lastForm.Get("fail_url"))
}
