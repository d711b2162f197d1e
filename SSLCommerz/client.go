package SSLCommerz

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	sandboxEndpoint = "https://sandbox.sslcommerz.com/gwprocess/v4/api.php"
	liveEndpoint    = "https://securepay.sslcommerz.com/gwprocess/v4/api.php"
)

// Client speaks the SSLCommerz hosted-checkout API: a form POST opens a
// session and the customer is redirected to the returned gateway page. The
// outcome comes back on the success/fail callback URLs.
type Client struct {
	storeID   string
	storePass string
	sandbox   bool

	// HTTPClient is replaceable, e.g. to stub the gateway in tests.
	HTTPClient *http.Client
}

func NewClient(storeID, storePass string, sandbox bool, timeout time.Duration) *Client {
	return &Client{
		storeID:    storeID,
		storePass:  storePass,
		sandbox:    sandbox,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type SessionRequest struct {
	TotalAmount     float64
	Currency        string
	TranID          string
	SuccessURL      string
	FailURL         string
	CancelURL       string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
	NumItems        int
	ProductName     string
	ProductCategory string
}

type sessionResponse struct {
	Status         string `json:"status"`
	FailedReason   string `json:"failedreason"`
	SessionKey     string `json:"sessionkey"`
	GatewayPageURL string `json:"GatewayPageURL"`
}

// CreateSession opens a payment session and returns the hosted payment page
// URL. Gateway errors come back verbatim so the handler can pass them
// through as a 400.
func (c *Client) CreateSession(req SessionRequest) (string, error) {
	form := url.Values{}
	form.Set("store_id", c.storeID)
	form.Set("store_passwd", c.storePass)
	form.Set("total_amount", strconv.FormatFloat(req.TotalAmount, 'f', 2, 64))
	form.Set("currency", req.Currency)
	form.Set("tran_id", req.TranID)
	form.Set("success_url", req.SuccessURL)
	form.Set("fail_url", req.FailURL)
	form.Set("cancel_url", req.CancelURL)
	form.Set("emi_option", "0")
	form.Set("cus_name", req.CustomerName)
	form.Set("cus_email", req.CustomerEmail)
	form.Set("cus_phone", req.CustomerPhone)
	form.Set("cus_add1", req.CustomerAddress)
	form.Set("cus_city", "Dhaka")
	form.Set("cus_country", "Bangladesh")
	form.Set("shipping_method", "NO")
	form.Set("num_of_item", strconv.Itoa(req.NumItems))
	form.Set("product_name", req.ProductName)
	form.Set("product_category", req.ProductCategory)
	form.Set("product_profile", "general")

	endpoint := liveEndpoint
	if c.sandbox {
		endpoint = sandboxEndpoint
	}

	httpReq, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gateway unreachable: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", fmt.Errorf("gateway error: %s (%d)", string(body), res.StatusCode)
	}

	var session sessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return "", fmt.Errorf("parse session response failed: %w", err)
	}

	if session.Status != "SUCCESS" {
		reason := session.FailedReason
		if reason == "" {
			reason = "Payment session rejected"
		}
		return "", fmt.Errorf("%s", reason)
	}

	return session.GatewayPageURL, nil
}
