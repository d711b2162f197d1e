package Config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// App holds everything that is assembled once at startup and handed to the
// components that need it (payment gateway, routes, cron).
type App struct {
	Port        string `envconfig:"PORT" default:":3005"`
	FrontendURL string `envconfig:"FRONTEND_URL" default:"http://localhost:5173"`

	// Public base URL of this API. The payment gateway POSTs its
	// success/fail callbacks here, so it must be reachable from outside.
	BackendURL string `envconfig:"BACKEND_URL" default:"http://localhost:3005"`

	// SSLCommerz hosted checkout
	StoreID        string `envconfig:"SSLCZ_STORE_ID"`
	StorePass      string `envconfig:"SSLCZ_STORE_PASS"`
	Sandbox        bool   `envconfig:"SSLCZ_SANDBOX" default:"true"`
	GatewayTimeout int    `envconfig:"SSLCZ_TIMEOUT_SECONDS" default:"15"`
	Currency       string `envconfig:"PAYMENT_CURRENCY" default:"BDT"`

	FirebaseCredentialsPath string `envconfig:"FIREBASE_SERVICE_ACCOUNT_PATH"`
}

func Load() (App, error) {
	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load(".env")

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return App{}, err
	}
	return cfg, nil
}
