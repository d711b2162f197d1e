package Controllers

import (
	"time"

	"NirapodTika/Config"
	"NirapodTika/Models"
	"NirapodTika/SSLCommerz"
	"NirapodTika/Utils/Token"

	"github.com/gin-gonic/gin"
)

var appConfig Config.App
var gateway *SSLCommerz.Client

// Configure hands the startup config to the handlers and builds the payment
// gateway client from it. Called once from main before routing starts.
func Configure(cfg Config.App) {
	appConfig = cfg
	gateway = SSLCommerz.NewClient(cfg.StoreID, cfg.StorePass, cfg.Sandbox, time.Duration(cfg.GatewayTimeout)*time.Second)
}

// currentUser resolves the authenticated caller. RequireRole middleware
// stashes the user, everything else falls back to the token lookup.
func currentUser(c *gin.Context) (Models.User, error) {
	if value, exists := c.Get("currentUser"); exists {
		if user, ok := value.(Models.User); ok {
			return user, nil
		}
	}

	user_id, err := Token.ExtractTokenID(c)
	if err != nil {
		return Models.User{}, err
	}
	return Models.GetUserByID(user_id)
}
