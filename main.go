package main

import (
	"log"

	"NirapodTika/Config"
	"NirapodTika/Controllers"
	"NirapodTika/CronJobs"
	"NirapodTika/FirebaseMessaging"
	"NirapodTika/Models"
	"NirapodTika/Routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := Config.Load()
	if err != nil {
		log.Fatal("config error:", err)
	}

	Models.ConnectDataBase()
	Controllers.Configure(cfg)

	if cfg.FirebaseCredentialsPath != "" {
		FirebaseMessaging.Setup(cfg.FirebaseCredentialsPath)
	}

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL, "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	},
	))
	Routes.ConfigRoutes(router)

	CronJobs.NewDoseReminder(Models.DB).StartReminderCron()

	router.Run(cfg.Port)
}
