package Routes

import (
	"NirapodTika/Controllers"
	"NirapodTika/Middleware"
	"NirapodTika/Models"
	"NirapodTika/SSE"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

func ConfigRoutes(router *gin.Engine) {
	// Gzip Compression
	router.Use(gzip.Gzip(gzip.BestSpeed))

	// Public routes
	public := router.Group("/api")
	{
		public.POST("/login", Controllers.Login)
		public.POST("/register", Controllers.Register)
		public.GET("/activate/:uid/:token", Controllers.Activate)
		public.POST("/ResendActivation", Controllers.ResendActivation)
		public.POST("/CheckEmailExists", Controllers.CheckEmailExists)
		public.GET("/FetchVaccines", Controllers.FetchVaccines)

		// Gateway redirect/IPN callbacks carry no JWT
		public.POST("/payment/success", Controllers.PaymentSuccess)
		public.POST("/payment/fail", Controllers.PaymentFail)
	}

	// Authorized routes
	authorized := router.Group("/api/protected")
	authorized.Use(Middleware.JwtAuthMiddleware())
	{
		// User-related routes
		authorized.GET("/user", Controllers.CurrentUser)
		authorized.POST("/SaveFcmToken", Controllers.SaveFcmToken)
		authorized.GET("/GetProfile", Controllers.GetProfile)
		authorized.POST("/UpdateProfile", Controllers.UpdateProfile)
		authorized.GET("/FetchDoctors", Controllers.FetchDoctors)
		authorized.GET("/FetchPatients", Middleware.RequireRole(Models.RoleAdmin), Controllers.FetchPatients)
		authorized.POST("/RegisterStaff", Middleware.RequireRole(Models.RoleAdmin), Controllers.RegisterStaff)

		// Catalog-related routes
		authorized.POST("/AddVaccine", Middleware.RequireRole(Models.RoleDoctor, Models.RoleAdmin), Controllers.AddVaccine)
		authorized.POST("/EditVaccine", Middleware.RequireRole(Models.RoleDoctor, Models.RoleAdmin), Controllers.EditVaccine)
		authorized.POST("/DeleteVaccine", Middleware.RequireRole(Models.RoleDoctor, Models.RoleAdmin), Controllers.DeleteVaccine)

		// Campaign-related routes
		authorized.GET("/FetchCampaigns", Controllers.FetchCampaigns)
		authorized.POST("/AddCampaign", Middleware.RequireRole(Models.RoleAdmin), Controllers.AddCampaign)
		authorized.POST("/EditCampaign", Middleware.RequireRole(Models.RoleAdmin), Controllers.EditCampaign)
		authorized.POST("/DeleteCampaign", Middleware.RequireRole(Models.RoleAdmin), Controllers.DeleteCampaign)

		// Booking-related routes
		authorized.POST("/BookVaccination", Middleware.RequireRole(Models.RolePatient), Controllers.BookVaccination)
		authorized.GET("/FetchSchedules", Controllers.FetchSchedules)
		authorized.POST("/UpdateScheduleDoseDates", Controllers.UpdateScheduleDoseDates)
		authorized.POST("/UpdateScheduleStatus", Controllers.UpdateScheduleStatus)
		authorized.POST("/InitiateSchedulePayment", Controllers.InitiateSchedulePayment)

		// Review-related routes
		authorized.POST("/AddReview", Middleware.RequireRole(Models.RolePatient), Controllers.AddReview)
		authorized.POST("/EditReview", Controllers.EditReview)
		authorized.POST("/FetchCampaignReviews", Controllers.FetchCampaignReviews)

		// Cart-related routes
		authorized.POST("/EnsureCart", Controllers.EnsureCart)
		authorized.GET("/FetchCart", Controllers.FetchCart)
		authorized.POST("/AddCartItem", Controllers.AddCartItem)
		authorized.POST("/UpdateCartItem", Controllers.UpdateCartItem)
		authorized.POST("/RemoveCartItem", Controllers.RemoveCartItem)

		// Order-related routes
		authorized.POST("/CreateOrder", Controllers.CreateOrder)
		authorized.GET("/FetchOrders", Controllers.FetchOrders)
		authorized.POST("/CancelOrder", Controllers.CancelOrder)
		authorized.POST("/UpdateOrderStatus", Middleware.RequireRole(Models.RoleAdmin), Controllers.UpdateOrderStatus)
		authorized.POST("/InitiateOrderPayment", Controllers.InitiateOrderPayment)

		// Export-related routes
		authorized.POST("/ExportSchedulesExcel", Middleware.RequireRole(Models.RoleAdmin), Controllers.ExportSchedulesExcel)

		// SSE (Server-Sent Events) route
		authorized.GET("/RequestSSE", SSE.RequestSSE)
	}

	// Static file serving
	router.Static("/VaccineImages", "./VaccineImages")
}
