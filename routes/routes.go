package routes

import (
	"net/http"

	"readerspace-backend/config"
	"readerspace-backend/controllers"
	"readerspace-backend/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(svc *services.MembershipService, history *services.NotificationHistory, origins []string) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", config.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", config.RequestIDHeader},
	}
	if len(origins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	r.Use(cors.New(corsConfig))

	r.Use(config.RequestID())
	r.Use(config.PerformanceLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// Member routes
		memberController := controllers.MemberController{Service: svc}
		paymentController := controllers.PaymentController{Service: svc}
		members := api.Group("/members")
		{
			members.POST("", memberController.RegisterMember)
			members.GET("", memberController.GetMembers)
			members.GET("/:code", memberController.GetMember)
			members.POST("/:code/payments", paymentController.RecordPayment)
		}

		// Payment routes
		api.GET("/payments/pending", paymentController.GetPendingPayments)

		// Reports routes
		reportController := controllers.ReportController{Service: svc}
		reports := api.Group("/reports")
		{
			reports.GET("/members.csv", reportController.DownloadCSV)
			reports.GET("/members.xlsx", reportController.DownloadXLSX)
			reports.GET("/rows", reportController.GetReportRows)
			reports.GET("/summary", reportController.GetRevenueSummary)
		}

		// Dashboard routes
		dashboardController := controllers.DashboardController{Service: svc}
		api.GET("/dashboard", dashboardController.GetDashboardOverview)

		// Notification routes
		notificationController := controllers.NotificationController{History: history}
		api.GET("/notifications", notificationController.GetNotifications)
	}

	return r
}
