// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	"github.com/Rajatgupta94114/JOB-EZZY/internal/controller/application"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/controller/auth"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/controller/connection"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/controller/escrow"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/controller/job"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/controller/message"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/controller/notification"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/controller/payment"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/controller/rating"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/controller/tonpay"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/controller/user"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/metrics"
	"github.com/Rajatgupta94114/JOB-EZZY/internal/middleware"
)

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	allowOrginsStr := os.Getenv("ALLOW_ORIGIN")
	allowOrgins := strings.Split(allowOrginsStr, ",")

	authController := auth.NewAuthController(s.DB, s.Log)
	userController := user.NewUserController(s.DB, s.Redis, s.Log)
	jobController := job.NewJobController(s.DB, s.Log)
	applicationController := application.NewApplicationController(s.DB, s.Log)
	escrowController := escrow.NewEscrowController(s.DB, s.Log)
	paymentController := payment.NewPaymentController(s.DB, s.Redis, s.Log)
	tonPaymentController := tonpay.NewTonPaymentController(s.Log)
	ratingController := rating.NewRatingController(s.DB, s.Log)
	notificationController := notification.NewNotificationController(s.DB, s.Log)
	messageController := message.NewMessageController(s.DB, s.Log)
	connectionController := connection.NewConnectionController(s.DB, s.Log)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrgins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(middleware.SafeHeader())
	r.Use(middleware.EnvRateLimitMiddleware())
	r.Use(metrics.RequestCounter())

	r.GET("/health", s.healthHandler)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/auth/login", authController.LoginHandler)

	r.GET("/users", userController.GetUsers)
	r.GET("/leaderboard", userController.GetLeaderboard)
	r.PATCH("/users/kyc", userController.UpdateKYCHandler)

	r.GET("/jobs", jobController.GetJobs)
	r.POST("/jobs", jobController.CreateJobHandler)

	applicationRoute := r.Group("/applications")
	{
		applicationRoute.GET("", applicationController.GetApplications)
		// resume files ride along in the create body
		applicationRoute.POST("", middleware.SizeLimit(10<<20), applicationController.CreateApplicationHandler)
		applicationRoute.PUT("", applicationController.UpdateApplicationHandler)
	}

	escrowRoute := r.Group("/escrow")
	{
		escrowRoute.GET("", escrowController.GetEscrows)
		escrowRoute.POST("", escrowController.CreateEscrowHandler)
		escrowRoute.PUT("", escrowController.UpdateEscrowHandler)
		escrowRoute.POST("/accept", escrowController.AcceptContractHandler)
	}

	paymentRoute := r.Group("/payments")
	{
		paymentRoute.GET("", paymentController.GetPayments)
		paymentRoute.POST("", paymentController.CreatePaymentHandler)
		paymentRoute.PUT("", paymentController.UpdatePaymentHandler)
		paymentRoute.POST("/complete", paymentController.CompletePaymentHandler)
	}

	r.POST("/ton-payment", tonPaymentController.InitiatePaymentHandler)

	ratingRoute := r.Group("/ratings")
	{
		ratingRoute.GET("", ratingController.GetRatings)
		ratingRoute.POST("", ratingController.CreateRatingHandler)
		ratingRoute.PUT("", ratingController.UpdateRatingHandler)
	}

	notificationRoute := r.Group("/notifications")
	{
		notificationRoute.GET("", notificationController.GetNotifications)
		notificationRoute.POST("", notificationController.CreateNotificationHandler)
		notificationRoute.PUT("", notificationController.UpdateNotificationHandler)
		notificationRoute.DELETE("", notificationController.DeleteNotificationHandler)
	}

	messageRoute := r.Group("/messages")
	{
		messageRoute.GET("", messageController.GetMessages)
		messageRoute.POST("", messageController.CreateMessageHandler)
		messageRoute.DELETE("", messageController.DeleteMessageHandler)
	}

	connectionRoute := r.Group("/connections")
	{
		connectionRoute.GET("", connectionController.GetConnections)
		connectionRoute.POST("", connectionController.CreateConnectionHandler)
	}

	return r
}

func (s *MyServer) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}
