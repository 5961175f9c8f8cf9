package routes

import (
	"time"

	"medlease/handlers"
	"medlease/middleware"
	operatorSvc "medlease/services/operator"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers operator account endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle, operators operatorSvc.OperatorService) {
	api := r.Group("/api/auth")
	{
		api.POST("/signup", hb.Signup)
		api.POST("/login", hb.Login)

		api.Use(middleware.JWTAuthMiddleware(operators))
		api.POST("/logout", hb.Logout)
		api.GET("/me", hb.Me)
	}
}

// RegisterWorkflowRoutes registers the workflow session endpoints.
func RegisterWorkflowRoutes(r *gin.Engine, hb *handlers.HandlerBundle, operators operatorSvc.OperatorService) {
	api := r.Group("/api/workflow")
	{
		api.Use(middleware.JWTAuthMiddleware(operators))
		api.POST("/sessions", hb.StartWorkflowSession)
		api.GET("/sessions/:sessionID", hb.GetWorkflowSession)
		api.DELETE("/sessions/:sessionID", hb.EndWorkflowSession)

		api.POST("/sessions/:sessionID/next", hb.WorkflowNext)
		api.POST("/sessions/:sessionID/prev", hb.WorkflowPrev)
		api.POST("/sessions/:sessionID/goto", hb.WorkflowGoto)
		api.POST("/sessions/:sessionID/reset", hb.WorkflowReset)
		api.GET("/sessions/:sessionID/progress", hb.WorkflowProgress)

		api.PUT("/sessions/:sessionID/recommendation", hb.SetRecommendation)
		api.PUT("/sessions/:sessionID/validation", hb.MarkValidated)
		api.PUT("/sessions/:sessionID/invoice", hb.AttachInvoice)
		api.POST("/sessions/:sessionID/approve", hb.MarkPaymentApproved)
		api.POST("/sessions/:sessionID/disburse", hb.MarkDisbursed)
	}
}

// RegisterPatientRoutes registers patient CRUD endpoints.
func RegisterPatientRoutes(r *gin.Engine, hb *handlers.HandlerBundle, operators operatorSvc.OperatorService) {
	api := r.Group("/api/patients")
	{
		api.Use(middleware.JWTAuthMiddleware(operators))
		api.POST("", hb.RegisterPatient)
		api.GET("/:id", hb.GetPatient)
		api.GET("", hb.SearchPatients)
		api.PUT("/:id", hb.UpdatePatient)
		api.DELETE("/:id", hb.DeletePatient)
	}
}

// RegisterBookingRoutes registers the booking lifecycle, worklist, and sync
// endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle, operators operatorSvc.OperatorService) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware(operators))
		api.POST("", hb.CreateBooking)
		api.GET("/worklist", hb.Worklist)
		api.GET("/sync", hb.SyncBookings)
		api.GET("/number/:number", hb.GetBookingByNumber)
		api.GET("/:id", hb.GetBooking)
		api.POST("/:id/approve", hb.ApproveBooking)
		api.POST("/:id/reject", hb.RejectBooking)
		api.POST("/:id/services/:serviceID/cancel", hb.CancelServiceLine)

		// Completion verification is scoped to one service line.
		api.POST("/:id/services/:serviceID/completion-otp", hb.RequestCompletionOTP)
		api.POST("/:id/services/:serviceID/completion-otp/verify", hb.VerifyCompletionOTP)
		api.POST("/:id/services/:serviceID/completion-otp/resend", hb.ResendCompletionOTP)
	}
}

// RegisterConsentRoutes registers the consent OTP endpoints.
func RegisterConsentRoutes(r *gin.Engine, hb *handlers.HandlerBundle, operators operatorSvc.OperatorService) {
	api := r.Group("/api/consent")
	{
		api.Use(middleware.JWTAuthMiddleware(operators))
		api.POST("/request", hb.RequestConsentOTP)
		api.POST("/validate", hb.ValidateConsentOTP)
		api.POST("/resend", hb.ResendConsentOTP)
	}
}

// RegisterRegistryRoutes registers the reference-data catalog endpoints.
func RegisterRegistryRoutes(r *gin.Engine, hb *handlers.HandlerBundle, operators operatorSvc.OperatorService) {
	api := r.Group("/api/registry")
	{
		api.Use(middleware.JWTAuthMiddleware(operators))

		api.POST("/facilities", hb.CreateFacility)
		api.GET("/facilities", hb.ListFacilities)
		api.GET("/facilities/:id", hb.GetFacility)
		api.PUT("/facilities/:id", hb.UpdateFacility)
		api.DELETE("/facilities/:id", hb.DeleteFacility)

		api.POST("/vendors", hb.CreateVendor)
		api.GET("/vendors", hb.ListVendors)
		api.GET("/vendors/:id", hb.GetVendor)
		api.PUT("/vendors/:id", hb.UpdateVendor)
		api.DELETE("/vendors/:id", hb.DeleteVendor)

		api.POST("/equipment", hb.CreateEquipment)
		api.GET("/equipment", hb.ListEquipment)
		api.GET("/equipment/:id", hb.GetEquipment)
		api.PUT("/equipment/:id", hb.UpdateEquipment)
		api.DELETE("/equipment/:id", hb.DeleteEquipment)

		api.POST("/contracts", hb.CreateContract)
		api.GET("/contracts", hb.ListContracts)
		api.GET("/contracts/:id", hb.GetContract)
		api.PUT("/contracts/:id", hb.UpdateContract)
		api.DELETE("/contracts/:id", hb.DeleteContract)
		api.POST("/contracts/:id/document", hb.AttachContractDocument)

		api.GET("/recommendations", hb.Recommend)
	}
}

// RegisterSettlementRoutes registers settlement endpoints; finance only.
func RegisterSettlementRoutes(r *gin.Engine, hb *handlers.HandlerBundle, operators operatorSvc.OperatorService) {
	api := r.Group("/api/settlement")
	{
		api.Use(middleware.JWTAuthMiddleware(operators))
		api.Use(middleware.RequireRole(operators, "finance"))
		api.POST("/batches", hb.CreateBatch)
		api.GET("/batches", hb.ListBatches)
		api.GET("/batches/:id", hb.GetBatch)
		api.POST("/batches/:id/disburse", hb.DisburseBatch)
		api.GET("/payments", hb.ListPayments)
	}
}

// RegisterStorageRoutes registers document upload endpoints.
func RegisterStorageRoutes(r *gin.Engine, hb *handlers.HandlerBundle, operators operatorSvc.OperatorService) {
	api := r.Group("/api/storage")
	{
		api.Use(middleware.JWTAuthMiddleware(operators))
		api.POST("/upload/:bucket", hb.UploadDocument)
	}
}

// RegisterConsoleAliases keeps the flat paths the operator console was built
// against, pointing at the same handlers as the grouped routes.
func RegisterConsoleAliases(r *gin.Engine, hb *handlers.HandlerBundle, operators operatorSvc.OperatorService) {
	auth := middleware.JWTAuthMiddleware(operators)
	finance := middleware.RequireRole(operators, "finance")

	r.GET("/api/practitioner/worklist", auth, hb.Worklist)
	r.POST("/api/batches", auth, finance, hb.CreateBatch)
	r.GET("/api/batches", auth, finance, hb.ListBatches)
	r.GET("/api/facility/payments", auth, finance, hb.ListPayments)
}

// RegisterHealthRoute registers the health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthCheck)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, operators operatorSvc.OperatorService) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb, operators)
	RegisterWorkflowRoutes(r, hb, operators)
	RegisterPatientRoutes(r, hb, operators)
	RegisterBookingRoutes(r, hb, operators)
	RegisterConsentRoutes(r, hb, operators)
	RegisterRegistryRoutes(r, hb, operators)
	RegisterSettlementRoutes(r, hb, operators)
	RegisterStorageRoutes(r, hb, operators)
	RegisterConsoleAliases(r, hb, operators)
	RegisterHealthRoute(r)
}
