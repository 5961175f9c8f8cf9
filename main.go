package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medlease/config"
	"medlease/cron"
	"medlease/database"
	bookingRepoPkg "medlease/database/repository/booking"
	operatorRepoPkg "medlease/database/repository/operator"
	patientRepoPkg "medlease/database/repository/patient"
	registryRepoPkg "medlease/database/repository/registry"
	settlementRepoPkg "medlease/database/repository/settlement"
	"medlease/handlers"
	"medlease/middleware"
	"medlease/routes"
	bookingSvc "medlease/services/booking"
	notificationSvc "medlease/services/notification"
	operatorSvc "medlease/services/operator"
	registrySvc "medlease/services/registry"
	settlementSvc "medlease/services/settlement"
	storageSvc "medlease/services/storage"
	verificationSvc "medlease/services/verification"
	workflowSvc "medlease/services/workflow"
	"medlease/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	var documentStorage storageSvc.StorageService
	if cld, err := utils.Cloudinary(); err != nil {
		logger.Sugar().Warnf("main: document storage disabled: %v", err)
	} else {
		documentStorage, err = storageSvc.NewCloudinaryStorageService(cld)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize storage service: %v", err)
		}
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	patientRepo := patientRepoPkg.NewMongoPatientRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	facilityRepo := registryRepoPkg.NewMongoFacilityRepo()
	vendorRepo := registryRepoPkg.NewMongoVendorRepo()
	equipmentRepo := registryRepoPkg.NewMongoEquipmentRepo()
	contractRepo := registryRepoPkg.NewMongoContractRepo()
	settlementRepo := settlementRepoPkg.NewMongoSettlementRepo()
	operatorRepo := operatorRepoPkg.NewMongoOperatorRepo()

	// Task queue client for out-of-band delivery.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()
	dispatcher := verificationSvc.NewAsynqDispatcher(asynqClient)

	// services.
	operatorService := &operatorSvc.DefaultOperatorService{
		Repo:      operatorRepo,
		AuthCache: utils.GetAuthCacheClient(),
	}

	workflowService := &workflowSvc.DefaultWorkflowService{
		Store: workflowSvc.NewRedisSessionStore(utils.GetSessionCacheClient()),
	}

	bookingService := &bookingSvc.DefaultBookingService{
		Repo:     bookingRepo,
		Patients: patientRepo,
		Cache:    utils.GetCacheClient(),
		Pusher:   dispatcher,
	}

	verificationService := &verificationSvc.DefaultVerificationService{
		BookingRepo: bookingRepo,
		PatientRepo: patientRepo,
		Store:       verificationSvc.NewRedisCodeStore(utils.GetOTPCacheClient()),
		Dispatcher:  dispatcher,
		Worklist:    bookingService,
		EchoCodes:   config.AppConfig.OTPEchoEnabled,
	}

	registryService := &registrySvc.DefaultRegistryService{
		Facilities: facilityRepo,
		Vendors:    vendorRepo,
		Equipment:  equipmentRepo,
		Contracts:  contractRepo,
	}

	settlementService := &settlementSvc.DefaultSettlementService{
		Repo:     settlementRepo,
		Bookings: bookingRepo,
	}

	notificationService, err := notificationSvc.NewDefaultNotificationService(patientRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}
	cron.InitNotificationWorker(notificationService)

	// handlers.
	authHandler := &handlers.AuthHandler{Operators: operatorService}
	workflowHandler := &handlers.WorkflowHandler{Workflow: workflowService}
	patientHandler := &handlers.PatientHandler{Repo: patientRepo, Workflow: workflowService}
	bookingHandler := &handlers.BookingHandler{Bookings: bookingService, Workflow: workflowService}
	verificationHandler := &handlers.VerificationHandler{Verification: verificationService, Workflow: workflowService}
	registryHandler := &handlers.RegistryHandler{Registry: registryService}
	settlementHandler := &handlers.SettlementHandler{Settlement: settlementService}
	storageHandler := &handlers.StorageHandler{Storage: documentStorage, Registry: registryService}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Signup: authHandler.Signup,
		Login:  authHandler.Login,
		Logout: authHandler.Logout,
		Me:     authHandler.Me,

		StartWorkflowSession: workflowHandler.StartSession,
		GetWorkflowSession:   workflowHandler.GetSession,
		EndWorkflowSession:   workflowHandler.EndSession,
		WorkflowNext:         workflowHandler.NextStep,
		WorkflowPrev:         workflowHandler.PrevStep,
		WorkflowGoto:         workflowHandler.GotoStep,
		WorkflowReset:        workflowHandler.ResetSession,
		WorkflowProgress:     workflowHandler.GetProgress,
		SetRecommendation:    workflowHandler.SetRecommendation,
		MarkValidated:        workflowHandler.MarkValidated,
		AttachInvoice:        workflowHandler.AttachInvoice,
		MarkPaymentApproved:  workflowHandler.MarkPaymentApproved,
		MarkDisbursed:        workflowHandler.MarkDisbursed,

		RegisterPatient: patientHandler.RegisterPatient,
		GetPatient:      patientHandler.GetPatient,
		SearchPatients:  patientHandler.SearchPatients,
		UpdatePatient:   patientHandler.UpdatePatient,
		DeletePatient:   patientHandler.DeletePatient,

		CreateBooking:      bookingHandler.CreateBooking,
		GetBooking:         bookingHandler.GetBooking,
		GetBookingByNumber: bookingHandler.GetBookingByNumber,
		ApproveBooking:     bookingHandler.ApproveBooking,
		RejectBooking:      bookingHandler.RejectBooking,
		CancelServiceLine:  bookingHandler.CancelServiceLine,
		Worklist:           bookingHandler.Worklist,
		SyncBookings:       bookingHandler.Sync,

		RequestConsentOTP:    verificationHandler.RequestConsentOTP,
		ValidateConsentOTP:   verificationHandler.ValidateConsentOTP,
		ResendConsentOTP:     verificationHandler.ResendConsentOTP,
		RequestCompletionOTP: verificationHandler.RequestCompletionOTP,
		VerifyCompletionOTP:  verificationHandler.VerifyCompletionOTP,
		ResendCompletionOTP:  verificationHandler.ResendCompletionOTP,

		CreateFacility: registryHandler.CreateFacility,
		GetFacility:    registryHandler.GetFacility,
		ListFacilities: registryHandler.ListFacilities,
		UpdateFacility: registryHandler.UpdateFacility,
		DeleteFacility: registryHandler.DeleteFacility,

		CreateVendor: registryHandler.CreateVendor,
		GetVendor:    registryHandler.GetVendor,
		ListVendors:  registryHandler.ListVendors,
		UpdateVendor: registryHandler.UpdateVendor,
		DeleteVendor: registryHandler.DeleteVendor,

		CreateEquipment: registryHandler.CreateEquipment,
		GetEquipment:    registryHandler.GetEquipment,
		ListEquipment:   registryHandler.ListEquipment,
		UpdateEquipment: registryHandler.UpdateEquipment,
		DeleteEquipment: registryHandler.DeleteEquipment,

		CreateContract: registryHandler.CreateContract,
		GetContract:    registryHandler.GetContract,
		ListContracts:  registryHandler.ListContracts,
		UpdateContract: registryHandler.UpdateContract,
		DeleteContract: registryHandler.DeleteContract,
		Recommend:      registryHandler.Recommend,

		CreateBatch:   settlementHandler.CreateBatch,
		GetBatch:      settlementHandler.GetBatch,
		ListBatches:   settlementHandler.ListBatches,
		DisburseBatch: settlementHandler.DisburseBatch,
		ListPayments:  settlementHandler.ListPayments,

		UploadDocument:         storageHandler.UploadDocument,
		AttachContractDocument: storageHandler.AttachContractDocument,
	}

	routes.RegisterRoutes(router, handlerBundle, operatorService)

	utils.StartHealthMonitor(map[string]*redis.Client{
		"cache":   utils.GetCacheClient(),
		"auth":    utils.GetAuthCacheClient(),
		"otp":     utils.GetOTPCacheClient(),
		"session": utils.GetSessionCacheClient(),
	}, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
