package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"hospital-backend/internal/config"
	"hospital-backend/internal/database"
	"hospital-backend/internal/handler"
	"hospital-backend/internal/middleware"
	"hospital-backend/internal/models"
	"hospital-backend/internal/repository"
	"hospital-backend/internal/service"
	"hospital-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()

	// 2. Configure logging
	if cfg.Server.GinMode != "release" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	log.Info().Msg("configuration loaded")

	// 3. Initialize JWT utilities with config
	utils.InitJWT(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// 4. Initialize database connection and schema
	db := database.Connect(cfg)
	database.Migrate(db)

	// 5. Initialize repositories
	userRepo := repository.NewUserRepo(db)
	patientRepo := repository.NewPatientRepo(db)
	appointmentRepo := repository.NewAppointmentRepo(db)
	wardRepo := repository.NewWardRepo(db)
	admissionRepo := repository.NewAdmissionRepo(db)
	medicineRepo := repository.NewMedicineRepo(db)
	prescriptionRepo := repository.NewPrescriptionRepo(db)
	labTestRepo := repository.NewLabTestRepo(db)
	invoiceRepo := repository.NewInvoiceRepo(db)
	configRepo := repository.NewConfigRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	// 6. Initialize services
	authService := service.NewAuthService(userRepo, auditRepo)
	patientService := service.NewPatientService(patientRepo, auditRepo)
	appointmentService := service.NewAppointmentService(appointmentRepo, patientRepo, userRepo, auditRepo)
	wardService := service.NewWardService(wardRepo, auditRepo)
	admissionService := service.NewAdmissionService(admissionRepo, wardRepo, auditRepo)
	billingService := service.NewBillingService(admissionRepo, configRepo, invoiceRepo, auditRepo)
	prescriptionService := service.NewPrescriptionService(prescriptionRepo, medicineRepo, patientRepo, auditRepo)
	medicineService := service.NewMedicineService(medicineRepo, auditRepo)
	labTestService := service.NewLabTestService(labTestRepo, patientRepo, auditRepo)
	adminService := service.NewAdminService(configRepo, auditRepo)
	workerService := service.NewWorkerService(userRepo, appointmentRepo, cfg.Worker.SweepInterval, cfg.Worker.AppointmentGrace)

	// 7. Start background sweeper in goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go workerService.Start(ctx)

	// 8. Setup Gin mode and router
	gin.SetMode(cfg.Server.GinMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg))

	// 9. Register handlers
	authHandler := handler.NewAuthHandler(authService)
	patientHandler := handler.NewPatientHandler(patientService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	wardHandler := handler.NewWardHandler(wardService)
	admissionHandler := handler.NewAdmissionHandler(admissionService, billingService)
	prescriptionHandler := handler.NewPrescriptionHandler(prescriptionService)
	medicineHandler := handler.NewMedicineHandler(medicineService)
	labTestHandler := handler.NewLabTestHandler(labTestService)
	billingHandler := handler.NewBillingHandler(billingService)
	adminHandler := handler.NewAdminHandler(adminService)

	// 10. Define routes
	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "hospital-backend",
		})
	})

	// Auth routes (public, except register)
	auth := r.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
		auth.POST("/register",
			middleware.AuthMiddleware(),
			middleware.RequireRoles(models.RoleAdmin),
			authHandler.Register)
	}

	// Patient routes
	patients := r.Group("/patients")
	patients.Use(middleware.AuthMiddleware())
	patients.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleReceptionist, models.RoleDoctor, models.RoleNurse))
	{
		patients.GET("", patientHandler.SearchPatients)
		patients.GET("/:id", patientHandler.GetPatient)
		patients.POST("", patientHandler.CreatePatient)
		patients.PUT("/:id", patientHandler.UpdatePatient)
		patients.DELETE("/:id", patientHandler.DeletePatient)
	}

	// Appointment routes
	appointments := r.Group("/appointments")
	appointments.Use(middleware.AuthMiddleware())
	{
		staff := middleware.RequireRoles(models.RoleAdmin, models.RoleReceptionist, models.RoleDoctor, models.RoleNurse)
		appointments.GET("", staff, appointmentHandler.ListAppointments)
		appointments.GET("/:id", staff, appointmentHandler.GetAppointment)
		appointments.POST("", staff, appointmentHandler.CreateAppointment)
		appointments.PATCH("/:id/cancel", staff, appointmentHandler.CancelAppointment)

		doctorOnly := middleware.RequireRoles(models.RoleDoctor)
		appointments.POST("/:id/consultation", doctorOnly, appointmentHandler.RecordConsultation)
		appointments.GET("/:id/consultation", staff, appointmentHandler.GetConsultation)
	}

	// Ward and bed routes
	wards := r.Group("/wards")
	wards.Use(middleware.AuthMiddleware())
	{
		readers := middleware.RequireRoles(models.RoleAdmin, models.RoleWardManager, models.RoleDoctor, models.RoleNurse)
		managers := middleware.RequireRoles(models.RoleAdmin, models.RoleWardManager)

		wards.GET("", readers, wardHandler.GetAllWards)
		wards.GET("/:id", readers, wardHandler.GetWard)
		wards.GET("/:id/beds", readers, wardHandler.GetBeds)
		wards.POST("", managers, wardHandler.CreateWard)
		wards.PUT("/:id", managers, wardHandler.UpdateWard)
		wards.DELETE("/:id", managers, wardHandler.DeleteWard)
		wards.POST("/:id/beds", managers, wardHandler.CreateBed)
	}

	// Admission routes
	admissions := r.Group("/admissions")
	admissions.Use(middleware.AuthMiddleware())
	{
		clinical := middleware.RequireRoles(models.RoleAdmin, models.RoleDoctor, models.RoleWardManager)
		wardStaff := middleware.RequireRoles(models.RoleAdmin, models.RoleDoctor, models.RoleWardManager, models.RoleNurse)

		admissions.GET("/stats", clinical, admissionHandler.Stats)
		admissions.GET("", wardStaff, admissionHandler.ListAdmissions)
		admissions.GET("/:id", wardStaff, admissionHandler.GetAdmission)
		admissions.GET("/:id/charges-preview", wardStaff, admissionHandler.ChargesPreview)
		admissions.POST("", clinical, admissionHandler.AdmitPatient)
		admissions.PATCH("/:id/transfer", clinical, admissionHandler.TransferAdmission)
		admissions.PATCH("/:id/discharge", clinical, admissionHandler.DischargeAdmission)
	}

	// Prescription routes
	prescriptions := r.Group("/prescriptions")
	prescriptions.Use(middleware.AuthMiddleware())
	{
		readers := middleware.RequireRoles(models.RoleAdmin, models.RoleDoctor, models.RoleNurse, models.RolePharmacist)
		prescriptions.POST("", middleware.RequireRoles(models.RoleDoctor), prescriptionHandler.CreatePrescription)
		prescriptions.GET("", readers, prescriptionHandler.ListPrescriptions)
		prescriptions.GET("/:id", readers, prescriptionHandler.GetPrescription)
	}

	// Medicine inventory routes
	medicines := r.Group("/medicines")
	medicines.Use(middleware.AuthMiddleware())
	{
		readers := middleware.RequireRoles(models.RoleAdmin, models.RolePharmacist, models.RoleDoctor, models.RoleNurse)
		pharmacy := middleware.RequireRoles(models.RoleAdmin, models.RolePharmacist)

		medicines.GET("/low-stock", pharmacy, medicineHandler.GetLowStock)
		medicines.GET("", readers, medicineHandler.SearchMedicines)
		medicines.GET("/:id", readers, medicineHandler.GetMedicine)
		medicines.POST("", pharmacy, medicineHandler.CreateMedicine)
		medicines.PUT("/:id", pharmacy, medicineHandler.UpdateMedicine)
		medicines.DELETE("/:id", pharmacy, medicineHandler.DeleteMedicine)
		medicines.PATCH("/:id/stock", pharmacy, medicineHandler.AdjustStock)
	}

	// Lab test routes
	labTests := r.Group("/lab-tests")
	labTests.Use(middleware.AuthMiddleware())
	{
		readers := middleware.RequireRoles(models.RoleAdmin, models.RoleDoctor, models.RoleNurse, models.RoleLabTech)
		labTests.GET("", readers, labTestHandler.ListLabTests)
		labTests.GET("/:id", readers, labTestHandler.GetLabTest)
		labTests.POST("", middleware.RequireRoles(models.RoleDoctor), labTestHandler.OrderLabTest)
		labTests.PATCH("/:id/result", middleware.RequireRoles(models.RoleLabTech), labTestHandler.EnterResult)
	}

	// Invoice routes
	invoices := r.Group("/invoices")
	invoices.Use(middleware.AuthMiddleware())
	invoices.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleReceptionist))
	{
		invoices.GET("", billingHandler.ListInvoices)
		invoices.GET("/:id", billingHandler.GetInvoice)
		invoices.POST("", billingHandler.CreateInvoice)
		invoices.PATCH("/:id/pay", billingHandler.PayInvoice)
	}

	// Admin routes
	admin := r.Group("")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/config", adminHandler.GetSettings)
		admin.PUT("/config", adminHandler.UpdateSettings)
		admin.GET("/audit-logs", adminHandler.ListAuditLogs)
	}

	// 11. Setup graceful shutdown
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := r.Run(":" + cfg.Server.Port); err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	// Cancel background sweeper context
	cancel()
	log.Info().Msg("server exited")
}
