package main

import (
	"context"
	"net/http"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"

	"github.com/duozero/intake-service/internal/config"
	"github.com/duozero/intake-service/internal/controllers"
	"github.com/duozero/intake-service/internal/repositories"
	"github.com/duozero/intake-service/internal/routes"
	"github.com/duozero/intake-service/internal/services"
	"github.com/duozero/intake-service/internal/utils"
)

func main() {
	utils.InitLogger("intake-service")
	cfg := config.LoadConfig()

	ctx := context.Background()
	opts := cfg.GoogleClientOptions(ctx)

	sheetsSvc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		utils.Logger.Fatal("Failed to create Sheets client:", err)
	}

	store := repositories.NewSheetsRowStore(sheetsSvc, cfg.SpreadsheetID)
	subRepo := repositories.NewSubmissionRepository(store)
	configRepo := repositories.NewConfigRepository(store)

	var mailer services.Mailer
	if cfg.SendGridAPIKey != "" {
		mailer = services.NewSendGridMailer(cfg.SendGridAPIKey, cfg.SendGridFromName, cfg.SendGridFromEmail)
	} else {
		utils.Logger.Warn("SENDGRID_API_KEY not set, email notifications disabled")
	}

	var attachmentService *services.AttachmentService
	if cfg.DriveUploadFolderID != "" {
		driveSvc, err := drive.NewService(ctx, opts...)
		if err != nil {
			utils.Logger.Fatal("Failed to create Drive client:", err)
		}
		attachmentService = services.NewAttachmentService(driveSvc, cfg.DriveUploadFolderID)
	} else {
		utils.Logger.Warn("DRIVE_UPLOAD_FOLDER_ID not set, attachment uploads disabled")
	}

	submissionService := services.NewSubmissionService(subRepo, mailer)
	planEditService := services.NewPlanEditService(subRepo, cfg.LockRule)
	configService := services.NewConfigService(configRepo)
	reminderService := services.NewReminderService(subRepo, mailer)

	healthController := controllers.NewHealthController(store)
	configController := controllers.NewConfigController(configService)
	submissionsController := controllers.NewSubmissionsController(submissionService, attachmentService)
	plansController := controllers.NewPlansController(subRepo, planEditService)

	// Migrate the sheet schema up front so the first request does not pay
	// for it.
	if _, err := subRepo.EnsureHeaders(ctx); err != nil {
		utils.Logger.Fatal("Failed to ensure Submissions headers:", err)
	}

	router := mux.NewRouter()

	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.Config, configController.OptionsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Submit, submissionsController.UploadSubmitHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.FirstSubmitSimple, submissionsController.FirstSubmitSimpleHandler).Methods(http.MethodPost)

	router.HandleFunc(routes.DuoConfig, configController.OptionsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.DuoPlans, plansController.ListPlansHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.DuoSubmit, submissionsController.SubmitHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.DuoUpdate, plansController.UpdatePlanHandler).Methods(http.MethodPost)

	c := cron.New()
	_, cronErr := c.AddFunc("5 0 * * *", func() {
		reminderService.RunDailyScan(context.Background())
	})
	if cronErr != nil {
		utils.Logger.WithError(cronErr).Fatal("Failed to schedule daily reminder cron")
	}
	c.Start()

	allowedOrigins := cfg.CORSAllowedOrigins
	if cfg.AppUrl != "" {
		allowedOrigins = append(allowedOrigins, cfg.AppUrl)
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	co := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("intake-service failed to start:", err)
	}
}
