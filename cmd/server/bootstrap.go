package main

import (
	"github.com/brikvest/backend/internal/config"
	"github.com/brikvest/backend/internal/handlers"
	"github.com/brikvest/backend/internal/models"
	"github.com/brikvest/backend/internal/services"
	"github.com/brikvest/backend/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	cfg       *config.Config
	mailQueue services.MailQueue
	worker    *services.MailWorker
	sweeper   *services.SweeperService

	authHandler        *handlers.AuthHandler
	propertyHandler    *handlers.PropertyHandler
	reservationHandler *handlers.ReservationHandler
	bidHandler         *handlers.BidHandler
	groupHandler       *handlers.GroupHandler
	uploadHandler      *handlers.UploadHandler
	systemLogHandler   *handlers.SystemLogHandler
	healthHandler      *handlers.HealthHandler
}

// bootstrap initializes all application dependencies: database, session store,
// mail delivery, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	services.InitSystemLogger(models.GetDB())

	// Session store: Redis when enabled, in-memory otherwise
	services.InitSessionStore(cfg)

	// Mail delivery: confirmation notices go through Redis when enabled,
	// otherwise they are sent from an in-process goroutine.
	emailService := services.NewEmailService(&cfg.SMTP)
	sender := func(task *services.EmailTask) error {
		return emailService.Send(task.To, task.Subject, task.Body)
	}

	mailQueue := services.InitMailQueue(cfg)
	if inline, ok := mailQueue.(*services.InlineMailQueue); ok {
		inline.SetSender(sender)
	}

	var worker *services.MailWorker
	if cfg.Redis.Enabled && mailQueue.IsAsync() {
		worker = services.NewMailWorker(&cfg.Redis)
		if worker != nil {
			worker.SetSender(sender)
			if err := worker.Start(); err != nil {
				logger.Warn().Err(err).Msg("Failed to start mail worker")
			}
		}
	}

	// Group expiry, session pruning, log retention
	sweeper := services.NewSweeperService(models.GetDB())
	sweeper.Start()

	authHandler := handlers.NewAuthHandler(models.GetDB(), cfg)
	if err := authHandler.CreateAdminIfNotExists(); err != nil {
		logger.Warn().Err(err).Msg("Failed to create admin user")
	}

	return &appServices{
		cfg:                cfg,
		mailQueue:          mailQueue,
		worker:             worker,
		sweeper:            sweeper,
		authHandler:        authHandler,
		propertyHandler:    handlers.NewPropertyHandler(models.GetDB()),
		reservationHandler: handlers.NewReservationHandler(models.GetDB()),
		bidHandler:         handlers.NewBidHandler(models.GetDB()),
		groupHandler:       handlers.NewGroupHandler(models.GetDB()),
		uploadHandler:      handlers.NewUploadHandler(cfg),
		systemLogHandler:   handlers.NewSystemLogHandler(models.GetDB()),
		healthHandler:      handlers.NewHealthHandler(),
	}
}

// shutdown gracefully stops background services.
func (s *appServices) shutdown() {
	s.sweeper.Stop()
	if s.worker != nil {
		s.worker.Stop()
	}
	if s.mailQueue != nil {
		s.mailQueue.Close()
	}
	logger.Infof("All background services stopped")
}
