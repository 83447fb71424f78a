package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/escriturashoy/escrituras-api/internal/config"
	"github.com/escriturashoy/escrituras-api/internal/infra/database"
	"github.com/escriturashoy/escrituras-api/internal/infra/http/router"
	"github.com/escriturashoy/escrituras-api/internal/infra/logger"
	"github.com/escriturashoy/escrituras-api/internal/infra/mail"
	"github.com/escriturashoy/escrituras-api/internal/infra/queue"
	"github.com/escriturashoy/escrituras-api/internal/usecase"
)

const (
	startupTimeout  = 15 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}

	base, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.WithError(err).Fatal("build logger")
	}
	log := base.WithFields(logrus.Fields{
		"service":     "escrituras-api",
		"version":     cfg.Version,
		"environment": cfg.Environment,
	})

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	db, err := database.NewDBConnection(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		cancel()
		log.WithError(err).Fatal("connect database")
	}
	defer db.Close()

	if cfg.BootstrapSchema {
		if err := database.EnsureSchema(ctx, db); err != nil {
			cancel()
			log.WithError(err).Fatal("bootstrap schema")
		}
		log.Info("schema bootstrapped")
	}
	cancel()

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)
	expedienteRepo := database.NewExpedienteRepository(db)

	// 2. Notifiers, both optional
	var notifiers []usecase.LeadNotifier
	if cfg.AMQPURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.AMQPURL)
		if err != nil {
			log.WithError(err).Warn("rabbitmq unavailable, lead events disabled")
		} else {
			defer rabbitMQ.Close()
			notifiers = append(notifiers, queue.NewLeadEventProducer(rabbitMQ.Ch))
		}
	}
	if cfg.Mail.Enabled() {
		notifiers = append(notifiers, mail.NewEmailSender(
			cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password,
			cfg.Mail.From, cfg.Mail.NotifyTo,
		))
	}

	// 3. Use cases
	createLeadUC := usecase.NewCreateLeadUseCase(leadRepo, log, notifiers...)

	// 4. Router
	handler := router.New(router.Dependencies{
		Log:            log,
		CreateLead:     createLeadUC,
		Leads:          leadRepo,
		Expedientes:    expedienteRepo,
		Version:        cfg.Version,
		Environment:    cfg.Environment,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	log.WithField("signal", sig.String()).Info("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	if err := createLeadUC.Wait(shutdownCtx); err != nil {
		log.WithError(err).Warn("lead notifications still pending at exit")
	}
}
