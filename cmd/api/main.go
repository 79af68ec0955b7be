// @title                       Hospital System API
// @version                     1.0
// @description                 Accounts, token issuance and appointment booking.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/sunitahospital/hospital-system/internal/api"
	"github.com/sunitahospital/hospital-system/internal/api/handler"
	"github.com/sunitahospital/hospital-system/internal/core/ports"
	"github.com/sunitahospital/hospital-system/internal/core/service"
	mongodb "github.com/sunitahospital/hospital-system/internal/infrastructure/db/mongo"
	redisdb "github.com/sunitahospital/hospital-system/internal/infrastructure/db/redis"
	"github.com/sunitahospital/hospital-system/internal/infrastructure/mail"
	"github.com/sunitahospital/hospital-system/internal/infrastructure/queue"
	"github.com/sunitahospital/hospital-system/internal/infrastructure/security"
	"github.com/sunitahospital/hospital-system/internal/infrastructure/seed"
	"github.com/sunitahospital/hospital-system/internal/pkg/config"
	"github.com/sunitahospital/hospital-system/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{Level: "error"})
		bootLog.Error().Err(err).Msg("failed to load configuration")
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "hospital-system",
	})
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET is empty, tokens are signed with an empty key")
	}

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Error().Err(err).Msg("failed to connect to mongo")
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to connect to redis")
		return err
	}
	defer rdb.Close()

	users := mongodb.NewUserRepository(db)
	patients := mongodb.NewPatientRepository(db)
	if err := mongodb.EnsureIndexes(ctx, users, patients); err != nil {
		log.Error().Err(err).Msg("failed to ensure indexes")
		return err
	}

	// --- Security ---
	hasher := security.NewBcryptHasher(0)
	verifier := security.NewCredentialVerifier(users)
	tokens := security.NewJWTIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TokenTTL)

	if cfg.SeedUsersFile != "" {
		n, err := seed.Users(ctx, cfg.SeedUsersFile, users, hasher, logger.Component("seed"))
		if err != nil {
			log.Error().Err(err).Str("file", cfg.SeedUsersFile).Msg("failed to seed users")
			return err
		}
		log.Info().Int("created", n).Msg("user seeding complete")
	}

	// --- Notifications ---
	composer, err := mail.NewComposer(cfg.Mail.Hospital)
	if err != nil {
		log.Error().Err(err).Msg("failed to build mail composer")
		return err
	}
	notifications := service.NewNotificationService(
		newMailer(cfg.Mail, logger.Component("mail")),
		redisdb.NewNotificationGuard(rdb, cfg.Mail.DedupTTL),
		logger.Component("notification"),
	)
	dispatcher := queue.NewDispatcher(cfg.Mail.Workers, notifications, logger.Component("dispatcher"))
	// Workers outlive the signal context so queued mail drains on shutdown.
	dispatcher.Start(context.WithoutCancel(ctx))

	// --- Services ---
	authLog := logger.Component("auth")
	router := api.NewRouter(api.Dependencies{
		Log:             log,
		AuthService:     service.NewAuthService(users, verifier, tokens, authLog),
		UserService:     service.NewUserService(users, hasher, composer, dispatcher, logger.Component("users")),
		PatientService:  service.NewPatientService(patients, composer, dispatcher, logger.Component("patients")),
		TokenParser:     tokens,
		PrincipalLoader: service.NewPrincipalLoader(users, authLog),
		HealthChecks: map[string]handler.HealthCheck{
			"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, readpref.Primary()) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
	})

	srvErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := router.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
		close(srvErr)
	}()

	select {
	case err := <-srvErr:
		if err != nil {
			log.Error().Err(err).Msg("http server failed")
			dispatcher.Close()
			return err
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := router.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}
	dispatcher.Close()
	log.Info().Msg("shutdown complete")
	return nil
}

func newMailer(cfg config.MailConfig, log zerolog.Logger) ports.Mailer {
	if cfg.Host == "" {
		return mail.NewLogMailer(log)
	}
	return mail.NewSMTPMailer(mail.SMTPConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		From:     cfg.From,
	})
}
