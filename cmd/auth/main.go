package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pradiptha/lokapasar/internal/pkg/config"
	"github.com/pradiptha/lokapasar/internal/pkg/database"
	"github.com/pradiptha/lokapasar/internal/pkg/health"
	"github.com/pradiptha/lokapasar/internal/pkg/logger"
	"github.com/pradiptha/lokapasar/internal/pkg/middleware"
	natspkg "github.com/pradiptha/lokapasar/internal/pkg/nats"
	nrpkg "github.com/pradiptha/lokapasar/internal/pkg/newrelic"
	"github.com/pradiptha/lokapasar/internal/pkg/server"
	"github.com/pradiptha/lokapasar/internal/utils"
	"github.com/pradiptha/lokapasar/services/auth/gateway"
	"github.com/pradiptha/lokapasar/services/auth/handler"
	httpHandler "github.com/pradiptha/lokapasar/services/auth/handler/http"
	"github.com/pradiptha/lokapasar/services/auth/repository"
	"github.com/pradiptha/lokapasar/services/auth/usecase"
)

const appName = "auth-service"

var errNATSDisconnected = errors.New("nats connection lost")

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/auth.env"
	}
	configs := config.InitConfig(configPath)

	nrApp := nrpkg.InitNewRelic(configs)
	if nrApp != nil {
		if err := nrApp.WaitForConnection(10 * time.Second); err != nil {
			log.Printf("Warning: New Relic connection timeout: %v", err)
		}
	}

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
	)

	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	defer postgresClient.Close()

	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}
	defer redisClient.Close()

	natsClient, err := natspkg.NewClient(configs.NATS.URL)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", logger.Err(err))
	}
	defer natsClient.Close()

	authRepo := repository.NewAuthRepo(configs, postgresClient.GetDB(), redisClient)
	authGW := gateway.NewAuthGateway(configs, natsClient)
	authUC := usecase.NewAuthUC(configs, authRepo, authRepo, authGW)
	authHandler := httpHandler.NewAuthHandler(authUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = utils.NewValidator()

	e.Use(middleware.RequestIDMiddleware())
	if nrApp != nil {
		e.Use(middleware.NewRelicMiddleware(nrApp))
	}
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	healthHandler := health.NewHandler(appName, map[string]health.CheckFunc{
		"postgres": func(ctx context.Context) error {
			return postgresClient.GetDB().PingContext(ctx)
		},
		"redis": func(ctx context.Context) error {
			return redisClient.GetClient().Ping(ctx).Err()
		},
		"nats": func(ctx context.Context) error {
			if !natsClient.GetConn().IsConnected() {
				return errNATSDisconnected
			}
			return nil
		},
	})
	healthHandler.RegisterHealthEndpoints(e)

	handler.NewHandler(authHandler, redisClient, configs).RegisterRoutes(e)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port,
		time.Duration(configs.Server.ShutdownTimeout)*time.Second)
	if err := srv.Start(); err != nil {
		zapLogger.Fatal("Server exited with error", logger.Err(err))
	}
}
