package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"elderguard-data/internal/config"
	"elderguard-data/internal/database"
	httpapi "elderguard-data/internal/http"
	applogger "elderguard-data/internal/logger"
	"elderguard-data/internal/mqtt"
	"elderguard-data/internal/repository"
	"elderguard-data/internal/service"
	"elderguard-data/internal/store"
)

func main() {
	cfg := config.Load()

	logger, err := applogger.NewLogger(cfg.Log.Level, cfg.Log.Format, "elderguard-data")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	kv := store.NewRedisKV(redisClient)

	// Repository 层
	usersRepo := repository.NewPostgresUsersRepository(db)
	metricsRepo := repository.NewPostgresHealthMetricsRepository(db)
	medsRepo := repository.NewPostgresMedicationsRepository(db)
	reportsRepo := repository.NewPostgresMedicalReportsRepository(db)
	logsRepo := repository.NewPostgresBehaviorLogsRepository(db)
	alertsRepo := repository.NewPostgresAlertEventsRepository(db)

	// 外部服务客户端（凭证缺失时自动进入模拟模式）
	whatsappClient := service.NewWhatsAppClient(&cfg.WhatsApp, logger)
	if whatsappClient.Simulated() {
		logger.Warn("WhatsApp credentials missing, dispatcher running in simulation mode")
	}
	inferenceClient := service.NewInferenceClient(&cfg.Inference, logger)
	if inferenceClient.Simulated() {
		logger.Warn("Hugging Face API key missing, inference running in simulation mode")
	}

	// Service 层
	authService := service.NewAuthService(usersRepo, cfg.JWT.Secret, cfg.JWT.ExpireMinutes, cfg.DemoLogin, logger)
	profileService := service.NewProfileService(usersRepo, logger)
	healthService := service.NewHealthService(metricsRepo, medsRepo, kv, logger)
	alertService := service.NewAlertService(usersRepo, metricsRepo, alertsRepo, whatsappClient, cfg.Alert.QueueSize, cfg.Alert.DefaultLocation, logger)
	reportService := service.NewMedicalReportService(reportsRepo, inferenceClient, cfg.Upload.Dir, logger)
	cognitiveService := service.NewCognitiveService(logsRepo, inferenceClient, logger)

	// HTTP 路由
	auth := httpapi.NewAuthMiddleware(authService, logger)
	router := httpapi.NewRouter(logger)
	router.RegisterAuthRoutes(httpapi.NewAuthHandler(authService, logger))
	router.RegisterProfileRoutes(httpapi.NewProfileHandler(profileService, logger), auth)
	router.RegisterHealthRoutes(httpapi.NewHealthHandler(healthService, logger), auth)
	router.RegisterSafetyRoutes(httpapi.NewSafetyHandler(alertService, logger), auth)
	router.RegisterMedicalRoutes(httpapi.NewMedicalHandler(reportService, logger), auth)
	router.RegisterCognitiveRoutes(httpapi.NewCognitiveHandler(cognitiveService, logger), auth)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 报警分发worker
	go func() {
		if err := alertService.StartDispatchWorker(ctx); err != nil {
			logger.Error("Dispatch worker exited with error", zap.Error(err))
		}
	}()

	// MQTT 跌倒监听（默认禁用）
	if cfg.MQTT.Enabled {
		mqttClient, err := mqtt.NewClient(&cfg.MQTT)
		if err != nil {
			logger.Error("Failed to connect MQTT broker, fall listener disabled", zap.Error(err))
		} else {
			defer mqttClient.Disconnect()
			listener := mqtt.NewFallListener(alertService, cfg.MQTT.Topic, logger)
			if err := listener.Start(mqttClient); err != nil {
				logger.Error("Failed to start fall listener", zap.Error(err))
			}
		}
	}

	srv := service.NewServer(cfg.HTTP.Addr, router, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", zap.Error(err))
		}
	case sig := <-sigCh:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("Failed to stop HTTP server gracefully", zap.Error(err))
	}
}
