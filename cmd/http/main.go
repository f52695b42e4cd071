package main

import (
	"context"
	"fmt"
	"lgu-portal-service/internal/app/config"
	"lgu-portal-service/internal/app/contracts"
	"lgu-portal-service/internal/app/delivery/http/controllers"
	"lgu-portal-service/internal/app/delivery/http/middlewares"
	"lgu-portal-service/internal/app/delivery/http/routers"
	"lgu-portal-service/internal/app/drivers/database"
	"lgu-portal-service/internal/app/drivers/logger"
	"lgu-portal-service/internal/app/drivers/messaging"
	minioDriver "lgu-portal-service/internal/app/drivers/storage"
	"lgu-portal-service/internal/app/services/core/catalog"
	"lgu-portal-service/internal/app/services/core/customservices"
	"lgu-portal-service/internal/app/services/core/payments"
	"lgu-portal-service/internal/app/services/core/settings"
	"lgu-portal-service/internal/app/services/core/transactions"
	"lgu-portal-service/internal/app/services/core/uploads"
	"lgu-portal-service/internal/app/services/shared/eventqueue"
	"lgu-portal-service/internal/app/services/shared/jwtmanager"
	"lgu-portal-service/internal/app/services/shared/locker"
	"lgu-portal-service/internal/app/services/shared/payment_gateway"
	"lgu-portal-service/internal/app/services/shared/redis"
	"lgu-portal-service/internal/app/services/shared/storage"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatal("Error loading location", zap.String("timezone", internalConfig.App.Timezone), zap.Error(err))
	}
	time.Local = location

	ctx := context.Background()

	mongoDB, err := database.NewMongoDB(ctx, driverConfig)
	if err != nil {
		log.Fatal("Error connecting to MongoDB", zap.Error(err))
	}
	log.Info("Successfully connected to MongoDB", zap.String("database", driverConfig.MongoDB.DbName))

	redisClient, err := database.NewRedisClient(ctx, driverConfig)
	if err != nil {
		log.Fatal("Error connecting to Redis", zap.Error(err))
	}
	log.Info("Successfully connected to Redis")

	minioClient, err := minioDriver.NewMinio(ctx, driverConfig, internalConfig.Minio.BucketName)
	if err != nil {
		log.Fatal("Error connecting to Minio", zap.Error(err))
	}
	log.Info("Successfully connected to Minio", zap.String("bucket", internalConfig.Minio.BucketName))

	// Transaction events are optional; the service keeps working without a broker.
	rabbitMQ, err := messaging.NewRabbitMQ(driverConfig)
	if err != nil {
		log.Warn("RabbitMQ unavailable, transaction events will not be published", zap.Error(err))
		rabbitMQ = nil
	}

	chiRouter := chi.NewRouter()
	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		Minio:          minioClient,
		Logger:         log,
		RabbitMQ:       rabbitMQ,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	if err := bootstrapingTheApp(ctx, bootstrap); err != nil {
		log.Fatal("Error bootstrapping the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:              listenAddress(internalConfig.App.Port),
		Handler:           chiRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server listening", zap.String("address", server.Addr))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error releasing resources: %v\n", err)
	}

	fmt.Println("Server exiting")
}

func bootstrapingTheApp(ctx context.Context, bootstrap *config.Bootstrap) error {
	log := bootstrap.Logger
	internalConfig := bootstrap.InternalConfig

	// Shared services
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, log)
	objectStorage := storage.NewMinioStorage(bootstrap.Minio)
	paymentGateway := payment_gateway.NewInvoiceGateway(internalConfig, log)

	// Without a JWT secret the admin API accepts only the superadmin API key.
	jwtManager, err := jwtmanager.NewJWTManager(internalConfig, log)
	if err != nil {
		log.Warn("Admin bearer tokens disabled", zap.Error(err))
		jwtManager = nil
	}

	var eventPublisher contracts.TransactionEventPublisher
	if bootstrap.RabbitMQ != nil {
		eventService, err := eventqueue.NewService(bootstrap.RabbitMQ, log, internalConfig.RabbitMQ.TransactionEventsQueue)
		if err != nil {
			return fmt.Errorf("transaction event queue: %w", err)
		}
		eventPublisher = eventService
	}

	// Repositories
	customServiceRepository := customservices.NewCustomServiceMongoRepository(bootstrap.MongoDB)
	formConfigRepository := customservices.NewFormConfigMongoRepository(bootstrap.MongoDB)
	settingsRepository := settings.NewSettingsMongoRepository(bootstrap.MongoDB)
	transactionRepository := transactions.NewTransactionMongoRepository(bootstrap.MongoDB)

	// Usecases
	customServiceUsecase := customservices.NewCustomServiceUsecase(customServiceRepository, formConfigRepository, log)
	settingsUsecase := settings.NewSettingsUsecase(settingsRepository, redisRepository, internalConfig, log)
	uploadUsecase := uploads.NewUploadUsecase(objectStorage, internalConfig, log)
	builtinCatalog, err := catalog.LoadBuiltinCatalog()
	if err != nil {
		return fmt.Errorf("built-in service catalog: %w", err)
	}
	log.Info("Built-in service catalog loaded", zap.Strings("service_ids", builtinCatalog.IDs()))
	serviceResolver := catalog.NewResolver(customservices.NewServiceLookup(customServiceUsecase), builtinCatalog, log)

	paymentUsecase := payments.NewPaymentUsecase(
		transactionRepository,
		serviceResolver,
		settingsUsecase,
		paymentGateway,
		eventPublisher,
		lockService,
		internalConfig,
		log,
	)

	// Background workers
	expiryWorker := payments.NewExpiryWorker(log, internalConfig, lockService, paymentUsecase)
	expiryWorker.Start(ctx)
	bootstrap.WorkerStop = expiryWorker.Stop

	// Delivery
	middlewares := middlewares.NewMiddlewares(log, internalConfig, jwtManager)
	serviceController := controllers.NewServiceController(log, customServiceUsecase, settingsUsecase)
	uploadController := controllers.NewUploadController(log, uploadUsecase)
	paymentController := controllers.NewPaymentController(log, paymentUsecase)
	adminController := controllers.NewAdminController(log, customServiceUsecase, settingsUsecase, paymentUsecase)

	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		middlewares,
		serviceController,
		uploadController,
		paymentController,
		adminController,
	)
	return nil
}

func listenAddress(port string) string {
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}
