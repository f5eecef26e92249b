package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	logger_adapter "listings-service/internal/adapters/logger"
	postgres_adapter "listings-service/internal/adapters/postgres"
	rabbitmq_adapter "listings-service/internal/adapters/rabbitmq"
	"listings-service/internal/adapters/rest"
	uploads_adapter "listings-service/internal/adapters/uploads"
	"listings-service/internal/configs"
	"listings-service/internal/constants"
	"listings-service/internal/core/port"
	"listings-service/internal/core/usecase"

	fluentlogger "listings-service/pkg/fluent_logger"
	"listings-service/pkg/postgres"
	"listings-service/pkg/rabbitmq/rabbitmq_common"
	"listings-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App – структура приложения
type App struct {
	config       *configs.AppConfig
	dbPool       *pgxpool.Pool
	apiServer    *rest.Server
	fluentClient *fluent.Fluent
	logger       port.LoggerPort

	eventsProducer *rabbitmq_producer.Publisher
}

// NewApp создает новый экземпляр приложения.
// Это "Composition Root", где все зависимости создаются и связываются.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false, // текстовый формат
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	// Добавляем Fluent Bit логгер, если он включен в конфигурации
	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName, // Используем имя приложения как префикс
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	// Создаем наш композитный логгер
	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. СОЗДАЕМ БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ С КОНТЕКСТОМ ---
	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- 3. ИНИЦИАЛИЗАЦИЯ ИСХОДЯЩИХ АДАПТЕРОВ ---
	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: appConfig.Database.URL})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

	apartmentStorageAdapter, err := postgres_adapter.NewApartmentStorageAdapter(dbPool)
	if err != nil {
		appLogger.Error("Failed to create postgres storage adapter", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create postgres storage adapter: %w", err)
	}

	diskStorageAdapter, err := uploads_adapter.NewDiskStorageAdapter(appConfig.Upload.UploadPath)
	if err != nil {
		appLogger.Error("Failed to create disk storage adapter", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create disk storage adapter: %w", err)
	}
	appLogger.Info("Storage adapters initialized.", port.Fields{"uploads_dir": diskStorageAdapter.Dir()})

	// Публикация событий опциональна: при выключенном RabbitMQ сервис
	// продолжает работать, просто никого не уведомляя о новых квартирах.
	var eventsProducer *rabbitmq_producer.Publisher
	var apartmentEvents port.ApartmentEventsPort
	if appConfig.RabbitMQ.Enabled {
		connManagerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"})
		connManager, err := rabbitmq_common.GetManager(appConfig.RabbitMQ.URL, rabbitmq_adapter.NewPkgLoggerBridge(connManagerLogger))
		if err != nil {
			appLogger.Error("Failed to create connection manager", err, nil)
			dbPool.Close()
			return nil, fmt.Errorf("failed to create connection manager: %w", err)
		}
		appLogger.Info("RabbitMQ Connection Manager initialized.", nil)

		producerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})
		producerCfg := rabbitmq_producer.PublisherConfig{
			Config:                   rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
			ExchangeName:             constants.EventsExchange,
			ExchangeType:             "topic",
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,

			Logger: rabbitmq_adapter.NewPkgLoggerBridge(producerLogger),
		}
		eventsProducer, err = rabbitmq_producer.NewPublisher(producerCfg, connManager)
		if err != nil {
			appLogger.Error("Failed to create event producer", err, nil)
			dbPool.Close()
			return nil, fmt.Errorf("failed to create event producer: %w", err)
		}

		apartmentEvents, err = rabbitmq_adapter.NewApartmentEventsAdapter(eventsProducer, constants.RoutingKeyApartmentCreated)
		if err != nil {
			appLogger.Error("Failed to create apartment events adapter", err, nil)
			dbPool.Close()
			return nil, err
		}
		appLogger.Info("RabbitMQ Event Producer initialized.", nil)
	} else {
		appLogger.Info("RabbitMQ is disabled, apartment events will not be published.", nil)
	}

	appLogger.Info("All outgoing adapters initialized.", nil)

	// --- 4. ИНИЦИАЛИЗАЦИЯ USE CASES (ядра бизнес-логики) ---
	uploadPolicy := usecase.UploadPolicy{
		MaxFileSize:    appConfig.Upload.MaxFileSize,
		MaxFiles:       appConfig.Upload.MaxFilesPerEntity,
		AllowedFormats: appConfig.Upload.AllowedFormats,
	}
	createApartmentUseCase := usecase.NewCreateApartmentUseCase(apartmentStorageAdapter, diskStorageAdapter, apartmentEvents, uploadPolicy)
	findApartmentsUseCase := usecase.NewFindApartmentsUseCase(apartmentStorageAdapter)
	getApartmentByIDUseCase := usecase.NewGetApartmentByIDUseCase(apartmentStorageAdapter)
	appLogger.Info("All use cases initialized.", nil)

	// --- 5. REST API Server ---
	// Лимит парсинга multipart-формы: вся пачка файлов целиком
	maxUploadMemory := appConfig.Upload.MaxFileSize * int64(appConfig.Upload.MaxFilesPerEntity)
	apartmentsHandlers := rest.NewApartmentsHandler(
		createApartmentUseCase,
		findApartmentsUseCase,
		getApartmentByIDUseCase,
		appConfig.Pagination,
		maxUploadMemory,
	)
	apiServer := rest.NewServer(appConfig.Rest, apartmentsHandlers, diskStorageAdapter.Dir(), baseLogger)
	appLogger.Info("REST API server configured.", nil)

	// --- 6. Собираем приложение ---
	application := &App{
		config:         appConfig,
		dbPool:         dbPool,
		apiServer:      apiServer,
		eventsProducer: eventsProducer,

		fluentClient: fluentClient,
		logger:       appLogger,
	}

	return application, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	// Создаем единый контекст для всего приложения для управления graceful shutdown
	appCtx, cancelApp := context.WithCancel(context.Background())

	// Используем WaitGroup для ожидания завершения всех фоновых задач
	var wg sync.WaitGroup

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		a.logger.Info("Waiting for background processes to finish...", nil)
		wg.Wait()
		a.logger.Info("All background processes finished.", nil)

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		if a.eventsProducer != nil {
			if err := a.eventsProducer.Close(); err != nil {
				a.logger.Error("Error closing event producer", err, nil)
			}
		}

		if a.dbPool != nil {
			a.dbPool.Close()
			a.logger.Info("PostgreSQL pool closed.", nil)
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// Логируем в stdout, так как fluent может быть уже недоступен
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	errorsCh := make(chan error, 1)

	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	// Ожидание сигнала на завершение или ошибки от одного из компонентов
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
	}

	// Инициируем graceful shutdown, отменяя главный контекст
	cancelApp()

	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		// Возвращаем безопасное значение по умолчанию и логируем предупреждение
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
