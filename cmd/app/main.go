package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/suchimauz/coaching-slot-picker/internal/adapters/in/http"
	"github.com/suchimauz/coaching-slot-picker/internal/adapters/in/rabbitmq"
	"github.com/suchimauz/coaching-slot-picker/internal/adapters/out/backend"
	"github.com/suchimauz/coaching-slot-picker/internal/adapters/out/cache"
	"github.com/suchimauz/coaching-slot-picker/internal/adapters/out/logger"
	"github.com/suchimauz/coaching-slot-picker/internal/config"
	"github.com/suchimauz/coaching-slot-picker/internal/core/ports/out"
	"github.com/suchimauz/coaching-slot-picker/internal/core/services/slot_picker_service"
)

func main() {
	// .env опционален, уже выставленные переменные окружения не перезаписываются
	_ = godotenv.Load()

	// Загрузка конфигурации
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Локально цветная консоль, в остальных окружениях JSON через zap
	var mainLogger out.LoggerPort
	if cfg.Log.Format == config.LogFormatJSON {
		zapLogger, err := logger.NewZapLogger(cfg)
		if err != nil {
			fmt.Printf("Failed to initialize logger: %v\n", err)
			os.Exit(1)
		}
		defer zapLogger.Sync()
		mainLogger = zapLogger
	} else {
		mainLogger = logger.NewConsoleLogger(cfg.App.Location)
	}
	log := mainLogger.WithModule("Main")

	log.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Location.String(),
		"rabbitmqEnabled": cfg.RabbitMq.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
		"cacheBackend":    cfg.Cache.Backend,
	})

	// Настройка Gin в зависимости от окружения
	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Инициализация адаптеров
	backendAdapter := backend.NewBackendAdapter(cfg, mainLogger.WithModule("BackendAdapter"))

	var cacheAdapter out.CachePort
	if cfg.Cache.Enabled {
		switch cfg.Cache.Backend {
		case config.CacheBackendRedis:
			redisAdapter, err := cache.NewRedisCacheAdapter(cfg, mainLogger.WithModule("CacheAdapter"))
			if err != nil {
				log.Error("app.cache.init_failed", out.LogFields{
					"backend": cfg.Cache.Backend,
					"error":   err.Error(),
				})
				os.Exit(1)
			}
			defer redisAdapter.Close()
			cacheAdapter = redisAdapter
		default:
			lruAdapter, err := cache.NewCacheAdapter(cfg, mainLogger.WithModule("CacheAdapter"))
			if err != nil {
				log.Error("app.cache.init_failed", out.LogFields{
					"backend": cfg.Cache.Backend,
					"error":   err.Error(),
				})
				os.Exit(1)
			}
			cacheAdapter = lruAdapter
		}
	}

	// Инициализация сервиса
	slotPickerService := slot_picker_service.NewSlotPickerService(
		backendAdapter,
		backendAdapter,
		backendAdapter,
		cacheAdapter,
		cfg,
		mainLogger,
	)

	// Настройка HTTP сервера
	router := gin.Default()
	controller := http.NewSlotPickerController(
		slotPickerService,
		cfg,
		mainLogger.WithModule("HttpController"),
	)
	controller.RegisterRoutes(router)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Настройка RabbitMQ слушателя только если он включен
	if cfg.RabbitMq.Enabled {
		listener, err := rabbitmq.NewCalendarCacheListener(
			slotPickerService,
			cfg,
			mainLogger.WithModule("RabbitMQListener"),
		)
		if err != nil {
			log.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		if err := listener.Start(ctx); err != nil {
			log.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				log.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			log.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	log.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})
}
