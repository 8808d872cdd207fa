package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lerarestechnologies-gif/rafting/config"
	repository "github.com/lerarestechnologies-gif/rafting/internal/database/postgres"
	"github.com/lerarestechnologies-gif/rafting/internal/service"
	"github.com/lerarestechnologies-gif/rafting/internal/transport"
	"github.com/lerarestechnologies-gif/rafting/internal/worker"
	"github.com/lerarestechnologies-gif/rafting/pkg/postgres"
	"github.com/lerarestechnologies-gif/rafting/pkg/queue"
	redispkg "github.com/lerarestechnologies-gif/rafting/pkg/redis"
	"github.com/lerarestechnologies-gif/rafting/pkg/telegram"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize database
	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	settingsRepo := repository.NewSettingsRepository(db)
	raftRepo := repository.NewRaftRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	// Initialize Telegram bot
	var telegramBot *telegram.Bot
	if cfg.Telegram.Enabled && cfg.Telegram.BotToken != "" {
		telegramBot = telegram.NewBot(cfg.Telegram.BotToken)
		logrus.Info("Telegram bot initialized")
	} else {
		logrus.Warn("Telegram bot not configured, admin notifications disabled")
	}

	var redisQueue *queue.RedisQueue
	var taskPublisher service.TaskPublisher

	if cfg.Redis.Enabled {
		redisClient, err := redispkg.NewRedisClient(&cfg.Redis)
		if err != nil {
			logrus.Errorf("Failed to connect to Redis: %v. Continuing without queue...", err)
		} else {
			redisQueue, err = queue.NewRedisQueue(redisClient, queue.DefaultRedisQueueConfig(), nil, nil)
			if err != nil {
				logrus.Errorf("Failed to initialize Redis queue: %v. Continuing without queue...", err)
				redisQueue = nil
			} else {
				taskPublisher = service.NewQueueAdapter(redisQueue)
			}
		}
	}

	// Initialize services
	settingsService := service.NewSettingsService(settingsRepo, cfg.Booking.SettingsCacheTTL)
	bookingService := service.NewBookingService(
		bookingRepo,
		raftRepo,
		settingsService,
		taskPublisher,
		telegramBot,
		cfg.Telegram.AdminChatID,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start queue consumer and pending follow-up worker
	if redisQueue != nil {
		// a nil *telegram.Bot must not end up as a non-nil interface
		var notifier queue.TelegramBot
		if telegramBot != nil {
			notifier = telegramBot
		}
		taskHandler := queue.NewTaskHandler(bookingService, notifier, cfg.Telegram.AdminChatID)
		if err := redisQueue.Subscribe(ctx, taskHandler.HandleTask); err != nil {
			logrus.Errorf("Queue subscriber error: %v", err)
		} else {
			logrus.Info("Queue subscriber started")
		}

		pendingWorker := worker.NewPendingBookingWorker(bookingService, taskPublisher, cfg.Worker.PendingCheckInterval)
		go pendingWorker.Start(ctx)
		logrus.Info("Pending booking worker started")
	}

	// Initialize handlers
	bookingHandler := transport.NewBookingHandler(bookingService)
	settingsHandler := transport.NewSettingsHandler(settingsService)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(db, bookingHandler, settingsHandler)); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if redisQueue != nil {
		if err := redisQueue.Close(); err != nil {
			logrus.Errorf("error occured on queue shutdown: %s", err.Error())
		}
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
