package bootstrap

import (
	"context"
	"log"

	"tasknotes-be/internal/config"
	"tasknotes-be/internal/controller"
	"tasknotes-be/internal/pkg/logger"
	"tasknotes-be/internal/pkg/mailer"
	"tasknotes-be/internal/pkg/serverutils"
	"tasknotes-be/internal/pkg/tokenstore"
	"tasknotes-be/internal/repository/unitofwork"
	"tasknotes-be/internal/service"

	pktNats "tasknotes-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController controller.IAuthController
	UserController controller.IUserController
	NoteController controller.INoteController

	// AuthMiddleware guards protected routes.
	AuthMiddleware fiber.Handler

	// Background services, exposed for main.go to run.
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. In-process notification bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Infrastructure
	// NATS is optional; the note service treats a nil publisher as "bus off".
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// Redis backs token revocation. Without it, logout falls back to an
	// in-process store that only covers a single instance.
	var revocations tokenstore.RevocationStore
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Using in-memory revocation store", err)
		revocations = tokenstore.NewMemoryStore()
	} else {
		revocations = tokenstore.NewRedisStore(rdb)
	}

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Notes.NotificationTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Notes.NotificationTopic,
		uowFactory,
		emailService,
		sysLogger,
	)

	authService := service.NewAuthService(uowFactory, revocations, cfg.Auth.JwtSecret, sysLogger)
	userService := service.NewUserService(uowFactory)
	noteService := service.NewNoteService(
		uowFactory,
		publisherService,
		natsPub,
		cfg.Notes.RequireContent,
		sysLogger,
	)

	return &Container{
		AuthController:  controller.NewAuthController(authService),
		UserController:  controller.NewUserController(userService),
		NoteController:  controller.NewNoteController(noteService),
		AuthMiddleware:  serverutils.NewAuthMiddleware(cfg.Auth.JwtSecret, revocations),
		ConsumerService: consumerService,
		Logger:          sysLogger,
	}
}
