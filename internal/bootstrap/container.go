package bootstrap

import (
	"context"
	"log"

	"ideaboard-be/internal/config"
	"ideaboard-be/internal/controller"
	"ideaboard-be/internal/handler"
	"ideaboard-be/internal/pkg/logger"
	"ideaboard-be/internal/pkg/mailer"
	"ideaboard-be/internal/repository/unitofwork"
	"ideaboard-be/internal/service"
	"ideaboard-be/internal/websocket"

	pktNats "ideaboard-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const positionFlushTopic = "idea_position_flush"

type Container struct {
	// Controllers
	OAuthController controller.IOAuthController
	RoomController  controller.IRoomController
	IdeaController  controller.IIdeaController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	SweeperService  service.ISweeperService

	// WebSockets
	RoomSocketHandler *handler.RoomSocketHandler
	WebSocketHub      *websocket.Hub

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/room.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(positionFlushTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		positionFlushTopic,
		uowFactory,
	)

	oauthService := service.NewOAuthService(uowFactory)
	roomService := service.NewRoomService(uowFactory, natsPub, emailService, wsHub, cfg.App.ClientURL)
	ideaService := service.NewIdeaService(uowFactory, publisherService, wsHub)
	presenceService := service.NewPresenceService(rdb, wsHub)
	sweeperService := service.NewSweeperService(uowFactory, natsSub, presenceService)

	// Start Sweeper (Worker)
	if natsSub != nil {
		if err := sweeperService.Start(); err != nil {
			log.Printf("[WARN] Failed to start room sweeper: %v", err)
		}
	}

	// Handler
	roomSocketHandler := handler.NewRoomSocketHandler(
		oauthService,
		roomService,
		ideaService,
		presenceService,
		wsHub,
		wsLogger,
	)

	// 4. Controllers
	return &Container{
		RoomSocketHandler: roomSocketHandler,
		WebSocketHub:      wsHub,
		OAuthController:   controller.NewOAuthController(oauthService),
		RoomController:    controller.NewRoomController(roomService, ideaService),
		IdeaController:    controller.NewIdeaController(ideaService, roomService),

		ConsumerService: consumerService,
		SweeperService:  sweeperService,

		Logger: sysLogger,
	}
}
