package bootstrap

import (
	"context"
	"log"

	"codecollab-be/internal/config"
	"codecollab-be/internal/controller"
	"codecollab-be/internal/handler"
	"codecollab-be/internal/pkg/logger"
	"codecollab-be/internal/pkg/serverutils"
	"codecollab-be/internal/repository/memory"
	"codecollab-be/internal/repository/unitofwork"
	"codecollab-be/internal/service"
	"codecollab-be/internal/websocket"
	pktNats "codecollab-be/pkg/nats"
	"codecollab-be/pkg/sandbox"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	RoomController    controller.IRoomController
	ProfileController controller.IProfileController
	AuthMiddleware    fiber.Handler

	// Background Services (Exposed for main.go to run)
	ActivityConsumer service.IActivityConsumer

	// WebSockets
	CodeSocketHandler *handler.CodeSocketHandler
	WebSocketHub      *websocket.Hub
	ExecutionPool     *sandbox.Pool

	Logger  logger.ILogger
	closers []func()
}

// Close releases background resources in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	roomLogger := logger.NewIsolatedLogger(cfg.App.RoomLogFilePath)

	c := &Container{Logger: sysLogger}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { pubSub.Close() })

	// 3. Infrastructure
	var exporter service.EventExporter
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			exporter = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	var relay websocket.Relay
	if cfg.App.RedisURL != "" {
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
		relay = websocket.NewRedisRelay(rdb, cfg.App.InstanceID, roomLogger)
		c.closers = append(c.closers, func() { rdb.Close() })
	}

	// 4. Execution
	box := sandbox.New(
		sandbox.WithTimeout(cfg.Sandbox.Timeout),
		sandbox.WithTempDir(cfg.Sandbox.TempDir),
		sandbox.WithToolchain(sandbox.Toolchain{
			Python: cfg.Sandbox.PythonBin,
			Node:   cfg.Sandbox.NodeBin,
			Javac:  cfg.Sandbox.JavacBin,
			Cxx:    cfg.Sandbox.CxxBin,
		}),
	)
	pool := sandbox.NewPool(box, cfg.Sandbox.Workers, cfg.Sandbox.QueueDepth)
	c.ExecutionPool = pool
	c.closers = append(c.closers, pool.Close)

	// 5. Services
	activityPublisher := service.NewActivityPublisher(pubSub, cfg.App.ActivityTopic, roomLogger)
	c.ActivityConsumer = service.NewActivityConsumer(pubSub, cfg.App.ActivityTopic, exporter, roomLogger)

	roomService := service.NewRoomService(uowFactory)
	profileService := service.NewProfileService(uowFactory)
	recommendationService := service.NewRecommendationService(uowFactory)
	identityService := service.NewIdentityService(
		uowFactory,
		memory.NewDisplayNameCache(cfg.Auth.DisplayNameTTL),
		cfg.Auth.JwtSecret,
		cfg.Auth.AnonymousDisplay,
		sysLogger,
	)

	// 6. WebSocket Hub
	hubOpts := []websocket.HubOption{
		websocket.WithEventSink(activityPublisher),
		websocket.WithStamper(websocket.NewStamper(nil, cfg.Room.Location())),
		websocket.WithDispatchQueue(cfg.Room.DispatchQueue),
	}
	if relay != nil {
		hubOpts = append(hubOpts, websocket.WithRelay(relay))
	}
	wsHub := websocket.NewHub(roomLogger, hubOpts...)
	hubCtx, stopHub := context.WithCancel(context.Background())
	go wsHub.Run(hubCtx)
	c.WebSocketHub = wsHub
	c.closers = append(c.closers, func() {
		stopHub()
		wsHub.Close()
	})

	c.CodeSocketHandler = handler.NewCodeSocketHandler(
		wsHub,
		pool,
		roomService,
		identityService,
		websocket.SessionConfig{
			SendBuffer:     cfg.Room.SendBuffer,
			MaxMessageSize: cfg.Room.MaxMessageSize,
		},
		roomLogger,
	)

	// 7. Controllers
	c.RoomController = controller.NewRoomController(roomService)
	c.ProfileController = controller.NewProfileController(profileService, recommendationService)
	c.AuthMiddleware = serverutils.JwtMiddleware(cfg.Auth.JwtSecret)

	return c
}
