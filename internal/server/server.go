package server

import (
	"log"
	"net"

	"codecollab-be/internal/bootstrap"
	"codecollab-be/internal/config"
	"codecollab-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

type HealthResponse struct {
	Rooms    int `json:"rooms"`
	Sessions int `json:"sessions"`
	Pending  int `json:"pending_executions"`
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 1 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

// Serve runs the app on an existing listener.
func (s *Server) Serve(ln net.Listener) error {
	return s.app.Listener(ln)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	app.Get("/healthz", func(ctx *fiber.Ctx) error {
		rooms, sessions := c.WebSocketHub.Stats()
		return ctx.JSON(serverutils.SuccessResponse("ok", HealthResponse{
			Rooms:    rooms,
			Sessions: sessions,
			Pending:  c.ExecutionPool.Pending(),
		}))
	})

	api := app.Group("/api")
	c.RoomController.RegisterRoutes(api, c.AuthMiddleware)
	c.ProfileController.RegisterRoutes(api, c.AuthMiddleware)

	c.CodeSocketHandler.RegisterRoutes(app)
}
