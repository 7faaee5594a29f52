package handler

import (
	"context"
	"regexp"

	"codecollab-be/internal/pkg/logger"
	"codecollab-be/internal/pkg/serverutils"
	internalWS "codecollab-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/websocket/v2"
)

var roomNamePattern = regexp.MustCompile(`^\w+$`)

// RoomDirectory answers whether a room code has been created.
type RoomDirectory interface {
	Exists(ctx context.Context, name string) (bool, error)
}

// IdentityResolver maps a bearer token (possibly empty) to a display name.
type IdentityResolver interface {
	DisplayName(ctx context.Context, token string) string
}

type CodeSocketHandler struct {
	hub      *internalWS.Hub
	executor internalWS.Submitter
	rooms    RoomDirectory
	identity IdentityResolver
	cfg      internalWS.SessionConfig
	logger   logger.ILogger
}

func NewCodeSocketHandler(
	hub *internalWS.Hub,
	executor internalWS.Submitter,
	rooms RoomDirectory,
	identity IdentityResolver,
	cfg internalWS.SessionConfig,
	log logger.ILogger,
) *CodeSocketHandler {
	return &CodeSocketHandler{
		hub:      hub,
		executor: executor,
		rooms:    rooms,
		identity: identity,
		cfg:      cfg,
		logger:   log,
	}
}

func (h *CodeSocketHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/ws/code/:room", h.ServeWs)
}

// ServeWs validates the room and caller, then upgrades the connection.
func (h *CodeSocketHandler) ServeWs(c *fiber.Ctx) error {
	roomID := utils.CopyString(c.Params("room"))
	if !roomNamePattern.MatchString(roomID) {
		return c.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, "Room not found"))
	}

	exists, err := h.rooms.Exists(c.UserContext(), roomID)
	if err != nil {
		return err
	}
	if !exists {
		return c.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, "Room not found"))
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	// Resolved once; the name does not change for the life of the session.
	displayName := h.identity.DisplayName(c.UserContext(), serverutils.BearerToken(c))

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("CodeSocketHandler", "Session started", map[string]interface{}{
			"room_id":  roomID,
			"username": displayName,
		})
		internalWS.ServeWs(h.hub, h.executor, conn, roomID, displayName, h.cfg, h.logger)
		h.logger.Info("CodeSocketHandler", "Session ended", map[string]interface{}{
			"room_id":  roomID,
			"username": displayName,
		})
	})(c)
}
