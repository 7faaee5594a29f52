package controller

import (
	"errors"

	"codecollab-be/internal/dto"
	"codecollab-be/internal/pkg/serverutils"
	"codecollab-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

type IRoomController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Create(ctx *fiber.Ctx) error
	Join(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type roomController struct {
	service service.IRoomService
}

func NewRoomController(service service.IRoomService) IRoomController {
	return &roomController{service: service}
}

func (c *roomController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/rooms/v1")
	h.Use(auth)
	h.Post("", c.Create)
	h.Post("join", c.Join)
	h.Get(":name", c.Show)
}

func (c *roomController) Create(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateRoomRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Room created", res))
}

func (c *roomController) Join(ctx *fiber.Ctx) error {
	var req dto.JoinRoomRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Join(ctx.UserContext(), &req)
	if err != nil {
		return roomError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Room found", res))
}

func (c *roomController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.Show(ctx.UserContext(), utils.CopyString(ctx.Params("name")))
	if err != nil {
		return roomError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show room", res))
}

func roomError(err error) error {
	if errors.Is(err, service.ErrRoomNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Room not found")
	}
	return err
}
