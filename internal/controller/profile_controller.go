package controller

import (
	"errors"

	"codecollab-be/internal/dto"
	"codecollab-be/internal/pkg/serverutils"
	"codecollab-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IProfileController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Show(ctx *fiber.Ctx) error
	UpdateInterests(ctx *fiber.Ctx) error
	RecommendedRooms(ctx *fiber.Ctx) error
}

type profileController struct {
	profiles        service.IProfileService
	recommendations service.IRecommendationService
}

func NewProfileController(profiles service.IProfileService, recommendations service.IRecommendationService) IProfileController {
	return &profileController{
		profiles:        profiles,
		recommendations: recommendations,
	}
}

func (c *profileController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/profile/v1")
	h.Use(auth)
	h.Get("", c.Show)
	h.Put("interests", c.UpdateInterests)
	h.Get("recommended-rooms", c.RecommendedRooms)
}

func (c *profileController) Show(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}

	res, err := c.profiles.Get(ctx.UserContext(), userId)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Profile not found")
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get profile", res))
}

func (c *profileController) UpdateInterests(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateInterestsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.profiles.UpdateInterests(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Interests updated", res))
}

func (c *profileController) RecommendedRooms(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}

	res, err := c.recommendations.RecommendedRooms(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get recommended rooms", res))
}

func currentUser(ctx *fiber.Ctx) (uuid.UUID, error) {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid user id")
	}
	return userId, nil
}
