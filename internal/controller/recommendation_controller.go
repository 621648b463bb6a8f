package controller

import (
	"course-advisor-be/internal/dto"
	"course-advisor-be/internal/pkg/serverutils"
	"course-advisor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRecommendationController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
}

type recommendationController struct {
	service service.IRecommendationService
	auth    fiber.Handler
}

func NewRecommendationController(service service.IRecommendationService, auth fiber.Handler) IRecommendationController {
	return &recommendationController{service: service, auth: auth}
}

func (c *recommendationController) RegisterRoutes(r fiber.Router) {
	r.Post("/sessions/:id/ask", c.auth, c.Ask)
}

func (c *recommendationController) Ask(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.AskRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Ask(ctx.UserContext(), callerId(ctx), id, &req)
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(res)
}
