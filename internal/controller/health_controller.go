package controller

import (
	"course-advisor-be/internal/pkg/serverutils"
	"course-advisor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Check(ctx *fiber.Ctx) error
}

type healthController struct {
	service service.IHealthService
}

func NewHealthController(service service.IHealthService) IHealthController {
	return &healthController{service: service}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Check)
}

func (c *healthController) Check(ctx *fiber.Ctx) error {
	res, err := c.service.Check(ctx.UserContext())
	if err != nil {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(serverutils.BaseResponse[any]{
			Success: false,
			Code:    fiber.StatusServiceUnavailable,
			Message: "database unreachable",
			Data:    res,
		})
	}
	return ctx.JSON(res)
}
