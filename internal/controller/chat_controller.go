package controller

import (
	"errors"
	"strconv"

	"course-advisor-be/internal/dto"
	"course-advisor-be/internal/pkg/serverutils"
	"course-advisor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	ListSessions(ctx *fiber.Ctx) error
	CreateSession(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	ListMessages(ctx *fiber.Ctx) error
	AppendMessage(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
	auth    fiber.Handler
}

func NewChatController(service service.IChatService, auth fiber.Handler) IChatController {
	return &chatController{service: service, auth: auth}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/sessions")
	h.Get("", c.auth, c.ListSessions)
	h.Post("", c.auth, c.CreateSession)
	h.Delete("/:id", c.auth, c.DeleteSession)
	h.Get("/:id/messages", c.auth, c.ListMessages)
	h.Post("/:id/messages", c.auth, c.AppendMessage)
}

func (c *chatController) ListSessions(ctx *fiber.Ctx) error {
	req := dto.ListSessionsRequest{User: ctx.Query("user")}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	if err := serverutils.EnsureSameUser(ctx, req.User); err != nil {
		return err
	}

	res, err := c.service.ListSessions(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.EnsureSameUser(ctx, req.User); err != nil {
		return err
	}

	res, err := c.service.CreateSession(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *chatController) DeleteSession(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.DeleteSession(ctx.UserContext(), callerId(ctx), id)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *chatController) ListMessages(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListMessages(ctx.UserContext(), callerId(ctx), id)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *chatController) AppendMessage(ctx *fiber.Ctx) error {
	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.AppendMessageRequest
	if err := serverutils.ParseAndValidate(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.AppendMessage(ctx.UserContext(), callerId(ctx), id, &req)
	if err != nil {
		return mapServiceError(err)
	}

	return ctx.JSON(res)
}

func sessionIdParam(ctx *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "session id must be an integer")
	}
	return id, nil
}

// callerId is the authenticated user, or "" when authentication is disabled.
func callerId(ctx *fiber.Ctx) string {
	userId, _ := serverutils.AuthenticatedUser(ctx)
	return userId
}

func mapServiceError(err error) error {
	if errors.Is(err, service.ErrSessionNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return err
}
