package controller

import (
	"strconv"

	"fluentko-be/internal/dto"
	"fluentko-be/internal/pkg/apperror"
	"fluentko-be/internal/pkg/serverutils"
	"fluentko-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	SetBackground(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	AppendMessage(ctx *fiber.Ctx) error
	SendTurn(ctx *fiber.Ctx) error
}

type chatController struct {
	sessionService service.IChatSessionService
	turnService    service.IChatTurnService
}

func NewChatController(sessionService service.IChatSessionService, turnService service.IChatTurnService) IChatController {
	return &chatController{
		sessionService: sessionService,
		turnService:    turnService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
	h.Put(":id/background", c.SetBackground)
	h.Post(":id/messages", c.AppendMessage)
	h.Post(":id/turn", c.SendTurn)
}

// chatIdParam treats a malformed id like an unknown chat.
func chatIdParam(ctx *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.NewNotFoundError("chat")
	}
	return uint(id), nil
}

func (c *chatController) GetAll(ctx *fiber.Ctx) error {
	studentId, err := serverutils.StudentId(ctx)
	if err != nil {
		return err
	}

	res, err := c.sessionService.List(ctx.UserContext(), studentId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all chats", res))
}

func (c *chatController) Create(ctx *fiber.Ctx) error {
	studentId, err := serverutils.StudentId(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidationError("", "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.Create(ctx.UserContext(), studentId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create chat", res))
}

func (c *chatController) Show(ctx *fiber.Ctx) error {
	studentId, err := serverutils.StudentId(ctx)
	if err != nil {
		return err
	}
	chatId, err := chatIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.sessionService.Show(ctx.UserContext(), studentId, chatId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show chat", res))
}

func (c *chatController) SetBackground(ctx *fiber.Ctx) error {
	studentId, err := serverutils.StudentId(ctx)
	if err != nil {
		return err
	}
	chatId, err := chatIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.SetBackgroundRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidationError("", "Invalid request body")
	}

	// length is validated by the service after the ownership check

	res, err := c.sessionService.SetBackground(ctx.UserContext(), studentId, chatId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update background", res))
}

func (c *chatController) Delete(ctx *fiber.Ctx) error {
	studentId, err := serverutils.StudentId(ctx)
	if err != nil {
		return err
	}
	chatId, err := chatIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.sessionService.Delete(ctx.UserContext(), studentId, chatId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete chat", res))
}

func (c *chatController) AppendMessage(ctx *fiber.Ctx) error {
	studentId, err := serverutils.StudentId(ctx)
	if err != nil {
		return err
	}
	chatId, err := chatIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.ChatMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidationError("", "Invalid request body")
	}

	// ownership is checked before the body is validated, so validation
	// happens in the service
	res, err := c.turnService.AppendMessage(ctx.UserContext(), studentId, chatId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success log message", res))
}

func (c *chatController) SendTurn(ctx *fiber.Ctx) error {
	studentId, err := serverutils.StudentId(ctx)
	if err != nil {
		return err
	}
	chatId, err := chatIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.ChatMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.NewValidationError("", "Invalid request body")
	}

	res, err := c.turnService.SendTurn(ctx.UserContext(), studentId, chatId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send turn", res))
}
