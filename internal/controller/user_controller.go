package controller

import (
	"tasknotes-be/internal/pkg/serverutils"
	"tasknotes-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler)
	GetUser(ctx *fiber.Ctx) error
	ListUsers(ctx *fiber.Ctx) error
}

type userController struct {
	userService service.IUserService
}

func NewUserController(userService service.IUserService) IUserController {
	return &userController{
		userService: userService,
	}
}

func (c *userController) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	r.Get("/get-user", authMiddleware, c.GetUser)
	r.Get("/users", authMiddleware, c.ListUsers)
}

func (c *userController) GetUser(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals(serverutils.LocalsUserId).(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.userService.GetProfile(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return serverutils.Success(ctx, "User fetched", fiber.Map{
		"user": res,
	})
}

func (c *userController) ListUsers(ctx *fiber.Ctx) error {
	res, err := c.userService.ListUsers(ctx.Context())
	if err != nil {
		return err
	}

	return serverutils.Success(ctx, "Users fetched", fiber.Map{
		"users": res,
	})
}
