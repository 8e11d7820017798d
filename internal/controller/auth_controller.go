package controller

import (
	"tasknotes-be/internal/dto"
	"tasknotes-be/internal/pkg/serverutils"
	"tasknotes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
}

type authController struct {
	authService service.IAuthService
}

func NewAuthController(authService service.IAuthService) IAuthController {
	return &authController{
		authService: authService,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	r.Post("/create-account", c.Register)
	r.Post("/login", c.Login)
	r.Post("/logout", authMiddleware, c.Logout)
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.authService.Register(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return serverutils.Success(ctx, "Registration Successful", fiber.Map{
		"user":        res.User,
		"accessToken": res.AccessToken,
	})
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.authService.Login(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return serverutils.Success(ctx, "Login Successful", fiber.Map{
		"email":       res.User.Email,
		"accessToken": res.AccessToken,
	})
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	accessToken, _ := ctx.Locals(serverutils.LocalsAccessToken).(string)

	if err := c.authService.Logout(ctx.Context(), accessToken); err != nil {
		return err
	}

	return serverutils.Success(ctx, "Logout Successful", nil)
}
