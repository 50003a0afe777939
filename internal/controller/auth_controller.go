package controller

import (
	"docvault-rag-be/internal/dto"
	"docvault-rag-be/internal/pkg/serverutils"
	"docvault-rag-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
}

type authController struct {
	authService service.IAuthService
}

func NewAuthController(authService service.IAuthService) IAuthController {
	return &authController{
		authService: authService,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth/v1")
	h.Post("login", c.Login)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.RespondError(ctx, err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return serverutils.RespondError(ctx, err)
	}

	res, err := c.authService.Login(ctx.Context(), &req)
	if err != nil {
		return serverutils.RespondError(ctx, err)
	}

	return serverutils.RespondOK(ctx, "Login successful", res)
}
