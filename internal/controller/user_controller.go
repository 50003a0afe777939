package controller

import (
	"docvault-rag-be/internal/dto"
	"docvault-rag-be/internal/pkg/serverutils"
	"docvault-rag-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
}

type userController struct {
	userService service.IUserService
}

func NewUserController(userService service.IUserService) IUserController {
	return &userController{
		userService: userService,
	}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/user/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("me", c.Me)
	h.Post("", c.Create)
	h.Get("", c.List)
}

func (c *userController) Create(ctx *fiber.Ctx) error {
	identity := serverutils.IdentityFromCtx(ctx)

	var req dto.CreateUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.RespondError(ctx, err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return serverutils.RespondError(ctx, err)
	}

	res, err := c.userService.Create(ctx.Context(), identity, &req)
	if err != nil {
		return serverutils.RespondError(ctx, err)
	}

	return serverutils.RespondOK(ctx, "User created", res)
}

func (c *userController) List(ctx *fiber.Ctx) error {
	identity := serverutils.IdentityFromCtx(ctx)

	res, err := c.userService.List(ctx.Context(), identity)
	if err != nil {
		return serverutils.RespondError(ctx, err)
	}

	return serverutils.RespondOK(ctx, "Success list users", res)
}

func (c *userController) Me(ctx *fiber.Ctx) error {
	identity := serverutils.IdentityFromCtx(ctx)

	res, err := c.userService.Me(ctx.Context(), identity)
	if err != nil {
		return serverutils.RespondError(ctx, err)
	}

	return serverutils.RespondOK(ctx, "Success", res)
}
