package controller

import (
	"docvault-rag-be/internal/dto"
	"docvault-rag-be/internal/pkg/serverutils"
	"docvault-rag-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISearchController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
	Ask(ctx *fiber.Ctx) error
}

type searchController struct {
	searchService service.ISearchService
	answerService service.IAnswerService
}

func NewSearchController(searchService service.ISearchService, answerService service.IAnswerService) ISearchController {
	return &searchController{
		searchService: searchService,
		answerService: answerService,
	}
}

func (c *searchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/search/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Search)
	h.Post("ask", c.Ask)
}

func (c *searchController) Search(ctx *fiber.Ctx) error {
	identity := serverutils.IdentityFromCtx(ctx)

	var req dto.SearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.RespondError(ctx, err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return serverutils.RespondError(ctx, err)
	}

	res, err := c.searchService.Search(ctx.Context(), identity, &req)
	if err != nil {
		return serverutils.RespondError(ctx, err)
	}

	return serverutils.RespondOK(ctx, "Success search", res)
}

func (c *searchController) Ask(ctx *fiber.Ctx) error {
	identity := serverutils.IdentityFromCtx(ctx)

	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.RespondError(ctx, err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return serverutils.RespondError(ctx, err)
	}

	res, err := c.answerService.Ask(ctx.Context(), identity, &req)
	if err != nil {
		return serverutils.RespondError(ctx, err)
	}

	return serverutils.RespondOK(ctx, "Success ask", res)
}
