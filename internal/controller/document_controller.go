package controller

import (
	"docvault-rag-be/internal/apperror"
	"docvault-rag-be/internal/dto"
	"docvault-rag-be/internal/pkg/serverutils"
	"docvault-rag-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Ingest(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Retag(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
}

func NewDocumentController(documentService service.IDocumentService) IDocumentController {
	return &documentController{
		documentService: documentService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Ingest)
	h.Get("", c.List)
	h.Put(":id/tags", c.Retag)
	h.Delete(":id", c.Delete)
}

func (c *documentController) Ingest(ctx *fiber.Ctx) error {
	identity := serverutils.IdentityFromCtx(ctx)

	var req dto.IngestRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.RespondError(ctx, err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return serverutils.RespondError(ctx, err)
	}

	res, err := c.documentService.Ingest(ctx.Context(), identity, &req)
	if err != nil {
		return serverutils.RespondError(ctx, err)
	}

	return serverutils.RespondOK(ctx, "Document ingested", res)
}

func (c *documentController) List(ctx *fiber.Ctx) error {
	identity := serverutils.IdentityFromCtx(ctx)

	res, err := c.documentService.List(ctx.Context(), identity)
	if err != nil {
		return serverutils.RespondError(ctx, err)
	}

	return serverutils.RespondOK(ctx, "Success list documents", res)
}

func (c *documentController) Retag(ctx *fiber.Ctx) error {
	identity := serverutils.IdentityFromCtx(ctx)

	documentId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.RespondError(ctx, apperror.ValidationError("id"))
	}

	var req dto.RetagRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.RespondError(ctx, err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return serverutils.RespondError(ctx, err)
	}

	res, err := c.documentService.Retag(ctx.Context(), identity, documentId, &req)
	if err != nil {
		return serverutils.RespondError(ctx, err)
	}

	return serverutils.RespondOK(ctx, "Document retagged", res)
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	identity := serverutils.IdentityFromCtx(ctx)

	documentId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.RespondError(ctx, apperror.ValidationError("id"))
	}

	if err := c.documentService.Delete(ctx.Context(), identity, documentId); err != nil {
		return serverutils.RespondError(ctx, err)
	}

	return serverutils.RespondOK(ctx, "Document deleted", nil)
}
