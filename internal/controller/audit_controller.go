package controller

import (
	"docvault-rag-be/internal/dto"
	"docvault-rag-be/internal/entity"
	"docvault-rag-be/internal/pkg/serverutils"
	"docvault-rag-be/internal/service"
	ws "docvault-rag-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type IAuditController interface {
	RegisterRoutes(r fiber.Router)
	Query(ctx *fiber.Ctx) error
}

type auditController struct {
	auditService service.IAuditService
	hub          *ws.Hub
}

func NewAuditController(auditService service.IAuditService, hub *ws.Hub) IAuditController {
	return &auditController{
		auditService: auditService,
		hub:          hub,
	}
}

func (c *auditController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/audit/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.Query)

	// Live stream of access decisions, Executive only. The role gate runs
	// before the upgrade so a rejected caller never holds a socket.
	h.Use("stream", func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}
		identity := serverutils.IdentityFromCtx(ctx)
		if identity.Role != entity.RoleExecutive {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"code":    403,
				"message": "permission denied",
			})
		}
		return ctx.Next()
	})
	h.Get("stream", websocket.New(func(conn *websocket.Conn) {
		identity, ok := conn.Locals(serverutils.IdentityKey).(entity.Identity)
		if !ok {
			conn.Close()
			return
		}
		ws.ServeWs(c.hub, conn, identity.SubjectId)
	}))
}

func (c *auditController) Query(ctx *fiber.Ctx) error {
	identity := serverutils.IdentityFromCtx(ctx)

	var req dto.AuditQueryRequest
	if err := ctx.QueryParser(&req); err != nil {
		return serverutils.RespondError(ctx, err)
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return serverutils.RespondError(ctx, err)
	}

	res, err := c.auditService.Query(ctx.Context(), identity, &req)
	if err != nil {
		return serverutils.RespondError(ctx, err)
	}

	return serverutils.RespondOK(ctx, "Success query audit log", res)
}
