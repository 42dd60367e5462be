package handler

import (
	"context"
	"net/http"
	"time"

	"ecshop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminAuditService interface {
	List(ctx context.Context, in usecase.AdminAuditListInput) (usecase.Page[usecase.AuditLogView], error)
}

type AdminAuditHandler struct {
	uc AdminAuditService
}

func NewAdminAuditHandler(uc AdminAuditService) *AdminAuditHandler {
	return &AdminAuditHandler{uc: uc}
}

func (h *AdminAuditHandler) RegisterRoutes(admin *echo.Group) {
	admin.GET("/audit_logs", h.list)
}

func (h *AdminAuditHandler) list(c echo.Context) error {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		return badRequest(c, "invalid page")
	}
	limit, err := queryInt(c, "limit", 20)
	if err != nil {
		return badRequest(c, "invalid limit")
	}
	actorID, err := queryInt64Ptr(c, "actor_user_id")
	if err != nil {
		return badRequest(c, "invalid actor_user_id")
	}
	resourceID, err := queryInt64Ptr(c, "resource_id")
	if err != nil {
		return badRequest(c, "invalid resource_id")
	}
	from, err := queryTimePtr(c, "from")
	if err != nil {
		return badRequest(c, "invalid from")
	}
	to, err := queryTimePtr(c, "to")
	if err != nil {
		return badRequest(c, "invalid to")
	}

	out, err := h.uc.List(c.Request().Context(), usecase.AdminAuditListInput{
		Page:         page,
		Limit:        limit,
		ActorUserID:  actorID,
		Action:       c.QueryParam("action"),
		ResourceType: c.QueryParam("resource_type"),
		ResourceID:   resourceID,
		From:         from,
		To:           to,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// RFC3339
func queryTimePtr(c echo.Context, name string) (*time.Time, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	tm, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}
