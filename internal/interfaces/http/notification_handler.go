package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/koperasi-api/internal/application/notification"
	"github.com/jhoicas/koperasi-api/pkg/logger"
)

// NotificationHandler expone los avisos de stock bajo.
type NotificationHandler struct {
	uc  *notification.UseCase
	log *logger.Logger
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *notification.UseCase, log *logger.Logger) *NotificationHandler {
	return &NotificationHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar avisos de stock bajo
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.NotificationResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// ScanLowStock godoc
// @Summary      Revisar stock bajo
// @Description  Registra un aviso por cada producto en o bajo su mínimo y los devuelve.
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      201  {array}  dto.NotificationResponse
// @Router       /api/notifications/low-stock [post]
func (h *NotificationHandler) ScanLowStock(c *fiber.Ctx) error {
	out, err := h.uc.ScanLowStock(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
