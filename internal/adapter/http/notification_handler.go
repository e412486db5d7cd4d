package http

import (
	"net/http"
	"strconv"

	"loan-tracker/internal/usecase/notification"

	"github.com/labstack/echo/v4"
)

type NotificationHandler struct{ uc *notification.Usecase }

func NewNotificationHandler(uc *notification.Usecase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

type registerDeviceReq struct {
	Token    string `json:"token"    validate:"required,max=255"`
	Platform string `json:"platform" validate:"omitempty,oneof=android ios web"`
}

func (h *NotificationHandler) List(c echo.Context) error {
	// bad values fall back to defaults in the usecase
	page, _ := strconv.Atoi(c.QueryParam("page"))
	perPage, _ := strconv.Atoi(c.QueryParam("per_page"))
	dto, err := h.uc.List(c.Request().Context(), caller(c), page, perPage)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	n, err := h.uc.UnreadCount(c.Request().Context(), caller(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"unread_count": n})
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	n, err := h.uc.MarkRead(c.Request().Context(), caller(c), c.Param("notification_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, n)
}

func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	n, err := h.uc.MarkAllRead(c.Request().Context(), caller(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"updated": n})
}

func (h *NotificationHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), caller(c), c.Param("notification_id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *NotificationHandler) RegisterDevice(c echo.Context) error {
	var req registerDeviceReq
	if !bind(c, &req) {
		return nil
	}
	d, err := h.uc.RegisterDevice(c.Request().Context(), caller(c), req.Token, req.Platform)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}
