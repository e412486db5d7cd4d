package http

import (
	"crypto/subtle"
	"net/http"
	"time"

	"loan-tracker/internal/domain/loan"
	"loan-tracker/internal/usecase/reminder"

	"github.com/labstack/echo/v4"
)

const HeaderAdminToken = "X-Admin-Token"

// ReminderHandler exposes the reminder sweep to operators and external cron.
type ReminderHandler struct {
	uc    *reminder.Usecase
	token string
	loc   *time.Location
	now   func() time.Time
}

func NewReminderHandler(uc *reminder.Usecase, adminToken string, loc *time.Location) *ReminderHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ReminderHandler{uc: uc, token: adminToken, loc: loc, now: time.Now}
}

// Run sweeps today (in the configured zone) or the day given as ?date=.
func (h *ReminderHandler) Run(c echo.Context) error {
	got := c.Request().Header.Get(HeaderAdminToken)
	if h.token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) != 1 {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden", Code: "forbidden"})
	}

	asOf := h.now().In(h.loc)
	if raw := c.QueryParam("date"); raw != "" {
		d, err := loan.ParseDate(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "date must be YYYY-MM-DD", Code: "invalid_date"})
		}
		asOf = d
	}
	res, err := h.uc.Sweep(c.Request().Context(), asOf)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
