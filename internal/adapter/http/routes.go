package http

import (
	"github.com/labstack/echo/v4"
)

// Routes wires handlers to paths. Nil middleware is skipped.
type Routes struct {
	Health        *Handler
	Loans         *LoanHandler
	Payments      *PaymentHandler
	Notifications *NotificationHandler
	Reminders     *ReminderHandler

	Auth         echo.MiddlewareFunc
	Idempotency  echo.MiddlewareFunc
	PaymentLimit echo.MiddlewareFunc
}

func use(mw ...echo.MiddlewareFunc) []echo.MiddlewareFunc {
	out := make([]echo.MiddlewareFunc, 0, len(mw))
	for _, m := range mw {
		if m != nil {
			out = append(out, m)
		}
	}
	return out
}

func (r Routes) Register(e *echo.Echo) {
	e.GET("/health", r.Health.Health)

	api := e.Group("", use(r.Auth)...)

	loans := api.Group("/loans")
	loans.GET("", r.Loans.ListLoans)
	loans.POST("", r.Loans.CreateLoan)
	loans.GET("/with-friend/:friend_id", r.Loans.WithFriend)
	loans.GET("/:loan_id", r.Loans.GetLoan)
	loans.PUT("/:loan_id", r.Loans.UpdateLoan)
	loans.DELETE("/:loan_id", r.Loans.DeleteLoan)
	loans.POST("/:loan_id/remind", r.Loans.Remind)
	loans.GET("/:loan_id/payments", r.Payments.ListByLoan)

	payments := api.Group("/payments")
	payments.POST("", r.Payments.Submit, use(r.PaymentLimit, r.Idempotency)...)
	payments.GET("/pending", r.Payments.Pending)
	payments.POST("/:payment_id/accept", r.Payments.Accept, use(r.PaymentLimit)...)
	payments.POST("/:payment_id/reject", r.Payments.Reject, use(r.PaymentLimit)...)

	notes := api.Group("/notifications")
	notes.GET("", r.Notifications.List)
	notes.GET("/unread-count", r.Notifications.UnreadCount)
	notes.PUT("/read-all", r.Notifications.MarkAllRead)
	notes.PUT("/:notification_id/read", r.Notifications.MarkRead)
	notes.DELETE("/:notification_id", r.Notifications.Delete)

	api.PUT("/devices", r.Notifications.RegisterDevice)
	api.GET("/analytics/summary", r.Loans.Summary)

	if r.Reminders != nil {
		e.POST("/internal/reminders/run", r.Reminders.Run)
	}
}
