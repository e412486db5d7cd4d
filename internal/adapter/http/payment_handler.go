package http

import (
	"net/http"

	domain "loan-tracker/internal/domain/payment"
	"loan-tracker/internal/usecase/payment"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type PaymentHandler struct{ uc *payment.Usecase }

func NewPaymentHandler(uc *payment.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

type submitPaymentReq struct {
	LoanID   string          `json:"loan_id"        validate:"required,hex32"`
	Amount   decimal.Decimal `json:"amount"         validate:"required,gt=0,dec2"`
	Method   string          `json:"payment_method" validate:"required,oneof=cash e_wallet"`
	ProofURL *string         `json:"proof_url"      validate:"omitempty,url"`
}

type rejectPaymentReq struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

func (h *PaymentHandler) Submit(c echo.Context) error {
	var req submitPaymentReq
	if !bind(c, &req) {
		return nil
	}
	dto, err := h.uc.Submit(c.Request().Context(), caller(c), payment.SubmitInput{
		LoanID:   req.LoanID,
		Amount:   req.Amount,
		Method:   domain.Method(req.Method),
		ProofURL: req.ProofURL,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *PaymentHandler) Accept(c echo.Context) error {
	dto, err := h.uc.Accept(c.Request().Context(), caller(c), c.Param("payment_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PaymentHandler) Reject(c echo.Context) error {
	var req rejectPaymentReq
	if !bind(c, &req) {
		return nil
	}
	dto, err := h.uc.Reject(c.Request().Context(), caller(c), c.Param("payment_id"), req.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PaymentHandler) Pending(c echo.Context) error {
	list, err := h.uc.PendingForLender(c.Request().Context(), caller(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": list})
}

// ListByLoan serves GET /loans/:loan_id/payments.
func (h *PaymentHandler) ListByLoan(c echo.Context) error {
	list, err := h.uc.ListByLoan(c.Request().Context(), caller(c), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": list})
}
