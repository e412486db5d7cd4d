package http

import (
	"net/http"

	"loan-tracker/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	BorrowerID  string          `json:"borrower_id" validate:"required,hex32"`
	Amount      decimal.Decimal `json:"amount"      validate:"required,gt=0,dec2"`
	Currency    string          `json:"currency"    validate:"omitempty,max=10"`
	Description *string         `json:"description" validate:"omitempty,max=500"`
	DueDate     *string         `json:"due_date"    validate:"omitempty,datetime=2006-01-02"`
}

type updateLoanReq struct {
	Description   *string `json:"description"     validate:"omitempty,max=500"`
	DueDate       *string `json:"due_date"        validate:"omitempty,datetime=2006-01-02"`
	RemoveDueDate bool    `json:"remove_due_date"`
}

type remindReq struct {
	Message string `json:"message" validate:"max=500"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if !bind(c, &req) {
		return nil
	}
	due, err := parseDate(req.DueDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid due_date"})
	}
	dto, err := h.uc.Create(c.Request().Context(), caller(c), loan.CreateLoanInput{
		BorrowerID:  req.BorrowerID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
		DueDate:     due,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) ListLoans(c echo.Context) error {
	dto, err := h.uc.List(c.Request().Context(), caller(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), caller(c), c.Param("loan_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) UpdateLoan(c echo.Context) error {
	var req updateLoanReq
	if !bind(c, &req) {
		return nil
	}
	due, err := parseDate(req.DueDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid due_date"})
	}
	dto, err := h.uc.Update(c.Request().Context(), caller(c), c.Param("loan_id"), loan.UpdateLoanInput{
		Description:   req.Description,
		DueDate:       due,
		RemoveDueDate: req.RemoveDueDate,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) DeleteLoan(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), caller(c), c.Param("loan_id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LoanHandler) WithFriend(c echo.Context) error {
	dto, err := h.uc.WithFriend(c.Request().Context(), caller(c), c.Param("friend_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Remind(c echo.Context) error {
	var req remindReq
	if !bind(c, &req) {
		return nil
	}
	n, err := h.uc.Remind(c.Request().Context(), caller(c), c.Param("loan_id"), req.Message)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, n)
}

func (h *LoanHandler) Summary(c echo.Context) error {
	dto, err := h.uc.Summary(c.Request().Context(), caller(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
