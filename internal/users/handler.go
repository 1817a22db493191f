package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"beverage-backend/internal/shared/server/middleware"
	"beverage-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	me := rg.Group("/me", middleware.RequireUser())
	me.GET("", h.me)
	me.PUT("/budget", h.updateBudget)
}

type updateBudgetRequest struct {
	WeeklyBudget decimal.Decimal `json:"weeklyBudget"`
}

func (h *Handler) me(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	user, err := h.Svc.EnsureFromAuth(c.Request.Context(),
		middleware.UserIDFromContext(c),
		middleware.UserNameFromContext(c),
		middleware.UserEmailFromContext(c),
	)
	if err != nil {
		writeError(c, err, "failed to load user")
		return
	}
	respond.OK(c, toResponse(user))
}

func (h *Handler) updateBudget(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	var req updateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Validation(c, "weeklyBudget", "invalid", "weeklyBudget must be a decimal amount")
		return
	}
	ctx := c.Request.Context()
	userID := middleware.UserIDFromContext(c)
	if _, err := h.Svc.EnsureFromAuth(ctx, userID, middleware.UserNameFromContext(c), middleware.UserEmailFromContext(c)); err != nil {
		writeError(c, err, "failed to load user")
		return
	}
	user, err := h.Svc.UpdateWeeklyBudget(ctx, userID, req.WeeklyBudget)
	if err != nil {
		writeError(c, err, "failed to update budget")
		return
	}
	respond.OK(c, toResponse(user))
}

type userResponse struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email,omitempty"`
	WeeklyBudget string `json:"weeklyBudget"`
}

func toResponse(user User) userResponse {
	return userResponse{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		WeeklyBudget: user.WeeklyBudget.StringFixed(2),
	}
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidBudget):
		respond.Validation(c, "weeklyBudget", "must_be_positive", err.Error())
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
