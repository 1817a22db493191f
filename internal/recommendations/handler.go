package recommendations

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"beverage-backend/internal/beverages"
	"beverage-backend/internal/recommendations/engine"
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
	rg.GET("/recommendations", h.forCaller)
	rg.GET("/users/:id/recommendations", h.forUser)
}

func (h *Handler) forCaller(c *gin.Context) {
	h.serve(c, middleware.UserIDFromContext(c))
}

// forUser only serves the caller's own id.
func (h *Handler) forUser(c *gin.Context) {
	target := strings.TrimSpace(c.Param("id"))
	if target != middleware.UserIDFromContext(c) {
		respond.Error(c, http.StatusForbidden, "forbidden", "cannot read recommendations for another user", nil)
		return
	}
	h.serve(c, target)
}

func (h *Handler) serve(c *gin.Context, userID string) {
	rawMood := strings.TrimSpace(c.Query("mood"))
	if rawMood == "" {
		respond.Validation(c, "mood", "required", "mood is required")
		return
	}
	mood, err := beverages.ParseMood(rawMood)
	if err != nil {
		respond.Validation(c, "mood", "invalid", err.Error())
		return
	}
	c.Set("mood", string(mood))

	rawBudget := strings.TrimSpace(c.Query("budget"))
	if rawBudget == "" {
		respond.Validation(c, "budget", "required", "budget is required")
		return
	}
	budget, err := decimal.NewFromString(rawBudget)
	if err != nil || !budget.IsPositive() {
		respond.Validation(c, "budget", "must_be_positive", engine.ErrInvalidBudget.Error())
		return
	}

	topN := 0
	if raw := strings.TrimSpace(c.Query("top_n")); raw != "" {
		topN, err = strconv.Atoi(raw)
		if err != nil || topN <= 0 {
			respond.Validation(c, "top_n", "must_be_positive_integer", ErrInvalidTopN.Error())
			return
		}
	}

	res, err := h.Svc.Recommend(c.Request.Context(), userID, string(mood), budget, topN)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrInvalidMood):
			respond.Validation(c, "mood", "invalid", err.Error())
		case errors.Is(err, engine.ErrInvalidBudget):
			respond.Validation(c, "budget", "must_be_positive", err.Error())
		case errors.Is(err, ErrInvalidTopN):
			respond.Validation(c, "top_n", "must_be_positive_integer", err.Error())
		case errors.Is(err, ErrUnknownUser):
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute recommendations", nil)
		}
		return
	}
	c.Set("budgetState", string(res.BudgetState))
	respond.OK(c, toResponse(userID, string(mood), budget.StringFixed(2), res))
}
