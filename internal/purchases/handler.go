package purchases

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"beverage-backend/internal/beverages"
	"beverage-backend/internal/shared/server/middleware"
	"beverage-backend/internal/shared/server/respond"
	"beverage-backend/internal/users"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/purchases", middleware.RequireUser(), h.record)
	rg.GET("/purchases/history", h.history)
	rg.GET("/purchases/weekly-spending", h.weeklySpending)
}

type recordRequest struct {
	BeverageID int64            `json:"beverageId" binding:"required"`
	Mood       string           `json:"mood" binding:"required"`
	Price      *decimal.Decimal `json:"price"`
}

type purchaseResponse struct {
	ID           string    `json:"id"`
	BeverageID   int64     `json:"beverageId"`
	BeverageName string    `json:"beverageName"`
	Category     string    `json:"category"`
	Mood         string    `json:"mood"`
	Price        string    `json:"price"`
	PurchasedAt  time.Time `json:"purchasedAt"`
}

func toResponse(p Purchase) purchaseResponse {
	return purchaseResponse{
		ID:           p.ID,
		BeverageID:   p.BeverageID,
		BeverageName: p.BeverageName,
		Category:     string(p.Category),
		Mood:         string(p.Mood),
		Price:        p.Price.StringFixed(2),
		PurchasedAt:  p.PurchasedAt,
	}
}

func (h *Handler) record(c *gin.Context) {
	var req recordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "beverageId and mood are required", nil)
		return
	}
	p, err := h.Svc.Record(c.Request.Context(), RecordInput{
		UserID:     middleware.UserIDFromContext(c),
		BeverageID: req.BeverageID,
		Mood:       req.Mood,
		Price:      req.Price,
	})
	if err != nil {
		switch {
		case errors.Is(err, beverages.ErrInvalidMood):
			respond.Validation(c, "mood", "invalid", err.Error())
		case errors.Is(err, ErrInvalidPrice):
			respond.Validation(c, "price", "must_not_be_negative", err.Error())
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrBeverageNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "beverage not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to record purchase", nil)
		}
		return
	}
	respond.Created(c, toResponse(p))
}

func (h *Handler) history(c *gin.Context) {
	limit, ok := queryInt(c, "limit", DefaultHistoryLimit)
	if !ok {
		return
	}
	days, ok := queryInt(c, "days", DefaultHistoryDays)
	if !ok {
		return
	}
	userID := middleware.UserIDFromContext(c)
	list, err := h.Svc.History(c.Request.Context(), userID, days, limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load purchase history", nil)
		return
	}
	items := make([]purchaseResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toResponse(p))
	}
	respond.OK(c, gin.H{
		"userId":         userID,
		"totalPurchases": len(items),
		"history":        items,
	})
}

func (h *Handler) weeklySpending(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	snap, err := h.Svc.Snapshot(c.Request.Context(), userID, h.Svc.now())
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute weekly spending", nil)
		return
	}
	respond.OK(c, gin.H{
		"userId":       snap.UserID,
		"weeklyBudget": snap.WeeklyBudget.StringFixed(2),
		"spent":        snap.Spent.StringFixed(2),
		"remaining":    snap.Remaining.StringFixed(2),
		"weekStart":    snap.WeekStart.Format(time.DateOnly),
		"weekEnd":      snap.WeekEnd.AddDate(0, 0, -1).Format(time.DateOnly),
	})
}

func queryInt(c *gin.Context, key string, def int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		respond.Validation(c, key, "must_be_positive_integer", key+" must be a positive integer")
		return 0, false
	}
	return v, true
}
