package beverages

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"beverage-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/beverages", h.list)
	rg.GET("/beverages/:id", h.get)
}

// BeverageResponse is the wire form of a catalog entry.
type BeverageResponse struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Price         string   `json:"price"`
	SuitableMoods []string `json:"suitableMoods"`
}

// ToResponse renders prices with two decimals.
func ToResponse(b Beverage) BeverageResponse {
	moods := make([]string, 0, len(b.SuitableMoods))
	for _, m := range b.SuitableMoods {
		moods = append(moods, string(m))
	}
	return BeverageResponse{
		ID:            b.ID,
		Name:          b.Name,
		Category:      string(b.Category),
		Price:         b.Price.StringFixed(2),
		SuitableMoods: moods,
	}
}

func (h *Handler) list(c *gin.Context) {
	var filter ListFilter
	if raw := strings.TrimSpace(c.Query("mood")); raw != "" {
		mood, err := ParseMood(raw)
		if err != nil {
			respond.Validation(c, "mood", "invalid", err.Error())
			return
		}
		filter.Mood = mood
	}
	if raw := strings.TrimSpace(c.Query("max_price")); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil || !price.IsPositive() {
			respond.Validation(c, "max_price", "must_be_positive", ErrInvalidPrice.Error())
			return
		}
		filter.MaxPrice = price
	}

	list, err := h.Svc.Search(c.Request.Context(), filter)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list beverages", nil)
		return
	}
	items := make([]BeverageResponse, 0, len(list))
	for _, b := range list {
		items = append(items, ToResponse(b))
	}
	respond.OK(c, gin.H{"items": items, "count": len(items)})
}

func (h *Handler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Validation(c, "id", "invalid", "id must be a positive integer")
		return
	}
	b, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "beverage not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load beverage", nil)
		return
	}
	respond.OK(c, ToResponse(b))
}
