package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"sareepos/internal/apierror"
	"sareepos/internal/dto"
	"sareepos/internal/repository"
	"sareepos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const priceCacheTTL = 4 * time.Hour

// PriceCheckHandler serves the scan-a-label price lookup used at the counter.
// Read-only with no side effects, so it sits behind a long-lived Redis cache
// that the product service invalidates on every price or stock change.
type PriceCheckHandler struct {
	repo repository.ProductRepository
	rdb  *redis.Client
}

func NewPriceCheckHandler(repo repository.ProductRepository, rdb *redis.Client) *PriceCheckHandler {
	return &PriceCheckHandler{repo: repo, rdb: rdb}
}

// GetPriceBySKU godoc
// @Summary Price check by SKU
// @Tags price
// @Produce json
// @Security BearerAuth
// @Param sku path string true "Product SKU (S-XXXXXXXX)"
// @Success 200 {object} dto.PriceCheckResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/price/{sku} [get]
func (h *PriceCheckHandler) GetPriceBySKU(c *gin.Context) {
	sku := c.Param("sku")
	ctx := c.Request.Context()
	cacheKey := service.PriceCacheKeyPrefix + sku

	// 1. Try Redis cache
	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.PriceCheckResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// 2. Cache miss — query DB
	p, err := h.repo.FindBySKU(ctx, sku)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("product not found"))
		return
	}

	resp := dto.PriceCheckResponse{
		SKU:           p.SKU,
		Name:          p.Name,
		SellingPriceA: p.SellingPriceA,
		SellingPriceB: p.SellingPriceB,
		SellingPriceC: p.SellingPriceC,
		Quantity:      p.Quantity,
		Status:        p.Status,
	}

	// 3. Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, priceCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
