package handler

import (
	"net/http"

	"sareepos/internal/apierror"
	"sareepos/internal/dto"
	"sareepos/internal/middleware"
	"sareepos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CartHandler manages the per-salesperson cart. The cart is keyed by the
// authenticated user, so the same profile sees its cart from any terminal.
type CartHandler struct{ svc service.CartService }

func NewCartHandler(svc service.CartService) *CartHandler { return &CartHandler{svc: svc} }

func callerID(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("malformed token subject"))
		return uuid.Nil, false
	}
	return id, true
}

// Add godoc
// @Summary Add a SKU to the cart
// @Description One line per SKU; adding an existing SKU returns 409. Quantity starts at 1.
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AddToCartRequest true "SKU and price tier"
// @Success 200 {object} dto.CartResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/cart [post]
func (h *CartHandler) Add(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.AddToCartRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Add(c.Request.Context(), userID, req)
	if err != nil {
		writeSaleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.UpdateCartQuantityRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateQuantity(c.Request.Context(), userID, c.Param("sku"), req.Quantity)
	if err != nil {
		writeSaleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CartHandler) Remove(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Remove(c.Request.Context(), userID, c.Param("sku"))
	if err != nil {
		writeSaleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CartHandler) Get(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		writeSaleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
