package handler

import (
	"net/http"

	"sareepos/internal/apierror"
	"sareepos/internal/dto"
	"sareepos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BillingHandler struct{ svc service.BillingService }

func NewBillingHandler(svc service.BillingService) *BillingHandler {
	return &BillingHandler{svc: svc}
}

// Checkout godoc
// @Summary Convert the caller's cart into a bill
// @Description Atomic checkout: sequential bill number, price snapshots, conditional stock decrement and GST split (2.5% CGST + 2.5% SGST, rounded independently) in one transaction.
// @Tags bills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CheckoutRequest true "Customer info and payment method"
// @Success 201 {object} dto.BillResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/bills/checkout [post]
func (h *BillingHandler) Checkout(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req dto.CheckoutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Checkout(c.Request.Context(), userID, req)
	if err != nil {
		writeSaleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *BillingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.GetBill(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary List bills
// @Tags bills
// @Produce json
// @Security BearerAuth
// @Param date query string false "YYYY-MM-DD (default: today)"
// @Param payment_method query string false "cash | card | upi"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Rows per page (default 50)"
// @Success 200 {object} dto.BillListResponse
// @Router /v1/bills [get]
func (h *BillingHandler) List(c *gin.Context) {
	var filter dto.BillFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListBills(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not list bills"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update edits customer info and payment method. Amounts are immutable.
func (h *BillingHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	var req dto.UpdateBillRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateBill(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary Delete a bill and restore its stock
// @Description Every item quantity goes back onto the product and a restore movement is recorded, atomically with the bill removal.
// @Tags bills
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bill UUID"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/bills/{id} [delete]
func (h *BillingHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	if err := h.svc.DeleteBill(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
