package handler

import (
	"net/http"

	"sareepos/internal/apierror"
	"sareepos/internal/dto"
	"sareepos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VendorBillsHandler struct{ svc service.VendorBillService }

func NewVendorBillsHandler(svc service.VendorBillService) *VendorBillsHandler {
	return &VendorBillsHandler{svc: svc}
}

// Create godoc
// @Summary Record a vendor purchase and stock in its products
// @Description Creates the vendor bill, one product per line with a fresh SKU, and the restock movements in one transaction. Local purchases carry CGST+SGST, inter-state purchases carry IGST.
// @Tags vendor-bills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateVendorBillRequest true "Vendor bill with product lines"
// @Success 201 {object} dto.VendorBillResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/vendor-bills [post]
func (h *VendorBillsHandler) Create(c *gin.Context) {
	var req dto.CreateVendorBillRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *VendorBillsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VendorBillsHandler) List(c *gin.Context) {
	var filter dto.VendorBillFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not list vendor bills"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
