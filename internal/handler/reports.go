package handler

import (
	"net/http"

	"sareepos/internal/apierror"
	"sareepos/internal/config"
	"sareepos/internal/dto"
	"sareepos/internal/infra"
	"sareepos/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct {
	svc service.ReportService
	cfg *config.Config
}

func NewReportsHandler(svc service.ReportService, cfg *config.Config) *ReportsHandler {
	return &ReportsHandler{svc: svc, cfg: cfg}
}

func (h *ReportsHandler) bindRange(c *gin.Context) (dto.DateRangeFilter, bool) {
	var filter dto.DateRangeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return filter, false
	}
	if err := validate.Struct(filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("from and to must be YYYY-MM-DD dates"))
		return filter, false
	}
	return filter, true
}

// Summary godoc
// @Summary Sales summary for a date range
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param from query string true "YYYY-MM-DD"
// @Param to query string true "YYYY-MM-DD"
// @Success 200 {object} dto.SummaryResponse
// @Router /v1/reports/summary [get]
func (h *ReportsHandler) Summary(c *gin.Context) {
	filter, ok := h.bindRange(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetSummary(c.Request.Context(), filter.From, filter.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) DailySales(c *gin.Context) {
	var filter dto.DailySalesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.GetDailySales(c.Request.Context(), filter.Days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not compute daily sales"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) GST(c *gin.Context) {
	filter, ok := h.bindRange(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetGST(c.Request.Context(), filter.From, filter.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GSTPDF godoc
// @Summary Download the GST summary as a PDF
// @Description Renders the output/input/net GST figures for the monthly filing.
// @Tags reports
// @Produce application/pdf
// @Security BearerAuth
// @Param from query string true "YYYY-MM-DD"
// @Param to query string true "YYYY-MM-DD"
// @Success 200
// @Router /v1/reports/gst/pdf [get]
func (h *ReportsHandler) GSTPDF(c *gin.Context) {
	filter, ok := h.bindRange(c)
	if !ok {
		return
	}
	report, err := h.svc.GetGST(c.Request.Context(), filter.From, filter.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	path, err := infra.GenerateGSTReportPDF(report, h.cfg.StoreName, h.cfg.StoreGSTIN, h.cfg.PDFStoragePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not render PDF"))
		return
	}
	c.FileAttachment(path, "gst_"+filter.From+"_"+filter.To+".pdf")
}

func (h *ReportsHandler) ProfitLoss(c *gin.Context) {
	filter, ok := h.bindRange(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetProfitLoss(c.Request.Context(), filter.From, filter.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
