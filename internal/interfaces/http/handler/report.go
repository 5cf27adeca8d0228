package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reportapp "github.com/rentora/backend/internal/application/report"
)

// ReportHandler handles revenue report API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// RegisterRoutes registers report routes on the given group
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/revenue/daily", h.GetDailyReport)
		reports.GET("/revenue/income", h.GetPeriodIncome)
		reports.GET("/orders/:id/revenue", h.GetOrderRevenue)
		reports.GET("/orders/:id/revenue/date", h.GetOrderRevenueForDate)
	}
}

// DateWindowRequest is the query filter shared by windowed report endpoints
type DateWindowRequest struct {
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
}

// GetDailyReport returns the day-bucketed revenue report for a window
func (h *ReportHandler) GetDailyReport(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	from, to, err := h.parseWindow(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	dailyReport, err := h.reportService.GetDailyReport(c.Request.Context(), tenantID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dailyReport)
}

// GetPeriodIncome returns realized and projected income for a window
func (h *ReportHandler) GetPeriodIncome(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	from, to, err := h.parseWindow(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	income, err := h.reportService.GetPeriodIncome(c.Request.Context(), tenantID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, income)
}

// GetOrderRevenue returns one order's current revenue and its event trail
func (h *ReportHandler) GetOrderRevenue(c *gin.Context) {
	tenantID, orderID, ok := h.tenantAndOrderID(c)
	if !ok {
		return
	}

	revenue, err := h.reportService.GetOrderRevenue(c.Request.Context(), tenantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, revenue)
}

// GetOrderRevenueForDate returns one order's contribution on a calendar day
func (h *ReportHandler) GetOrderRevenueForDate(c *gin.Context) {
	tenantID, orderID, ok := h.tenantAndOrderID(c)
	if !ok {
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		h.BadRequest(c, "date: Invalid date format, expected YYYY-MM-DD")
		return
	}

	revenue, err := h.reportService.GetOrderRevenueForDate(c.Request.Context(), tenantID, orderID, date)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, revenue)
}

// parseWindow binds and parses the start_date/end_date query parameters
func (h *ReportHandler) parseWindow(c *gin.Context) (time.Time, time.Time, error) {
	var req DateWindowRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return time.Time{}, time.Time{}, err
	}

	from, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("start_date: Invalid date format, expected YYYY-MM-DD")
	}

	to, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("end_date: Invalid date format, expected YYYY-MM-DD")
	}

	return from, to, nil
}

// tenantAndOrderID parses the tenant header and the :id path parameter
func (h *ReportHandler) tenantAndOrderID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return uuid.Nil, uuid.Nil, false
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return uuid.Nil, uuid.Nil, false
	}
	return tenantID, orderID, true
}
