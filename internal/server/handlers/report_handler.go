package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/service/reporting"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportService is the reporting engine as seen by the HTTP layer.
type ReportService interface {
	DashboardSummary(ctx context.Context, req reporting.DashboardRequest) (*models.DashboardSummary, error)
	BuyerPurchases(ctx context.Context, req reporting.ExportRequest) (*reporting.BuyerExport, error)
	ProfitLoss(ctx context.Context, period string) (*models.ProfitLossReport, error)
}

// ReportHandler serves the /reports endpoints.
type ReportHandler struct {
	svc    ReportService
	logger *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(svc ReportService, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, logger: logger}
}

// DashboardSummary answers GET /reports/dashboard-summary.
func (h *ReportHandler) DashboardSummary(c *gin.Context) {
	summary, err := h.svc.DashboardSummary(c.Request.Context(), reporting.DashboardRequest{
		TrendPeriod: c.Query("trendPeriod"),
		BuyerMobile: c.Query("buyerMobile"),
	})
	if err != nil {
		h.fail(c, "failed to fetch dashboard summary", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ExportBuyerConsumptionCSV answers GET /reports/buyer-consumption/export.
func (h *ReportHandler) ExportBuyerConsumptionCSV(c *gin.Context) {
	export, err := h.svc.BuyerPurchases(c.Request.Context(), exportRequest(c))
	if err != nil {
		h.fail(c, "failed to export buyer consumption", err)
		return
	}

	attachment(c, export.Filename("csv"))
	c.Data(http.StatusOK, "text/csv", []byte(export.CSV()))
}

// ExportBuyerConsumptionXLSX answers GET /reports/buyer-consumption/export.xlsx.
func (h *ReportHandler) ExportBuyerConsumptionXLSX(c *gin.Context) {
	export, err := h.svc.BuyerPurchases(c.Request.Context(), exportRequest(c))
	if err != nil {
		h.fail(c, "failed to export buyer consumption", err)
		return
	}

	f, err := export.XLSX()
	if err != nil {
		h.fail(c, "failed to export buyer consumption", err)
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		h.fail(c, "failed to export buyer consumption", err)
		return
	}

	attachment(c, export.Filename("xlsx"))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ProfitLoss answers GET /reports/profit-loss.
func (h *ReportHandler) ProfitLoss(c *gin.Context) {
	report, err := h.svc.ProfitLoss(c.Request.Context(), c.Query("period"))
	if err != nil {
		h.fail(c, "failed to compute profit and loss", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) fail(c *gin.Context, msg string, err error) {
	h.logger.Error(msg, zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg, "message": err.Error()})
}

// exportRequest reads year, month and buyerMobile. Unparseable numbers become
// zero, which the service treats as "current".
func exportRequest(c *gin.Context) reporting.ExportRequest {
	year, _ := strconv.Atoi(c.Query("year"))
	month, _ := strconv.Atoi(c.Query("month"))
	return reporting.ExportRequest{
		Year:        year,
		Month:       month,
		BuyerMobile: c.Query("buyerMobile"),
	}
}

func attachment(c *gin.Context, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}
