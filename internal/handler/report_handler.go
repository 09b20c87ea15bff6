package handler

import (
	"net/http"
	"time"

	"timetrack/internal/service"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type ReportHandler struct {
	reports *service.ReportService
}

func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

type UserTotalResponse struct {
	UserID               string `json:"user_id"`
	TotalDurationSeconds int64  `json:"total_duration_seconds"`
}

type TimeTotalsResponse struct {
	From   string              `json:"from"`
	To     string              `json:"to"`
	Totals []UserTotalResponse `json:"totals"`
}

// TimeTotals sums tracked time per user over a calendar date range
// (admin only)
func (h *ReportHandler) TimeTotals(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}

	from, err := time.ParseInLocation(dateLayout, c.Query("from"), time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date, expected YYYY-MM-DD"})
		return
	}
	toDate, err := time.ParseInLocation(dateLayout, c.Query("to"), time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date, expected YYYY-MM-DD"})
		return
	}
	// Inclusive range: extend "to" to the end of its calendar day.
	to := toDate.AddDate(0, 0, 1).Add(-time.Nanosecond)

	report, err := h.reports.TimeTotalsByUser(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	response := TimeTotalsResponse{
		From:   report.From.Format(dateLayout),
		To:     report.To.Format(dateLayout),
		Totals: make([]UserTotalResponse, len(report.Totals)),
	}
	for i, total := range report.Totals {
		response.Totals[i] = UserTotalResponse{
			UserID:               total.UserID.String(),
			TotalDurationSeconds: total.TotalDurationSeconds,
		}
	}
	c.JSON(http.StatusOK, response)
}
