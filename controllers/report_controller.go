package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shuno-backend/services"
	"shuno-backend/utils"
)

type ReportController struct {
	Reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{Reports: reports}
}

func reportRange(c *gin.Context) (time.Time, time.Time, bool) {
	start, err := time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "start must be YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse("2006-01-02", c.Query("end"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "end must be YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// GetRevenue returns the revenue/occupancy summary for [start, end).
func (rc *ReportController) GetRevenue(c *gin.Context) {
	start, end, ok := reportRange(c)
	if !ok {
		return
	}

	report, err := rc.Reports.Revenue(start, end)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDateRange) {
			utils.JSONError(c, http.StatusBadRequest, "end must be after start")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to build report")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, report)
}

// ExportRevenue streams the same report as an .xlsx attachment.
func (rc *ReportController) ExportRevenue(c *gin.Context) {
	start, end, ok := reportRange(c)
	if !ok {
		return
	}

	report, err := rc.Reports.Revenue(start, end)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDateRange) {
			utils.JSONError(c, http.StatusBadRequest, "end must be after start")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to build report")
		return
	}

	buf, err := rc.Reports.ExportExcel(report)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to render workbook")
		return
	}

	filename := fmt.Sprintf("revenue_%s_%s.xlsx",
		start.Format("2006-01-02"), end.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
