package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"shuno-backend/models"
)

// RevenueRow aggregates non-cancelled orders for one property over a range.
type RevenueRow struct {
	ProductID    uint    `json:"productId"`
	Name         string  `json:"name"`
	Orders       int     `json:"orders"`
	BookedNights int     `json:"bookedNights"`
	Revenue      float64 `json:"revenue"`
	Occupancy    float64 `json:"occupancy"`
}

// RevenueReport is the admin revenue/occupancy summary.
type RevenueReport struct {
	Start        time.Time    `json:"start"`
	End          time.Time    `json:"end"`
	Rows         []RevenueRow `json:"rows"`
	TotalRevenue float64      `json:"totalRevenue"`
	TotalOrders  int          `json:"totalOrders"`
}

type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

// Revenue builds the per-property revenue and occupancy summary for
// [start, end). Cancelled orders are excluded; an order counts when its
// stay overlaps the range. Occupancy is booked nights over the nights the
// range spans.
func (s *ReportService) Revenue(start, end time.Time) (*RevenueReport, error) {
	if !end.After(start) {
		return nil, ErrInvalidDateRange
	}

	var products []models.Property
	if err := s.DB.Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}

	var orders []models.Order
	err := s.DB.
		Where("status <> ?", models.StatusCancelled).
		Where("check_in < ? AND check_out > ?", end, start).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	rangeNights := Nights(start, end)
	byProduct := make(map[uint]*RevenueRow, len(products))
	report := &RevenueReport{Start: start, End: end}

	for _, p := range products {
		row := &RevenueRow{ProductID: p.ID, Name: p.Name}
		byProduct[p.ID] = row
	}

	for _, o := range orders {
		row, ok := byProduct[o.ProductID]
		if !ok {
			continue
		}
		row.Orders++
		row.BookedNights += overlapNights(o.CheckIn, o.CheckOut, start, end)
		row.Revenue = Round2(row.Revenue + o.TotalPrice)

		report.TotalOrders++
		report.TotalRevenue = Round2(report.TotalRevenue + o.TotalPrice)
	}

	for _, p := range products {
		row := byProduct[p.ID]
		if rangeNights > 0 {
			row.Occupancy = Round2(float64(row.BookedNights) / float64(rangeNights))
		}
		report.Rows = append(report.Rows, *row)
	}

	return report, nil
}

// overlapNights counts the nights of [checkIn, checkOut) inside [start, end).
func overlapNights(checkIn, checkOut, start, end time.Time) int {
	if checkIn.Before(start) {
		checkIn = start
	}
	if checkOut.After(end) {
		checkOut = end
	}
	if !checkOut.After(checkIn) {
		return 0
	}
	return Nights(checkIn, checkOut)
}

// ExportExcel renders the report as an .xlsx workbook.
func (s *ReportService) ExportExcel(report *RevenueReport) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Revenue"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	_ = f.SetCellValue(sheet, "A1", fmt.Sprintf("Period: %s - %s",
		report.Start.Format("2006-01-02"), report.End.Format("2006-01-02")))

	headers := []string{"Property", "Orders", "Booked nights", "Occupancy", "Revenue"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, row := range report.Rows {
		r := i + 4
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", r), row.Name)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", r), row.Orders)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", r), row.BookedNights)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", r), row.Occupancy)
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", r), row.Revenue)
	}

	totalRow := len(report.Rows) + 5
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow), "Total")
	_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", totalRow), report.TotalOrders)
	_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", totalRow), report.TotalRevenue)

	_ = f.SetColWidth(sheet, "A", "A", 30)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error writing workbook: %w", err)
	}
	return buf, nil
}
