package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shuno-backend/models"
	"shuno-backend/services"
	"shuno-backend/utils"
)

type PricePeriodController struct {
	Periods *services.PricePeriodService
	Prices  *services.PriceService
}

func NewPricePeriodController(periods *services.PricePeriodService, prices *services.PriceService) *PricePeriodController {
	return &PricePeriodController{Periods: periods, Prices: prices}
}

func (pc *PricePeriodController) GetPeriods(c *gin.Context) {
	// optional ?productId= filter
	if raw := c.Query("productId"); raw != "" {
		productID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid productId")
			return
		}
		periods, err := pc.Periods.GetByProduct(uint(productID))
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to load price periods")
			return
		}
		utils.JSONList(c, http.StatusOK, periods, len(periods))
		return
	}

	periods, err := pc.Periods.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load price periods")
		return
	}
	utils.JSONList(c, http.StatusOK, periods, len(periods))
}

func (pc *PricePeriodController) GetPeriod(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	period, err := pc.Periods.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "price period not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load price period")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, period)
}

func (pc *PricePeriodController) CreatePeriod(c *gin.Context) {
	var period models.PricePeriod
	if err := c.ShouldBindJSON(&period); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := pc.Periods.Create(&period); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDateRange):
			utils.JSONError(c, http.StatusBadRequest, "endDate must be after startDate")
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.JSONError(c, http.StatusNotFound, "product not found")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to create price period")
		}
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, period)
}

func (pc *PricePeriodController) UpdatePeriod(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var update models.PricePeriod
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	period, err := pc.Periods.Update(id, &update)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDateRange):
			utils.JSONError(c, http.StatusBadRequest, "endDate must be after startDate")
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.JSONError(c, http.StatusNotFound, "price period not found")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to update price period")
		}
		return
	}
	utils.JSONSuccess(c, http.StatusOK, period)
}

func (pc *PricePeriodController) DeletePeriod(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := pc.Periods.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "price period not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete price period")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "price period deleted")
}

// Calculate quotes a stay: GET /api/price-periods/product/:productId/calculate
// with checkIn/checkOut query params as YYYY-MM-DD.
func (pc *PricePeriodController) Calculate(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil || productID == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid productId")
		return
	}

	checkIn, err := time.Parse("2006-01-02", c.Query("checkIn"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "checkIn must be YYYY-MM-DD")
		return
	}
	checkOut, err := time.Parse("2006-01-02", c.Query("checkOut"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "checkOut must be YYYY-MM-DD")
		return
	}

	quote, err := pc.Prices.CalculateRange(uint(productID), checkIn, checkOut)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDateRange):
			utils.JSONError(c, http.StatusBadRequest, "check-out must be after check-in")
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.JSONError(c, http.StatusNotFound, "product not found")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to calculate price")
		}
		return
	}
	utils.JSONSuccess(c, http.StatusOK, quote)
}
