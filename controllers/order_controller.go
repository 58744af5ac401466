package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"shuno-backend/middleware"
	"shuno-backend/models"
	"shuno-backend/services"
	"shuno-backend/utils"
)

type OrderController struct {
	Orders   *services.OrderService
	Payments *services.PaymentService
	Logger   zerolog.Logger
}

func NewOrderController(orders *services.OrderService, payments *services.PaymentService, logger zerolog.Logger) *OrderController {
	return &OrderController{Orders: orders, Payments: payments, Logger: logger}
}

// GetOrders lists all orders (admin view).
func (oc *OrderController) GetOrders(c *gin.Context) {
	orders, err := oc.Orders.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load orders")
		return
	}
	utils.JSONList(c, http.StatusOK, orders, len(orders))
}

// GetMyBookings lists the authenticated user's own orders.
func (oc *OrderController) GetMyBookings(c *gin.Context) {
	orders, err := oc.Orders.GetByUser(middleware.UserID(c))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load bookings")
		return
	}
	utils.JSONList(c, http.StatusOK, orders, len(orders))
}

// GetOrder returns one order. Users only see their own; admins see all.
func (oc *OrderController) GetOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	order, err := oc.Orders.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "order not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load order")
		return
	}

	if middleware.Role(c) != models.RoleAdmin && order.UserID != middleware.UserID(c) {
		utils.JSONError(c, http.StatusForbidden, "not your booking")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, order)
}

type createOrderPayload struct {
	ProductID uint   `json:"productId" binding:"required"`
	CheckIn   string `json:"checkIn" binding:"required"`
	CheckOut  string `json:"checkOut" binding:"required"`
	Guests    int    `json:"guests" binding:"required,gt=0"`
	Notes     string `json:"notes"`
}

// CreateOrder books a stay for the authenticated user.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var payload createOrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	checkIn, err := time.Parse("2006-01-02", payload.CheckIn)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "checkIn must be YYYY-MM-DD")
		return
	}
	checkOut, err := time.Parse("2006-01-02", payload.CheckOut)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "checkOut must be YYYY-MM-DD")
		return
	}

	order := models.Order{
		UserID:    middleware.UserID(c),
		ProductID: payload.ProductID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Guests:    payload.Guests,
		Notes:     payload.Notes,
	}

	if err := oc.Orders.Create(&order); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDateRange):
			utils.JSONError(c, http.StatusBadRequest, "check-out must be after check-in")
		case errors.Is(err, services.ErrTooManyGuests):
			utils.JSONError(c, http.StatusBadRequest, "guest count exceeds property capacity")
		case errors.Is(err, services.ErrPropertyUnavailable):
			utils.JSONError(c, http.StatusBadRequest, "property is not available")
		case errors.Is(err, services.ErrBookingConflict):
			utils.JSONError(c, http.StatusConflict, "property already booked for these dates")
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.JSONError(c, http.StatusNotFound, "product not found")
		default:
			oc.Logger.Error().Err(err).Msg("order create failed")
			utils.JSONError(c, http.StatusInternalServerError, "failed to create booking")
		}
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, order)
}

type updateOrderPayload struct {
	Status models.OrderStatus `json:"status"`
	Notes  *string            `json:"notes"`
}

// UpdateOrder applies admin changes: a guarded status transition and/or
// new notes.
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var payload updateOrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	var order *models.Order
	var err error

	if payload.Status != "" {
		order, err = oc.Orders.UpdateStatus(id, payload.Status)
		if err != nil {
			if errors.Is(err, services.ErrInvalidTransition) {
				utils.JSONError(c, http.StatusUnprocessableEntity, err.Error())
				return
			}
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.JSONError(c, http.StatusNotFound, "order not found")
				return
			}
			utils.JSONError(c, http.StatusInternalServerError, "failed to update order")
			return
		}
	}

	if payload.Notes != nil {
		order, err = oc.Orders.UpdateNotes(id, *payload.Notes)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.JSONError(c, http.StatusNotFound, "order not found")
				return
			}
			utils.JSONError(c, http.StatusInternalServerError, "failed to update order")
			return
		}
	}

	if order == nil {
		utils.JSONError(c, http.StatusBadRequest, "nothing to update")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, order)
}

// DeleteOrder removes the order row. A real delete, not soft.
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := oc.Orders.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "order not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete order")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "order deleted")
}

type paymentIntentPayload struct {
	OrderID  uint   `json:"orderId" binding:"required"`
	Currency string `json:"currency"`
}

// CreatePaymentIntent issues a payment intent for one of the caller's
// orders.
func (oc *OrderController) CreatePaymentIntent(c *gin.Context) {
	var payload paymentIntentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	order, err := oc.Orders.GetByID(payload.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "order not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load order")
		return
	}
	if middleware.Role(c) != models.RoleAdmin && order.UserID != middleware.UserID(c) {
		utils.JSONError(c, http.StatusForbidden, "not your booking")
		return
	}

	intent, err := oc.Payments.CreateIntent(c.Request.Context(), order.TotalPrice, payload.Currency, order.ReferenceCode)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create payment intent")
		return
	}

	if err := oc.Orders.SetPaymentIntent(order.ID, intent.ID); err != nil {
		oc.Logger.Warn().Err(err).Uint("order_id", order.ID).Msg("failed to store payment intent id")
	}
	utils.JSONSuccess(c, http.StatusCreated, intent)
}
