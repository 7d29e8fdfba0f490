package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cresly-pos/services"
)

type OrderController struct {
	svc *services.OrderService
}

func NewOrderController(svc *services.OrderService) *OrderController {
	return &OrderController{svc: svc}
}

// SubmitCart creates a new order, or reconciles an existing one when the
// payload carries an order_id.
func (ctl *OrderController) SubmitCart(c *gin.Context) {
	var req services.SubmitCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	order, err := ctl.svc.SubmitCart(req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrOrderNotFound) {
			status = http.StatusNotFound
		}
		if !isValidationError(err) && status != http.StatusNotFound {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"order_id": order.ID,
		"order":    order,
	})
}

func (ctl *OrderController) GetPendingOrders(c *gin.Context) {
	orders, err := ctl.svc.PendingOrders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "orders": orders})
}

func (ctl *OrderController) GetTodayOrders(c *gin.Context) {
	orders, err := ctl.svc.TodayOrders()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "orders": orders})
}

func (ctl *OrderController) GetOrderByID(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid order id"})
		return
	}

	order, err := ctl.svc.GetOrder(id)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "order": order})
}

// CompleteOrders marks one or many orders as completed.
func (ctl *OrderController) CompleteOrders(c *gin.Context) {
	var input struct {
		OrderIDs []uint `json:"order_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	count, err := ctl.svc.CompleteOrders(input.OrderIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "count": count})
}

func (ctl *OrderController) DeleteOrder(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid order id"})
		return
	}

	if err := ctl.svc.DeleteOrder(id); err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": err.Error()})
		case errors.Is(err, services.ErrOrderNotPending):
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "order deleted"})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	return uint(id), err
}

func isValidationError(err error) bool {
	return errors.Is(err, services.ErrEmptyCart) ||
		errors.Is(err, services.ErrInvalidOrderType) ||
		errors.Is(err, services.ErrInvalidPayment) ||
		errors.Is(err, services.ErrOrderNotPending)
}
