package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cresly-pos/services"
)

type RegisterController struct {
	svc *services.RegisterService
}

func NewRegisterController(svc *services.RegisterService) *RegisterController {
	return &RegisterController{svc: svc}
}

func (ctl *RegisterController) Open(c *gin.Context) {
	var req services.OpenRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	register, err := ctl.svc.Open(req)
	if err != nil {
		if errors.Is(err, services.ErrRegisterAlreadyOpen) {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "ok", "register": register})
}

func (ctl *RegisterController) Close(c *gin.Context) {
	var req services.CloseRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	register, summary, err := ctl.svc.Close(req)
	if err != nil {
		if errors.Is(err, services.ErrNoOpenRegister) {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "register": register, "summary": summary})
}

func (ctl *RegisterController) Current(c *gin.Context) {
	register, err := ctl.svc.Current()
	if err != nil {
		if errors.Is(err, services.ErrNoOpenRegister) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "register": register})
}

func (ctl *RegisterController) AddExpense(c *gin.Context) {
	var req services.AddExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	expense, err := ctl.svc.AddExpense(req)
	if err != nil {
		if errors.Is(err, services.ErrNoOpenRegister) {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "ok", "expense": expense})
}
