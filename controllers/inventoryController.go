package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cresly-pos/services"
)

type InventoryController struct {
	svc *services.InventoryService
}

func NewInventoryController(svc *services.InventoryService) *InventoryController {
	return &InventoryController{svc: svc}
}

// GetInventory returns today's remaining/configured quantities per menu slot.
func (ctl *InventoryController) GetInventory(c *gin.Context) {
	slots, err := ctl.svc.TodaySlots()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "slots": slots})
}
