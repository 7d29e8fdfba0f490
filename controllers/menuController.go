package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"cresly-pos/models"
	"cresly-pos/services"
)

type MenuController struct {
	db *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{db: db}
}

// ConfigureDay sets up (or replaces) the menu for a date. Replacing resets
// every slot's remaining quantity to its configured quantity.
func (ctl *MenuController) ConfigureDay(c *gin.Context) {
	var input struct {
		Date      *string `json:"date"`
		DessertID *uint   `json:"dessert_id"`
		Slots     []struct {
			DishID             uint    `json:"dish_id" binding:"required"`
			Category           string  `json:"category" binding:"required"`
			Note               *string `json:"note"`
			ConfiguredQuantity int     `json:"configured_quantity"`
		} `json:"slots" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	date := services.BusinessDate(time.Now())
	if input.Date != nil && *input.Date != "" {
		date = *input.Date
	}

	var menu models.MenuDay
	err := ctl.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(models.MenuDay{Date: date}).
			Assign(models.MenuDay{DessertID: input.DessertID}).
			FirstOrCreate(&menu).Error; err != nil {
			return err
		}
		if err := tx.Where("menu_day_id = ?", menu.ID).Delete(&models.MenuDaySlot{}).Error; err != nil {
			return err
		}

		for _, slot := range input.Slots {
			var dish models.Dish
			if err := tx.First(&dish, slot.DishID).Error; err != nil {
				continue
			}
			row := models.MenuDaySlot{
				MenuDayID:          menu.ID,
				DishID:             slot.DishID,
				Category:           slot.Category,
				Note:               slot.Note,
				ConfiguredQuantity: slot.ConfiguredQuantity,
				RemainingQuantity:  slot.ConfiguredQuantity,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "menu_day_id": menu.ID})
}

// GetToday returns today's menu plus the price catalog.
func (ctl *MenuController) GetToday(c *gin.Context) {
	date := services.BusinessDate(time.Now())

	var menu models.MenuDay
	err := ctl.db.Preload("Dessert").Preload("Slots.Dish").
		Where("date = ?", date).First(&menu).Error
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "no menu configured for today"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	var products []models.Product
	if err := ctl.db.Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "menu": menu, "products": products})
}
