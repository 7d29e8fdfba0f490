package services

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"cresly-pos/models"
)

// InventoryService is the daily dish-quantity ledger. It only ever adjusts
// slots of today's menu configuration; selling without a configured menu is
// allowed and simply leaves no ledger trail.
type InventoryService struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewInventoryService(db *gorm.DB, log *logrus.Logger) *InventoryService {
	return &InventoryService{db: db, log: log}
}

// TodaySlots returns the remaining/configured snapshot for today's menu.
func (s *InventoryService) TodaySlots() ([]models.MenuDaySlot, error) {
	var menu models.MenuDay
	err := s.db.Where("date = ?", today()).First(&menu).Error
	if err == gorm.ErrRecordNotFound {
		return []models.MenuDaySlot{}, nil
	}
	if err != nil {
		return nil, err
	}

	var slots []models.MenuDaySlot
	if err := s.db.Preload("Dish").Where("menu_day_id = ?", menu.ID).Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

// ApplyLine adjusts the slots referenced by one order line. direction is -1
// when the line is consumed and +1 when its effect is reversed. Combos hit
// both the soup and the second slot; extras never touch inventory.
func (s *InventoryService) ApplyLine(tx *gorm.DB, line *models.OrderLine, direction int) error {
	delta := direction * line.Quantity
	if delta == 0 {
		return nil
	}

	switch line.Kind {
	case models.LineKindCombo:
		if err := s.adjustSlot(tx, line.SoupSlotID, delta); err != nil {
			return err
		}
		return s.adjustSlot(tx, line.SecondSlotID, delta)
	case models.LineKindSoupOnly:
		return s.adjustSlot(tx, line.SoupSlotID, delta)
	case models.LineKindSecondOnly:
		return s.adjustSlot(tx, line.SecondSlotID, delta)
	}
	return nil
}

// adjustSlot is a single clamped UPDATE so concurrent adjustments to the same
// slot never lose writes and remaining_quantity never drops below zero.
func (s *InventoryService) adjustSlot(tx *gorm.DB, slotID *uint, delta int) error {
	if slotID == nil {
		s.log.WithField("delta", delta).Warn("inventory adjustment skipped: no menu slot configured")
		return nil
	}

	err := tx.Model(&models.MenuDaySlot{}).
		Where("id = ?", *slotID).
		Update("remaining_quantity", gorm.Expr(
			"CASE WHEN remaining_quantity + ? < 0 THEN 0 ELSE remaining_quantity + ? END", delta, delta,
		)).Error
	if err != nil {
		return err
	}

	if delta < 0 {
		var remaining int
		if err := tx.Model(&models.MenuDaySlot{}).Where("id = ?", *slotID).
			Select("remaining_quantity").Scan(&remaining).Error; err == nil && remaining == 0 {
			s.log.WithFields(logrus.Fields{
				"slot_id": *slotID,
				"delta":   delta,
			}).Warn("menu slot exhausted, remaining quantity clamped at zero")
		}
	}
	return nil
}
