package services

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"cresly-pos/models"
)

// resolvedLine is one cart descriptor validated against the day's menu and
// flattened to order-line granularity (extras expanded one per dish).
type resolvedLine struct {
	kind      string
	soupID    *uint
	secondID  *uint
	juiceID   *uint
	extraID   *uint
	quantity  int
	unitPrice decimal.Decimal
	note      *string
}

func (r *resolvedLine) key() string {
	return models.LineIdentityKey(r.kind, r.soupID, r.secondID, r.juiceID, r.extraID)
}

func (r *resolvedLine) toModel(orderID uint) models.OrderLine {
	return models.OrderLine{
		OrderID:      orderID,
		Kind:         r.kind,
		SoupSlotID:   r.soupID,
		SecondSlotID: r.secondID,
		JuiceSlotID:  r.juiceID,
		ExtraSlotID:  r.extraID,
		Quantity:     r.quantity,
		UnitPrice:    r.unitPrice,
		Note:         r.note,
	}
}

// resolveCart validates every cart line against the menu configured for the
// order's business date. Lines referencing slots that are not on that menu
// are skipped with a warning, never fatal to the rest of the cart. Duplicate
// identities collapse to the last occurrence.
func (s *OrderService) resolveCart(date, orderType string, lines []CartLine) []resolvedLine {
	slots := s.menuSlots(date)

	var resolved []resolvedLine
	index := make(map[string]int)

	add := func(r resolvedLine) {
		if i, ok := index[r.key()]; ok {
			resolved[i] = r
			return
		}
		index[r.key()] = len(resolved)
		resolved = append(resolved, r)
	}

	skip := func(line CartLine, reason string) {
		s.log.WithFields(logrus.Fields{
			"kind":   line.Kind,
			"reason": reason,
		}).Warn("cart line skipped")
	}

	for _, line := range lines {
		price := line.UnitPrice
		if price.IsZero() {
			price = s.quotePrice(line.Kind, orderType)
		}

		switch line.Kind {
		case models.LineKindCombo:
			if !hasSlot(slots, line.SoupSlotID, models.DishKindSoup) ||
				!hasSlot(slots, line.SecondSlotID, models.DishKindSecond) ||
				!hasSlot(slots, line.JuiceSlotID, models.DishKindJuice) {
				skip(line, "referenced dish not on today's menu")
				continue
			}
			add(resolvedLine{
				kind: models.LineKindCombo, soupID: line.SoupSlotID, secondID: line.SecondSlotID,
				juiceID: line.JuiceSlotID, quantity: line.Quantity, unitPrice: price, note: line.Note,
			})

		case models.LineKindSoupOnly:
			if !hasSlot(slots, line.SoupSlotID, models.DishKindSoup) ||
				!hasSlot(slots, line.JuiceSlotID, models.DishKindJuice) {
				skip(line, "referenced dish not on today's menu")
				continue
			}
			add(resolvedLine{
				kind: models.LineKindSoupOnly, soupID: line.SoupSlotID, juiceID: line.JuiceSlotID,
				quantity: line.Quantity, unitPrice: price, note: line.Note,
			})

		case models.LineKindSecondOnly:
			if !hasSlot(slots, line.SecondSlotID, models.DishKindSecond) ||
				!hasSlot(slots, line.JuiceSlotID, models.DishKindJuice) {
				skip(line, "referenced dish not on today's menu")
				continue
			}
			add(resolvedLine{
				kind: models.LineKindSecondOnly, secondID: line.SecondSlotID, juiceID: line.JuiceSlotID,
				quantity: line.Quantity, unitPrice: price, note: line.Note,
			})

		case models.LineKindExtra:
			// One order line per selected extra, so removing a single extra
			// later reconciles against its own identity.
			for _, extraID := range line.ExtraSlotIDs {
				id := extraID
				if !hasSlot(slots, &id, models.DishKindExtra) {
					skip(line, "extra dish not on today's menu")
					continue
				}
				add(resolvedLine{
					kind: models.LineKindExtra, extraID: &id,
					quantity: line.Quantity, unitPrice: price, note: line.Note,
				})
			}

		default:
			skip(line, "unknown line kind")
		}
	}
	return resolved
}

func hasSlot(slots map[uint]models.MenuDaySlot, id *uint, category string) bool {
	if id == nil {
		return false
	}
	slot, ok := slots[*id]
	return ok && slot.Category == category
}

func (s *OrderService) menuSlots(date string) map[uint]models.MenuDaySlot {
	byID := make(map[uint]models.MenuDaySlot)

	var menu models.MenuDay
	if err := s.db.Where("date = ?", date).First(&menu).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			s.log.WithError(err).Error("failed to load menu day")
		}
		return byID
	}

	var slots []models.MenuDaySlot
	if err := s.db.Where("menu_day_id = ?", menu.ID).Find(&slots).Error; err != nil {
		s.log.WithError(err).Error("failed to load menu slots")
		return byID
	}
	for _, slot := range slots {
		byID[slot.ID] = slot
	}
	return byID
}

var productForKind = map[string]string{
	models.LineKindCombo:      models.ProductCombo,
	models.LineKindSoupOnly:   models.ProductSoup,
	models.LineKindSecondOnly: models.ProductSecond,
	models.LineKindExtra:      models.ProductExtra,
}

// quotePrice falls back to the price catalog when the cart did not snapshot a
// unit price itself.
func (s *OrderService) quotePrice(kind, orderType string) decimal.Decimal {
	name, ok := productForKind[kind]
	if !ok {
		return decimal.Zero
	}
	var product models.Product
	if err := s.db.Where("name = ?", name).First(&product).Error; err != nil {
		return decimal.Zero
	}
	if orderType == models.OrderTypeToGo {
		return product.PriceToGo
	}
	return product.PriceDineIn
}
