package services

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"cresly-pos/config"
	"cresly-pos/models"
	"cresly-pos/printing"
	"cresly-pos/utils"
)

// Broadcaster is the fan-out boundary. Delivery is fire-and-forget: a failed
// or dropped send never fails the originating mutation.
type Broadcaster interface {
	BroadcastOrders(message interface{})
	DispatchPrintJob(content []string, printers []string)
}

// OrderService turns submitted carts into persisted orders: numbering,
// line reconciliation, inventory effects, totals, completion and deletion.
type OrderService struct {
	db        *gorm.DB
	inventory *InventoryService
	registers *RegisterService
	events    Broadcaster
	sequencer *DailySequencer
	locks     *utils.KeyedMutex
	log       *logrus.Logger
}

func NewOrderService(db *gorm.DB, inventory *InventoryService, registers *RegisterService, events Broadcaster, log *logrus.Logger) *OrderService {
	return &OrderService{
		db:        db,
		inventory: inventory,
		registers: registers,
		events:    events,
		sequencer: NewDailySequencer(),
		locks:     utils.NewKeyedMutex(),
		log:       log,
	}
}

// CartLine is one descriptor of the submitted cart. An extra entry may carry
// several slot ids and expands into one order line per id.
type CartLine struct {
	Kind         string          `json:"kind" binding:"required"`
	SoupSlotID   *uint           `json:"soup_slot_id"`
	SecondSlotID *uint           `json:"second_slot_id"`
	JuiceSlotID  *uint           `json:"juice_slot_id"`
	ExtraSlotIDs []uint          `json:"extra_slot_ids"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Note         *string         `json:"note"`
}

type SubmitCartRequest struct {
	OrderID         *uint      `json:"order_id"`
	Type            string     `json:"type" binding:"required"`
	PaymentMethod   string     `json:"payment_method"`
	TableNumber     *int       `json:"table_number"`
	Contact         *string    `json:"contact"`
	ReservedSubtype *string    `json:"reserved_subtype"`
	GeneralNotes    *string    `json:"general_notes"`
	AppendOnly      bool       `json:"append_only"`
	Lines           []CartLine `json:"lines"`
}

// SubmitCart creates a new order or reconciles an existing one, depending on
// whether the request names an order id.
func (s *OrderService) SubmitCart(req SubmitCartRequest) (*utils.OrderSnapshot, error) {
	if err := normalizeRequest(&req); err != nil {
		return nil, err
	}
	if req.OrderID != nil {
		return s.editOrder(req)
	}
	return s.createOrder(req)
}

func normalizeRequest(req *SubmitCartRequest) error {
	switch req.Type {
	case models.OrderTypeDineIn, models.OrderTypeReserved, models.OrderTypeToGo:
	default:
		return ErrInvalidOrderType
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = models.PaymentCash
	}
	switch req.PaymentMethod {
	case models.PaymentCash, models.PaymentTransfer:
	default:
		return ErrInvalidPayment
	}
	if len(req.Lines) == 0 {
		return ErrEmptyCart
	}
	return nil
}

func (s *OrderService) createOrder(req SubmitCartRequest) (*utils.OrderSnapshot, error) {
	date := today()
	resolved := s.resolveCart(date, req.Type, req.Lines)

	var kept []resolvedLine
	for _, r := range resolved {
		if r.quantity > 0 {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		return nil, ErrEmptyCart
	}

	var order models.Order
	err := s.sequencer.CreateWithNumber(s.db, date, func(tx *gorm.DB, seq int) error {
		order = models.Order{
			Type:                req.Type,
			PaymentMethod:       req.PaymentMethod,
			State:               models.OrderStatePending,
			BusinessDate:        date,
			DailySequenceNumber: seq,
			TableNumber:         req.TableNumber,
			Contact:             req.Contact,
			GeneralNotes:        req.GeneralNotes,
		}
		if req.Type == models.OrderTypeReserved {
			order.ReservedSubtype = req.ReservedSubtype
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, r := range kept {
			line := r.toModel(order.ID)
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
			if err := s.inventory.ApplyLine(tx, &line, -1); err != nil {
				return err
			}
		}
		return s.recomputeTotal(tx, &order)
	})
	if err != nil {
		return nil, err
	}

	snap, err := s.GetOrder(order.ID)
	if err != nil {
		return nil, err
	}
	s.publish("order_created", snap)
	s.dispatchTicket(snap)
	return snap, nil
}

func (s *OrderService) editOrder(req SubmitCartRequest) (*utils.OrderSnapshot, error) {
	unlock := s.locks.Lock(*req.OrderID)
	defer unlock()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, *req.OrderID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrOrderNotFound
			}
			return err
		}
		if order.State != models.OrderStatePending {
			return ErrOrderNotPending
		}

		resolved := s.resolveCart(order.BusinessDate, req.Type, req.Lines)

		var existing []models.OrderLine
		if err := tx.Where("order_id = ?", order.ID).Find(&existing).Error; err != nil {
			return err
		}

		// Reverse the prior inventory effect before touching anything, then
		// re-apply for the final set below. The other way around over-clamps.
		for i := range existing {
			if err := s.inventory.ApplyLine(tx, &existing[i], 1); err != nil {
				return err
			}
		}

		existingByKey := make(map[string]*models.OrderLine, len(existing))
		for i := range existing {
			existingByKey[existing[i].IdentityKey()] = &existing[i]
		}

		processed := make(map[string]bool)
		for _, r := range resolved {
			key := r.key()
			if processed[key] {
				continue
			}
			processed[key] = true

			if line, ok := existingByKey[key]; ok {
				if r.quantity <= 0 {
					if err := tx.Delete(line).Error; err != nil {
						return err
					}
					continue
				}
				line.Quantity = r.quantity
				line.Note = r.note
				if err := tx.Save(line).Error; err != nil {
					return err
				}
				continue
			}
			if r.quantity <= 0 {
				continue
			}
			line := r.toModel(order.ID)
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
		}

		// Lines dropped from the cart disappear, unless the caller is only
		// appending to an already-fired order.
		if !req.AppendOnly {
			for key, line := range existingByKey {
				if !processed[key] {
					if err := tx.Delete(line).Error; err != nil {
						return err
					}
				}
			}
		}

		order.Type = req.Type
		order.PaymentMethod = req.PaymentMethod
		order.TableNumber = req.TableNumber
		order.Contact = req.Contact
		order.GeneralNotes = req.GeneralNotes
		order.ReservedSubtype = nil
		if req.Type == models.OrderTypeReserved {
			order.ReservedSubtype = req.ReservedSubtype
		}
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		var final []models.OrderLine
		if err := tx.Where("order_id = ?", order.ID).Find(&final).Error; err != nil {
			return err
		}
		for i := range final {
			if err := s.inventory.ApplyLine(tx, &final[i], -1); err != nil {
				return err
			}
		}
		return s.recomputeTotal(tx, &order)
	})
	if err != nil {
		return nil, err
	}

	snap, err := s.GetOrder(*req.OrderID)
	if err != nil {
		return nil, err
	}
	s.publish("order_updated", snap)
	s.dispatchTicket(snap)
	return snap, nil
}

// CompleteOrders transitions pending orders to completed and credits the open
// register once per transition. Already-completed and unknown ids are skipped,
// so retrying the same batch is harmless.
func (s *OrderService) CompleteOrders(ids []uint) (int, error) {
	var completed []uint

	for _, id := range ids {
		unlock := s.locks.Lock(id)
		err := s.db.Transaction(func(tx *gorm.DB) error {
			var order models.Order
			if err := tx.First(&order, id).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					s.log.WithField("order_id", id).Warn("completion requested for unknown order")
					return nil
				}
				return err
			}
			if order.State != models.OrderStatePending {
				return nil
			}
			order.State = models.OrderStateCompleted
			if err := tx.Save(&order).Error; err != nil {
				return err
			}
			if err := s.registers.RecordSale(tx, &order); err != nil {
				return err
			}
			completed = append(completed, id)
			return nil
		})
		unlock()
		if err != nil {
			return len(completed), err
		}
	}

	for _, id := range completed {
		if snap, err := s.GetOrder(id); err == nil {
			s.publish("order_completed", snap)
		}
	}
	if len(ids) > 1 {
		s.broadcast(map[string]interface{}{
			"type":      "orders_completed",
			"order_ids": completed,
			"count":     len(completed),
		})
	}
	return len(completed), nil
}

// DeleteOrder removes a pending order after restoring every slot it consumed.
func (s *OrderService) DeleteOrder(id uint) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	var snap utils.OrderSnapshot
	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := loadOrder(tx, id)
		if err != nil {
			return err
		}
		if order.State != models.OrderStatePending {
			return ErrOrderNotPending
		}

		for i := range order.Lines {
			if err := s.inventory.ApplyLine(tx, &order.Lines[i], 1); err != nil {
				return err
			}
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderLine{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Order{}, order.ID).Error; err != nil {
			return err
		}
		snap = utils.SerializeOrder(order)
		return nil
	})
	if err != nil {
		return err
	}

	s.publish("order_deleted", &snap)
	return nil
}

func (s *OrderService) GetOrder(id uint) (*utils.OrderSnapshot, error) {
	order, err := loadOrder(s.db, id)
	if err != nil {
		return nil, err
	}
	snap := utils.SerializeOrder(order)
	return &snap, nil
}

func (s *OrderService) PendingOrders() ([]utils.OrderSnapshot, error) {
	return s.listOrders(s.db.Where("state = ?", models.OrderStatePending))
}

func (s *OrderService) TodayOrders() ([]utils.OrderSnapshot, error) {
	return s.listOrders(s.db.Where("business_date = ?", today()))
}

func (s *OrderService) listOrders(query *gorm.DB) ([]utils.OrderSnapshot, error) {
	var orders []models.Order
	err := withLinePreloads(query).Order("created_at desc").Find(&orders).Error
	if err != nil {
		return nil, err
	}
	snaps := make([]utils.OrderSnapshot, 0, len(orders))
	for i := range orders {
		snaps = append(snaps, utils.SerializeOrder(&orders[i]))
	}
	return snaps, nil
}

func loadOrder(db *gorm.DB, id uint) (*models.Order, error) {
	var order models.Order
	err := withLinePreloads(db).First(&order, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func withLinePreloads(db *gorm.DB) *gorm.DB {
	return db.Preload("Lines").
		Preload("Lines.SoupSlot.Dish").
		Preload("Lines.SecondSlot.Dish").
		Preload("Lines.JuiceSlot.Dish").
		Preload("Lines.ExtraSlot.Dish")
}

// recomputeTotal derives the order total strictly from the persisted lines.
// The client-submitted total is never trusted.
func (s *OrderService) recomputeTotal(tx *gorm.DB, order *models.Order) error {
	var lines []models.OrderLine
	if err := tx.Where("order_id = ?", order.ID).Find(&lines).Error; err != nil {
		return err
	}
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	order.Total = total
	return tx.Model(&models.Order{}).Where("id = ?", order.ID).Update("total", total).Error
}

func (s *OrderService) publish(event string, snap *utils.OrderSnapshot) {
	s.broadcast(map[string]interface{}{"type": event, "order": snap})
}

func (s *OrderService) broadcast(message map[string]interface{}) {
	if s.events == nil {
		return
	}
	s.events.BroadcastOrders(message)
}

func (s *OrderService) dispatchTicket(snap *utils.OrderSnapshot) {
	if s.events == nil {
		return
	}
	s.events.DispatchPrintJob(printing.Ticket(snap), config.PrinterIPs())
}
