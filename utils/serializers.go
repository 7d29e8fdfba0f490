package utils

import (
	"time"

	"github.com/shopspring/decimal"

	"cresly-pos/models"
)

// OrderSnapshot is the wire shape shared by the REST responses and the
// websocket fan-out. Lines are reconstructed from the persisted rows, with
// dish names resolved through the preloaded menu slots.
type OrderSnapshot struct {
	ID                  uint            `json:"id"`
	Number              string          `json:"number"`
	DailySequenceNumber int             `json:"daily_sequence_number"`
	Type                string          `json:"type"`
	PaymentMethod       string          `json:"payment_method"`
	State               string          `json:"state"`
	BusinessDate        string          `json:"business_date"`
	TableNumber         *int            `json:"table_number,omitempty"`
	Contact             *string         `json:"contact,omitempty"`
	ReservedSubtype     *string         `json:"reserved_subtype,omitempty"`
	GeneralNotes        *string         `json:"general_notes,omitempty"`
	Total               decimal.Decimal `json:"total"`
	CreatedAt           time.Time       `json:"created_at"`
	Lines               []LineSnapshot  `json:"lines"`
}

type LineSnapshot struct {
	ID           uint            `json:"id"`
	Kind         string          `json:"kind"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Note         *string         `json:"note,omitempty"`
	SoupSlotID   *uint           `json:"soup_slot_id,omitempty"`
	SecondSlotID *uint           `json:"second_slot_id,omitempty"`
	JuiceSlotID  *uint           `json:"juice_slot_id,omitempty"`
	ExtraSlotID  *uint           `json:"extra_slot_id,omitempty"`
	Components   []string        `json:"components"`
}

func SerializeOrder(o *models.Order) OrderSnapshot {
	snap := OrderSnapshot{
		ID:                  o.ID,
		Number:              o.DisplayNumber(),
		DailySequenceNumber: o.DailySequenceNumber,
		Type:                o.Type,
		PaymentMethod:       o.PaymentMethod,
		State:               o.State,
		BusinessDate:        o.BusinessDate,
		TableNumber:         o.TableNumber,
		Contact:             o.Contact,
		ReservedSubtype:     o.ReservedSubtype,
		GeneralNotes:        o.GeneralNotes,
		Total:               o.Total,
		CreatedAt:           o.CreatedAt,
		Lines:               make([]LineSnapshot, 0, len(o.Lines)),
	}
	for i := range o.Lines {
		snap.Lines = append(snap.Lines, serializeLine(&o.Lines[i]))
	}
	return snap
}

func serializeLine(l *models.OrderLine) LineSnapshot {
	snap := LineSnapshot{
		ID:           l.ID,
		Kind:         l.Kind,
		Quantity:     l.Quantity,
		UnitPrice:    l.UnitPrice,
		Note:         l.Note,
		SoupSlotID:   l.SoupSlotID,
		SecondSlotID: l.SecondSlotID,
		JuiceSlotID:  l.JuiceSlotID,
		ExtraSlotID:  l.ExtraSlotID,
		Components:   []string{},
	}
	for _, slot := range []*models.MenuDaySlot{l.SoupSlot, l.SecondSlot, l.JuiceSlot, l.ExtraSlot} {
		if slot != nil && slot.Dish != nil {
			snap.Components = append(snap.Components, slot.Dish.Name)
		}
	}
	return snap
}
