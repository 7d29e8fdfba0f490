package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderTypeDineIn   = "dine_in"
	OrderTypeReserved = "reserved"
	OrderTypeToGo     = "to_go"

	PaymentCash     = "cash"
	PaymentTransfer = "transfer"

	OrderStatePending   = "pending"
	OrderStateCompleted = "completed"
)

const (
	LineKindCombo      = "combo"
	LineKindSoupOnly   = "soup_only"
	LineKindSecondOnly = "second_only"
	LineKindExtra      = "extra"
)

type Order struct {
	ID                  uint            `gorm:"primaryKey" json:"id"`
	Type                string          `gorm:"type:varchar(20);not null" json:"type"`
	PaymentMethod       string          `gorm:"type:varchar(20);not null;default:'cash'" json:"payment_method"`
	State               string          `gorm:"type:varchar(20);not null;default:'pending'" json:"state"`
	BusinessDate        string          `gorm:"type:varchar(10);not null;index:idx_orders_date_seq" json:"business_date"`
	DailySequenceNumber int             `gorm:"not null;index:idx_orders_date_seq" json:"daily_sequence_number"`
	TableNumber         *int            `json:"table_number,omitempty"`
	Contact             *string         `gorm:"type:varchar(100)" json:"contact,omitempty"`
	ReservedSubtype     *string         `gorm:"type:varchar(50)" json:"reserved_subtype,omitempty"`
	GeneralNotes        *string         `gorm:"type:text" json:"general_notes,omitempty"`
	Total               decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"total"`
	Lines               []OrderLine     `json:"lines"`
	CreatedAt           time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt           gorm.DeletedAt  `gorm:"index" json:"-"`
}

// DisplayNumber renders the per-day sequence as the 3-digit ticket number.
func (o *Order) DisplayNumber() string {
	return fmt.Sprintf("%03d", o.DailySequenceNumber)
}

// OrderLine references today's menu slots, never dishes directly: a line can
// only exist against the day's configuration. UnitPrice is snapshotted at
// creation and never recomputed from the catalog.
type OrderLine struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	OrderID      uint            `gorm:"index;not null" json:"order_id"`
	Kind         string          `gorm:"type:varchar(20);not null" json:"kind"`
	SoupSlotID   *uint           `json:"soup_slot_id,omitempty"`
	SecondSlotID *uint           `json:"second_slot_id,omitempty"`
	JuiceSlotID  *uint           `json:"juice_slot_id,omitempty"`
	ExtraSlotID  *uint           `json:"extra_slot_id,omitempty"`
	SoupSlot     *MenuDaySlot    `gorm:"foreignKey:SoupSlotID" json:"-"`
	SecondSlot   *MenuDaySlot    `gorm:"foreignKey:SecondSlotID" json:"-"`
	JuiceSlot    *MenuDaySlot    `gorm:"foreignKey:JuiceSlotID" json:"-"`
	ExtraSlot    *MenuDaySlot    `gorm:"foreignKey:ExtraSlotID" json:"-"`
	Quantity     int             `gorm:"not null;default:1" json:"quantity"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"unit_price"`
	Note         *string         `gorm:"type:varchar(200)" json:"note,omitempty"`
}

// IdentityKey is the composite the reconciler diffs on: kind plus referenced
// slot ids, excluding quantity and note.
func (l *OrderLine) IdentityKey() string {
	return LineIdentityKey(l.Kind, l.SoupSlotID, l.SecondSlotID, l.JuiceSlotID, l.ExtraSlotID)
}

func LineIdentityKey(kind string, soup, second, juice, extra *uint) string {
	id := func(p *uint) uint {
		if p == nil {
			return 0
		}
		return *p
	}
	switch kind {
	case LineKindCombo:
		return fmt.Sprintf("combo_%d_%d_%d", id(soup), id(second), id(juice))
	case LineKindSoupOnly:
		return fmt.Sprintf("soup_%d_%d", id(soup), id(juice))
	case LineKindSecondOnly:
		return fmt.Sprintf("second_%d_%d", id(second), id(juice))
	case LineKindExtra:
		return fmt.Sprintf("extra_%d", id(extra))
	}
	return ""
}
