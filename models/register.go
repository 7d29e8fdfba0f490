package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RegisterStateOpen   = "open"
	RegisterStateClosed = "closed"
)

const (
	ExpenseSupplies = "supplies"
	ExpenseServices = "services"
	ExpenseOther    = "other"
)

// Subledger tracks one payment method inside a register session. TotalSales
// accumulates only from orders transitioning to completed while the register
// is open.
type Subledger struct {
	OpeningAmount decimal.Decimal  `gorm:"type:decimal(10,2);not null;default:0" json:"opening_amount"`
	ClosingAmount *decimal.Decimal `gorm:"type:decimal(10,2)" json:"closing_amount,omitempty"`
	TotalSales    decimal.Decimal  `gorm:"type:decimal(10,2);not null;default:0" json:"total_sales"`
}

// CashRegister is one open/close cycle. At most one row may be in the open
// state at any time; closing is terminal and a new open creates a new row.
type CashRegister struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	State    string     `gorm:"type:varchar(20);not null;default:'open';index" json:"state"`
	OpenedAt time.Time  `gorm:"autoCreateTime" json:"opened_at"`
	ClosedAt *time.Time `json:"closed_at,omitempty"`
	Notes    string     `gorm:"type:text" json:"notes"`
	Cash     Subledger  `gorm:"embedded;embeddedPrefix:cash_" json:"cash"`
	Transfer Subledger  `gorm:"embedded;embeddedPrefix:transfer_" json:"transfer"`
	Expenses []Expense  `json:"expenses,omitempty"`
}

func (r *CashRegister) TotalSales() decimal.Decimal {
	return r.Cash.TotalSales.Add(r.Transfer.TotalSales)
}

type Expense struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	CashRegisterID uint            `gorm:"index;not null" json:"cash_register_id"`
	Description    string          `gorm:"type:varchar(200);not null" json:"description"`
	Amount         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Category       string          `gorm:"type:varchar(50);not null;default:'other'" json:"category"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
}
