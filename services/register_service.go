package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"cresly-pos/models"
)

// RegisterService owns the cash-register open/close state machine. A process
// mutex serializes open, close and sale recording so the single-open-register
// invariant cannot be raced.
type RegisterService struct {
	db  *gorm.DB
	mu  sync.Mutex
	log *logrus.Logger
}

func NewRegisterService(db *gorm.DB, log *logrus.Logger) *RegisterService {
	return &RegisterService{db: db, log: log}
}

type OpenRegisterRequest struct {
	OpeningCash     decimal.Decimal `json:"opening_cash"`
	OpeningTransfer decimal.Decimal `json:"opening_transfer"`
	Notes           string          `json:"notes"`
}

type CloseRegisterRequest struct {
	ClosingCash     decimal.Decimal `json:"closing_cash" binding:"required"`
	ClosingTransfer decimal.Decimal `json:"closing_transfer"`
	Note            string          `json:"note"`
}

type CloseSummary struct {
	TotalCash     decimal.Decimal `json:"total_cash"`
	TotalTransfer decimal.Decimal `json:"total_transfer"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
}

func (s *RegisterService) Open(req OpenRegisterRequest) (*models.CashRegister, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	register := models.CashRegister{
		State:    models.RegisterStateOpen,
		Notes:    req.Notes,
		Cash:     models.Subledger{OpeningAmount: req.OpeningCash},
		Transfer: models.Subledger{OpeningAmount: req.OpeningTransfer},
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var open int64
		if err := tx.Model(&models.CashRegister{}).
			Where("state = ?", models.RegisterStateOpen).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return ErrRegisterAlreadyOpen
		}
		return tx.Create(&register).Error
	})
	if err != nil {
		return nil, err
	}
	return &register, nil
}

func (s *RegisterService) Close(req CloseRegisterRequest) (*models.CashRegister, *CloseSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var register models.CashRegister
	var summary CloseSummary

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Expenses").
			Where("state = ?", models.RegisterStateOpen).
			First(&register).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNoOpenRegister
			}
			return err
		}

		now := time.Now()
		register.State = models.RegisterStateClosed
		register.ClosedAt = &now
		register.Cash.ClosingAmount = &req.ClosingCash
		register.Transfer.ClosingAmount = &req.ClosingTransfer
		if req.Note != "" {
			register.Notes = fmt.Sprintf("%s\nCierre: %s", register.Notes, req.Note)
		}
		return tx.Save(&register).Error
	})
	if err != nil {
		return nil, nil, err
	}

	summary.TotalCash = register.Cash.TotalSales
	summary.TotalTransfer = register.Transfer.TotalSales
	summary.TotalSales = register.TotalSales()
	for _, e := range register.Expenses {
		summary.TotalExpenses = summary.TotalExpenses.Add(e.Amount)
	}
	return &register, &summary, nil
}

func (s *RegisterService) Current() (*models.CashRegister, error) {
	var register models.CashRegister
	err := s.db.Preload("Expenses").
		Where("state = ?", models.RegisterStateOpen).
		First(&register).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNoOpenRegister
	}
	if err != nil {
		return nil, err
	}
	return &register, nil
}

// RecordSale credits a completed order's total to the open register's
// subledger for its payment method, inside the caller's transaction. With no
// open register the sale is not recorded anywhere; the warning is the only
// trace.
func (s *RegisterService) RecordSale(tx *gorm.DB, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var register models.CashRegister
	err := tx.Where("state = ?", models.RegisterStateOpen).First(&register).Error
	if err == gorm.ErrRecordNotFound {
		s.log.WithFields(logrus.Fields{
			"order_id": order.ID,
			"total":    order.Total.StringFixed(2),
		}).Warn("order completed with no open register, sale not recorded")
		return nil
	}
	if err != nil {
		return err
	}

	column := "cash_total_sales"
	if order.PaymentMethod == models.PaymentTransfer {
		column = "transfer_total_sales"
	}
	return tx.Model(&models.CashRegister{}).
		Where("id = ?", register.ID).
		Update(column, gorm.Expr(column+" + ?", order.Total)).Error
}

type AddExpenseRequest struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Category    string          `json:"category"`
}

func (s *RegisterService) AddExpense(req AddExpenseRequest) (*models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var register models.CashRegister
	err := s.db.Where("state = ?", models.RegisterStateOpen).First(&register).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNoOpenRegister
	}
	if err != nil {
		return nil, err
	}

	category := req.Category
	switch category {
	case models.ExpenseSupplies, models.ExpenseServices, models.ExpenseOther:
	default:
		category = models.ExpenseOther
	}

	expense := models.Expense{
		CashRegisterID: register.ID,
		Description:    req.Description,
		Amount:         req.Amount,
		Category:       category,
	}
	if err := s.db.Create(&expense).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}
